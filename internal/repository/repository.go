package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"coindash/internal/models"
)

// ErrMissingCoinID marks a malformed upsert batch. The whole batch is
// aborted: rankings reference cache rows by id, and a half-written batch
// could leave dangling references.
var ErrMissingCoinID = errors.New("coin batch contains an entry without an id")

// CacheRepository is the persistence surface of the market-data cache.
// Get* methods return (nil, nil) when the row does not exist; callers decide
// whether absence is an error.
type CacheRepository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Entity cache.
	UpsertCoinsTx(ctx context.Context, tx *gorm.DB, items []models.Coin) error
	UpsertCoins(ctx context.Context, items []models.Coin) error
	GetCoinByID(ctx context.Context, id string) (*models.Coin, error)
	ListCoinsByIDs(ctx context.Context, ids []string) ([]models.Coin, error)

	// Ranked lists. ReconcileRanking atomically replaces the membership of
	// one ranking with coinIDs in order (rank = index+1), deleting members
	// that fell out; an empty coinIDs clears the ranking.
	ReconcileRanking(ctx context.Context, name string, coinIDs []string, ts time.Time) error
	ListRankingEntries(ctx context.Context, name string) ([]models.RankingEntry, error)

	// Global snapshot singleton.
	GetGlobalSnapshot(ctx context.Context) (*models.GlobalSnapshot, error)
	UpsertGlobalSnapshot(ctx context.Context, item *models.GlobalSnapshot) error

	// Per-scope refresh bookkeeping.
	GetRefreshState(ctx context.Context, scope string) (*models.RefreshState, error)
	SaveRefreshState(ctx context.Context, state *models.RefreshState) error
	ListRefreshStates(ctx context.Context) ([]models.RefreshState, error)
}
