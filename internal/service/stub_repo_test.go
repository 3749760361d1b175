package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"coindash/internal/models"
)

// stubRepo is a test-only in-memory implementation of
// repository.CacheRepository with the same absence semantics as the real
// store: Get* returns (nil, nil) when the row does not exist.
type stubRepo struct {
	coins    map[string]models.Coin
	rankings map[string][]models.RankingEntry
	global   *models.GlobalSnapshot
	states   map[string]models.RefreshState

	upsertCalls    int
	reconcileCalls int

	stateReadErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		coins:    map[string]models.Coin{},
		rankings: map[string][]models.RankingEntry{},
		states:   map[string]models.RefreshState{},
	}
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func (s *stubRepo) UpsertCoinsTx(ctx context.Context, tx *gorm.DB, items []models.Coin) error {
	return s.UpsertCoins(ctx, items)
}

func (s *stubRepo) UpsertCoins(ctx context.Context, items []models.Coin) error {
	s.upsertCalls++
	for _, c := range items {
		s.coins[c.ID] = c
	}
	return nil
}

func (s *stubRepo) GetCoinByID(ctx context.Context, id string) (*models.Coin, error) {
	c, ok := s.coins[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *stubRepo) ListCoinsByIDs(ctx context.Context, ids []string) ([]models.Coin, error) {
	out := make([]models.Coin, 0, len(ids))
	for _, id := range ids {
		if c, ok := s.coins[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubRepo) ReconcileRanking(ctx context.Context, name string, coinIDs []string, ts time.Time) error {
	s.reconcileCalls++
	entries := make([]models.RankingEntry, 0, len(coinIDs))
	for i, id := range coinIDs {
		entries = append(entries, models.RankingEntry{
			Ranking:   name,
			CoinID:    id,
			Rank:      i + 1,
			UpdatedAt: ts,
		})
	}
	s.rankings[name] = entries
	return nil
}

func (s *stubRepo) ListRankingEntries(ctx context.Context, name string) ([]models.RankingEntry, error) {
	return s.rankings[name], nil
}

func (s *stubRepo) GetGlobalSnapshot(ctx context.Context) (*models.GlobalSnapshot, error) {
	if s.global == nil {
		return nil, nil
	}
	snap := *s.global
	return &snap, nil
}

func (s *stubRepo) UpsertGlobalSnapshot(ctx context.Context, item *models.GlobalSnapshot) error {
	snap := *item
	s.global = &snap
	return nil
}

func (s *stubRepo) GetRefreshState(ctx context.Context, scope string) (*models.RefreshState, error) {
	if s.stateReadErr != nil {
		return nil, s.stateReadErr
	}
	st, ok := s.states[scope]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (s *stubRepo) SaveRefreshState(ctx context.Context, state *models.RefreshState) error {
	s.states[state.Scope] = *state
	return nil
}

func (s *stubRepo) ListRefreshStates(ctx context.Context) ([]models.RefreshState, error) {
	out := make([]models.RefreshState, 0, len(s.states))
	for _, st := range s.states {
		out = append(out, st)
	}
	return out, nil
}
