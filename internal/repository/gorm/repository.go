package gormrepository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coindash/internal/models"
	"coindash/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// coinUpdateColumns is every column an upsert replaces. A refresh is a full
// overwrite of the row, never a partial merge.
var coinUpdateColumns = []string{
	"name",
	"symbol",
	"image",
	"current_price",
	"price_change_percentage_24h",
	"market_cap",
	"total_volume",
	"circulating_supply",
	"max_supply",
	"derived",
	"last_updated",
}

func (s *Store) UpsertCoinsTx(ctx context.Context, tx *gorm.DB, items []models.Coin) error {
	if tx == nil || len(items) == 0 {
		return nil
	}
	for i := range items {
		if items[i].ID == "" {
			return fmt.Errorf("coin %d: %w", i, repository.ErrMissingCoinID)
		}
	}
	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(coinUpdateColumns),
	}).Create(&items).Error
}

func (s *Store) UpsertCoins(ctx context.Context, items []models.Coin) error {
	if s == nil || s.db == nil || len(items) == 0 {
		return nil
	}
	return s.InTx(ctx, func(tx *gorm.DB) error {
		return s.UpsertCoinsTx(ctx, tx, items)
	})
}

func (s *Store) GetCoinByID(ctx context.Context, id string) (*models.Coin, error) {
	if s == nil || s.db == nil || id == "" {
		return nil, nil
	}
	var item models.Coin
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListCoinsByIDs(ctx context.Context, ids []string) ([]models.Coin, error) {
	if s == nil || s.db == nil || len(ids) == 0 {
		return nil, nil
	}
	var items []models.Coin
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ReconcileRanking runs delete-stale + upsert-new in one transaction so a
// reader never observes the ranking empty or half-replaced mid-refresh.
func (s *Store) ReconcileRanking(ctx context.Context, name string, coinIDs []string, ts time.Time) error {
	if s == nil || s.db == nil || name == "" {
		return nil
	}
	return s.InTx(ctx, func(tx *gorm.DB) error {
		del := tx.Where("ranking = ?", name)
		if len(coinIDs) > 0 {
			del = del.Where("coin_id NOT IN ?", coinIDs)
		}
		if err := del.Delete(&models.RankingEntry{}).Error; err != nil {
			return err
		}
		if len(coinIDs) == 0 {
			return nil
		}
		entries := make([]models.RankingEntry, 0, len(coinIDs))
		for i, id := range coinIDs {
			entries = append(entries, models.RankingEntry{
				Ranking:   name,
				CoinID:    id,
				Rank:      i + 1,
				UpdatedAt: ts,
			})
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ranking"}, {Name: "coin_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rank", "updated_at"}),
		}).Create(&entries).Error
	})
}

func (s *Store) ListRankingEntries(ctx context.Context, name string) ([]models.RankingEntry, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.RankingEntry
	if err := s.db.WithContext(ctx).
		Where("ranking = ?", name).
		Order("rank asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetGlobalSnapshot(ctx context.Context) (*models.GlobalSnapshot, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.GlobalSnapshot
	err := s.db.WithContext(ctx).Where("id = ?", models.GlobalSnapshotID).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpsertGlobalSnapshot(ctx context.Context, item *models.GlobalSnapshot) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	item.ID = models.GlobalSnapshotID
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_market_cap",
			"total_volume",
			"btc_dominance",
			"eth_dominance",
			"market_cap_change_24h",
			"extra",
			"last_updated",
			"last_fetched",
		}),
	}).Create(item).Error
}

func (s *Store) GetRefreshState(ctx context.Context, scope string) (*models.RefreshState, error) {
	if s == nil || s.db == nil || scope == "" {
		return nil, nil
	}
	var item models.RefreshState
	err := s.db.WithContext(ctx).Where("scope = ?", scope).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) SaveRefreshState(ctx context.Context, state *models.RefreshState) error {
	if s == nil || s.db == nil || state == nil || state.Scope == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "scope"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"last_attempt_at",
			"last_success_at",
			"last_error",
			"stats_json",
		}),
	}).Create(state).Error
}

func (s *Store) ListRefreshStates(ctx context.Context) ([]models.RefreshState, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.RefreshState
	if err := s.db.WithContext(ctx).
		Order("scope asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
