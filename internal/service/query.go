package service

import (
	"context"
	"time"

	"coindash/internal/models"
	"coindash/internal/repository"
)

// QueryService serves cached data only; it never contacts upstream.
type QueryService struct {
	Repo repository.CacheRepository
}

func (s *QueryService) GetCoin(ctx context.Context, id string) (*CoinResult, error) {
	coin, err := s.Repo.GetCoinByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if coin == nil {
		return nil, ErrNotFound
	}
	return &CoinResult{
		Coin:      *coin,
		Staleness: TimeAgo(coin.LastUpdated),
	}, nil
}

// GetRanking returns the cached ranking. A ranking with no refresh-state row
// has never been refreshed and reads as NotFound; a refreshed ranking that
// reconciled to zero members is an empty success.
func (s *QueryService) GetRanking(ctx context.Context, name string) (*RankingResult, error) {
	state, err := s.Repo.GetRefreshState(ctx, name)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, ErrNotFound
	}
	entries, err := rankingView(ctx, s.Repo, name, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return &RankingResult{Name: name, Entries: entries}, nil
}

func (s *QueryService) GetGlobal(ctx context.Context) (*GlobalResult, error) {
	snap, err := s.Repo.GetGlobalSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, ErrNotFound
	}
	return &GlobalResult{
		Snapshot:  *snap,
		Staleness: TimeAgo(snap.LastUpdated),
	}, nil
}

func (s *QueryService) ListRefreshStates(ctx context.Context) ([]models.RefreshState, error) {
	return s.Repo.ListRefreshStates(ctx)
}
