package service

import (
	"context"
	"time"

	"coindash/internal/models"
	"coindash/internal/repository"
)

// CoinResult is a cached coin plus its staleness label.
type CoinResult struct {
	Coin      models.Coin `json:"coin"`
	Staleness string      `json:"staleness"`
}

// RankedCoinView is one ranking entry joined with its coin row.
type RankedCoinView struct {
	models.Coin
	Rank       int       `json:"rank"`
	RankedAt   time.Time `json:"ranked_at"`
	UpdatedAgo string    `json:"updated_ago"`
}

// RankingResult is a full ranking view in rank order.
type RankingResult struct {
	Name    string           `json:"name"`
	Entries []RankedCoinView `json:"entries"`
}

// GlobalResult is the cached market-wide snapshot plus its staleness label.
type GlobalResult struct {
	Snapshot  models.GlobalSnapshot `json:"snapshot"`
	Staleness string                `json:"staleness"`
}

// rankingView loads ranking entries and joins them with coin rows in Go.
// Entries whose coin row is missing are filtered silently: the dashboard
// cannot render a coin with no data.
func rankingView(ctx context.Context, repo repository.CacheRepository, name string, now time.Time) ([]RankedCoinView, error) {
	entries, err := repo.ListRankingEntries(ctx, name)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.CoinID)
	}
	coins, err := repo.ListCoinsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Coin, len(coins))
	for _, c := range coins {
		byID[c.ID] = c
	}
	out := make([]RankedCoinView, 0, len(entries))
	for _, e := range entries {
		coin, ok := byID[e.CoinID]
		if !ok {
			continue
		}
		out = append(out, RankedCoinView{
			Coin:       coin,
			Rank:       e.Rank,
			RankedAt:   e.UpdatedAt,
			UpdatedAgo: FormatTimeAgo(e.UpdatedAt, now),
		})
	}
	return out, nil
}
