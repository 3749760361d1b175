package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"coindash/internal/analytics"
	"coindash/internal/client/coingecko"
	"coindash/internal/models"
	"coindash/internal/repository"
)

// GlobalScope is the RefreshState scope of the market-wide snapshot.
const GlobalScope = "global"

// RefreshService pulls upstream snapshots, derives analytics, and reconciles
// the cache. It never retries: rate limits and upstream failures surface as
// typed errors and leave the cache untouched.
type RefreshService struct {
	Store  repository.CacheRepository
	CG     *coingecko.Client
	Logger *zap.Logger

	VsCurrency     string
	MarketPageSize int
	MoversSize     int
}

func (s *RefreshService) vs() string {
	if s.VsCurrency == "" {
		return "usd"
	}
	return s.VsCurrency
}

func (s *RefreshService) pageSize() int {
	if s.MarketPageSize <= 0 {
		return 100
	}
	return s.MarketPageSize
}

func (s *RefreshService) moversSize() int {
	if s.MoversSize <= 0 {
		return 10
	}
	return s.MoversSize
}

// RefreshRanking rebuilds one named ranking from upstream. Coin upserts
// commit before reconciliation starts, so a concurrent reader never sees a
// ranking entry pointing at a coin that is not cached yet.
func (s *RefreshService) RefreshRanking(ctx context.Context, name string) (*RankingResult, error) {
	if !models.KnownRanking(name) {
		return nil, ErrUnknownRanking
	}
	now := time.Now().UTC()

	ordered, err := s.fetchRankingSource(ctx, name)
	if err != nil {
		err = upstreamErr(err)
		s.writeRefreshError(ctx, name, now, err)
		return nil, err
	}

	coins := make([]models.Coin, 0, len(ordered))
	ids := make([]string, 0, len(ordered))
	for _, mc := range ordered {
		coin := marketCoinToModel(mc, now)
		coins = append(coins, coin)
		ids = append(ids, coin.ID)
	}

	if len(coins) > 0 {
		if err := s.Store.UpsertCoins(ctx, coins); err != nil {
			s.writeRefreshError(ctx, name, now, err)
			return nil, err
		}
	}
	// Reconcile even when upstream returned nothing: the membership after a
	// successful refresh is exactly the new list, and an empty list clears it.
	if err := s.Store.ReconcileRanking(ctx, name, ids, now); err != nil {
		s.writeRefreshError(ctx, name, now, err)
		return nil, err
	}

	s.writeRefreshSuccess(ctx, name, now, map[string]int{"entries": len(ids)})

	entries, err := rankingView(ctx, s.Store, name, now)
	if err != nil {
		return nil, err
	}
	return &RankingResult{Name: name, Entries: entries}, nil
}

// fetchRankingSource returns the upstream rows already in final rank order.
func (s *RefreshService) fetchRankingSource(ctx context.Context, name string) ([]coingecko.MarketCoin, error) {
	switch name {
	case models.RankingTop100:
		// Upstream orders by market cap descending and caps the page.
		return s.listMarketPage(ctx, nil)
	case models.RankingGainers, models.RankingLosers:
		items, err := s.listMarketPage(ctx, nil)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(items, func(i, j int) bool {
			a := f64(items[i].PriceChangePct24h)
			b := f64(items[j].PriceChangePct24h)
			if name == models.RankingGainers {
				return a > b
			}
			return a < b
		})
		if len(items) > s.moversSize() {
			items = items[:s.moversSize()]
		}
		return items, nil
	case models.RankingTrending:
		return s.fetchTrending(ctx)
	default:
		return nil, ErrUnknownRanking
	}
}

// fetchTrending is a two-step fetch: trending ids first, then market rows
// for those ids reordered to the trending order, since the two endpoints do
// not agree on ordering. Ids with no market row are dropped.
func (s *RefreshService) fetchTrending(ctx context.Context) ([]coingecko.MarketCoin, error) {
	trending, err := s.CG.GetTrending(ctx)
	if err != nil {
		return nil, err
	}
	if len(trending) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(trending))
	for _, t := range trending {
		ids = append(ids, t.ID)
	}
	markets, err := s.listMarketPage(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]coingecko.MarketCoin, len(markets))
	for _, m := range markets {
		byID[m.ID] = m
	}
	ordered := make([]coingecko.MarketCoin, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			ordered = append(ordered, m)
		}
	}
	return ordered, nil
}

func (s *RefreshService) listMarketPage(ctx context.Context, ids []string) ([]coingecko.MarketCoin, error) {
	return s.CG.ListMarkets(ctx, &coingecko.ListMarketsParams{
		VsCurrency: s.vs(),
		Order:      "market_cap_desc",
		PerPage:    s.pageSize(),
		Page:       1,
		Sparkline:  true,
		IDs:        ids,
	})
}

// RefreshCoin fetches the detail payload for one coin and caches it with the
// full analytics blob attached.
func (s *RefreshService) RefreshCoin(ctx context.Context, id string) (*CoinResult, error) {
	now := time.Now().UTC()
	detail, err := s.CG.GetCoinByID(ctx, id)
	if err != nil {
		return nil, upstreamErr(err)
	}

	derived := analytics.Compute(detail, s.vs(), now)
	blob, err := json.Marshal(derived)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	coin := detailToModel(detail, s.vs(), blob, now)
	if err := s.Store.UpsertCoins(ctx, []models.Coin{coin}); err != nil {
		return nil, err
	}
	return &CoinResult{Coin: coin, Staleness: FormatTimeAgo(coin.LastUpdated, now)}, nil
}

// RefreshGlobal fetches the market-wide aggregates and overwrites the
// singleton snapshot; the background timer and on-demand refreshes share
// this path with last-writer-wins semantics.
func (s *RefreshService) RefreshGlobal(ctx context.Context) (*GlobalResult, error) {
	now := time.Now().UTC()
	data, err := s.CG.GetGlobal(ctx)
	if err != nil {
		err = upstreamErr(err)
		s.writeRefreshError(ctx, GlobalScope, now, err)
		return nil, err
	}

	extra, err := json.Marshal(map[string]any{
		"active_cryptocurrencies": data.ActiveCryptocurrencies,
		"markets":                 data.Markets,
		"ongoing_icos":            data.OngoingICOs,
		"ended_icos":              data.EndedICOs,
	})
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	snap := &models.GlobalSnapshot{
		TotalMarketCap:        decimal.NewFromFloat(data.TotalMarketCap[s.vs()]),
		TotalVolume:           decimal.NewFromFloat(data.TotalVolume[s.vs()]),
		BTCDominance:          data.MarketCapPercentage["btc"],
		ETHDominance:          data.MarketCapPercentage["eth"],
		MarketCapChangePct24h: f64(data.MarketCapChangePct24hUSD),
		Extra:                 extra,
		LastUpdated:           now,
		LastFetched:           now,
	}
	if err := s.Store.UpsertGlobalSnapshot(ctx, snap); err != nil {
		s.writeRefreshError(ctx, GlobalScope, now, err)
		return nil, err
	}

	s.writeRefreshSuccess(ctx, GlobalScope, now, map[string]int{"rows": 1})
	return &GlobalResult{Snapshot: *snap, Staleness: FormatTimeAgo(snap.LastUpdated, now)}, nil
}

func (s *RefreshService) writeRefreshSuccess(ctx context.Context, scope string, now time.Time, stats map[string]int) {
	state := &models.RefreshState{
		Scope:         scope,
		LastAttemptAt: &now,
		LastSuccessAt: &now,
		LastError:     nil,
		StatsJSON:     statsJSON(stats),
	}
	if err := s.Store.SaveRefreshState(ctx, state); err != nil && s.Logger != nil {
		s.Logger.Warn("save refresh state failed", zap.String("scope", scope), zap.Error(err))
	}
}

func (s *RefreshService) writeRefreshError(ctx context.Context, scope string, now time.Time, cause error) {
	msg := cause.Error()
	// Preserve the last success marker; only the attempt and error change.
	// If the prior state cannot be read, skip the write rather than risk
	// overwriting a recorded success with nulls.
	prev, err := s.Store.GetRefreshState(ctx, scope)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("read refresh state failed", zap.String("scope", scope), zap.Error(err))
		}
		return
	}
	state := &models.RefreshState{
		Scope:         scope,
		LastAttemptAt: &now,
		LastError:     &msg,
	}
	if prev != nil {
		state.LastSuccessAt = prev.LastSuccessAt
		state.StatsJSON = prev.StatsJSON
	}
	if err := s.Store.SaveRefreshState(ctx, state); err != nil && s.Logger != nil {
		s.Logger.Warn("save refresh state failed", zap.String("scope", scope), zap.Error(err))
	}
}

func marketCoinToModel(mc coingecko.MarketCoin, now time.Time) models.Coin {
	var series []float64
	if mc.SparklineIn7d != nil {
		series = mc.SparklineIn7d.Price
	}
	// List views carry the reduced blob only; the detail path computes the
	// full analytics.
	blob, _ := json.Marshal(analytics.Reduced{Sparkline: series, LastFetched: now})

	lastUpdated := now
	if mc.LastUpdated != nil {
		lastUpdated = *mc.LastUpdated
	}
	return models.Coin{
		ID:                mc.ID,
		Name:              mc.Name,
		Symbol:            mc.Symbol,
		Image:             mc.Image,
		CurrentPrice:      f64(mc.CurrentPrice),
		PriceChangePct24h: f64(mc.PriceChangePct24h),
		MarketCap:         f64(mc.MarketCap),
		TotalVolume:       f64(mc.TotalVolume),
		CirculatingSupply: f64(mc.CirculatingSupply),
		MaxSupply:         f64(mc.MaxSupply),
		Derived:           blob,
		LastUpdated:       lastUpdated,
	}
}

func detailToModel(detail *coingecko.CoinDetail, vs string, derived datatypes.JSON, now time.Time) models.Coin {
	coin := models.Coin{
		Derived:     derived,
		LastUpdated: now,
	}
	if detail == nil {
		return coin
	}
	coin.ID = detail.ID
	coin.Name = detail.Name
	coin.Symbol = detail.Symbol
	if detail.Image != nil {
		coin.Image = detail.Image.Thumb
	}
	if detail.LastUpdated != nil {
		coin.LastUpdated = *detail.LastUpdated
	}
	if md := detail.MarketData; md != nil {
		coin.CurrentPrice = md.CurrentPrice[vs]
		coin.PriceChangePct24h = f64(md.PriceChangePct24h)
		coin.MarketCap = md.MarketCap[vs]
		coin.TotalVolume = md.TotalVolume[vs]
		coin.CirculatingSupply = f64(md.CirculatingSupply)
		coin.MaxSupply = f64(md.MaxSupply)
	}
	return coin
}

func statsJSON(stats map[string]int) datatypes.JSON {
	raw, err := json.Marshal(stats)
	if err != nil {
		return nil
	}
	return raw
}

func f64(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
