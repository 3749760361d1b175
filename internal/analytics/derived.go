package analytics

import (
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"coindash/internal/client/coingecko"
)

// NA is the sentinel for About-section text fields the upstream did not
// provide. Text fields never degrade to null or 0 so the UI can tell an
// unknown string apart from a zero numeric.
const NA = "N/A"

type Momentum string

const (
	MomentumBullish Momentum = "Bullish"
	MomentumBearish Momentum = "Bearish"
	MomentumNeutral Momentum = "Neutral"
)

// Derived is the analytics blob attached to a coin snapshot at refresh time.
// It is always recomputed whole from a fresh payload, never merged.
type Derived struct {
	SevenDayChange     float64   `json:"seven_day_change"`
	Volatility         float64   `json:"volatility"`
	MA7                float64   `json:"ma7"`
	PriceToMarketCap   *float64  `json:"price_to_market_cap"`
	PriceToVolume      *float64  `json:"price_to_volume"`
	Momentum           Momentum  `json:"momentum"`
	PercentToATH       *float64  `json:"percent_to_ath"`
	CirculatingPercent *float64  `json:"circulating_percent"`
	Sparkline          []float64 `json:"sparkline"`
	LastFetched        time.Time `json:"last_fetched"`

	// About section, presentation strings only.
	Rank        string `json:"rank"`
	AllTimeHigh string `json:"all_time_high"`
	AllTimeLow  string `json:"all_time_low"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Twitter     string `json:"twitter"`
	Reddit      string `json:"reddit"`
	DevScore    string `json:"dev_score"`
}

// Reduced is the list-view blob: ranking refreshes store only the sparkline
// and fetch time, leaving the full analytics to the per-coin detail path.
type Reduced struct {
	Sparkline   []float64 `json:"sparkline"`
	LastFetched time.Time `json:"last_fetched"`
}

// Compute derives the full analytics blob from one detail payload. It is
// pure and never fails: every missing or malformed input degrades to a
// documented default (0, nil, or "N/A").
func Compute(detail *coingecko.CoinDetail, vsCurrency string, now time.Time) Derived {
	if vsCurrency == "" {
		vsCurrency = "usd"
	}

	var md *coingecko.MarketData
	if detail != nil {
		md = detail.MarketData
	}

	var series []float64
	if md != nil && md.Sparkline7d != nil {
		series = md.Sparkline7d.Price
	}

	mean := Mean(series)
	volatility := Volatility(series)

	currentPrice := quoted(md, func(m *coingecko.MarketData) map[string]float64 { return m.CurrentPrice }, vsCurrency)
	ath := quoted(md, func(m *coingecko.MarketData) map[string]float64 { return m.ATH }, vsCurrency)
	atl, hasATL := quotedOK(md, func(m *coingecko.MarketData) map[string]float64 { return m.ATL }, vsCurrency)
	_, hasATH := quotedOK(md, func(m *coingecko.MarketData) map[string]float64 { return m.ATH }, vsCurrency)
	marketCap := quoted(md, func(m *coingecko.MarketData) map[string]float64 { return m.MarketCap }, vsCurrency)
	totalVolume := quoted(md, func(m *coingecko.MarketData) map[string]float64 { return m.TotalVolume }, vsCurrency)

	d := Derived{
		SevenDayChange: SevenDayChange(series),
		Volatility:     volatility,
		MA7:            mean,
		Momentum:       MomentumOf(series),
		Sparkline:      series,
		LastFetched:    now,
		Rank:           NA,
		AllTimeHigh:    NA,
		AllTimeLow:     NA,
		Description:    NA,
		Website:        NA,
		Twitter:        NA,
		Reddit:         NA,
		DevScore:       NA,
	}

	if marketCap != 0 {
		v := currentPrice / marketCap
		d.PriceToMarketCap = &v
	}
	if totalVolume != 0 {
		v := currentPrice / totalVolume
		d.PriceToVolume = &v
	}
	if ath != 0 {
		v := (currentPrice/ath - 1) * 100
		d.PercentToATH = &v
	}
	if md != nil && md.MaxSupply != nil && *md.MaxSupply != 0 {
		circulating := 0.0
		if md.CirculatingSupply != nil {
			circulating = *md.CirculatingSupply
		}
		v := circulating / *md.MaxSupply * 100
		d.CirculatingPercent = &v
	}

	if detail != nil {
		if detail.MarketCapRank != nil {
			d.Rank = strconv.Itoa(*detail.MarketCapRank)
		}
		if hasATH {
			d.AllTimeHigh = "$" + humanize.Commaf(ath)
		}
		if hasATL {
			d.AllTimeLow = "$" + humanize.Commaf(atl)
		}
		if s := detail.Description["en"]; s != "" {
			d.Description = s
		}
		if detail.Links != nil {
			if len(detail.Links.Homepage) > 0 && detail.Links.Homepage[0] != "" {
				d.Website = detail.Links.Homepage[0]
			}
			if detail.Links.TwitterScreenName != "" {
				d.Twitter = detail.Links.TwitterScreenName
			}
			if detail.Links.SubredditURL != "" {
				d.Reddit = detail.Links.SubredditURL
			}
		}
		if detail.DeveloperScore != nil {
			d.DevScore = strconv.FormatFloat(*detail.DeveloperScore, 'f', -1, 64)
		}
	}

	return d
}

// SevenDayChange is the percent change across the series. A zero first point
// yields 0 rather than a division error; that falsy-first short-circuit is
// deliberate and matches the renderer's expectations.
func SevenDayChange(series []float64) float64 {
	first, last := firstLast(series)
	if first == 0 {
		return 0
	}
	return (last - first) / first * 100
}

// Mean is the arithmetic mean of the series, 0 when empty.
func Mean(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range series {
		sum += p
	}
	return sum / float64(len(series))
}

// Volatility is the population standard deviation, 0 when empty.
func Volatility(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	mean := Mean(series)
	variance := 0.0
	for _, p := range series {
		dev := p - mean
		variance += dev * dev
	}
	variance /= float64(len(series))
	return math.Sqrt(variance)
}

// MomentumOf compares the last point to the first. Empty and singleton
// series are Neutral because both endpoints default to the same value.
func MomentumOf(series []float64) Momentum {
	first, last := firstLast(series)
	switch {
	case last > first:
		return MomentumBullish
	case last < first:
		return MomentumBearish
	default:
		return MomentumNeutral
	}
}

func firstLast(series []float64) (float64, float64) {
	if len(series) == 0 {
		return 0, 0
	}
	return series[0], series[len(series)-1]
}

func quoted(md *coingecko.MarketData, pick func(*coingecko.MarketData) map[string]float64, vs string) float64 {
	v, _ := quotedOK(md, pick, vs)
	return v
}

func quotedOK(md *coingecko.MarketData, pick func(*coingecko.MarketData) map[string]float64, vs string) (float64, bool) {
	if md == nil {
		return 0, false
	}
	m := pick(md)
	if m == nil {
		return 0, false
	}
	v, ok := m[vs]
	return v, ok
}
