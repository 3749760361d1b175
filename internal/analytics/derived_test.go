package analytics

import (
	"math"
	"testing"
	"time"

	"coindash/internal/client/coingecko"
)

func f(v float64) *float64 { return &v }

func TestSevenDayChange(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"singleton", []float64{42}, 0},
		{"up", []float64{100, 105, 110}, 10},
		{"down", []float64{200, 150, 100}, -50},
		{"zero first", []float64{0, 50, 100}, 0},
	}
	for _, tt := range tests {
		if got := SevenDayChange(tt.series); math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("%s: SevenDayChange = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestVolatility(t *testing.T) {
	if got := Volatility(nil); got != 0 {
		t.Fatalf("empty series volatility = %v, want 0", got)
	}
	if got := Volatility([]float64{5, 5, 5}); got != 0 {
		t.Fatalf("constant series volatility = %v, want 0", got)
	}
	// Population std dev of {2,4,4,4,5,5,7,9} is exactly 2.
	got := Volatility([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(got-2) > 1e-9 {
		t.Fatalf("volatility = %v, want 2", got)
	}
	if got := Volatility([]float64{1, 100, 3, -7}); got < 0 {
		t.Fatalf("volatility must not be negative, got %v", got)
	}
}

func TestMomentumOf(t *testing.T) {
	tests := []struct {
		series []float64
		want   Momentum
	}{
		{nil, MomentumNeutral},
		{[]float64{7}, MomentumNeutral},
		{[]float64{1, 0, 2}, MomentumBullish},
		{[]float64{2, 9, 1}, MomentumBearish},
		{[]float64{3, 8, 3}, MomentumNeutral},
	}
	for _, tt := range tests {
		if got := MomentumOf(tt.series); got != tt.want {
			t.Fatalf("MomentumOf(%v) = %q, want %q", tt.series, got, tt.want)
		}
	}
}

func TestComputePercentToATH(t *testing.T) {
	detail := &coingecko.CoinDetail{
		ID: "bitcoin",
		MarketData: &coingecko.MarketData{
			CurrentPrice: map[string]float64{"usd": 90},
			ATH:          map[string]float64{"usd": 100},
		},
	}
	d := Compute(detail, "usd", time.Now())
	if d.PercentToATH == nil {
		t.Fatalf("expected percent_to_ath, got nil")
	}
	if math.Abs(*d.PercentToATH-(-10)) > 1e-9 {
		t.Fatalf("percent_to_ath = %v, want -10", *d.PercentToATH)
	}
}

func TestComputeNilRatiosOnZeroDenominator(t *testing.T) {
	detail := &coingecko.CoinDetail{
		ID: "newcoin",
		MarketData: &coingecko.MarketData{
			CurrentPrice: map[string]float64{"usd": 1},
			ATH:          map[string]float64{"usd": 0},
			MarketCap:    map[string]float64{"usd": 0},
			TotalVolume:  map[string]float64{},
			MaxSupply:    f(0),
		},
	}
	d := Compute(detail, "usd", time.Now())
	if d.PercentToATH != nil {
		t.Fatalf("zero ath must yield nil percent_to_ath, got %v", *d.PercentToATH)
	}
	if d.PriceToMarketCap != nil {
		t.Fatalf("zero market cap must yield nil ratio")
	}
	if d.PriceToVolume != nil {
		t.Fatalf("absent volume must yield nil ratio")
	}
	if d.CirculatingPercent != nil {
		t.Fatalf("zero max supply must yield nil circulating percent")
	}
}

func TestComputeCirculatingPercent(t *testing.T) {
	detail := &coingecko.CoinDetail{
		ID: "bitcoin",
		MarketData: &coingecko.MarketData{
			CirculatingSupply: f(19_000_000),
			MaxSupply:         f(21_000_000),
		},
	}
	d := Compute(detail, "usd", time.Now())
	if d.CirculatingPercent == nil {
		t.Fatalf("expected circulating percent")
	}
	want := 19_000_000.0 / 21_000_000.0 * 100
	if math.Abs(*d.CirculatingPercent-want) > 1e-9 {
		t.Fatalf("circulating percent = %v, want %v", *d.CirculatingPercent, want)
	}
}

func TestComputeAboutDefaults(t *testing.T) {
	d := Compute(&coingecko.CoinDetail{ID: "bare"}, "usd", time.Now())
	for field, got := range map[string]string{
		"rank":          d.Rank,
		"all_time_high": d.AllTimeHigh,
		"all_time_low":  d.AllTimeLow,
		"description":   d.Description,
		"website":       d.Website,
		"twitter":       d.Twitter,
		"reddit":        d.Reddit,
		"dev_score":     d.DevScore,
	} {
		if got != NA {
			t.Fatalf("%s = %q, want %q", field, got, NA)
		}
	}
	if d.Momentum != MomentumNeutral {
		t.Fatalf("momentum = %q, want Neutral", d.Momentum)
	}
}

func TestComputeAboutFields(t *testing.T) {
	rank := 1
	score := 82.5
	detail := &coingecko.CoinDetail{
		ID:             "bitcoin",
		Description:    map[string]string{"en": "Digital gold."},
		MarketCapRank:  &rank,
		DeveloperScore: &score,
		Links: &coingecko.CoinLinks{
			Homepage:          []string{"https://bitcoin.org"},
			TwitterScreenName: "bitcoin",
			SubredditURL:      "https://reddit.com/r/bitcoin",
		},
		MarketData: &coingecko.MarketData{
			ATH: map[string]float64{"usd": 69044.77},
			ATL: map[string]float64{"usd": 67.81},
		},
	}
	d := Compute(detail, "usd", time.Now())
	if d.Rank != "1" {
		t.Fatalf("rank = %q, want 1", d.Rank)
	}
	if d.AllTimeHigh != "$69,044.77" {
		t.Fatalf("all_time_high = %q", d.AllTimeHigh)
	}
	if d.AllTimeLow != "$67.81" {
		t.Fatalf("all_time_low = %q", d.AllTimeLow)
	}
	if d.Description != "Digital gold." || d.Website != "https://bitcoin.org" {
		t.Fatalf("about fields not carried: %q %q", d.Description, d.Website)
	}
	if d.Twitter != "bitcoin" || d.Reddit != "https://reddit.com/r/bitcoin" {
		t.Fatalf("social fields not carried: %q %q", d.Twitter, d.Reddit)
	}
	if d.DevScore != "82.5" {
		t.Fatalf("dev_score = %q, want 82.5", d.DevScore)
	}
}

func TestComputeNilDetail(t *testing.T) {
	now := time.Now()
	d := Compute(nil, "", now)
	if d.SevenDayChange != 0 || d.Volatility != 0 || d.MA7 != 0 {
		t.Fatalf("nil detail must degrade to zero metrics: %+v", d)
	}
	if !d.LastFetched.Equal(now) {
		t.Fatalf("last_fetched = %v, want %v", d.LastFetched, now)
	}
}
