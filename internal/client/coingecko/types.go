package coingecko

import "time"

// Sparkline is the 7-day price series attached to market rows and coin
// details. An absent or empty series is represented by a nil/empty Price.
type Sparkline struct {
	Price []float64 `json:"price"`
}

// MarketCoin is one row of the /coins/markets list payload. Numeric fields
// are pointers so that "field absent upstream" stays representable.
type MarketCoin struct {
	ID                string     `json:"id"`
	Symbol            string     `json:"symbol"`
	Name              string     `json:"name"`
	Image             string     `json:"image"`
	CurrentPrice      *float64   `json:"current_price"`
	MarketCap         *float64   `json:"market_cap"`
	TotalVolume       *float64   `json:"total_volume"`
	PriceChangePct24h *float64   `json:"price_change_percentage_24h"`
	CirculatingSupply *float64   `json:"circulating_supply"`
	MaxSupply         *float64   `json:"max_supply"`
	SparklineIn7d     *Sparkline `json:"sparkline_in_7d"`
	LastUpdated       *time.Time `json:"last_updated"`
}

// CoinDetail is the /coins/{id} payload, reduced to the fields the pipeline
// consumes. Optional sections stay nil when the upstream omits them.
type CoinDetail struct {
	ID             string            `json:"id"`
	Symbol         string            `json:"symbol"`
	Name           string            `json:"name"`
	Description    map[string]string `json:"description"`
	Links          *CoinLinks        `json:"links"`
	Image          *CoinImage        `json:"image"`
	MarketCapRank  *int              `json:"market_cap_rank"`
	DeveloperScore *float64          `json:"developer_score"`
	MarketData     *MarketData       `json:"market_data"`
	LastUpdated    *time.Time        `json:"last_updated"`
}

type CoinLinks struct {
	Homepage          []string `json:"homepage"`
	TwitterScreenName string   `json:"twitter_screen_name"`
	SubredditURL      string   `json:"subreddit_url"`
}

type CoinImage struct {
	Thumb string `json:"thumb"`
	Small string `json:"small"`
	Large string `json:"large"`
}

type MarketData struct {
	CurrentPrice      map[string]float64 `json:"current_price"`
	ATH               map[string]float64 `json:"ath"`
	ATL               map[string]float64 `json:"atl"`
	MarketCap         map[string]float64 `json:"market_cap"`
	TotalVolume       map[string]float64 `json:"total_volume"`
	PriceChangePct24h *float64           `json:"price_change_percentage_24h"`
	CirculatingSupply *float64           `json:"circulating_supply"`
	MaxSupply         *float64           `json:"max_supply"`
	Sparkline7d       *Sparkline         `json:"sparkline_7d"`
}

// TrendingCoin is one item of the /search/trending payload.
type TrendingCoin struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type trendingEnvelope struct {
	Coins []struct {
		Item TrendingCoin `json:"item"`
	} `json:"coins"`
}

// GlobalData is the /global aggregate payload.
type GlobalData struct {
	ActiveCryptocurrencies       int                `json:"active_cryptocurrencies"`
	Markets                      int                `json:"markets"`
	OngoingICOs                  int                `json:"ongoing_icos"`
	EndedICOs                    int                `json:"ended_icos"`
	TotalMarketCap               map[string]float64 `json:"total_market_cap"`
	TotalVolume                  map[string]float64 `json:"total_volume"`
	MarketCapPercentage          map[string]float64 `json:"market_cap_percentage"`
	MarketCapChangePct24hUSD     *float64           `json:"market_cap_change_percentage_24h_usd"`
}

type globalEnvelope struct {
	Data GlobalData `json:"data"`
}
