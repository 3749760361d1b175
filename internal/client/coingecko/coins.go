package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// GetCoinByID fetches the full detail payload for one coin, with market data
// and the 7-day sparkline included.
func (c *Client) GetCoinByID(ctx context.Context, id string) (*CoinDetail, error) {
	if id == "" {
		return nil, fmt.Errorf("coin id is required")
	}
	query := url.Values{}
	query.Set("localization", "false")
	query.Set("market_data", "true")
	query.Set("sparkline", "true")
	body, err := c.doRequest(ctx, "/coins/"+url.PathEscape(id), query)
	if err != nil {
		return nil, err
	}
	var detail CoinDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("failed to decode coin payload: %w", err)
	}
	return &detail, nil
}
