package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type ListMarketsParams struct {
	VsCurrency string
	Order      string
	PerPage    int
	Page       int
	Sparkline  bool
	IDs        []string
}

// ListMarkets fetches a page of /coins/markets. With IDs set the list is
// filtered to those coins; upstream does not guarantee any particular order
// for an id-filtered fetch.
func (c *Client) ListMarkets(ctx context.Context, params *ListMarketsParams) ([]MarketCoin, error) {
	query := url.Values{}
	vs := "usd"
	if params != nil && params.VsCurrency != "" {
		vs = params.VsCurrency
	}
	query.Set("vs_currency", vs)
	if params != nil {
		if params.Order != "" {
			query.Set("order", params.Order)
		}
		if params.PerPage > 0 {
			query.Set("per_page", strconv.Itoa(params.PerPage))
		}
		if params.Page > 0 {
			query.Set("page", strconv.Itoa(params.Page))
		}
		if params.Sparkline {
			query.Set("sparkline", "true")
		}
		if len(params.IDs) > 0 {
			query.Set("ids", strings.Join(params.IDs, ","))
		}
	}
	body, err := c.doRequest(ctx, "/coins/markets", query)
	if err != nil {
		return nil, err
	}
	var items []MarketCoin
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to decode markets payload: %w", err)
	}
	return items, nil
}

// GetTrending returns the trending coins in upstream order.
func (c *Client) GetTrending(ctx context.Context) ([]TrendingCoin, error) {
	body, err := c.doRequest(ctx, "/search/trending", nil)
	if err != nil {
		return nil, err
	}
	var envelope trendingEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode trending payload: %w", err)
	}
	items := make([]TrendingCoin, 0, len(envelope.Coins))
	for _, c := range envelope.Coins {
		items = append(items, c.Item)
	}
	return items, nil
}
