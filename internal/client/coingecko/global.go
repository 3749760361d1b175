package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetGlobal fetches the market-wide aggregate payload.
func (c *Client) GetGlobal(ctx context.Context) (*GlobalData, error) {
	body, err := c.doRequest(ctx, "/global", nil)
	if err != nil {
		return nil, err
	}
	var envelope globalEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode global payload: %w", err)
	}
	return &envelope.Data, nil
}
