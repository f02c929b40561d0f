package client

import (
	"context"
	"fmt"
	"net/http"
)

// FetchPrizes retrieves the prize catalogue ordered by cost.
func (c *Client) FetchPrizes(ctx context.Context) ([]Prize, error) {
	var prizes []Prize
	if err := c.doJSON(ctx, http.MethodGet, "/prizes", nil, &prizes); err != nil {
		return nil, err
	}
	return prizes, nil
}

// ClaimPrize exchanges points for a prize. The server validates balance,
// stock and prior claims atomically and returns the remaining balance.
func (c *Client) ClaimPrize(ctx context.Context, prizeID int) (*ClaimResult, error) {
	var res ClaimResult
	path := fmt.Sprintf("/prizes/%d/claim", prizeID)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
