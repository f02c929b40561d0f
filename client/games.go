package client

import (
	"context"
	"net/http"
)

// gameCompletePayload is the JSON payload of POST /games/complete.
type gameCompletePayload struct {
	GameType string `json:"game_type"`
	Score    int    `json:"score"`
}

// CompleteGame reports a finished mini-game. The server computes the award
// (base plus a score-derived bonus) and returns the new authoritative total.
func (c *Client) CompleteGame(ctx context.Context, gameType string, score int) (*GameCompleteResult, error) {
	var res GameCompleteResult
	payload := gameCompletePayload{GameType: gameType, Score: score}
	if err := c.doJSON(ctx, http.MethodPost, "/games/complete", payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
