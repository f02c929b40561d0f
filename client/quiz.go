package client

import (
	"context"
	"net/http"
)

// testResultPayload is the JSON payload of the test completion endpoints.
type testResultPayload struct {
	Result string `json:"result"`
}

// FetchQuestions retrieves the quiz questions in display order.
func (c *Client) FetchQuestions(ctx context.Context) ([]TestQuestion, error) {
	var questions []TestQuestion
	if err := c.doJSON(ctx, http.MethodGet, "/test/questions", nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// CompleteTest reports the quiz result. The server rejects a second call
// with "Test already completed".
func (c *Client) CompleteTest(ctx context.Context, result string) (*TestCompleteResult, error) {
	var res TestCompleteResult
	if err := c.doJSON(ctx, http.MethodPost, "/test/complete", testResultPayload{Result: result}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SkipTest marks the quiz as completed without a result and without points.
func (c *Client) SkipTest(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/test/skip", nil, nil)
}

// SetDirection chooses a direction manually after a skipped quiz.
func (c *Client) SetDirection(ctx context.Context, direction string) error {
	return c.doJSON(ctx, http.MethodPost, "/test/set-direction", testResultPayload{Result: direction}, nil)
}
