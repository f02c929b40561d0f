package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/praktik-cli/praktik/pkg/apierr"
	"github.com/rs/zerolog/log"
)

// credentials is the JSON payload of the register and login endpoints.
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account and stores the returned token pair.
func (c *Client) Register(ctx context.Context, email, password string) error {
	pair, err := c.postCredentials(ctx, "/auth/register", email, password)
	if err != nil {
		return err
	}
	c.store.SetTokens(pair.AccessToken, pair.RefreshToken)
	log.Info().Msg("Registered and received token pair")
	return nil
}

// Login authenticates with the JSON login endpoint and stores the returned
// token pair.
func (c *Client) Login(ctx context.Context, email, password string) error {
	pair, err := c.postCredentials(ctx, "/auth/login/json", email, password)
	if err != nil {
		return err
	}
	c.store.SetTokens(pair.AccessToken, pair.RefreshToken)
	log.Info().Msg("Logged in and received token pair")
	return nil
}

// postCredentials posts email/password to an auth endpoint. These calls are
// unauthenticated on purpose: a 401 here means bad credentials, not an
// expired session, so the refresh protocol must not kick in.
func (c *Client) postCredentials(ctx context.Context, path, email, password string) (*TokenPair, error) {
	payload, err := json.Marshal(credentials{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apierr.New(apierr.Transport, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.New(apierr.Transport, "failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := apierr.FromResponse(resp.StatusCode, body)
		if resp.StatusCode == http.StatusUnauthorized {
			// Rejected credentials, not an expired session. Downgrade so
			// the backend detail reaches the user verbatim instead of a
			// session-expired message.
			apiErr.Type = apierr.Validation
		}
		return nil, apiErr
	}

	var pair TokenPair
	if err := json.Unmarshal(body, &pair); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	return &pair, nil
}
