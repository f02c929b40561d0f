package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/praktik-cli/praktik/pkg/apierr"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// SessionStore is the part of the token store the gateway needs: synchronous
// reads of the current pair and atomic overwrite/clear on rotation.
type SessionStore interface {
	GetAccessToken() string
	GetRefreshToken() string
	SetTokens(access, refresh string)
	ClearTokens()
}

// Client issues HTTP calls with the current access token attached and
// transparently recovers from access-token expiry. At most one refresh
// exchange is in flight at any time; every request whose 401 is observed
// while that exchange runs is served by its outcome.
type Client struct {
	baseURL string
	http    *http.Client
	store   SessionStore
	refresh singleflight.Group
}

// New creates a Client for the given API base URL.
func New(baseURL string, store SessionStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   store,
	}
}

// request describes one outbound call. The body is kept as bytes so the
// call can be replayed exactly once after a token refresh.
type request struct {
	method      string
	path        string
	body        []byte
	contentType string    // empty means no Content-Type header; multipart supplies its own
	progress    io.Writer // optional; receives a copy of the body as it is sent
}

// do sends an authenticated request. A non-401 response is returned as-is
// for the caller to interpret. On a 401 with a refresh token present, the
// single in-flight refresh is joined (or started), and the request is
// retried exactly once with the new access token; a second 401 is returned
// to the caller rather than looping. If no refresh is possible or the
// refresh fails, the original 401 response is returned unchanged.
func (c *Client) do(ctx context.Context, r request) (*http.Response, error) {
	resp, err := c.send(ctx, r, c.store.GetAccessToken())
	if err != nil {
		return nil, apierr.New(apierr.Transport, "request failed", err)
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	if c.store.GetRefreshToken() == "" {
		// Nothing to exchange; the caller must re-authenticate.
		return resp, nil
	}

	// All concurrent 401 observers share this one exchange.
	_, refreshErr, _ := c.refresh.Do("refresh", func() (interface{}, error) {
		return nil, c.refreshTokens(ctx)
	})
	if refreshErr != nil {
		log.Error().Err(refreshErr).Msg("Token refresh failed; session terminated")
		return resp, nil
	}
	resp.Body.Close()

	retried, err := c.send(ctx, r, c.store.GetAccessToken())
	if err != nil {
		return nil, apierr.New(apierr.Transport, "request failed after token refresh", err)
	}
	return retried, nil
}

// send issues a single HTTP request with the given access token attached.
func (c *Client) send(ctx context.Context, r request, accessToken string) (*http.Response, error) {
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
		if r.progress != nil {
			body = io.TeeReader(body, r.progress)
		}
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		log.Error().Err(err).Str("method", r.method).Str("path", r.path).Msg("Failed to create HTTP request object")
		return nil, err
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if accessToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))
	}

	log.Debug().Str("method", r.method).Str("path", r.path).Msg("Sending HTTP request")
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error().Err(err).Str("method", r.method).Str("path", r.path).Msg("HTTP request failed")
		return nil, err
	}
	return resp, nil
}

// refreshTokens exchanges the refresh token for a new pair and rotates the
// store. Any failure clears the store so that later 401s surface as
// unauthenticated instead of triggering another refresh.
func (c *Client) refreshTokens(ctx context.Context) error {
	refreshToken := c.store.GetRefreshToken()
	if refreshToken == "" {
		return fmt.Errorf("no refresh token available")
	}

	payload, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.store.ClearTokens()
		return fmt.Errorf("failed to post token refresh request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.store.ClearTokens()
		return fmt.Errorf("failed to read token refresh response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.store.ClearTokens()
		return fmt.Errorf("token refresh failed with status %d: %s", resp.StatusCode, string(body))
	}

	var pair TokenPair
	if err := json.Unmarshal(body, &pair); err != nil {
		c.store.ClearTokens()
		return fmt.Errorf("failed to parse token refresh response: %w", err)
	}

	c.store.SetTokens(pair.AccessToken, pair.RefreshToken)
	log.Info().Msg("Token refreshed successfully")
	return nil
}

// doJSON sends an authenticated request with an optional JSON payload and
// decodes a 2xx response body into out. Non-2xx responses are converted to
// the structured error taxonomy with the backend detail kept verbatim.
func (c *Client) doJSON(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	r := request{method: method, path: path}
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request payload: %w", err)
		}
		r.body = body
		r.contentType = "application/json"
	}

	resp, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierr.New(apierr.Transport, "failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apierr.FromResponse(resp.StatusCode, body)
	}

	if out != nil {
		return parseJSON(body, out)
	}
	return nil
}

func parseJSON(body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response body: %w", err)
	}
	return nil
}
