package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/praktik-cli/praktik/pkg/apierr"
)

// FetchMe retrieves the current user's profile.
func (c *Client) FetchMe(ctx context.Context) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FetchProgress retrieves the current user's progress.
func (c *Client) FetchProgress(ctx context.Context) (*UserProgress, error) {
	var progress UserProgress
	if err := c.doJSON(ctx, http.MethodGet, "/users/me/progress", nil, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// FetchClaimedPrizes retrieves the prizes the current user has claimed.
func (c *Client) FetchClaimedPrizes(ctx context.Context) ([]ClaimedPrize, error) {
	var claimed []ClaimedPrize
	if err := c.doJSON(ctx, http.MethodGet, "/users/me/claimed-prizes", nil, &claimed); err != nil {
		return nil, err
	}
	return claimed, nil
}

// FetchMyApplication retrieves the current user's application.
// A 404 means no application has been submitted yet and is not an error.
func (c *Client) FetchMyApplication(ctx context.Context) (*Application, error) {
	var application Application
	err := c.doJSON(ctx, http.MethodGet, "/applications/me", nil, &application)
	if err != nil {
		var apiErr *apierr.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	if application.ID == 0 {
		// The endpoint answers 200 with a null body when nothing was submitted.
		return nil, nil
	}
	return &application, nil
}
