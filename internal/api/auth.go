package api

import (
	"context"
	"fmt"
	"net/http"

	domainauth "github.com/online-shop/shopfront/internal/domain/auth"
	"github.com/online-shop/shopfront/internal/ports"
)

var _ ports.AuthAPI = (*Client)(nil)

// Register creates a new customer account. The backend responds with a
// confirmation message we do not need; registration never logs the caller in.
func (c *Client) Register(ctx context.Context, profile domainauth.Profile) error {
	return c.do(ctx, http.MethodPost, "/auth/register", nil, profile, nil)
}

// RegisterAdmin creates a new admin account.
func (c *Client) RegisterAdmin(ctx context.Context, profile domainauth.Profile) error {
	return c.do(ctx, http.MethodPost, "/auth/register-admin", nil, profile, nil)
}

// Login exchanges credentials for the backend's identity response.
func (c *Client) Login(ctx context.Context, creds domainauth.Credentials) (domainauth.LoginResult, error) {
	var result domainauth.LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &result); err != nil {
		return domainauth.LoginResult{}, err
	}
	return result, nil
}

// GetProfile fetches the full account record for a user.
func (c *Client) GetProfile(ctx context.Context, userID int64) (domainauth.Account, error) {
	var account domainauth.Account
	path := fmt.Sprintf("/auth/profile/%d", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &account); err != nil {
		return domainauth.Account{}, err
	}
	return account, nil
}

// UpdateProfile applies a partial profile update.
func (c *Client) UpdateProfile(ctx context.Context, userID int64, profile domainauth.Profile) (domainauth.Account, error) {
	var account domainauth.Account
	path := fmt.Sprintf("/auth/profile/%d", userID)
	if err := c.do(ctx, http.MethodPut, path, nil, profile, &account); err != nil {
		return domainauth.Account{}, err
	}
	return account, nil
}
