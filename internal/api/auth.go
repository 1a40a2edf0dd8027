package api

import (
	"context"

	"github.com/gaibarra/motel1/internal/dto"
)

// Login exchanges credentials for a token pair via POST /token/.
// Runs unauthenticated regardless of any held credential.
func (c *Client) Login(ctx context.Context, username, password string) (*dto.TokenPair, error) {
	var pair dto.TokenPair
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(dto.TokenRequest{Username: username, Password: password}).
		SetResult(&pair).
		Post("/token/")
	if err := check("login", resp, err); err != nil {
		return nil, err
	}
	return &pair, nil
}

// RefreshToken rotates the access credential via POST /token/refresh/.
func (c *Client) RefreshToken(ctx context.Context, refresh string) (string, error) {
	var pair dto.TokenPair
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(dto.RefreshRequest{Refresh: refresh}).
		SetResult(&pair).
		Post("/token/refresh/")
	if err := check("refresh", resp, err); err != nil {
		return "", err
	}
	return pair.Access, nil
}

// UserData returns the authenticated user's profile.
func (c *Client) UserData(ctx context.Context) (*dto.UserResponse, error) {
	var user dto.UserResponse
	resp, err := c.req(ctx).SetResult(&user).Get("/auth/user/")
	if err := check("user data", resp, err); err != nil {
		return nil, err
	}
	return &user, nil
}
