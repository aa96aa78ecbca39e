package api

import (
	"context"
	"net/http"
)

// RegisterRequest creates a company together with its first user account.
type RegisterRequest struct {
	CompanyName string `json:"company_name"`
	CompanyType string `json:"company_type"`
	City        string `json:"city"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

// Register creates a new company and user account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/register", nil, req, nil)
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// MyProfile returns the authenticated user's own profile.
func (c *Client) MyProfile(ctx context.Context) (UserProfile, error) {
	var profile UserProfile
	err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &profile)
	return profile, err
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword updates the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	return c.do(ctx, http.MethodPut, "/users/me/password", nil, changePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
	}, nil)
}
