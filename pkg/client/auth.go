package client

import "context"

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	Token        string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	User         *User  `json:"user,omitempty"`
}

// Login authenticates with email and password
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := LoginRequest{
		Email:    email,
		Password: password,
	}

	var resp LoginResponse
	if err := c.doRequest(ctx, "POST", "/api/v1/auth/login", req, &resp); err != nil {
		return nil, err
	}

	// Automatically set the token for future requests
	if resp.Token != "" {
		c.SetToken(resp.Token)
	}

	return &resp, nil
}

// Register creates a new user account
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.doRequest(ctx, "POST", "/api/v1/auth/register", req, &resp); err != nil {
		return nil, err
	}

	if resp.Token != "" {
		c.SetToken(resp.Token)
	}

	return &resp, nil
}

// VerifyEmail confirms an email address with the token from the verification link
func (c *Client) VerifyEmail(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.doRequest(ctx, "POST", "/api/v1/auth/verify-email", map[string]string{"token": token}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetCurrentUser retrieves the currently authenticated user
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.doRequest(ctx, "GET", "/api/v1/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout logs out the current user
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doRequest(ctx, "POST", "/api/v1/auth/logout", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

// RefreshToken exchanges a refresh token for a new session
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*LoginResponse, error) {
	req := map[string]string{
		"refreshToken": refreshToken,
	}

	var resp LoginResponse
	if err := c.doRequest(ctx, "POST", "/api/v1/auth/refresh", req, &resp); err != nil {
		return nil, err
	}

	if resp.Token != "" {
		c.SetToken(resp.Token)
	}

	return &resp, nil
}
