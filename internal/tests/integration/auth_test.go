package integration

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/hireloop/pkg/client"
)

func TestAuth_RegisterLoginMe(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, registered := h.register(t, "newuser@example.com")
	assert.False(t, registered.EmailVerified)

	c := h.client()
	loginResp, err := c.Login(ctx, "newuser@example.com", "SecurePassword123!")
	require.NoError(t, err)
	assert.NotEmpty(t, loginResp.Token)
	assert.NotEmpty(t, loginResp.RefreshToken)

	me, err := c.GetCurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, me.ID)
	assert.Equal(t, "newuser@example.com", me.Email)

	refreshed, err := c.RefreshToken(ctx, loginResp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Token)
}

func TestAuth_Rejections(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.register(t, "dup@example.com")

	tests := []struct {
		name   string
		call   func(c *client.Client) error
		status int
	}{
		{
			name: "duplicate email",
			call: func(c *client.Client) error {
				_, err := c.Register(ctx, client.RegisterRequest{Email: "dup@example.com", Password: "SecurePassword123!"})
				return err
			},
			status: http.StatusConflict,
		},
		{
			name: "wrong password",
			call: func(c *client.Client) error {
				_, err := c.Login(ctx, "dup@example.com", "nope-nope-nope")
				return err
			},
			status: http.StatusUnauthorized,
		},
		{
			name: "no session",
			call: func(c *client.Client) error {
				_, err := c.GetCurrentUser(ctx)
				return err
			},
			status: http.StatusUnauthorized,
		},
		{
			name: "refresh token used as access token",
			call: func(c *client.Client) error {
				resp, err := c.Login(ctx, "dup@example.com", "SecurePassword123!")
				require.NoError(t, err)
				c.SetToken(resp.RefreshToken)
				_, err = c.GetCurrentUser(ctx)
				return err
			},
			status: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call(h.client())
			var apiErr *client.APIError
			require.True(t, errors.As(err, &apiErr), "got %v", err)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}
