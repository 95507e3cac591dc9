package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Token types
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// ErrWrongTokenType is returned when a refresh token is presented as an
// access token or the other way round
var ErrWrongTokenType = errors.New("wrong token type")

// Identity is what a session asserts about its user
type Identity struct {
	UserID        int64
	Email         string
	EmailVerified bool
}

type Claims struct {
	UserID        int64  `json:"uid"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Type          string `json:"typ"`
	jwt.RegisteredClaims
}

func MintTokens(id Identity, secret string, accessTTL, refreshTTL time.Duration) (TokenPair, error) {
	now := time.Now()
	at, err := sign(id, TypeAccess, now, accessTTL, secret)
	if err != nil {
		return TokenPair{}, err
	}
	rt, err := sign(id, TypeRefresh, now, refreshTTL, secret)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: at, RefreshToken: rt}, nil
}

func sign(id Identity, typ string, now time.Time, ttl time.Duration, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:        id.UserID,
		Email:         id.Email,
		EmailVerified: id.EmailVerified,
		Type:          typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "hireloop",
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return token.SignedString([]byte(secret))
}

func ParseClaims(tokenStr, secret string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}

// ParseAccess parses a token and requires it to be an access token
func ParseAccess(tokenStr, secret string) (*Claims, error) {
	return parseTyped(tokenStr, secret, TypeAccess)
}

// ParseRefresh parses a token and requires it to be a refresh token
func ParseRefresh(tokenStr, secret string) (*Claims, error) {
	return parseTyped(tokenStr, secret, TypeRefresh)
}

func parseTyped(tokenStr, secret, typ string) (*Claims, error) {
	c, err := ParseClaims(tokenStr, secret)
	if err != nil {
		return nil, err
	}
	if c.Type != typ {
		return nil, ErrWrongTokenType
	}
	return c, nil
}

// Identity returns the session identity carried by the claims
func (c *Claims) Identity() Identity {
	return Identity{UserID: c.UserID, Email: c.Email, EmailVerified: c.EmailVerified}
}
