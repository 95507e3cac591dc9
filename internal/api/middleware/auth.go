package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pratik-mahalle/hireloop/internal/auth"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
	"github.com/pratik-mahalle/hireloop/internal/pkg/utils"
)

// ContextKey is a custom type for context keys
type ContextKey string

const (
	// UserIDKey is the context key for user ID
	UserIDKey ContextKey = "userID"
	// UserEmailKey is the context key for user email
	UserEmailKey ContextKey = "email"
	// EmailVerifiedKey is the context key for the verified-email flag
	EmailVerifiedKey ContextKey = "emailVerified"
)

// AuthMiddleware returns a middleware that validates JWT access tokens
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := tokenFromRequest(r)
			if tokenStr == "" {
				utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
				return
			}

			claims, err := auth.ParseAccess(tokenStr, jwtSecret)
			if err != nil {
				utils.WriteError(w, errors.Unauthorized("Invalid or expired token"))
				return
			}

			AddLogField(r, "tenant_id", claims.UserID)
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), claims.Identity())))
		})
	}
}

// OptionalAuthMiddleware is like AuthMiddleware but doesn't reject requests without tokens
func OptionalAuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenStr := tokenFromRequest(r); tokenStr != "" {
				if claims, err := auth.ParseAccess(tokenStr, jwtSecret); err == nil {
					AddLogField(r, "tenant_id", claims.UserID)
					r = r.WithContext(WithIdentity(r.Context(), claims.Identity()))
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// tokenFromRequest reads a Bearer token, falling back to the accessToken cookie
func tokenFromRequest(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := r.Cookie("accessToken"); err == nil {
		return cookie.Value
	}
	return ""
}

// WithIdentity stores the session identity on ctx
func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id.UserID)
	ctx = context.WithValue(ctx, UserEmailKey, id.Email)
	return context.WithValue(ctx, EmailVerifiedKey, id.EmailVerified)
}

// GetUserID extracts the user ID from the request context
func GetUserID(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(UserIDKey).(int64)
	return userID, ok
}

// GetUserEmail extracts the user email from the request context
func GetUserEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(UserEmailKey).(string)
	return email, ok
}

// GetIdentity extracts the full session identity from the request context
func GetIdentity(r *http.Request) (auth.Identity, bool) {
	userID, ok := GetUserID(r)
	if !ok {
		return auth.Identity{}, false
	}
	email, _ := GetUserEmail(r)
	verified, _ := r.Context().Value(EmailVerifiedKey).(bool)
	return auth.Identity{UserID: userID, Email: email, EmailVerified: verified}, true
}
