// Package auth implements the session token of the mock: a fixed prefix plus
// the user id, carried verbatim with no signature. The format is part of the
// persisted-state contract and is deliberately forgeable.
package auth

import (
	"context"
	"strings"

	"filedesk-backend/internal/kv"
)

// TokenKey is the key-value entry the current session token lives under.
const TokenKey = "token"

// tokenPrefix is stripped from a token to recover the user id.
const tokenPrefix = "mock-jwt-"

// Token derives the bearer token for a user id.
func Token(userID string) string {
	return tokenPrefix + userID
}

// UserID recovers the user id from a bearer token.
func UserID(token string) string {
	return strings.TrimPrefix(token, tokenPrefix)
}

type contextKey string

const tokenContextKey contextKey = "session_token"

// WithToken returns a context carrying an explicit session token. Transport
// layers use this to pass a caller-supplied bearer token down to the resolver.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// Resolver derives the current user identity for an operation. A token found
// on the context wins; otherwise the token stored under TokenKey is used, which
// is the single-session model of the original browser demo.
type Resolver struct {
	kv kv.Store
}

// NewResolver creates a Resolver over the given key-value backend.
func NewResolver(backend kv.Store) *Resolver {
	return &Resolver{kv: backend}
}

// CurrentUserID resolves the current session to a user id. It reports false
// when no token is present anywhere.
func (r *Resolver) CurrentUserID(ctx context.Context) (string, bool, error) {
	if tok, ok := ctx.Value(tokenContextKey).(string); ok && tok != "" {
		return UserID(tok), true, nil
	}

	var stored string
	found, err := r.kv.Get(ctx, TokenKey, &stored)
	if err != nil {
		return "", false, err
	}
	if !found || stored == "" {
		return "", false, nil
	}
	return UserID(stored), true, nil
}

// StoreToken persists the session token under TokenKey.
func (r *Resolver) StoreToken(ctx context.Context, token string) error {
	return r.kv.Set(ctx, TokenKey, token)
}

// ClearToken removes the stored session token.
func (r *Resolver) ClearToken(ctx context.Context) error {
	return r.kv.Delete(ctx, TokenKey)
}
