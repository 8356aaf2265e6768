package auth

import (
	"context"
	"fmt"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/mediator"
)

// Context keys for passing authentication data through context
type authContextKey int

const (
	accessTokenKey authContextKey = iota + 1000 // Offset from logger keys
)

// TokenSource yields the access token of the current login
type TokenSource interface {
	AccessToken() (string, error)
}

// StaticToken is a TokenSource over a fixed token
type StaticToken string

// AccessToken returns the fixed token, or an error when it is empty
func (t StaticToken) AccessToken() (string, error) {
	if t == "" {
		return "", fmt.Errorf("no access token configured")
	}
	return string(t), nil
}

// WithAccessToken injects a game access token into the context
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey, token)
}

// AccessTokenFromContext extracts the game access token from context
// Returns an error if the token is not found in the context
func AccessTokenFromContext(ctx context.Context) (string, error) {
	token, ok := ctx.Value(accessTokenKey).(string)
	if !ok || token == "" {
		return "", fmt.Errorf("access token not found in context")
	}
	return token, nil
}

// AccessTokenMiddleware creates middleware that injects the access token into context.
// Requests already carrying a token pass through untouched.
func AccessTokenMiddleware(source TokenSource) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if _, err := AccessTokenFromContext(ctx); err == nil {
			return next(ctx, request)
		}

		token, err := source.AccessToken()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve access token: %w", err)
		}

		return next(WithAccessToken(ctx, token), request)
	}
}
