package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/auth"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/mediator"
)

func captureToken(seen *string) mediator.HandlerFunc {
	return func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		token, err := auth.AccessTokenFromContext(ctx)
		*seen = token
		return nil, err
	}
}

func TestAccessTokenMiddleware_InjectsToken(t *testing.T) {
	var seen string
	mw := auth.AccessTokenMiddleware(auth.StaticToken("secret"))

	_, err := mw(context.Background(), struct{}{}, captureToken(&seen))

	require.NoError(t, err)
	assert.Equal(t, "secret", seen)
}

func TestAccessTokenMiddleware_KeepsExistingToken(t *testing.T) {
	var seen string
	mw := auth.AccessTokenMiddleware(auth.StaticToken("fallback"))
	ctx := auth.WithAccessToken(context.Background(), "explicit")

	_, err := mw(ctx, struct{}{}, captureToken(&seen))

	require.NoError(t, err)
	assert.Equal(t, "explicit", seen)
}

func TestAccessTokenMiddleware_NoToken(t *testing.T) {
	var seen string
	mw := auth.AccessTokenMiddleware(auth.StaticToken(""))

	_, err := mw(context.Background(), struct{}{}, captureToken(&seen))

	assert.Error(t, err)
	assert.Empty(t, seen)
}
