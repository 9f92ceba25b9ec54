package rate_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	apperrors "github.com/jrsteele09/go-auth-gateway/internal/errors"
	"github.com/jrsteele09/go-auth-gateway/internal/rate"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newLimiter(t *testing.T, cfg rate.Config) (*rate.Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return rate.New(client, cfg), mr
}

func TestAllowSignInWithinBudget(t *testing.T) {
	limiter, _ := newLimiter(t, rate.Config{MaxSignInAttempts: 3, MaxSignUpAttempts: 3, Window: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.AllowSignIn(ctx, "user@x.com"))
	}
	require.ErrorIs(t, limiter.AllowSignIn(ctx, "user@x.com"), apperrors.ErrTooManyRequests)
}

func TestLimitsArePerIdentifier(t *testing.T) {
	limiter, _ := newLimiter(t, rate.Config{MaxSignInAttempts: 1, MaxSignUpAttempts: 1, Window: time.Minute})
	ctx := context.Background()

	require.NoError(t, limiter.AllowSignIn(ctx, "a@x.com"))
	require.ErrorIs(t, limiter.AllowSignIn(ctx, "a@x.com"), apperrors.ErrTooManyRequests)
	require.NoError(t, limiter.AllowSignIn(ctx, "b@x.com"))
}

func TestWindowExpiry(t *testing.T) {
	limiter, mr := newLimiter(t, rate.Config{MaxSignInAttempts: 1, MaxSignUpAttempts: 1, Window: time.Minute})
	ctx := context.Background()

	require.NoError(t, limiter.AllowSignIn(ctx, "user@x.com"))
	require.ErrorIs(t, limiter.AllowSignIn(ctx, "user@x.com"), apperrors.ErrTooManyRequests)

	mr.FastForward(2 * time.Minute)
	require.NoError(t, limiter.AllowSignIn(ctx, "user@x.com"))
}

func TestResetClearsCounter(t *testing.T) {
	limiter, _ := newLimiter(t, rate.Config{MaxSignInAttempts: 1, MaxSignUpAttempts: 1, Window: time.Minute})
	ctx := context.Background()

	require.NoError(t, limiter.AllowSignIn(ctx, "user@x.com"))
	require.ErrorIs(t, limiter.AllowSignIn(ctx, "user@x.com"), apperrors.ErrTooManyRequests)

	require.NoError(t, limiter.Reset(ctx, "user@x.com"))
	require.NoError(t, limiter.AllowSignIn(ctx, "user@x.com"))
}

func TestNilLimiterAllowsEverything(t *testing.T) {
	var limiter *rate.Limiter
	ctx := context.Background()

	require.NoError(t, limiter.AllowSignIn(ctx, "user@x.com"))
	require.NoError(t, limiter.AllowSignUp(ctx, "user@x.com"))
	require.NoError(t, limiter.Reset(ctx, "user@x.com"))
}

func TestSignUpBudgetIsSeparate(t *testing.T) {
	limiter, _ := newLimiter(t, rate.Config{MaxSignInAttempts: 1, MaxSignUpAttempts: 2, Window: time.Minute})
	ctx := context.Background()

	require.NoError(t, limiter.AllowSignIn(ctx, "user@x.com"))
	require.NoError(t, limiter.AllowSignUp(ctx, "user@x.com"))
	require.NoError(t, limiter.AllowSignUp(ctx, "user@x.com"))
	require.ErrorIs(t, limiter.AllowSignUp(ctx, "user@x.com"), apperrors.ErrTooManyRequests)
}
