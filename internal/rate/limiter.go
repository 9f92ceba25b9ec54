// Package rate provides a Redis-backed fixed-window limiter for the
// credential endpoints. Counters use INCR with a TTL set on the first hit in
// the window. The limiter is optional at runtime: a nil *Limiter allows
// everything, so the gateway runs unchanged without Redis.
package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/go-auth-gateway/internal/errors"
	"github.com/redis/go-redis/v9"
)

const (
	signInKeyPrefix = "gw:signin:"
	signUpKeyPrefix = "gw:signup:"
)

// Config holds limiter tuning parameters.
type Config struct {
	MaxSignInAttempts int
	MaxSignUpAttempts int
	Window            time.Duration
}

// DefaultConfig is deliberately generous; the provider enforces its own
// stricter throttling on top.
func DefaultConfig() Config {
	return Config{
		MaxSignInAttempts: 10,
		MaxSignUpAttempts: 5,
		Window:            5 * time.Minute,
	}
}

// Limiter throttles credential attempts per identifier (email or IP).
type Limiter struct {
	redis  redis.UniversalClient
	config Config
}

// New creates a Limiter backed by the given Redis client.
func New(redisClient redis.UniversalClient, cfg Config) *Limiter {
	return &Limiter{redis: redisClient, config: cfg}
}

// AllowSignIn records a sign-in attempt for the identifier and reports
// whether it is still within budget. Returns ErrTooManyRequests once the
// window budget is exhausted.
func (l *Limiter) AllowSignIn(ctx context.Context, identifier string) error {
	if l == nil {
		return nil
	}
	return l.allow(ctx, signInKeyPrefix+identifier, l.config.MaxSignInAttempts)
}

// AllowSignUp records a sign-up attempt for the identifier.
func (l *Limiter) AllowSignUp(ctx context.Context, identifier string) error {
	if l == nil {
		return nil
	}
	return l.allow(ctx, signUpKeyPrefix+identifier, l.config.MaxSignUpAttempts)
}

// Reset clears the sign-in counter for an identifier, called after a
// successful authentication so legitimate users never accumulate strikes.
func (l *Limiter) Reset(ctx context.Context, identifier string) error {
	if l == nil {
		return nil
	}
	if err := l.redis.Del(ctx, signInKeyPrefix+identifier).Err(); err != nil {
		return fmt.Errorf("rate reset: %w", err)
	}
	return nil
}

func (l *Limiter) allow(ctx context.Context, key string, maxAttempts int) error {
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		// Redis being down must not lock users out of authentication
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return nil
	}

	// Fixed-window semantics: TTL only on the first hit in the window.
	if count == 1 {
		_ = l.redis.Expire(ctx, key, l.config.Window).Err()
	}

	if count > int64(maxAttempts) {
		return apperrors.ErrTooManyRequests
	}
	return nil
}
