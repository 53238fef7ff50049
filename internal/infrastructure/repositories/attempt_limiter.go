package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/you/coursefinder/domain"
)

// AttemptLimiterImpl implements domain.AttemptLimiter with fixed-window
// Redis counters keyed by scope and subject.
type AttemptLimiterImpl struct {
	client redis.UniversalClient
	prefix string
	window time.Duration
	limits map[domain.AttemptScope]int
}

// NewAttemptLimiter creates a limiter. Scopes missing from limits, or with a
// non-positive limit, are never blocked.
func NewAttemptLimiter(client redis.UniversalClient, window time.Duration, limits map[domain.AttemptScope]int) domain.AttemptLimiter {
	return &AttemptLimiterImpl{
		client: client,
		prefix: "attempts:",
		window: window,
		limits: limits,
	}
}

// Allow implements domain.AttemptLimiter
func (l *AttemptLimiterImpl) Allow(ctx context.Context, scope domain.AttemptScope, subject string) error {
	limit := l.limits[scope]
	if limit <= 0 {
		return nil
	}

	count, err := l.client.Get(ctx, l.key(scope, subject)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("failed to read attempt counter: %w", err)
	}
	if count >= int64(limit) {
		return domain.ErrTooManyAttempts
	}
	return nil
}

// Hit implements domain.AttemptLimiter
func (l *AttemptLimiterImpl) Hit(ctx context.Context, scope domain.AttemptScope, subject string) error {
	key := l.key(scope, subject)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to increment attempt counter: %w", err)
	}

	// The window starts with the first hit
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("failed to set attempt window: %w", err)
		}
	}
	return nil
}

// Reset implements domain.AttemptLimiter
func (l *AttemptLimiterImpl) Reset(ctx context.Context, scope domain.AttemptScope, subject string) error {
	if err := l.client.Del(ctx, l.key(scope, subject)).Err(); err != nil {
		return fmt.Errorf("failed to reset attempt counter: %w", err)
	}
	return nil
}

func (l *AttemptLimiterImpl) key(scope domain.AttemptScope, subject string) string {
	return l.prefix + string(scope) + ":" + subject
}
