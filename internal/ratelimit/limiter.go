// Package ratelimit provides the "await a permit before each request"
// abstraction the consensus-API adapter serializes its requests through
// (spec §4.2, §9 re-architecture point "rate-limited HTTP adapter"). The
// only contract is Wait; callers never inspect bucket internals, which
// keeps alternative limiters (per-endpoint, no-op in tests) swappable.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter hands out permits to callers that must serialize through it.
// Acquiring a permit is a synchronous cooperative wait: the caller may be
// parked for however long the limiter reports.
type Limiter interface {
	Wait(ctx context.Context) error
}

// TokenBucket is a single token-bucket Limiter backed by
// golang.org/x/time/rate.
type TokenBucket struct {
	limiter *rate.Limiter
}

// NewTokenBucket builds a limiter that refills `tokens` permits every
// `interval` and allows bursts up to `tokens`.
func NewTokenBucket(tokens int, interval time.Duration) *TokenBucket {
	if tokens <= 0 {
		tokens = 1
	}
	if interval <= 0 {
		interval = time.Second
	}
	perToken := interval / time.Duration(tokens)
	return &TokenBucket{limiter: rate.NewLimiter(rate.Every(perToken), tokens)}
}

// Wait blocks until a token is available or ctx is done.
func (t *TokenBucket) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}

// Unlimited never delays a caller; used by callers (and tests) that don't
// want the serialization discipline.
type Unlimited struct{}

// Wait always returns immediately.
func (Unlimited) Wait(ctx context.Context) error {
	return ctx.Err()
}
