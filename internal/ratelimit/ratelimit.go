// Package ratelimit paces successive E-utilities requests.
//
// A Limiter is consulted before every request after the first one. Wait
// blocks until the next request may go out or ctx is done, so callers can
// cancel a long pause with SIGINT.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Strategy names accepted by New.
const (
	StrategyNone  = "none"
	StrategyFixed = "fixed"
	StrategyToken = "token"
)

// Limiter paces requests.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Config selects and parameterizes a strategy.
type Config struct {
	Strategy string
	Delay    time.Duration // fixed
	RPS      float64       // token
	Burst    int           // token
}

// New builds the Limiter named by cfg.Strategy.
func New(cfg Config) (Limiter, error) {
	switch cfg.Strategy {
	case StrategyNone:
		return None{}, nil
	case StrategyFixed, "":
		if cfg.Delay < 0 {
			return nil, fmt.Errorf("ratelimit: negative delay %v", cfg.Delay)
		}
		return Fixed(cfg.Delay), nil
	case StrategyToken:
		if cfg.RPS <= 0 {
			return nil, fmt.Errorf("ratelimit: token bucket needs rps > 0, got %v", cfg.RPS)
		}
		return NewTokenBucket(cfg.RPS, cfg.Burst), nil
	default:
		return nil, fmt.Errorf("ratelimit: unknown strategy %q", cfg.Strategy)
	}
}

// None never waits.
type None struct{}

func (None) Wait(ctx context.Context) error { return ctx.Err() }

// Fixed sleeps for a constant duration.
type Fixed time.Duration

func (f Fixed) Wait(ctx context.Context) error {
	d := time.Duration(f)
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// TokenBucket allows rps requests per second with the given burst.
type TokenBucket struct {
	limiter *rate.Limiter
}

// NewTokenBucket constructs a TokenBucket. burst < 1 is treated as 1.
func NewTokenBucket(rps float64, burst int) *TokenBucket {
	if burst < 1 {
		burst = 1
	}
	return &TokenBucket{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (b *TokenBucket) Wait(ctx context.Context) error { return b.limiter.Wait(ctx) }
