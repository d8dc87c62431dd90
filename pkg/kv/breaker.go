package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerConfig controls when a Breaker stops forwarding calls.
type BreakerConfig struct {
	Name string
	// Failures is the number of consecutive storage failures that open the breaker.
	Failures uint32
	// Timeout is how long the breaker stays open before letting a probe through.
	Timeout time.Duration
}

// Breaker wraps a Store and fails fast with ErrUnavailable once the backend
// has failed repeatedly. It never retries; every failure still reaches the
// caller.
type Breaker struct {
	next Store
	cb   *gobreaker.CircuitBreaker
}

// NewBreaker wraps next with a circuit breaker.
func NewBreaker(next Store, cfg BreakerConfig, logger *zap.Logger) *Breaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Failures == 0 {
		cfg.Failures = 3
	}
	if cfg.Name == "" {
		cfg.Name = "kv"
	}
	failures := cfg.Failures
	return &Breaker{
		next: next,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        cfg.Name,
			MaxRequests: 1,
			Timeout:     cfg.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			IsSuccessful: func(err error) bool {
				// Bad data and cancelled callers say nothing about backend health.
				return err == nil ||
					errors.Is(err, ErrTypeMismatch) ||
					errors.Is(err, ErrInvalidKey) ||
					errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("storage breaker state changed",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()))
			},
		}),
	}
}

func (b *Breaker) execute(fn func() (any, error)) (any, error) {
	v, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return v, err
}

type stringResult struct {
	value string
	ok    bool
}

type boolResult struct {
	value bool
	ok    bool
}

// Save implements Store.
func (b *Breaker) Save(ctx context.Context, key, value string) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.next.Save(ctx, key, value)
	})
	return err
}

// Read implements Store.
func (b *Breaker) Read(ctx context.Context, key string) (string, bool, error) {
	v, err := b.execute(func() (any, error) {
		s, ok, err := b.next.Read(ctx, key)
		return stringResult{value: s, ok: ok}, err
	})
	if err != nil {
		return "", false, err
	}
	r := v.(stringResult)
	return r.value, r.ok, nil
}

// SaveBool implements Store.
func (b *Breaker) SaveBool(ctx context.Context, key string, value bool) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.next.SaveBool(ctx, key, value)
	})
	return err
}

// ReadBool implements Store.
func (b *Breaker) ReadBool(ctx context.Context, key string) (bool, bool, error) {
	v, err := b.execute(func() (any, error) {
		value, ok, err := b.next.ReadBool(ctx, key)
		return boolResult{value: value, ok: ok}, err
	})
	if err != nil {
		return false, false, err
	}
	r := v.(boolResult)
	return r.value, r.ok, nil
}

// List forwards to the wrapped store when it can enumerate keys.
func (b *Breaker) List(ctx context.Context) ([]Entry, error) {
	l, ok := b.next.(Lister)
	if !ok {
		return nil, errors.New("kv: store cannot list keys")
	}
	return l.List(ctx)
}
