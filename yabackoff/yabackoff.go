// Package yabackoff provides exponential back-off for retry loops, such as the
// initial PING of a cache the bot cannot start without.
//
//	backoff := yabackoff.NewExponential(200*time.Millisecond, 2, 5*time.Second)
//	err := yabackoff.Retry(ctx, 5, &backoff, func(ctx context.Context) error {
//		return client.Ping(ctx).Err()
//	})
package yabackoff

import (
	"context"
	"errors"
	"time"
)

// Default* constants replace zero arguments of NewExponential and the fields of a
// zero Exponential.
const (
	DefaultInitialInterval = 500 * time.Millisecond
	DefaultMultiplier      = 1.5
	DefaultMaxInterval     = 60 * time.Second
)

// ErrNoAttempts is returned by Retry when asked for fewer than one attempt.
var ErrNoAttempts = errors.New("retry needs at least one attempt")

// Backoff is a sequence of growing delays. Implementations are not safe for
// concurrent use.
type Backoff interface {
	// Next advances the sequence and returns the delay before the next attempt.
	Next() time.Duration
	// Current returns the last delay without advancing.
	Current() time.Duration
	// Wait sleeps for Next(), returning early with ctx.Err() if ctx is done.
	Wait(ctx context.Context) error
	// Reset rewinds the sequence to the initial interval.
	Reset()
}

// Exponential multiplies the delay by a constant factor on every Next, capped at
// the max interval. The zero value uses the defaults.
//
// Example:
//
//	backoff := yabackoff.NewExponential(100*time.Millisecond, 2, time.Second)
//	backoff.Next() // 200ms
//	backoff.Next() // 400ms
//	backoff.Next() // 800ms
//	backoff.Next() // 1s
type Exponential struct {
	initialInterval time.Duration
	multiplier      float64
	maxInterval     time.Duration
	currentInterval time.Duration
}

// NewExponential creates an exponential back-off. Zero arguments take the
// package defaults.
func NewExponential(initialInterval time.Duration, multiplier float64, maxInterval time.Duration) Exponential {
	return Exponential{
		initialInterval: initialInterval,
		multiplier:      multiplier,
		maxInterval:     maxInterval,
		currentInterval: initialInterval,
	}
}

func (e *Exponential) Reset() {
	e.safety()

	e.currentInterval = e.initialInterval
}

func (e *Exponential) Next() time.Duration {
	e.safety()

	if e.currentInterval >= e.maxInterval {
		e.currentInterval = e.maxInterval
	} else {
		e.currentInterval = min(time.Duration(float64(e.currentInterval)*e.multiplier), e.maxInterval)
	}

	return e.currentInterval
}

func (e *Exponential) Current() time.Duration {
	return e.currentInterval
}

func (e *Exponential) Wait(ctx context.Context) error {
	timer := time.NewTimer(e.Next())
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (e *Exponential) safety() {
	if e.initialInterval == 0 {
		e.initialInterval = DefaultInitialInterval
	}

	if e.currentInterval == 0 {
		e.currentInterval = e.initialInterval
	}

	if e.maxInterval == 0 {
		e.maxInterval = DefaultMaxInterval
	}

	if e.multiplier == 0 {
		e.multiplier = DefaultMultiplier
	}
}

// Retry calls op until it succeeds, attempts are used up, or ctx is done, waiting
// on backoff between calls. It returns the last error of op, joined with ctx.Err()
// when the context ended the loop.
func Retry(ctx context.Context, attempts int, backoff Backoff, op func(ctx context.Context) error) error {
	if attempts < 1 {
		return ErrNoAttempts
	}

	var err error

	for attempt := 1; ; attempt++ {
		if err = op(ctx); err == nil {
			return nil
		}

		if attempt == attempts {
			return err
		}

		if waitErr := backoff.Wait(ctx); waitErr != nil {
			return errors.Join(err, waitErr)
		}
	}
}
