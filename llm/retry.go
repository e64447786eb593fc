package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Kothajagadish22/Gemini-Finance-AI/logging"
)

// ErrRetriesExhausted wraps the last error once every attempt has failed.
var ErrRetriesExhausted = errors.New("all attempts failed")

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// RetryPolicy decides how often and how far apart an operation is retried.
type RetryPolicy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int

	// Delay is the wait before the second attempt.
	Delay time.Duration

	// Multiplier scales Delay after each wait. 1 keeps the delay fixed.
	Multiplier float64

	// Sleep replaces the real wait. Nil uses SleepContext.
	Sleep SleepFunc
}

// DefaultRetryPolicy is three attempts with a fixed two-second wait and no jitter.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Delay:       2 * time.Second,
		Multiplier:  1,
	}
}

// SleepContext blocks for d, returning early with ctx.Err() if ctx ends first.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Delays lists the waits between attempts, MaxAttempts-1 entries.
func (p RetryPolicy) Delays() []time.Duration {
	if p.MaxAttempts <= 1 {
		return nil
	}
	mult := p.Multiplier
	if mult < 1 {
		mult = 1
	}
	delays := make([]time.Duration, 0, p.MaxAttempts-1)
	d := p.Delay
	for i := 1; i < p.MaxAttempts; i++ {
		delays = append(delays, d)
		d = time.Duration(float64(d) * mult)
	}
	return delays
}

// Do runs op until it succeeds or the attempts run out, waiting between
// failures but never after the last one. It returns the number of attempts
// made. A cancelled context stops the loop early.
//
// Example:
//
//	attempts, err := policy.Do(ctx, logger, func(ctx context.Context, attempt int) error {
//	    out, err = gen.Generate(ctx, prompt)
//	    return err
//	})
func (p RetryPolicy) Do(ctx context.Context, log *logging.Logger, op func(ctx context.Context, attempt int) error) (int, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = SleepContext
	}
	delays := p.Delays()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return attempt - 1, err
		}

		err := op(ctx, attempt)
		if err == nil {
			return attempt, nil
		}
		lastErr = err

		if log != nil {
			log.Warn("attempt failed",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", maxAttempts),
				zap.Error(err))
		}

		if attempt < maxAttempts {
			if err := sleep(ctx, delays[attempt-1]); err != nil {
				return attempt, err
			}
		}
	}

	return maxAttempts, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, maxAttempts, lastErr)
}
