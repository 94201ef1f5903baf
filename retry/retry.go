// Package retry implements exponential backoff for calls against unreliable
// remote services, such as hosted LLM APIs.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/birmacher/git-ai-reviewer/logger"
)

// Config controls the backoff schedule and the retry budget.
type Config struct {
	// MaxAttempts is the total number of attempts, including the first one.
	// Zero means try once with no retry.
	MaxAttempts int
	// BaseDelay is the wait before the first retry. Must be positive.
	BaseDelay time.Duration
	// Multiplier grows the delay after every failed attempt. Must be >= 1.
	Multiplier float64
	// MaxDelay caps the computed delay. Zero means no cap.
	MaxDelay time.Duration
	// Retryable classifies an error as transient. A nil classifier treats
	// every error as retryable unless it was marked with Abort.
	Retryable func(error) bool
	// Jitter adjusts a computed delay, typically by randomizing it.
	// Nil means no jitter.
	Jitter func(time.Duration) time.Duration
	// Sleep waits for the given duration, honoring context cancellation.
	// Nil uses a timer-based sleep. Tests inject their own to run instantly.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultConfig mirrors the defaults of the hosted-API clients: three retries
// beyond the initial attempt, starting at 30 seconds and doubling.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 4,
		BaseDelay:   30 * time.Second,
		Multiplier:  2,
		MaxDelay:    5 * time.Minute,
	}
}

// Validate rejects configurations that cannot produce a sane schedule.
func (c Config) Validate() error {
	if c.MaxAttempts < 0 {
		return fmt.Errorf("retry: max attempts cannot be negative, got %d", c.MaxAttempts)
	}
	if c.BaseDelay <= 0 {
		return fmt.Errorf("retry: base delay must be positive, got %s", c.BaseDelay)
	}
	if c.Multiplier < 1 {
		return fmt.Errorf("retry: multiplier must be at least 1, got %g", c.Multiplier)
	}
	if c.MaxDelay < 0 {
		return fmt.Errorf("retry: max delay cannot be negative, got %s", c.MaxDelay)
	}
	return nil
}

// DelayFor returns the backoff delay after the given zero-based failed
// attempt, before jitter. The schedule is BaseDelay * Multiplier^attempt,
// capped at MaxDelay.
func (c Config) DelayFor(attempt int) time.Duration {
	d := float64(c.BaseDelay)
	for i := 0; i < attempt; i++ {
		d *= c.Multiplier
		if c.MaxDelay > 0 && d >= float64(c.MaxDelay) {
			return c.MaxDelay
		}
	}
	if c.MaxDelay > 0 && d > float64(c.MaxDelay) {
		return c.MaxDelay
	}
	return time.Duration(d)
}

// ExhaustedError wraps the last error once the attempt budget is spent.
type ExhaustedError struct {
	// Attempts is the number of invocations that were made.
	Attempts int
	// Err is the error returned by the final attempt.
	Err error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retry budget exhausted after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// abortError marks an error as non-retryable regardless of the classifier.
type abortError struct {
	err error
}

func (e *abortError) Error() string {
	return e.err.Error()
}

func (e *abortError) Unwrap() error {
	return e.err
}

// Abort wraps err so Do propagates it immediately without further attempts.
func Abort(err error) error {
	if err == nil {
		return nil
	}
	return &abortError{err: err}
}

func isAborted(err error) bool {
	var ae *abortError
	return errors.As(err, &ae)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Do invokes op until it succeeds, fails fatally, or the attempt budget is
// spent. On success it returns op's result. A fatal error is propagated as-is
// after the first occurrence; a spent budget is reported as *ExhaustedError
// wrapping the last error.
func Do[T any](ctx context.Context, cfg Config, op func() (T, error)) (T, error) {
	var zero T

	if err := cfg.Validate(); err != nil {
		return zero, err
	}

	attempts := cfg.MaxAttempts
	if attempts == 0 {
		attempts = 1
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		result, err := op()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if isAborted(err) || (cfg.Retryable != nil && !cfg.Retryable(err)) {
			logger.Debugf("Attempt %d failed with non-retryable error: %v", attempt+1, err)
			return zero, err
		}
		if attempt == attempts-1 {
			break
		}

		delay := cfg.DelayFor(attempt)
		if cfg.Jitter != nil {
			delay = cfg.Jitter(delay)
		}
		logger.Warnf("Attempt %d/%d failed (%v), retrying in %s", attempt+1, attempts, err, delay)
		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
	}

	return zero, &ExhaustedError{Attempts: attempts, Err: lastErr}
}
