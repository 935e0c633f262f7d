package meshin

import (
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

// Retry executes task with Fibonacci backoff up to 5 retries.
// If retries are exhausted, gaveUpTask is invoked (when not nil) and the final error is returned.
func Retry(ctx context.Context, task func(ctx context.Context) error, gaveUpTask func(ctx context.Context)) error {
	return RetryWith(ctx, RetryOptions{MaxRetries: 5, BaseDelay: time.Second}, task, gaveUpTask)
}

// RetryWith is Retry with a caller supplied budget. Task errors must be wrapped with
// retry.RetryableError to be retried; any other error stops the loop.
func RetryWith(ctx context.Context, ro RetryOptions, task func(ctx context.Context) error, gaveUpTask func(ctx context.Context)) error {
	if ro.BaseDelay <= 0 {
		ro.BaseDelay = time.Millisecond
	}
	b := retry.NewFibonacci(ro.BaseDelay)
	if err := retry.Do(ctx, retry.WithMaxRetries(ro.MaxRetries, b), task); err != nil {
		log.Warn(err.Error() + ", gave up")
		if gaveUpTask != nil {
			gaveUpTask(ctx)
		}
		return err
	}
	return nil
}

// ShouldRetry reports whether the error is retryable (non-nil and not a known permanent failure).
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	// Engine level classification never changes on a second attempt.
	switch CodeOf(err) {
	case WrongType, SyntaxError, NotAnInteger, NotAFloat:
		return false
	}
	return true
}
