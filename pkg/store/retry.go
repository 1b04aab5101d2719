// pkg/store/retry.go
package store

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// SleepFunc injects the delay between retry attempts so the backoff policy is
// testable without real sleeps.
type SleepFunc func(time.Duration)

// WithRetry runs op, retrying transient store errors up to maxRetries times
// with a linearly growing synchronous delay. Non-transient errors are returned
// immediately; exhausting all attempts escalates the last error as fatal.
func WithRetry(logger *zap.Logger, maxRetries int, delay time.Duration, sleep SleepFunc, op func() error) error {
	if sleep == nil {
		sleep = time.Sleep
	}

	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := delay * time.Duration(attempt)
			logger.Warn("Retrying after transient store error",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", maxRetries),
				zap.Duration("backoff", backoff),
				zap.Error(err))
			sleep(backoff)
		}

		err = op()
		if err == nil {
			return nil
		}

		if !IsTransient(err) {
			return err
		}
	}

	return fmt.Errorf("store error persisted after %d retries: %w", maxRetries, err)
}
