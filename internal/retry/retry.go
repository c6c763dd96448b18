package retry

import (
	"fmt"
	"log/slog"
	"time"
)

// Policy retries an operation a fixed number of times, sleeping a
// growing multiple of Delay between attempts.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	Logger      *slog.Logger
}

// Do runs fn until it succeeds or MaxAttempts is exhausted. The last
// error is wrapped and returned; callers decide whether exhaustion is
// fatal.
func (p Policy) Do(name string, fn func() error) error {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			time.Sleep(time.Duration(attempt-1) * p.Delay)
		}

		if lastErr = fn(); lastErr == nil {
			return nil
		}

		logger.Warn("operation failed",
			"operation", name,
			"attempt", attempt,
			"maxAttempts", attempts,
			"error", lastErr)
	}

	return fmt.Errorf("%s failed after %d attempts: %w", name, attempts, lastErr)
}
