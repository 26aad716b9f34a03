package service

import (
	"context"
	"log/slog"
	"time"
)

// retryWithBackoff runs op until it succeeds, ctx ends or maxAttempts is
// used up. The wait before attempt n+1 is baseDelay * 2^(n-1).
// Returns the error of the last attempt.
func retryWithBackoff(ctx context.Context, logger *slog.Logger, maxAttempts int, baseDelay time.Duration, op func() error) error {
	if maxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}

	delay := baseDelay
	var err error
	for attempt := 1; ; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err = op(); err == nil {
			if attempt > 1 {
				logger.Info("rebuild succeeded after retry", "attempt", attempt)
			}
			return nil
		}
		if attempt == maxAttempts {
			return err
		}
		logger.Warn("rebuild failed, retrying", "attempt", attempt, "max_attempts", maxAttempts, "delay", delay, "err", err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
