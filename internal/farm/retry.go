package farm

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/Homestead_Go/internal/domain"
	"github.com/osse101/Homestead_Go/internal/event"
	"github.com/osse101/Homestead_Go/internal/logger"
)

// withRetry runs fn with a fresh TxTimeout per attempt. Only
// ErrTransactionConflict is retried; a timeout ends the call immediately.
func (s *service) withRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.cfg.TxTimeout)
		err = fn(attemptCtx)
		cancel()

		if err == nil {
			return nil
		}
		if isTimeout(err) {
			if errors.Is(err, domain.ErrTransactionTimeout) {
				return err
			}
			return fmt.Errorf(ErrFmtTransactionTimeout, domain.ErrTransactionTimeout, op, s.cfg.TxTimeout, err)
		}
		if !errors.Is(err, domain.ErrTransactionConflict) {
			return err
		}

		if attempt < s.cfg.MaxAttempts {
			log.Warn(LogMsgTxConflictRetry, "operation", op, "attempt", attempt, "error", err)
			s.publishAsync(ctx, event.NewTransactionRetriedEvent(op, attempt))
		}
	}

	return fmt.Errorf(ErrMsgRetriesExhausted, op, s.cfg.MaxAttempts, err)
}

func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, domain.ErrTransactionTimeout)
}
