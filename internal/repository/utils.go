package repository

import (
	"context"
	"errors"

	"github.com/osse101/Homestead_Go/internal/domain"
	"github.com/osse101/Homestead_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error.
// Rolling back an already committed transaction is a no-op.
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		if err.Error() != domain.ErrMsgTxClosed && !errors.Is(err, context.DeadlineExceeded) {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}
