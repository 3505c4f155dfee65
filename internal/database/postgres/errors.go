package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/Homestead_Go/internal/domain"
)

// mapError translates a driver error into the domain storage errors.
// Serialisation failures and deadlocks become ErrTransactionConflict so the
// caller can retry; deadlines become ErrTransactionTimeout.
func mapError(err error, msg string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %w", domain.ErrTransactionTimeout, msg, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrorCodeSerializationFailure, PgErrorCodeDeadlockDetected:
			return fmt.Errorf("%w: %s: %w", domain.ErrTransactionConflict, msg, err)
		case PgErrorCodeQueryCanceled:
			return fmt.Errorf("%w: %s: %w", domain.ErrTransactionTimeout, msg, err)
		}
	}

	return fmt.Errorf("%w: %s: %w", domain.ErrDatabaseError, msg, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation
}
