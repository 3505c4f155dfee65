package domain

import "errors"

// ErrorKind is the stable classification every engine failure carries.
type ErrorKind string

const (
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindConflict          ErrorKind = "CONFLICT"
	KindInsufficientFunds ErrorKind = "INSUFFICIENT_FUNDS"
	KindNotReady          ErrorKind = "NOT_READY"
	KindUnknownAction     ErrorKind = "UNKNOWN_ACTION"
	KindInternal          ErrorKind = "INTERNAL"
)

// KindOf classifies err. Anything not recognised is KindInternal.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPlayerNotFound),
		errors.Is(err, ErrSlotNotFound),
		errors.Is(err, ErrCropMasterNotFound):
		return KindNotFound
	case errors.Is(err, ErrSlotOccupied),
		errors.Is(err, ErrSlotEmpty):
		return KindConflict
	case errors.Is(err, ErrInsufficientFunds):
		return KindInsufficientFunds
	case errors.Is(err, ErrCropNotReady):
		return KindNotReady
	case errors.Is(err, ErrUnknownAction):
		return KindUnknownAction
	}
	return KindInternal
}

// Retryable reports whether a caller may safely resubmit the same action.
func (k ErrorKind) Retryable() bool {
	return k == KindInternal
}

// IsRetryable is shorthand for KindOf(err).Retryable().
func IsRetryable(err error) bool {
	return err != nil && KindOf(err).Retryable()
}
