package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"player not found", ErrPlayerNotFound, KindNotFound},
		{"slot not found wrapped", fmt.Errorf("load slot: %w", ErrSlotNotFound), KindNotFound},
		{"crop master not found", ErrCropMasterNotFound, KindNotFound},
		{"slot occupied", ErrSlotOccupied, KindConflict},
		{"slot empty", fmt.Errorf("harvest: %w", ErrSlotEmpty), KindConflict},
		{"insufficient funds", ErrInsufficientFunds, KindInsufficientFunds},
		{"not ready", ErrCropNotReady, KindNotReady},
		{"unknown action", ErrUnknownAction, KindUnknownAction},
		{"timeout", ErrTransactionTimeout, KindInternal},
		{"conflict", ErrTransactionConflict, KindInternal},
		{"deadline", context.DeadlineExceeded, KindInternal},
		{"anything else", errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestKindOf_Nil(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(nil))
	assert.False(t, IsRetryable(nil))
}

func TestRetryable_OnlyInternal(t *testing.T) {
	for _, k := range []ErrorKind{KindNotFound, KindConflict, KindInsufficientFunds, KindNotReady, KindUnknownAction} {
		assert.False(t, k.Retryable(), "kind %s must not be retryable", k)
	}
	assert.True(t, KindInternal.Retryable())
	assert.True(t, IsRetryable(fmt.Errorf("commit: %w", ErrTransactionTimeout)))
}
