package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Homestead_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	var got []Event

	bus.Subscribe(CropPlanted, func(ctx context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	player := domain.Player{ID: "p1", Username: "alice"}
	at := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, bus.Publish(context.Background(), NewCropEvent(CropPlanted, player, 2, "Turnip", -10, at)))
	require.NoError(t, bus.Publish(context.Background(), NewCropEvent(CropHarvested, player, 2, "Turnip", 20, at)))

	require.Len(t, got, 1)
	assert.Equal(t, EventSchemaVersion, got[0].Version)

	payload, err := DecodePayload[domain.CropPayload](got[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, "alice", payload.Username)
	assert.Equal(t, 2, payload.SlotIndex)
	assert.Equal(t, int64(-10), payload.GoldDelta)
	assert.Equal(t, at.Unix(), payload.Timestamp)
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0
	handler := func(ctx context.Context, e Event) error {
		count++
		return nil
	}

	bus.Subscribe(ActionFailed, handler)
	bus.Subscribe(ActionFailed, handler)

	require.NoError(t, bus.Publish(context.Background(), NewActionFailedEvent("bob", domain.ActionPlant, domain.KindNotFound)))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_PublishJoinsHandlerErrors(t *testing.T) {
	bus := NewMemoryBus()
	called := 0

	bus.Subscribe(TransactionRetried, func(ctx context.Context, e Event) error {
		called++
		return errors.New("handler error")
	})
	bus.Subscribe(TransactionRetried, func(ctx context.Context, e Event) error {
		called++
		return nil
	})

	err := bus.Publish(context.Background(), NewTransactionRetriedEvent("harvest", 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encountered 1 errors")
	assert.Equal(t, 2, called)
}

func TestDecodePayload_FromMap(t *testing.T) {
	raw := map[string]any{"operation": "plant", "attempt": 2}

	payload, err := DecodePayload[domain.TransactionRetriedPayload](raw)
	require.NoError(t, err)
	assert.Equal(t, "plant", payload.Operation)
	assert.Equal(t, 2, payload.Attempt)
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 100 * time.Millisecond
	assert.Equal(t, base, CalculateRetryDelay(base, 0))
	assert.Equal(t, base, CalculateRetryDelay(base, 1))
	assert.Equal(t, 400*time.Millisecond, CalculateRetryDelay(base, 3))
}
