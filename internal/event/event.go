package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/Homestead_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Farm engine event types
const (
	CropPlanted         Type = domain.EventTypeCropPlanted
	CropHarvested       Type = domain.EventTypeCropHarvested
	CropWitheredRemoved Type = domain.EventTypeCropWitheredRemoved
	CropWithered        Type = domain.EventTypeCropWithered
	PlayerProvisioned   Type = domain.EventTypePlayerProvisioned
	ActionFailed        Type = domain.EventTypeActionFailed
	TransactionRetried  Type = domain.EventTypeTransactionRetried
)

// Event represents a generic event in the system
type Event struct {
	Version  string         `json:"version"`
	Type     Type           `json:"type"`
	Payload  interface{}    `json:"payload"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// GetMetadataValue returns nil when the key or the metadata is missing
func (e Event) GetMetadataValue(key string) any {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// NewCropEvent builds one of the crop lifecycle events
func NewCropEvent(t Type, player domain.Player, slotIndex int, cropName string, goldDelta int64, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: domain.CropPayload{
			PlayerID:  player.ID,
			Username:  player.Username,
			SlotIndex: slotIndex,
			CropName:  cropName,
			GoldDelta: goldDelta,
			Timestamp: at.Unix(),
		},
	}
}

// NewPlayerProvisionedEvent is published once per newly created player
func NewPlayerProvisionedEvent(player domain.Player, gold int64, slots int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PlayerProvisioned,
		Payload: domain.PlayerProvisionedPayload{
			PlayerID: player.ID,
			Username: player.Username,
			Gold:     gold,
			Slots:    slots,
		},
	}
}

// NewActionFailedEvent records a rejected action by error kind
func NewActionFailedEvent(username string, action domain.ActionKind, kind domain.ErrorKind) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ActionFailed,
		Payload: domain.ActionFailedPayload{
			Username: username,
			Action:   action,
			Kind:     kind,
		},
	}
}

// NewTransactionRetriedEvent records a transaction attempt lost to a conflict
func NewTransactionRetriedEvent(operation string, attempt int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TransactionRetried,
		Payload: domain.TransactionRetriedPayload{
			Operation: operation,
			Attempt:   attempt,
		},
		Metadata: map[string]any{"attempt": attempt},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
