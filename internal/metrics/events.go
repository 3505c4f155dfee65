package metrics

import (
	"context"

	"github.com/osse101/Homestead_Go/internal/domain"
	"github.com/osse101/Homestead_Go/internal/event"
	"github.com/osse101/Homestead_Go/internal/logger"
)

// EventMetricsCollector subscribes to farm events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all farm events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	eventTypes := []event.Type{
		event.CropPlanted,
		event.CropHarvested,
		event.CropWitheredRemoved,
		event.CropWithered,
		event.PlayerProvisioned,
		event.ActionFailed,
		event.TransactionRetried,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.CropPlanted, event.CropHarvested, event.CropWitheredRemoved, event.CropWithered:
		p, err := event.DecodePayload[domain.CropPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		recordCrop(evt.Type, p)

	case event.PlayerProvisioned:
		PlayersProvisioned.Inc()

	case event.ActionFailed:
		p, err := event.DecodePayload[domain.ActionFailedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		ActionFailures.WithLabelValues(string(p.Action), string(p.Kind)).Inc()

	case event.TransactionRetried:
		p, err := event.DecodePayload[domain.TransactionRetriedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		TransactionRetries.WithLabelValues(p.Operation).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func recordCrop(t event.Type, p domain.CropPayload) {
	switch t {
	case event.CropPlanted:
		CropsPlanted.WithLabelValues(p.CropName).Inc()
		if p.GoldDelta < 0 {
			GoldSpent.Add(float64(-p.GoldDelta))
		}
	case event.CropHarvested:
		CropsHarvested.WithLabelValues(p.CropName).Inc()
		if p.GoldDelta > 0 {
			GoldEarned.Add(float64(p.GoldDelta))
		}
	case event.CropWitheredRemoved:
		CropsWitheredRemoved.WithLabelValues(p.CropName).Inc()
	case event.CropWithered:
		CropsReconciled.WithLabelValues(p.CropName).Inc()
	}
}
