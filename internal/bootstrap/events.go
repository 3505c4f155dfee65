package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/osse101/Homestead_Go/internal/config"
	"github.com/osse101/Homestead_Go/internal/event"
	"github.com/osse101/Homestead_Go/internal/logger"
	"github.com/osse101/Homestead_Go/internal/metrics"
)

// EventSystem groups the bus, the publisher services write to, and the
// dead-letter file behind it
type EventSystem struct {
	Bus        *event.MemoryBus
	Publisher  *event.ResilientPublisher
	DeadLetter *event.DeadLetterWriter
}

// InitializeEventSystem creates the in-memory bus, wraps it in a resilient
// publisher that dead-letters into LOG_DIR, and subscribes the metrics collector.
func InitializeEventSystem(cfg *config.Config) (*EventSystem, error) {
	bus := event.NewMemoryBus()

	if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
	}

	deadLetterPath := filepath.Join(cfg.LogDir, EventDeadLetterFileName)
	deadLetter, err := event.NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenDeadLetter, err)
	}

	publisher := event.NewResilientPublisher(bus, event.ResilientConfig{
		MaxRetries: EventDefaultMaxRetries,
		RetryDelay: EventDefaultRetryDelay,
		DeadLetter: deadLetter,
	})

	metrics.NewEventMetricsCollector().Register(bus)
	logger.Info(LogMsgMetricsCollectorRegistered)

	logger.Info(LogMsgEventSystemInitialized,
		"max_retries", EventDefaultMaxRetries,
		"retry_delay", EventDefaultRetryDelay,
		"deadletter_path", deadLetterPath)

	return &EventSystem{
		Bus:        bus,
		Publisher:  publisher,
		DeadLetter: deadLetter,
	}, nil
}
