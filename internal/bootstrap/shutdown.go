package bootstrap

import (
	"context"

	"github.com/osse101/Homestead_Go/internal/database"
	"github.com/osse101/Homestead_Go/internal/event"
	"github.com/osse101/Homestead_Go/internal/logger"
)

type stoppable interface {
	Stop(ctx context.Context) error
}

type shutdownableService interface {
	Shutdown(context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server      stoppable
	FarmService shutdownableService
	Events      *EventSystem
	Pool        database.Pool
}

// GracefulShutdown stops components in order:
// 1. HTTP server (stop accepting new requests)
// 2. Farm service (wait for in-flight event publishing)
// 3. Event publisher (flush retries, then close the dead-letter file)
// 4. Store connections
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			log.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.FarmService != nil {
		shutdownService(ctx, ServiceNameFarm, c.FarmService)
	}

	if c.Events != nil {
		log.Info(LogMsgShuttingDownEventPublisher)
		if c.Events.Publisher != nil {
			shutdownPublisher(ctx, c.Events.Publisher)
		}
		if c.Events.DeadLetter != nil {
			if err := c.Events.DeadLetter.Close(); err != nil {
				log.Error(LogMsgDeadLetterCloseFailed, "error", err)
			}
		}
	}

	if c.Pool != nil {
		log.Info(LogMsgClosingStore)
		c.Pool.Close()
	}

	log.Info(LogMsgServerStopped)
}

func shutdownPublisher(ctx context.Context, p *event.ResilientPublisher) {
	if err := p.Shutdown(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgResilientPublisherFailed, "error", err)
	}
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if err := service.Shutdown(ctx); err != nil {
		logger.FromContext(ctx).Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
