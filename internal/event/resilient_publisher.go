package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/Homestead_Go/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries int
	RetryDelay time.Duration
	DeadLetter *DeadLetterWriter // optional
}

// ResilientPublisher wraps a Bus. A failed publish is retried in the
// background with exponential backoff and dead-lettered once retries run out.
type ResilientPublisher struct {
	inner  Bus
	config ResilientConfig

	wg       sync.WaitGroup
	shutdown chan struct{}
	once     sync.Once
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, config ResilientConfig) *ResilientPublisher {
	if config.MaxRetries <= 0 {
		config.MaxRetries = DefaultMaxRetries
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = DefaultRetryDelay
	}
	return &ResilientPublisher{
		inner:    inner,
		config:   config,
		shutdown: make(chan struct{}),
	}
}

// Publish never fails the caller: the first attempt is synchronous and a
// failure hands the event to a background retry loop.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	logger.FromContext(ctx).Warn(LogMsgPublishFailed,
		"event_type", event.Type,
		"error", err,
		"retries", p.config.MaxRetries)

	p.wg.Add(1)
	go p.retryLoop(context.WithoutCancel(ctx), event, err)
	return nil
}

func (p *ResilientPublisher) retryLoop(ctx context.Context, event Event, lastErr error) {
	defer p.wg.Done()
	log := logger.FromContext(ctx)

	for attempt := 1; attempt <= p.config.MaxRetries; attempt++ {
		timer := time.NewTimer(CalculateRetryDelay(p.config.RetryDelay, attempt))
		select {
		case <-timer.C:
		case <-p.shutdown:
			timer.Stop()
			log.Warn(LogMsgRetryAbortedOnClose, "event_type", event.Type, "attempt", attempt)
			p.deadLetter(ctx, event, attempt-1, lastErr)
			return
		}

		if lastErr = p.inner.Publish(ctx, event); lastErr == nil {
			log.Info(LogMsgRetrySucceeded, "event_type", event.Type, "attempt", attempt)
			return
		}
		log.Warn(LogMsgRetryFailed, "event_type", event.Type, "attempt", attempt, "error", lastErr)
	}

	p.deadLetter(ctx, event, p.config.MaxRetries, lastErr)
}

func (p *ResilientPublisher) deadLetter(ctx context.Context, event Event, attempts int, lastErr error) {
	if p.config.DeadLetter == nil {
		return
	}
	log := logger.FromContext(ctx)
	if err := p.config.DeadLetter.Write(event, attempts, lastErr); err != nil {
		log.Error(LogMsgDeadLetterFailed, "event_type", event.Type, "error", err)
		return
	}
	log.Info(LogMsgDeadLettered, "event_type", event.Type, "attempts", attempts)
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Shutdown cancels pending backoffs, dead-letters their events and waits for
// the retry goroutines to exit or ctx to expire.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.once.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
