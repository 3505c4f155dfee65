package farm

import (
	"context"

	"github.com/osse101/Homestead_Go/internal/event"
	"github.com/osse101/Homestead_Go/internal/logger"
)

// publishAsync hands committed events to the bus without delaying the caller.
// The request context may be cancelled before delivery, so only its values
// are carried over.
func (s *service) publishAsync(ctx context.Context, events ...event.Event) {
	if s.bus == nil || len(events) == 0 {
		return
	}

	s.wg.Add(1)
	go func(ctx context.Context) {
		defer s.wg.Done()
		for _, evt := range events {
			if err := s.bus.Publish(ctx, evt); err != nil {
				logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
			}
		}
	}(context.WithoutCancel(ctx))
}
