package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/wholesale-hub/wholesale-service/internal/events"
)

// emit publishes after the unit of work has committed. Delivery failures are
// logged; they never fail the request.
func emit(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.Int64("product_id", event.ProductID),
			zap.Error(err))
	}
}
