package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/wholesale-hub/wholesale-service/internal/events"
	"github.com/wholesale-hub/wholesale-service/internal/messaging"
)

// EventRelayService forwards domain events to the message broker.
type EventRelayService struct {
	dispatcher events.Dispatcher
	publisher  messaging.Publisher
	logger     *zap.Logger
}

// NewEventRelayService creates the service. A nil publisher makes the relay
// log-only.
func NewEventRelayService(dispatcher events.Dispatcher, publisher messaging.Publisher, logger *zap.Logger) *EventRelayService {
	return &EventRelayService{
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to every product event.
func (r *EventRelayService) RegisterHandlers() {
	if r.dispatcher == nil {
		return
	}
	for _, t := range events.AllTypes {
		r.dispatcher.Subscribe(t, r.handle)
	}
}

func (r *EventRelayService) handle(ctx context.Context, event events.Event) error {
	r.logger.Info("domain event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Int64("product_id", event.ProductID),
		zap.Any("payload", event.Payload))

	if r.publisher == nil {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.publisher.Publish(ctx, string(event.Type), body)
}
