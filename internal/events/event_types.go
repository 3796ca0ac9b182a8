package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers. The value doubles as the
// broker routing key.
type EventType string

const (
	EventProductCreated           EventType = "product.created"
	EventProductDeleted           EventType = "product.deleted"
	EventProductActivationChanged EventType = "product.activation_changed"
	EventVariantStockUpdated      EventType = "variant.stock_updated"
)

// AllTypes lists every event type for subscribers that relay everything.
var AllTypes = []EventType{
	EventProductCreated,
	EventProductDeleted,
	EventProductActivationChanged,
	EventVariantStockUpdated,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	ProductID int64     `json:"productId"`
	ActorID   string    `json:"actorId"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, productID int64, actorID string, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ProductID: productID,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// ProductCreatedPayload payload.
type ProductCreatedPayload struct {
	Name         string `json:"name"`
	CategoryID   int    `json:"categoryId"`
	VariantCount int    `json:"variantCount"`
}

// ProductDeletedPayload payload.
type ProductDeletedPayload struct {
	Name string `json:"name"`
}

// ProductActivationChangedPayload payload.
type ProductActivationChangedPayload struct {
	Active bool `json:"active"`
}

// VariantStockUpdatedPayload payload.
type VariantStockUpdatedPayload struct {
	VariantID int64 `json:"variantId"`
	OldStock  int   `json:"oldStock"`
	NewStock  int   `json:"newStock"`
}
