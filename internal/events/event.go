package events

import (
	"context"
	"time"
)

const (
	TypeProductCreated      = "product.created"
	TypeProductUpdated      = "product.updated"
	TypeProductDeleted      = "product.deleted"
	TypeDutyCategoryCreated = "duty_category.created"
)

// Event is a catalog change notification. Key identifies the aggregate and is
// used as the Kafka message key so changes to one record stay ordered.
type Event struct {
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
