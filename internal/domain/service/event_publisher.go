package service

import (
	"context"
)

// EventPublisher defines the interface for publishing events to a message bus.
// Delivery is at-most-once from the caller's perspective.
type EventPublisher interface {
	// Publish sends a JSON payload to a topic, keyed for ordering.
	Publish(ctx context.Context, topic, key string, payload []byte) error

	// Close releases any resources held by the publisher
	Close() error
}
