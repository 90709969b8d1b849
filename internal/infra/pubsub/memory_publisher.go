package pubsub

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"identity/internal/errors"

	"go.uber.org/multierr"
	gcpubsub "gocloud.dev/pubsub"
	"gocloud.dev/pubsub/mempubsub"
)

// MemoryPublisher publishes to in-process topics. Messages sent to a topic without
// subscriptions are dropped, which matches at-most-once delivery.
type MemoryPublisher struct {
	mu     sync.Mutex
	topics map[string]*gcpubsub.Topic
	logger *slog.Logger
}

// NewMemoryPublisher creates an empty in-process publisher.
func NewMemoryPublisher(logger *slog.Logger) *MemoryPublisher {
	return &MemoryPublisher{
		topics: make(map[string]*gcpubsub.Topic),
		logger: logger,
	}
}

func (p *MemoryPublisher) topic(name string) *gcpubsub.Topic {
	p.mu.Lock()
	defer p.mu.Unlock()

	topic, ok := p.topics[name]
	if !ok {
		topic = mempubsub.NewTopic()
		p.topics[name] = topic
	}

	return topic
}

// Subscribe attaches a subscription to the named topic.
func (p *MemoryPublisher) Subscribe(topic string, ackDeadline time.Duration) *gcpubsub.Subscription {
	return mempubsub.NewSubscription(p.topic(topic), ackDeadline)
}

// Publish sends the payload with the key as metadata.
func (p *MemoryPublisher) Publish(ctx context.Context, topic, key string, payload []byte) error {
	err := p.topic(topic).Send(ctx, &gcpubsub.Message{
		Body:     payload,
		Metadata: map[string]string{"key": key},
	})
	if err != nil {
		return errors.Wrapf(err, "failed to publish to %s", topic)
	}

	p.logger.Debug("[MemoryPubSub] Event published", slog.String("topic", topic), slog.String("key", key))

	return nil
}

// Close shuts down every topic.
func (p *MemoryPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var err error
	for name, topic := range p.topics {
		if shutdownErr := topic.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, errors.Wrapf(shutdownErr, "shutdown topic %s", name))
		}
	}
	p.topics = make(map[string]*gcpubsub.Topic)

	return err
}
