package pubsub

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"identity/internal/domain/service"
	"identity/internal/errors"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
)

// googlePubSubPublisher implements EventPublisher using Google Cloud Pub/Sub.
// One publisher is kept per topic; topics are checked for existence on first use.
type googlePubSubPublisher struct {
	client     *pubsub.Client
	projectID  string
	mu         sync.Mutex
	publishers map[string]*pubsub.Publisher
	logger     *slog.Logger
}

// NewGooglePubSubPublisher creates a new Google Pub/Sub publisher and verifies that
// every topic in topicIDs exists.
func NewGooglePubSubPublisher(ctx context.Context, projectID string, topicIDs []string, logger *slog.Logger) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	p := &googlePubSubPublisher{
		client:     client,
		projectID:  projectID,
		publishers: make(map[string]*pubsub.Publisher, len(topicIDs)),
		logger:     logger,
	}

	for _, topicID := range topicIDs {
		if _, err := p.publisher(ctx, topicID); err != nil {
			client.Close()

			return nil, err
		}
	}

	logger.Info("Google Pub/Sub publisher initialized",
		slog.String("project_id", projectID),
		slog.Any("topics", topicIDs),
	)

	return p, nil
}

func (p *googlePubSubPublisher) publisher(ctx context.Context, topicID string) (*pubsub.Publisher, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if publisher, ok := p.publishers[topicID]; ok {
		return publisher, nil
	}

	topicPath := fmt.Sprintf("projects/%s/topics/%s", p.projectID, topicID)
	if _, err := p.client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{
		Topic: topicPath,
	}); err != nil {
		return nil, errors.Wrapf(err, "failed to get topic %s", topicID)
	}

	publisher := p.client.Publisher(topicID)
	p.publishers[topicID] = publisher

	return publisher, nil
}

// Publish sends one event and waits for the server acknowledgement.
func (p *googlePubSubPublisher) Publish(ctx context.Context, topic, key string, payload []byte) error {
	publisher, err := p.publisher(ctx, topic)
	if err != nil {
		return err
	}

	msg := &pubsub.Message{
		Data:       payload,
		Attributes: map[string]string{"key": key},
	}

	serverID, err := publisher.Publish(ctx, msg).Get(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	p.logger.Debug("[GooglePubSub] Event published",
		slog.String("topic", topic),
		slog.String("key", key),
		slog.String("server_id", serverID),
	)

	return nil
}

// Close flushes pending messages and releases Pub/Sub client resources.
func (p *googlePubSubPublisher) Close() error {
	p.mu.Lock()
	for _, publisher := range p.publishers {
		publisher.Stop()
	}
	p.mu.Unlock()

	if p.client != nil {
		return errors.WithStack(p.client.Close())
	}

	return nil
}
