package pubsub

import (
	"context"
	"log/slog"

	"identity/config"
	"identity/internal/domain/constants"
	"identity/internal/domain/service"
	"identity/internal/errors"

	"go.uber.org/fx"
)

// noopPublisher is a no-op implementation when Pub/Sub is disabled
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) Publish(_ context.Context, topic, key string, _ []byte) error {
	p.logger.Debug("[NoopPubSub] Event publishing disabled, skipping",
		slog.String("topic", topic),
		slog.String("key", key),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// prefixedPublisher prepends the configured topic prefix to every topic.
type prefixedPublisher struct {
	service.EventPublisher
	prefix string
}

func (p *prefixedPublisher) Publish(ctx context.Context, topic, key string, payload []byte) error {
	return p.EventPublisher.Publish(ctx, p.prefix+topic, key, payload)
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher creates an EventPublisher based on configuration
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.PubSub
	logger := params.Logger

	// If PubSub is not configured, return a no-op publisher
	if cfg == nil || cfg.Provider == "" || cfg.Provider == constants.PubSubProviderNoop {
		logger.Info("PubSub not configured, using no-op publisher")

		return &noopPublisher{logger: logger}, nil
	}

	var publisher service.EventPublisher
	var err error

	switch cfg.Provider {
	case constants.PubSubProviderMemory:
		logger.Info("Using in-memory publisher for Pub/Sub")

		publisher = NewMemoryPublisher(logger)

	case constants.PubSubProviderLocal:
		if cfg.LocalEndpoint == "" {
			return nil, errors.New("local endpoint is required for local provider")
		}
		logger.Info("Using local HTTP publisher for Pub/Sub",
			slog.String("endpoint", cfg.LocalEndpoint),
		)

		publisher = NewLocalHTTPPublisher(cfg.LocalEndpoint, logger)

	case constants.PubSubProviderGoogle:
		if cfg.ProjectID == "" {
			return nil, errors.New("project ID is required for google provider")
		}
		logger.Info("Using Google Pub/Sub publisher",
			slog.String("project_id", cfg.ProjectID),
			slog.String("topic_prefix", cfg.TopicPrefix),
		)

		publisher, err = NewGooglePubSubPublisher(params.Ctx, cfg.ProjectID, Topics(cfg.TopicPrefix), logger)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}

	if cfg.TopicPrefix != "" {
		publisher = &prefixedPublisher{EventPublisher: publisher, prefix: cfg.TopicPrefix}
	}

	// Register lifecycle hook to close publisher on shutdown
	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing EventPublisher")

			return publisher.Close()
		},
	})

	return publisher, nil
}

// Topics returns the fully qualified account lifecycle topics.
func Topics(prefix string) []string {
	return []string{
		prefix + constants.TopicUserCreated,
		prefix + constants.TopicUserUpdated,
		prefix + constants.TopicUserDeleted,
	}
}

// Module provides the Pub/Sub FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
)
