package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	deliverycontext "identity/internal/delivery/context"
	"identity/internal/domain/constants"
	"identity/internal/domain/entity"
	"identity/internal/domain/service"
	"identity/internal/errors"
)

// accountEvent is the JSON payload of account lifecycle events.
type accountEvent struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	EventType    string    `json:"eventType"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	Role         string    `json:"role"`
	Provider     string    `json:"provider"`
	Timestamp    time.Time `json:"timestamp"`
	EventSource  string    `json:"eventSource"`
	EventVersion string    `json:"eventVersion"`
	RequestID    string    `json:"requestId,omitempty"`
}

func eventTopic(eventType string) (string, bool) {
	switch eventType {
	case constants.EventUserCreated:
		return constants.TopicUserCreated, true
	case constants.EventUserUpdated:
		return constants.TopicUserUpdated, true
	case constants.EventUserDeleted:
		return constants.TopicUserDeleted, true
	default:
		return "", false
	}
}

// accountEventPublisher builds lifecycle events and publishes them off the request path.
type accountEventPublisher struct {
	publisher  service.EventPublisher
	dispatcher service.Dispatcher
	now        func() time.Time
}

func newAccountEvent(eventType string, account *entity.Account, at time.Time) accountEvent {
	return accountEvent{
		UserID:       account.ID.String(),
		Email:        account.Email,
		EventType:    eventType,
		FirstName:    account.FirstName,
		LastName:     account.LastName,
		Role:         account.Role.String(),
		Provider:     account.Provider.String(),
		Timestamp:    at.UTC(),
		EventSource:  constants.EventSource,
		EventVersion: constants.EventVersion,
	}
}

// publish snapshots the account now and enqueues the publish. Failures are only logged.
// The event carries the id of the request that caused it, when there is one.
func (p *accountEventPublisher) publish(ctx context.Context, logger *slog.Logger, eventType string, account *entity.Account) {
	topic, ok := eventTopic(eventType)
	if !ok {
		logger.Error("Unknown account event type", slog.String("eventType", eventType))

		return
	}

	event := newAccountEvent(eventType, account, p.now())
	event.RequestID = deliverycontext.RequestIDFromContext(ctx)

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to encode account event", slog.String("eventType", eventType), slog.Any("error", err))

		return
	}

	key := account.ID.String()
	p.dispatcher.Go("event:"+eventType, func(taskCtx context.Context) error {
		if err := p.publisher.Publish(taskCtx, topic, key, payload); err != nil {
			return errors.Wrapf(err, "failed to publish %s for %s", eventType, key)
		}
		logger.Debug("Account event published", slog.String("eventType", eventType), slog.String("userId", key))

		return nil
	})
}
