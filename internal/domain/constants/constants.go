// Package constants holds string identifiers shared across layers.
package constants

// Pub/Sub providers selectable through pubsub.provider.
const (
	PubSubProviderNoop   = "noop"
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
	PubSubProviderMemory = "memory"
)

// Database drivers selectable through database.driver.
const (
	DatabaseDriverPostgres = "postgres"
	DatabaseDriverSQLite   = "sqlite"
)

// Event types published on account lifecycle changes.
const (
	EventUserCreated = "USER_CREATED"
	EventUserUpdated = "USER_UPDATED"
	EventUserDeleted = "USER_DELETED"
)

// Topic suffixes for account lifecycle events.
const (
	TopicUserCreated = "user.created"
	TopicUserUpdated = "user.updated"
	TopicUserDeleted = "user.deleted"
)

// EventSource identifies this service in published payloads.
const EventSource = "identity-service"

// EventVersion is the payload schema version.
const EventVersion = "1.0"

// TokenTypeBearer is returned to clients alongside access tokens.
const TokenTypeBearer = "Bearer"
