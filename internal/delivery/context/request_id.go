package context

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey namespaces the values this package stores.
type ContextKey string

const (
	// KeyRequestID holds the request id in echo.Context and context.Context.
	KeyRequestID ContextKey = "request_id"

	// HeaderXRequestID carries the request id in and out of the service.
	HeaderXRequestID = "X-Request-Id"
)

// SetRequestID records the id on the echo context, the request's context.Context
// and the response header, so handlers, use cases and clients all see the same value.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
	c.Response().Header().Set(HeaderXRequestID, requestID)

	req := c.Request()
	c.SetRequest(req.WithContext(WithRequestID(req.Context(), requestID)))
}

// GetRequestID returns the id assigned to the request. A request that never passed
// through the request id middleware gets a fresh id, recorded so later calls agree.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok && id != "" {
		return id
	}
	if id := RequestIDFromContext(c.Request().Context()); id != "" {
		return id
	}

	id := uuid.NewString()
	c.Set(string(KeyRequestID), id)

	return id
}

// WithRequestID returns a copy of ctx carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext returns the request id stored in ctx, or "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)

	return id
}
