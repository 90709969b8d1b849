// Package delivery holds the inbound adapters of the service.
package delivery

import "context"

// Delivery is a long-running inbound adapter started by the process.
type Delivery interface {
	// Serve blocks until the adapter stops.
	Serve(ctx context.Context) error
}
