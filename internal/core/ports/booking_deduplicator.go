package ports

import (
	"context"

	"parcelbridge/internal/core/domain/model/kernel"
)

// BookingDeduplicator makes customer bookings idempotent across retries.
// Clients send an opaque idempotency key with each booking; a repeated key
// within the retention window returns the originally created shipment
// instead of booking a duplicate.
type BookingDeduplicator interface {
	// Find returns the shipment created under the key, if the key was seen
	// within the retention window.
	Find(ctx context.Context, key string) (kernel.UUID, bool, error)

	// Remember associates the key with the created shipment for the
	// retention window.
	Remember(ctx context.Context, key string, shipmentID kernel.UUID) error
}
