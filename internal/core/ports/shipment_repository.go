package ports

import (
	"context"
	"errors"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/core/domain/model/shipment"
)

// ErrAWBTaken is returned by Add and Update when the shipment's candidate
// AWB collides with an existing one. AWB uniqueness is probabilistic per day
// and corridor, so callers rebuild the aggregate to draw a fresh number and
// retry the whole transaction.
var ErrAWBTaken = errors.New("awb number is already taken")

// ShipmentRepository defines the persistence contract for shipment aggregates.
// Implementations persist the aggregate's buffered tracking events in the
// same transaction as the aggregate itself and clear the buffer afterwards.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate together with its buffered
	// tracking events. Returns ErrAWBTaken on an AWB collision.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate together
	// with its buffered tracking events. Returns ErrAWBTaken on an AWB
	// collision.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByAWB retrieves a shipment aggregate by its public AWB number.
	GetByAWB(ctx context.Context, awb string) (*shipment.Shipment, error)

	// GetByIDs retrieves the shipment aggregates for the given identifiers.
	// Used by the container cascades to load all affected members at once.
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*shipment.Shipment, error)

	// Delete removes a shipment and its tracking events.
	// Only PENDING bookings are ever deleted; the handler checks eligibility.
	Delete(ctx context.Context, id kernel.UUID) error

	// AddDeliveryProof persists the proof of delivery record.
	AddDeliveryProof(ctx context.Context, proof shipment.DeliveryProof) error
}
