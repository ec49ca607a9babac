package ports

import (
	"context"

	"parcelbridge/internal/core/domain/model/bag"
	"parcelbridge/internal/core/domain/model/kernel"
)

// AirInvoice is the persisted record of a generated bag air invoice.
// The binary artifact is stored alongside metadata about who generated it;
// the record lives and dies with the seal, so unsealing deletes it.
type AirInvoice struct {
	BagID         kernel.UUID
	InvoiceNumber string
	Artifact      Artifact
	GeneratedBy   *kernel.UUID
}

// BagRepository defines the persistence contract for bag aggregates.
type BagRepository interface {
	// Add persists a new bag aggregate.
	Add(ctx context.Context, aggregate *bag.Bag) error

	// Update persists changes to an existing bag aggregate, including its
	// membership rows.
	Update(ctx context.Context, aggregate *bag.Bag) error

	// Get retrieves a bag aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*bag.Bag, error)

	// FindByShipmentID returns the bag containing the shipment, or nil if
	// the shipment is in no bag. Supports the global single-bag rule.
	FindByShipmentID(ctx context.Context, shipmentID kernel.UUID) (*bag.Bag, error)

	// NextBagNumber computes the next sequential bag number from the
	// current maximum. Two concurrent callers may compute the same value;
	// the unique constraint on the number rejects the loser.
	NextBagNumber(ctx context.Context) (string, error)

	// Delete removes a bag and its membership rows.
	// Only open bags are ever deleted; the handler checks eligibility.
	Delete(ctx context.Context, id kernel.UUID) error

	// SaveAirInvoice persists the air invoice generated at seal time.
	SaveAirInvoice(ctx context.Context, invoice AirInvoice) error

	// DeleteAirInvoice discards the stored air invoice when a bag is
	// unsealed.
	DeleteAirInvoice(ctx context.Context, bagID kernel.UUID) error
}
