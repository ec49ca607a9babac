package ports

import (
	"context"
	"errors"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/core/domain/model/manifest"
)

// ErrManifestNumberTaken is returned by Add when the candidate manifest
// number collides with an existing one. Callers redraw and retry.
var ErrManifestNumberTaken = errors.New("manifest number is already taken")

// ManifestExport is the persisted record of the documents generated when a
// manifest is finalized: the printable sheet and the spreadsheet workbook.
type ManifestExport struct {
	ManifestID  kernel.UUID
	Sheet       Artifact
	Workbook    Artifact
	GeneratedBy *kernel.UUID
}

// ManifestRepository defines the persistence contract for manifest aggregates.
type ManifestRepository interface {
	// Add persists a new manifest aggregate together with its membership
	// rows. Returns ErrManifestNumberTaken on a number collision.
	Add(ctx context.Context, aggregate *manifest.Manifest) error

	// Update persists changes to an existing manifest aggregate, including
	// its membership rows.
	Update(ctx context.Context, aggregate *manifest.Manifest) error

	// Get retrieves a manifest aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*manifest.Manifest, error)

	// FindByBagID returns the manifest containing the bag, or nil if the
	// bag is in no manifest. Supports the single-manifest rule for bags.
	FindByBagID(ctx context.Context, bagID kernel.UUID) (*manifest.Manifest, error)

	// FindByShipmentID returns the manifest containing the shipment as a
	// standalone member, or nil if there is none.
	FindByShipmentID(ctx context.Context, shipmentID kernel.UUID) (*manifest.Manifest, error)

	// Delete removes a draft manifest and detaches its membership rows
	// without touching the members themselves.
	Delete(ctx context.Context, id kernel.UUID) error

	// SaveExport persists the documents generated at finalize time.
	SaveExport(ctx context.Context, export ManifestExport) error
}
