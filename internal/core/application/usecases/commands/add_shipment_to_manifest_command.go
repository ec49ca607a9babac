package commands

import (
	"errors"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

var (
	ErrAddShipmentToManifestCommandIsNotConstructed = errors.New(
		"AddShipmentToManifestCommand must be created via NewAddShipmentToManifestCommand constructor",
	)
)

// AddShipmentToManifestCommand places a loose shipment directly onto a draft
// manifest, outside of any bag. Used for oversize parcels that do not fit
// the standard export bags.
type AddShipmentToManifestCommand struct {
	manifestID kernel.UUID
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAddShipmentToManifestCommand creates a command to manifest a loose shipment.
func NewAddShipmentToManifestCommand(
	manifestID kernel.UUID,
	shipmentID kernel.UUID,
) (AddShipmentToManifestCommand, error) {
	if err := manifestID.Validate(); err != nil {
		return AddShipmentToManifestCommand{}, errs.NewValueIsInvalidErrorWithCause("manifestID", err)
	}
	if err := shipmentID.Validate(); err != nil {
		return AddShipmentToManifestCommand{}, errs.NewValueIsInvalidErrorWithCause("shipmentID", err)
	}

	return AddShipmentToManifestCommand{
		manifestID: manifestID,
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AddShipmentToManifestCommand) Validate() error {
	return c.guard.Validate(ErrAddShipmentToManifestCommandIsNotConstructed)
}

// ManifestID returns the target manifest ID.
func (c AddShipmentToManifestCommand) ManifestID() kernel.UUID {
	return c.manifestID
}

// ShipmentID returns the shipment to manifest.
func (c AddShipmentToManifestCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}
