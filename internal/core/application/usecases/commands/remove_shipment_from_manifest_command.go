package commands

import (
	"errors"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

var (
	ErrRemoveShipmentFromManifestCommandIsNotConstructed = errors.New(
		"RemoveShipmentFromManifestCommand must be created via NewRemoveShipmentFromManifestCommand constructor",
	)
)

// RemoveShipmentFromManifestCommand takes a loose shipment back off a draft
// manifest and returns it to the warehouse.
type RemoveShipmentFromManifestCommand struct {
	manifestID kernel.UUID
	shipmentID kernel.UUID
	actor      *kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveShipmentFromManifestCommand creates a command to unmanifest a loose shipment.
func NewRemoveShipmentFromManifestCommand(
	manifestID kernel.UUID,
	shipmentID kernel.UUID,
	actor *kernel.UUID,
) (RemoveShipmentFromManifestCommand, error) {
	if err := manifestID.Validate(); err != nil {
		return RemoveShipmentFromManifestCommand{}, errs.NewValueIsInvalidErrorWithCause("manifestID", err)
	}
	if err := shipmentID.Validate(); err != nil {
		return RemoveShipmentFromManifestCommand{}, errs.NewValueIsInvalidErrorWithCause("shipmentID", err)
	}
	if actor != nil {
		if err := actor.Validate(); err != nil {
			return RemoveShipmentFromManifestCommand{}, errs.NewValueIsInvalidErrorWithCause("actor", err)
		}
	}

	return RemoveShipmentFromManifestCommand{
		manifestID: manifestID,
		shipmentID: shipmentID,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveShipmentFromManifestCommand) Validate() error {
	return c.guard.Validate(ErrRemoveShipmentFromManifestCommandIsNotConstructed)
}

// ManifestID returns the target manifest ID.
func (c RemoveShipmentFromManifestCommand) ManifestID() kernel.UUID {
	return c.manifestID
}

// ShipmentID returns the shipment to remove.
func (c RemoveShipmentFromManifestCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Actor returns the staff member performing the action, or nil.
func (c RemoveShipmentFromManifestCommand) Actor() *kernel.UUID {
	return c.actor
}
