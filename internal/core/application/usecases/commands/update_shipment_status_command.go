package commands

import (
	"errors"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/core/domain/model/shipment"
	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

var (
	ErrUpdateShipmentStatusCommandIsNotConstructed = errors.New(
		"UpdateShipmentStatusCommand must be created via NewUpdateShipmentStatusCommand constructor",
	)
)

// UpdateShipmentStatusCommand advances a single shipment one step along its
// corridor chain, or into an exception status.
type UpdateShipmentStatusCommand struct {
	shipmentID kernel.UUID
	nextStatus shipment.Status
	location   string
	notes      string
	actor      *kernel.UUID

	guard guard.ConstructorGuard
}

// NewUpdateShipmentStatusCommand creates a command to update shipment status.
// actor may be nil for system-driven updates.
func NewUpdateShipmentStatusCommand(
	shipmentID kernel.UUID,
	nextStatus shipment.Status,
	location string,
	notes string,
	actor *kernel.UUID,
) (UpdateShipmentStatusCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return UpdateShipmentStatusCommand{}, errs.NewValueIsInvalidErrorWithCause("shipmentID", err)
	}
	if err := nextStatus.Validate(); err != nil {
		return UpdateShipmentStatusCommand{}, err
	}
	if actor != nil {
		if err := actor.Validate(); err != nil {
			return UpdateShipmentStatusCommand{}, errs.NewValueIsInvalidErrorWithCause("actor", err)
		}
	}

	return UpdateShipmentStatusCommand{
		shipmentID: shipmentID,
		nextStatus: nextStatus,
		location:   location,
		notes:      notes,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateShipmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentStatusCommandIsNotConstructed)
}

// ShipmentID returns the target shipment ID.
func (c UpdateShipmentStatusCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// NextStatus returns the requested status.
func (c UpdateShipmentStatusCommand) NextStatus() shipment.Status {
	return c.nextStatus
}

// Location returns the location recorded with the tracking event.
func (c UpdateShipmentStatusCommand) Location() string {
	return c.location
}

// Notes returns the free-form notes recorded with the tracking event.
func (c UpdateShipmentStatusCommand) Notes() string {
	return c.notes
}

// Actor returns the staff member performing the update, or nil.
func (c UpdateShipmentStatusCommand) Actor() *kernel.UUID {
	return c.actor
}
