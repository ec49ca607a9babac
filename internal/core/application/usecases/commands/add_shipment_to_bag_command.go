package commands

import (
	"errors"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

var (
	ErrAddShipmentToBagCommandIsNotConstructed = errors.New(
		"AddShipmentToBagCommand must be created via NewAddShipmentToBagCommand constructor",
	)
)

// AddShipmentToBagCommand places an export shipment into an open bag.
type AddShipmentToBagCommand struct {
	bagID      kernel.UUID
	shipmentID kernel.UUID
	actor      *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAddShipmentToBagCommand creates a command to add a shipment to a bag.
func NewAddShipmentToBagCommand(
	bagID kernel.UUID,
	shipmentID kernel.UUID,
	actor *kernel.UUID,
) (AddShipmentToBagCommand, error) {
	if err := bagID.Validate(); err != nil {
		return AddShipmentToBagCommand{}, errs.NewValueIsInvalidErrorWithCause("bagID", err)
	}
	if err := shipmentID.Validate(); err != nil {
		return AddShipmentToBagCommand{}, errs.NewValueIsInvalidErrorWithCause("shipmentID", err)
	}
	if actor != nil {
		if err := actor.Validate(); err != nil {
			return AddShipmentToBagCommand{}, errs.NewValueIsInvalidErrorWithCause("actor", err)
		}
	}

	return AddShipmentToBagCommand{
		bagID:      bagID,
		shipmentID: shipmentID,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AddShipmentToBagCommand) Validate() error {
	return c.guard.Validate(ErrAddShipmentToBagCommandIsNotConstructed)
}

// BagID returns the target bag ID.
func (c AddShipmentToBagCommand) BagID() kernel.UUID {
	return c.bagID
}

// ShipmentID returns the shipment to add.
func (c AddShipmentToBagCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Actor returns the warehouse staff member performing the action, or nil.
func (c AddShipmentToBagCommand) Actor() *kernel.UUID {
	return c.actor
}
