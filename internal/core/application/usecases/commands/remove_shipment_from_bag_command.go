package commands

import (
	"errors"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

var (
	ErrRemoveShipmentFromBagCommandIsNotConstructed = errors.New(
		"RemoveShipmentFromBagCommand must be created via NewRemoveShipmentFromBagCommand constructor",
	)
)

// RemoveShipmentFromBagCommand takes a shipment back out of an open bag and
// returns it to the warehouse.
type RemoveShipmentFromBagCommand struct {
	bagID      kernel.UUID
	shipmentID kernel.UUID
	actor      *kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveShipmentFromBagCommand creates a command to remove a shipment from a bag.
func NewRemoveShipmentFromBagCommand(
	bagID kernel.UUID,
	shipmentID kernel.UUID,
	actor *kernel.UUID,
) (RemoveShipmentFromBagCommand, error) {
	if err := bagID.Validate(); err != nil {
		return RemoveShipmentFromBagCommand{}, errs.NewValueIsInvalidErrorWithCause("bagID", err)
	}
	if err := shipmentID.Validate(); err != nil {
		return RemoveShipmentFromBagCommand{}, errs.NewValueIsInvalidErrorWithCause("shipmentID", err)
	}
	if actor != nil {
		if err := actor.Validate(); err != nil {
			return RemoveShipmentFromBagCommand{}, errs.NewValueIsInvalidErrorWithCause("actor", err)
		}
	}

	return RemoveShipmentFromBagCommand{
		bagID:      bagID,
		shipmentID: shipmentID,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveShipmentFromBagCommand) Validate() error {
	return c.guard.Validate(ErrRemoveShipmentFromBagCommandIsNotConstructed)
}

// BagID returns the target bag ID.
func (c RemoveShipmentFromBagCommand) BagID() kernel.UUID {
	return c.bagID
}

// ShipmentID returns the shipment to remove.
func (c RemoveShipmentFromBagCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Actor returns the warehouse staff member performing the action, or nil.
func (c RemoveShipmentFromBagCommand) Actor() *kernel.UUID {
	return c.actor
}
