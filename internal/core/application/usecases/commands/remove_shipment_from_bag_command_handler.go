package commands

import (
	"context"
	"errors"
)

// RemoveShipmentFromBagCommandHandler removes a shipment from an open bag.
// The shipment goes back to RECEIVED_AT_BD so it can be re-bagged or
// manifested standalone.
type RemoveShipmentFromBagCommandHandler struct {
	uowFactory BaggingUoWFactory
}

// NewRemoveShipmentFromBagCommandHandler creates a handler for unbagging shipments.
func NewRemoveShipmentFromBagCommandHandler(
	uowFactory BaggingUoWFactory,
) (RemoveShipmentFromBagCommandHandler, error) {
	if uowFactory == nil {
		return RemoveShipmentFromBagCommandHandler{}, errors.New("uowFactory must not be nil")
	}

	return RemoveShipmentFromBagCommandHandler{uowFactory: uowFactory}, nil
}

// Handle removes the shipment from the bag.
func (h RemoveShipmentFromBagCommandHandler) Handle(
	ctx context.Context,
	cmd RemoveShipmentFromBagCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	targetBag, err := uow.BagRepository().Get(ctx, cmd.BagID())
	if err != nil {
		return err
	}

	target, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err := targetBag.RemoveShipment(target, cmd.Actor()); err != nil {
		return err
	}

	if err := uow.ShipmentRepository().Update(ctx, target); err != nil {
		return err
	}

	if err := uow.BagRepository().Update(ctx, targetBag); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
