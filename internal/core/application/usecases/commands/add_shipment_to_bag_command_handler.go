package commands

import (
	"context"
	"errors"

	"parcelbridge/internal/pkg/errs"
)

// AddShipmentToBagCommandHandler adds a shipment to an open bag. A shipment
// can be in at most one bag at a time across the whole warehouse, so the
// handler checks membership globally before delegating to the aggregate.
type AddShipmentToBagCommandHandler struct {
	uowFactory BaggingUoWFactory
}

// NewAddShipmentToBagCommandHandler creates a handler for bagging shipments.
func NewAddShipmentToBagCommandHandler(
	uowFactory BaggingUoWFactory,
) (AddShipmentToBagCommandHandler, error) {
	if uowFactory == nil {
		return AddShipmentToBagCommandHandler{}, errors.New("uowFactory must not be nil")
	}

	return AddShipmentToBagCommandHandler{uowFactory: uowFactory}, nil
}

// Handle places the shipment into the bag.
func (h AddShipmentToBagCommandHandler) Handle(ctx context.Context, cmd AddShipmentToBagCommand) error {
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

	current, err := uow.BagRepository().FindByShipmentID(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}
	if current != nil {
		return errs.NewNotEligibleError(
			"shipment", "shipment is already in bag "+current.Number())
	}

	if err := targetBag.AddShipment(target, cmd.Actor()); err != nil {
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
