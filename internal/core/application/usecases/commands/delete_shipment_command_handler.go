package commands

import (
	"context"
	"errors"
)

// DeleteShipmentCommandHandler deletes a pending shipment together with its
// tracking events.
type DeleteShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewDeleteShipmentCommandHandler creates a handler for deleting shipments.
func NewDeleteShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
) (DeleteShipmentCommandHandler, error) {
	if uowFactory == nil {
		return DeleteShipmentCommandHandler{}, errors.New("uowFactory must not be nil")
	}

	return DeleteShipmentCommandHandler{uowFactory: uowFactory}, nil
}

// Handle deletes the shipment if it is still pending.
func (h DeleteShipmentCommandHandler) Handle(ctx context.Context, cmd DeleteShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	target, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err := target.EnsureDeletable(); err != nil {
		return err
	}

	if err := uow.ShipmentRepository().Delete(ctx, target.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
