package commands

import (
	"context"
	"errors"
	"fmt"

	"parcelbridge/internal/pkg/errs"
)

// DeleteBagCommandHandler deletes an open bag. Members still inside the bag
// are sent back to RECEIVED_AT_BD before the bag disappears, so no shipment
// is ever left pointing at a bag that no longer exists.
type DeleteBagCommandHandler struct {
	uowFactory BaggingUoWFactory
}

// NewDeleteBagCommandHandler creates a handler for deleting bags.
func NewDeleteBagCommandHandler(uowFactory BaggingUoWFactory) (DeleteBagCommandHandler, error) {
	if uowFactory == nil {
		return DeleteBagCommandHandler{}, errors.New("uowFactory must not be nil")
	}

	return DeleteBagCommandHandler{uowFactory: uowFactory}, nil
}

// Handle deletes the bag.
func (h DeleteBagCommandHandler) Handle(ctx context.Context, cmd DeleteBagCommand) error {
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

	if err := targetBag.EnsureDeletable(); err != nil {
		return err
	}

	holder, err := uow.ManifestRepository().FindByBagID(ctx, targetBag.ID())
	if err != nil {
		return err
	}
	if holder != nil {
		return errs.NewNotEligibleError("bag", "bag is attached to manifest "+holder.Number())
	}

	members, err := uow.ShipmentRepository().GetByIDs(ctx, targetBag.ShipmentIDs())
	if err != nil {
		return err
	}
	for _, member := range members {
		description := fmt.Sprintf("Removed from deleted bag %s", targetBag.Number())
		if err := member.ReturnToWarehouse(description, cmd.Actor()); err != nil {
			return err
		}
		if err := uow.ShipmentRepository().Update(ctx, member); err != nil {
			return err
		}
	}

	if err := uow.BagRepository().Delete(ctx, targetBag.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
