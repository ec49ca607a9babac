package commands

import (
	"context"
	"errors"

	"parcelbridge/internal/pkg/errs"
)

// UnsealBagCommandHandler reopens a sealed bag, announces the broken seal on
// every member's tracking history and discards the now-stale air invoice.
type UnsealBagCommandHandler struct {
	uowFactory BaggingUoWFactory
}

// NewUnsealBagCommandHandler creates a handler for unsealing bags.
func NewUnsealBagCommandHandler(uowFactory BaggingUoWFactory) (UnsealBagCommandHandler, error) {
	if uowFactory == nil {
		return UnsealBagCommandHandler{}, errors.New("uowFactory must not be nil")
	}

	return UnsealBagCommandHandler{uowFactory: uowFactory}, nil
}

// Handle unseals the bag.
func (h UnsealBagCommandHandler) Handle(ctx context.Context, cmd UnsealBagCommand) error {
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

	holder, err := uow.ManifestRepository().FindByBagID(ctx, targetBag.ID())
	if err != nil {
		return err
	}
	if holder != nil {
		return errs.NewNotEligibleError("bag", "bag is attached to manifest "+holder.Number())
	}

	if err := targetBag.Unseal(cmd.Reason(), cmd.Actor()); err != nil {
		return err
	}

	members, err := uow.ShipmentRepository().GetByIDs(ctx, targetBag.ShipmentIDs())
	if err != nil {
		return err
	}
	for _, member := range members {
		if err := member.AnnounceUnsealed(targetBag.Number(), cmd.Reason(), cmd.Actor()); err != nil {
			return err
		}
		if err := uow.ShipmentRepository().Update(ctx, member); err != nil {
			return err
		}
	}

	if err := uow.BagRepository().DeleteAirInvoice(ctx, targetBag.ID()); err != nil {
		return err
	}

	if err := uow.BagRepository().Update(ctx, targetBag); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
