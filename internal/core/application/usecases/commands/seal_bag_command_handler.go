package commands

import (
	"context"
	"errors"

	"parcelbridge/internal/core/ports"
)

// SealBagCommandHandler seals a bag, recomputes its weight from the live
// member weights, announces the seal on every member's tracking history and
// stores the generated air invoice. Everything happens in one transaction, so
// a failed invoice generation leaves the bag open.
type SealBagCommandHandler struct {
	uowFactory BaggingUoWFactory
	exporter   ports.ExportGenerator
}

// NewSealBagCommandHandler creates a handler for sealing bags.
func NewSealBagCommandHandler(
	uowFactory BaggingUoWFactory,
	exporter ports.ExportGenerator,
) (SealBagCommandHandler, error) {
	if uowFactory == nil {
		return SealBagCommandHandler{}, errors.New("uowFactory must not be nil")
	}
	if exporter == nil {
		return SealBagCommandHandler{}, errors.New("exporter must not be nil")
	}

	return SealBagCommandHandler{uowFactory: uowFactory, exporter: exporter}, nil
}

// Handle seals the bag.
func (h SealBagCommandHandler) Handle(ctx context.Context, cmd SealBagCommand) error {
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

	members, err := uow.ShipmentRepository().GetByIDs(ctx, targetBag.ShipmentIDs())
	if err != nil {
		return err
	}

	if err := targetBag.Seal(cmd.Actor()); err != nil {
		return err
	}
	targetBag.RecalculateWeight(members)

	for _, member := range members {
		if err := member.AnnounceSealed(targetBag.Number(), cmd.Actor()); err != nil {
			return err
		}
		if err := uow.ShipmentRepository().Update(ctx, member); err != nil {
			return err
		}
	}

	artifact, err := h.exporter.GenerateAirInvoice(targetBag, members)
	if err != nil {
		return err
	}

	invoice := ports.AirInvoice{
		BagID:         targetBag.ID(),
		InvoiceNumber: targetBag.Number(),
		Artifact:      artifact,
		GeneratedBy:   cmd.Actor(),
	}
	if err := uow.BagRepository().SaveAirInvoice(ctx, invoice); err != nil {
		return err
	}

	if err := uow.BagRepository().Update(ctx, targetBag); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
