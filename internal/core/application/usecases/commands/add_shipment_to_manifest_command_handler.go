package commands

import (
	"context"
	"errors"

	"parcelbridge/internal/pkg/errs"
)

// AddShipmentToManifestCommandHandler places a loose shipment onto a draft
// manifest. Shipments inside a bag travel with the bag and may not be
// manifested individually, and a shipment belongs to at most one manifest.
type AddShipmentToManifestCommandHandler struct {
	uowFactory ManifestUoWFactory
}

// NewAddShipmentToManifestCommandHandler creates a handler for manifesting loose shipments.
func NewAddShipmentToManifestCommandHandler(
	uowFactory ManifestUoWFactory,
) (AddShipmentToManifestCommandHandler, error) {
	if uowFactory == nil {
		return AddShipmentToManifestCommandHandler{}, errors.New("uowFactory must not be nil")
	}

	return AddShipmentToManifestCommandHandler{uowFactory: uowFactory}, nil
}

// Handle places the shipment onto the manifest.
func (h AddShipmentToManifestCommandHandler) Handle(
	ctx context.Context,
	cmd AddShipmentToManifestCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	targetManifest, err := uow.ManifestRepository().Get(ctx, cmd.ManifestID())
	if err != nil {
		return err
	}

	target, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	enclosing, err := uow.BagRepository().FindByShipmentID(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}
	if enclosing != nil {
		return errs.NewNotEligibleError(
			"shipment", "shipment is inside bag "+enclosing.Number())
	}

	holder, err := uow.ManifestRepository().FindByShipmentID(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}
	if holder != nil {
		return errs.NewNotEligibleError(
			"shipment", "shipment is already on manifest "+holder.Number())
	}

	if err := targetManifest.AddShipment(target); err != nil {
		return err
	}

	if err := refreshManifestTotals(ctx, uow, targetManifest); err != nil {
		return err
	}

	if err := uow.ManifestRepository().Update(ctx, targetManifest); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
