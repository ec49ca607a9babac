package commands

import (
	"context"
	"errors"
)

// RemoveShipmentFromManifestCommandHandler takes a loose shipment off a draft
// manifest. The shipment returns to RECEIVED_AT_BD.
type RemoveShipmentFromManifestCommandHandler struct {
	uowFactory ManifestUoWFactory
}

// NewRemoveShipmentFromManifestCommandHandler creates a handler for unmanifesting shipments.
func NewRemoveShipmentFromManifestCommandHandler(
	uowFactory ManifestUoWFactory,
) (RemoveShipmentFromManifestCommandHandler, error) {
	if uowFactory == nil {
		return RemoveShipmentFromManifestCommandHandler{}, errors.New("uowFactory must not be nil")
	}

	return RemoveShipmentFromManifestCommandHandler{uowFactory: uowFactory}, nil
}

// Handle removes the shipment from the manifest.
func (h RemoveShipmentFromManifestCommandHandler) Handle(
	ctx context.Context,
	cmd RemoveShipmentFromManifestCommand,
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

	if err := targetManifest.RemoveShipment(target, cmd.Actor()); err != nil {
		return err
	}

	if err := refreshManifestTotals(ctx, uow, targetManifest); err != nil {
		return err
	}

	if err := uow.ShipmentRepository().Update(ctx, target); err != nil {
		return err
	}

	if err := uow.ManifestRepository().Update(ctx, targetManifest); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
