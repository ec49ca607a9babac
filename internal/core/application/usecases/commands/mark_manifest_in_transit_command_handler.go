package commands

import (
	"context"
	"errors"

	"parcelbridge/internal/core/domain/model/manifest"
	"parcelbridge/internal/core/domain/model/shipment"
	"parcelbridge/internal/pkg/errs"
)

// MarkManifestInTransitCommandHandler moves every parcel on a departed
// manifest into its corridor transit status. The manifest record itself does
// not change; only arrival advances it.
type MarkManifestInTransitCommandHandler struct {
	uowFactory ManifestUoWFactory
}

// NewMarkManifestInTransitCommandHandler creates a handler for in-transit updates.
func NewMarkManifestInTransitCommandHandler(
	uowFactory ManifestUoWFactory,
) (MarkManifestInTransitCommandHandler, error) {
	if uowFactory == nil {
		return MarkManifestInTransitCommandHandler{}, errors.New("uowFactory must not be nil")
	}

	return MarkManifestInTransitCommandHandler{uowFactory: uowFactory}, nil
}

// Handle marks the manifest's cargo in transit.
func (h MarkManifestInTransitCommandHandler) Handle(
	ctx context.Context,
	cmd MarkManifestInTransitCommand,
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

	if targetManifest.Status() != manifest.Departed {
		return errs.NewInvalidStateError("manifest", targetManifest.Status().String())
	}

	_, bagged, err := loadManifestBags(ctx, uow, targetManifest.BagIDs())
	if err != nil {
		return err
	}

	standalone, err := uow.ShipmentRepository().GetByIDs(ctx, targetManifest.ShipmentIDs())
	if err != nil {
		return err
	}

	onBoard := append(append([]*shipment.Shipment{}, bagged...), standalone...)
	for _, parcel := range onBoard {
		if err := parcel.MarkInTransit(cmd.Actor()); err != nil {
			return err
		}
		if err := uow.ShipmentRepository().Update(ctx, parcel); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
