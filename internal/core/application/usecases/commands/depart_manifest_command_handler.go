package commands

import (
	"context"
	"errors"

	"parcelbridge/internal/core/domain/model/shipment"
)

// DepartManifestCommandHandler records the airline handover: the manifest
// departs, every bag on board is dispatched and every parcel advances to
// HANDED_TO_AIRLINE with the flight and master air waybill on its history.
type DepartManifestCommandHandler struct {
	uowFactory ManifestUoWFactory
}

// NewDepartManifestCommandHandler creates a handler for departing manifests.
func NewDepartManifestCommandHandler(
	uowFactory ManifestUoWFactory,
) (DepartManifestCommandHandler, error) {
	if uowFactory == nil {
		return DepartManifestCommandHandler{}, errors.New("uowFactory must not be nil")
	}

	return DepartManifestCommandHandler{uowFactory: uowFactory}, nil
}

// Handle departs the manifest.
func (h DepartManifestCommandHandler) Handle(ctx context.Context, cmd DepartManifestCommand) error {
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

	if err := targetManifest.MarkDeparted(); err != nil {
		return err
	}

	bags, bagged, err := loadManifestBags(ctx, uow, targetManifest.BagIDs())
	if err != nil {
		return err
	}

	standalone, err := uow.ShipmentRepository().GetByIDs(ctx, targetManifest.ShipmentIDs())
	if err != nil {
		return err
	}

	for _, member := range bags {
		if err := member.Dispatch(); err != nil {
			return err
		}
		if err := uow.BagRepository().Update(ctx, member); err != nil {
			return err
		}
	}

	onBoard := append(append([]*shipment.Shipment{}, bagged...), standalone...)
	for _, parcel := range onBoard {
		err := parcel.MarkHandedToAirline(
			targetManifest.FlightNumber(), targetManifest.MAWBNumber(), cmd.Actor())
		if err != nil {
			return err
		}
		if err := uow.ShipmentRepository().Update(ctx, parcel); err != nil {
			return err
		}
	}

	if err := uow.ManifestRepository().Update(ctx, targetManifest); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
