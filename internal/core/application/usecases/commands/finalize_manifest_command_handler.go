package commands

import (
	"context"
	"errors"

	"parcelbridge/internal/core/domain/model/bag"
	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/core/domain/model/shipment"
	"parcelbridge/internal/core/ports"
)

// FinalizeManifestCommandHandler finalizes a draft manifest: every bag enters
// the manifest, every parcel on board advances to IN_EXPORT_MANIFEST, the
// totals are recomputed from the live membership and the customs documents
// are generated. The whole cascade commits or rolls back as one.
type FinalizeManifestCommandHandler struct {
	uowFactory ManifestUoWFactory
	exporter   ports.ExportGenerator
}

// NewFinalizeManifestCommandHandler creates a handler for finalizing manifests.
func NewFinalizeManifestCommandHandler(
	uowFactory ManifestUoWFactory,
	exporter ports.ExportGenerator,
) (FinalizeManifestCommandHandler, error) {
	if uowFactory == nil {
		return FinalizeManifestCommandHandler{}, errors.New("uowFactory must not be nil")
	}
	if exporter == nil {
		return FinalizeManifestCommandHandler{}, errors.New("exporter must not be nil")
	}

	return FinalizeManifestCommandHandler{uowFactory: uowFactory, exporter: exporter}, nil
}

// Handle finalizes the manifest.
func (h FinalizeManifestCommandHandler) Handle(ctx context.Context, cmd FinalizeManifestCommand) error {
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

	if err := targetManifest.Finalize(cmd.Actor()); err != nil {
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
		if err := member.EnterManifest(); err != nil {
			return err
		}
		if err := uow.BagRepository().Update(ctx, member); err != nil {
			return err
		}
	}

	onBoard := append(append([]*shipment.Shipment{}, bagged...), standalone...)
	for _, parcel := range onBoard {
		if err := parcel.MarkManifested(targetManifest.Number(), cmd.Actor()); err != nil {
			return err
		}
		if err := uow.ShipmentRepository().Update(ctx, parcel); err != nil {
			return err
		}
	}

	targetManifest.RecalculateTotals(bags, standalone)

	sheet, err := h.exporter.GenerateManifestSheet(targetManifest, bags, onBoard)
	if err != nil {
		return err
	}
	workbook, err := h.exporter.GenerateManifestWorkbook(targetManifest, bags, onBoard)
	if err != nil {
		return err
	}

	export := ports.ManifestExport{
		ManifestID:  targetManifest.ID(),
		Sheet:       sheet,
		Workbook:    workbook,
		GeneratedBy: cmd.Actor(),
	}
	if err := uow.ManifestRepository().SaveExport(ctx, export); err != nil {
		return err
	}

	if err := uow.ManifestRepository().Update(ctx, targetManifest); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// loadManifestBags loads the manifest's bags and, transitively, the
// shipments they carry.
func loadManifestBags(
	ctx context.Context,
	uow ManifestUoW,
	bagIDs []kernel.UUID,
) ([]*bag.Bag, []*shipment.Shipment, error) {
	bags := make([]*bag.Bag, 0, len(bagIDs))
	var bagged []*shipment.Shipment
	for _, bagID := range bagIDs {
		member, err := uow.BagRepository().Get(ctx, bagID)
		if err != nil {
			return nil, nil, err
		}
		bags = append(bags, member)

		contents, err := uow.ShipmentRepository().GetByIDs(ctx, member.ShipmentIDs())
		if err != nil {
			return nil, nil, err
		}
		bagged = append(bagged, contents...)
	}

	return bags, bagged, nil
}
