package commands_test

import (
	"testing"

	"parcelbridge/internal/core/application/usecases/commands"
	"parcelbridge/internal/core/domain/model/bag"
	"parcelbridge/internal/core/domain/model/manifest"
	"parcelbridge/internal/core/domain/model/shipment"
	"parcelbridge/internal/core/ports"
	"parcelbridge/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFinalizeManifestCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	bagged := testShipment(t, shipment.ReceivedAtBD)
	sealed := testSealedBag(t, bagged)
	bagged.ClearPendingEvents()

	loose := testShipment(t, shipment.ReceivedAtBD)

	targetManifest := testDraftManifest(t)
	require.NoError(t, targetManifest.AddBag(sealed))
	require.NoError(t, targetManifest.AddShipment(loose))

	cmd, err := commands.NewFinalizeManifestCommand(targetManifest.ID(), nil)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	bagRepo := new(MockBagRepository)
	manifestRepo := new(MockManifestRepository)
	uow := new(MockUoW)
	exporter := new(MockExportGenerator)

	sheet := ports.Artifact{Name: "MF202608280042.pdf", ContentType: "application/pdf", Rows: 2}
	workbook := ports.Artifact{Name: "MF202608280042.csv", ContentType: "text/csv", Rows: 2}

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ManifestRepository").Return(manifestRepo)
	uow.On("BagRepository").Return(bagRepo)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	manifestRepo.On("Get", ctx, targetManifest.ID()).Return(targetManifest, nil).Once()
	bagRepo.On("Get", ctx, sealed.ID()).Return(sealed, nil).Once()
	shipmentRepo.On("GetByIDs", ctx, sealed.ShipmentIDs()).
		Return([]*shipment.Shipment{bagged}, nil).Once()
	shipmentRepo.On("GetByIDs", ctx, targetManifest.ShipmentIDs()).
		Return([]*shipment.Shipment{loose}, nil).Once()
	bagRepo.On("Update", ctx, sealed).Return(nil).Once()
	shipmentRepo.On("Update", ctx, bagged).Return(nil).Once()
	shipmentRepo.On("Update", ctx, loose).Return(nil).Once()
	exporter.On("GenerateManifestSheet", targetManifest, mock.Anything, mock.Anything).
		Return(sheet, nil).Once()
	exporter.On("GenerateManifestWorkbook", targetManifest, mock.Anything, mock.Anything).
		Return(workbook, nil).Once()
	manifestRepo.On("SaveExport", ctx, mock.AnythingOfType("ports.ManifestExport")).Return(nil).Once()
	manifestRepo.On("Update", ctx, targetManifest).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockManifestUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler, err := commands.NewFinalizeManifestCommandHandler(factory, exporter)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, manifest.Finalized, targetManifest.Status())
	assert.Equal(t, bag.InManifest, sealed.Status())
	assert.Equal(t, shipment.InExportManifest, bagged.Status())
	assert.Equal(t, shipment.InExportManifest, loose.Status())
	assert.Equal(t, 1, targetManifest.TotalBags())
	assert.Equal(t, 2, targetManifest.TotalParcels())
	manifestRepo.AssertExpectations(t)
	exporter.AssertExpectations(t)
}

func TestFinalizeManifestCommandHandler_Handle_EmptyManifestIsRejected(t *testing.T) {
	ctx := t.Context()
	targetManifest := testDraftManifest(t)

	cmd, err := commands.NewFinalizeManifestCommand(targetManifest.ID(), nil)
	require.NoError(t, err)

	manifestRepo := new(MockManifestRepository)
	uow := new(MockUoW)
	exporter := new(MockExportGenerator)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ManifestRepository").Return(manifestRepo)
	manifestRepo.On("Get", ctx, targetManifest.ID()).Return(targetManifest, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockManifestUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler, err := commands.NewFinalizeManifestCommandHandler(factory, exporter)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, manifest.Draft, targetManifest.Status())
	exporter.AssertNotCalled(t, "GenerateManifestSheet", mock.Anything, mock.Anything, mock.Anything)
}

func TestFinalizeManifestCommandHandler_Handle_SheetFailureAbortsCascade(t *testing.T) {
	ctx := t.Context()
	bagged := testShipment(t, shipment.ReceivedAtBD)
	sealed := testSealedBag(t, bagged)
	bagged.ClearPendingEvents()

	targetManifest := testDraftManifest(t)
	require.NoError(t, targetManifest.AddBag(sealed))

	cmd, err := commands.NewFinalizeManifestCommand(targetManifest.ID(), nil)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	bagRepo := new(MockBagRepository)
	manifestRepo := new(MockManifestRepository)
	uow := new(MockUoW)
	exporter := new(MockExportGenerator)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ManifestRepository").Return(manifestRepo)
	uow.On("BagRepository").Return(bagRepo)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	manifestRepo.On("Get", ctx, targetManifest.ID()).Return(targetManifest, nil).Once()
	bagRepo.On("Get", ctx, sealed.ID()).Return(sealed, nil).Once()
	shipmentRepo.On("GetByIDs", ctx, mock.Anything).
		Return([]*shipment.Shipment{bagged}, nil).Once()
	shipmentRepo.On("GetByIDs", ctx, mock.Anything).
		Return([]*shipment.Shipment{}, nil).Once()
	bagRepo.On("Update", ctx, sealed).Return(nil).Once()
	shipmentRepo.On("Update", ctx, bagged).Return(nil).Once()
	exporter.On("GenerateManifestSheet", targetManifest, mock.Anything, mock.Anything).
		Return(ports.Artifact{}, errs.NewValueIsInvalidError("template")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockManifestUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler, err := commands.NewFinalizeManifestCommandHandler(factory, exporter)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	manifestRepo.AssertNotCalled(t, "SaveExport", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestFinalizeManifestCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.FinalizeManifestCommand{} // not constructed properly

	factory := new(MockManifestUoWFactory)
	exporter := new(MockExportGenerator)
	handler, err := commands.NewFinalizeManifestCommandHandler(factory, exporter)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrFinalizeManifestCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
