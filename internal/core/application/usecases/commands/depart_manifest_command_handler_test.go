package commands_test

import (
	"testing"

	"parcelbridge/internal/core/application/usecases/commands"
	"parcelbridge/internal/core/domain/model/bag"
	"parcelbridge/internal/core/domain/model/manifest"
	"parcelbridge/internal/core/domain/model/shipment"
	"parcelbridge/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// departureReady builds a finalized manifest holding one sealed bag with one
// shipment inside, with all aggregates advanced to the pre-departure state.
func departureReady(t *testing.T) (*manifest.Manifest, *bag.Bag, *shipment.Shipment) {
	t.Helper()

	bagged := testShipment(t, shipment.ReceivedAtBD)
	sealed := testSealedBag(t, bagged)

	m := testDraftManifest(t)
	require.NoError(t, m.AddBag(sealed))
	require.NoError(t, m.Finalize(nil))
	require.NoError(t, sealed.EnterManifest())
	require.NoError(t, bagged.MarkManifested(m.Number(), nil))
	bagged.ClearPendingEvents()

	return m, sealed, bagged
}

func TestDepartManifestCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	targetManifest, sealed, bagged := departureReady(t)

	cmd, err := commands.NewDepartManifestCommand(targetManifest.ID(), nil)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	bagRepo := new(MockBagRepository)
	manifestRepo := new(MockManifestRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ManifestRepository").Return(manifestRepo)
	uow.On("BagRepository").Return(bagRepo)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	manifestRepo.On("Get", ctx, targetManifest.ID()).Return(targetManifest, nil).Once()
	bagRepo.On("Get", ctx, sealed.ID()).Return(sealed, nil).Once()
	shipmentRepo.On("GetByIDs", ctx, sealed.ShipmentIDs()).
		Return([]*shipment.Shipment{bagged}, nil).Once()
	shipmentRepo.On("GetByIDs", ctx, targetManifest.ShipmentIDs()).
		Return([]*shipment.Shipment{}, nil).Once()
	bagRepo.On("Update", ctx, sealed).Return(nil).Once()
	shipmentRepo.On("Update", ctx, bagged).Return(nil).Once()
	manifestRepo.On("Update", ctx, targetManifest).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockManifestUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler, err := commands.NewDepartManifestCommandHandler(factory)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, manifest.Departed, targetManifest.Status())
	assert.Equal(t, bag.Dispatched, sealed.Status())
	assert.Equal(t, shipment.HandedToAirline, bagged.Status())
	require.Len(t, bagged.PendingEvents(), 1)
	assert.Contains(t, bagged.PendingEvents()[0].Description(), targetManifest.FlightNumber())
	manifestRepo.AssertExpectations(t)
}

func TestDepartManifestCommandHandler_Handle_DraftIsRejected(t *testing.T) {
	ctx := t.Context()
	targetManifest := testDraftManifest(t)

	cmd, err := commands.NewDepartManifestCommand(targetManifest.ID(), nil)
	require.NoError(t, err)

	manifestRepo := new(MockManifestRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ManifestRepository").Return(manifestRepo)
	manifestRepo.On("Get", ctx, targetManifest.ID()).Return(targetManifest, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockManifestUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler, err := commands.NewDepartManifestCommandHandler(factory)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, manifest.Draft, targetManifest.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestMarkManifestInTransitCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	targetManifest, sealed, bagged := departureReady(t)
	require.NoError(t, targetManifest.MarkDeparted())
	require.NoError(t, sealed.Dispatch())
	require.NoError(t, bagged.MarkHandedToAirline(targetManifest.FlightNumber(), "", nil))
	bagged.ClearPendingEvents()

	cmd, err := commands.NewMarkManifestInTransitCommand(targetManifest.ID(), nil)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	bagRepo := new(MockBagRepository)
	manifestRepo := new(MockManifestRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ManifestRepository").Return(manifestRepo)
	uow.On("BagRepository").Return(bagRepo)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	manifestRepo.On("Get", ctx, targetManifest.ID()).Return(targetManifest, nil).Once()
	bagRepo.On("Get", ctx, sealed.ID()).Return(sealed, nil).Once()
	shipmentRepo.On("GetByIDs", ctx, sealed.ShipmentIDs()).
		Return([]*shipment.Shipment{bagged}, nil).Once()
	shipmentRepo.On("GetByIDs", ctx, targetManifest.ShipmentIDs()).
		Return([]*shipment.Shipment{}, nil).Once()
	shipmentRepo.On("Update", ctx, bagged).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockManifestUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler, err := commands.NewMarkManifestInTransitCommandHandler(factory)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, shipment.InTransitToHK, bagged.Status())
	assert.Equal(t, manifest.Departed, targetManifest.Status())
	manifestRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMarkManifestInTransitCommandHandler_Handle_RequiresDeparted(t *testing.T) {
	ctx := t.Context()
	targetManifest, _, _ := departureReady(t)

	cmd, err := commands.NewMarkManifestInTransitCommand(targetManifest.ID(), nil)
	require.NoError(t, err)

	manifestRepo := new(MockManifestRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ManifestRepository").Return(manifestRepo)
	manifestRepo.On("Get", ctx, targetManifest.ID()).Return(targetManifest, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockManifestUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler, err := commands.NewMarkManifestInTransitCommandHandler(factory)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestArriveManifestCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	targetManifest, _, _ := departureReady(t)
	require.NoError(t, targetManifest.MarkDeparted())

	cmd, err := commands.NewArriveManifestCommand(targetManifest.ID())
	require.NoError(t, err)

	manifestRepo := new(MockManifestRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ManifestRepository").Return(manifestRepo)
	manifestRepo.On("Get", ctx, targetManifest.ID()).Return(targetManifest, nil).Once()
	manifestRepo.On("Update", ctx, targetManifest).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockManifestUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler, err := commands.NewArriveManifestCommandHandler(factory)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, manifest.Arrived, targetManifest.Status())
}
