package commands_test

import (
	"testing"

	"parcelbridge/internal/core/application/usecases/commands"
	"parcelbridge/internal/core/domain/model/shipment"
	"parcelbridge/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddBagToManifestCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	member := testShipment(t, shipment.ReceivedAtBD)
	sealed := testSealedBag(t, member)
	targetManifest := testDraftManifest(t)

	cmd, err := commands.NewAddBagToManifestCommand(targetManifest.ID(), sealed.ID())
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
	bagRepo.On("Get", ctx, sealed.ID()).Return(sealed, nil)
	manifestRepo.On("FindByBagID", ctx, sealed.ID()).Return(nil, nil).Once()
	shipmentRepo.On("GetByIDs", ctx, targetManifest.ShipmentIDs()).
		Return([]*shipment.Shipment{}, nil).Once()
	manifestRepo.On("Update", ctx, targetManifest).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockManifestUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler, err := commands.NewAddBagToManifestCommandHandler(factory)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, targetManifest.ContainsBag(sealed.ID()))
	assert.Equal(t, 1, targetManifest.TotalBags())
	assert.Equal(t, 1, targetManifest.TotalParcels())
	manifestRepo.AssertExpectations(t)
}

func TestAddBagToManifestCommandHandler_Handle_OpenBagIsRejected(t *testing.T) {
	ctx := t.Context()
	open := testOpenBag(t)
	targetManifest := testDraftManifest(t)

	cmd, err := commands.NewAddBagToManifestCommand(targetManifest.ID(), open.ID())
	require.NoError(t, err)

	bagRepo := new(MockBagRepository)
	manifestRepo := new(MockManifestRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ManifestRepository").Return(manifestRepo)
	uow.On("BagRepository").Return(bagRepo)
	manifestRepo.On("Get", ctx, targetManifest.ID()).Return(targetManifest, nil).Once()
	bagRepo.On("Get", ctx, open.ID()).Return(open, nil).Once()
	manifestRepo.On("FindByBagID", ctx, open.ID()).Return(nil, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockManifestUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler, err := commands.NewAddBagToManifestCommandHandler(factory)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrNotEligible)
	assert.False(t, targetManifest.ContainsBag(open.ID()))
}

func TestAddBagToManifestCommandHandler_Handle_BagAlreadyManifested(t *testing.T) {
	ctx := t.Context()
	member := testShipment(t, shipment.ReceivedAtBD)
	sealed := testSealedBag(t, member)
	holder := testDraftManifest(t)
	require.NoError(t, holder.AddBag(sealed))

	targetManifest := testDraftManifest(t)

	cmd, err := commands.NewAddBagToManifestCommand(targetManifest.ID(), sealed.ID())
	require.NoError(t, err)

	bagRepo := new(MockBagRepository)
	manifestRepo := new(MockManifestRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ManifestRepository").Return(manifestRepo)
	uow.On("BagRepository").Return(bagRepo)
	manifestRepo.On("Get", ctx, targetManifest.ID()).Return(targetManifest, nil).Once()
	bagRepo.On("Get", ctx, sealed.ID()).Return(sealed, nil).Once()
	manifestRepo.On("FindByBagID", ctx, sealed.ID()).Return(holder, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockManifestUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler, err := commands.NewAddBagToManifestCommandHandler(factory)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrNotEligible)
	assert.False(t, targetManifest.ContainsBag(sealed.ID()))
	manifestRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
