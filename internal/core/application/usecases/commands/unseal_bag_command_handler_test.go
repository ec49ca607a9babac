package commands_test

import (
	"testing"

	"parcelbridge/internal/core/application/usecases/commands"
	"parcelbridge/internal/core/domain/model/bag"
	"parcelbridge/internal/core/domain/model/shipment"
	"parcelbridge/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnsealBagCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	member := testShipment(t, shipment.ReceivedAtBD)
	sealed := testSealedBag(t, member)
	member.ClearPendingEvents()

	cmd, err := commands.NewUnsealBagCommand(sealed.ID(), "Customs inspection", nil)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	bagRepo := new(MockBagRepository)
	manifestRepo := new(MockManifestRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("BagRepository").Return(bagRepo)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("ManifestRepository").Return(manifestRepo)
	bagRepo.On("Get", ctx, sealed.ID()).Return(sealed, nil).Once()
	manifestRepo.On("FindByBagID", ctx, sealed.ID()).Return(nil, nil).Once()
	shipmentRepo.On("GetByIDs", ctx, sealed.ShipmentIDs()).
		Return([]*shipment.Shipment{member}, nil).Once()
	shipmentRepo.On("Update", ctx, member).Return(nil).Once()
	bagRepo.On("DeleteAirInvoice", ctx, sealed.ID()).Return(nil).Once()
	bagRepo.On("Update", ctx, sealed).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBaggingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler, err := commands.NewUnsealBagCommandHandler(factory)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, bag.Open, sealed.Status())
	assert.Equal(t, "Customs inspection", sealed.UnsealReason())
	require.Len(t, member.PendingEvents(), 1)
	assert.Equal(t, "BAG_UNSEALED", member.PendingEvents()[0].Kind().Name())
	bagRepo.AssertExpectations(t)
}

func TestUnsealBagCommandHandler_Handle_BlankReasonIsRejected(t *testing.T) {
	ctx := t.Context()
	member := testShipment(t, shipment.ReceivedAtBD)
	sealed := testSealedBag(t, member)

	cmd, err := commands.NewUnsealBagCommand(sealed.ID(), "   ", nil)
	require.NoError(t, err)

	bagRepo := new(MockBagRepository)
	manifestRepo := new(MockManifestRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("BagRepository").Return(bagRepo)
	uow.On("ManifestRepository").Return(manifestRepo)
	bagRepo.On("Get", ctx, sealed.ID()).Return(sealed, nil).Once()
	manifestRepo.On("FindByBagID", ctx, sealed.ID()).Return(nil, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBaggingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler, err := commands.NewUnsealBagCommandHandler(factory)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Equal(t, bag.Sealed, sealed.Status())
	bagRepo.AssertNotCalled(t, "DeleteAirInvoice", mock.Anything, mock.Anything)
}

func TestUnsealBagCommandHandler_Handle_ManifestedBagIsRejected(t *testing.T) {
	ctx := t.Context()
	member := testShipment(t, shipment.ReceivedAtBD)
	sealed := testSealedBag(t, member)
	holder := testDraftManifest(t)
	require.NoError(t, holder.AddBag(sealed))

	cmd, err := commands.NewUnsealBagCommand(sealed.ID(), "wrong parcel inside", nil)
	require.NoError(t, err)

	bagRepo := new(MockBagRepository)
	manifestRepo := new(MockManifestRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("BagRepository").Return(bagRepo)
	uow.On("ManifestRepository").Return(manifestRepo)
	bagRepo.On("Get", ctx, sealed.ID()).Return(sealed, nil).Once()
	manifestRepo.On("FindByBagID", ctx, sealed.ID()).Return(holder, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBaggingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler, err := commands.NewUnsealBagCommandHandler(factory)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrNotEligible)
	assert.Contains(t, err.Error(), holder.Number())
	assert.Equal(t, bag.Sealed, sealed.Status())
	bagRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUnsealBagCommandHandler_Handle_OpenBagIsRejected(t *testing.T) {
	ctx := t.Context()
	open := testOpenBag(t)

	cmd, err := commands.NewUnsealBagCommand(open.ID(), "wrong parcel", nil)
	require.NoError(t, err)

	bagRepo := new(MockBagRepository)
	manifestRepo := new(MockManifestRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("BagRepository").Return(bagRepo)
	uow.On("ManifestRepository").Return(manifestRepo)
	bagRepo.On("Get", ctx, open.ID()).Return(open, nil).Once()
	manifestRepo.On("FindByBagID", ctx, open.ID()).Return(nil, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBaggingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler, err := commands.NewUnsealBagCommandHandler(factory)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidState)
}
