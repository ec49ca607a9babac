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

func TestUpdateShipmentStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	target := testShipment(t, shipment.Booked)
	cmd, err := commands.NewUpdateShipmentStatusCommand(
		target.ID(), shipment.ReceivedAtBD, "Dhaka Warehouse", "", nil)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	shipmentRepo.On("Get", ctx, target.ID()).Return(target, nil).Once()
	shipmentRepo.On("Update", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler, err := commands.NewUpdateShipmentStatusCommandHandler(factory)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, shipment.ReceivedAtBD, target.Status())
	shipmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateShipmentStatusCommandHandler_Handle_RejectsSkippedStep(t *testing.T) {
	ctx := t.Context()
	target := testShipment(t, shipment.Booked)
	cmd, err := commands.NewUpdateShipmentStatusCommand(
		target.ID(), shipment.BaggedForExport, "", "", nil)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, target.ID()).Return(target, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler, err := commands.NewUpdateShipmentStatusCommandHandler(factory)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, shipment.Booked, target.Status())
	shipmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateShipmentStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.UpdateShipmentStatusCommand{} // not constructed properly

	factory := new(MockShipmentUoWFactory)
	handler, err := commands.NewUpdateShipmentStatusCommandHandler(factory)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrUpdateShipmentStatusCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestUpdateShipmentStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	target := testShipment(t, shipment.Booked)
	cmd, err := commands.NewUpdateShipmentStatusCommand(
		target.ID(), shipment.ReceivedAtBD, "", "", nil)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, target.ID()).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler, err := commands.NewUpdateShipmentStatusCommandHandler(factory)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
