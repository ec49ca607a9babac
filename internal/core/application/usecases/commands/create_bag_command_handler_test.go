package commands_test

import (
	"testing"

	"parcelbridge/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateBagCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateBagCommand(nil)
	require.NoError(t, err)

	bagRepo := new(MockBagRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("BagRepository").Return(bagRepo)
	bagRepo.On("NextBagNumber", ctx).Return("BAG-00043", nil).Once()
	bagRepo.On("Add", ctx, mock.AnythingOfType("*bag.Bag")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBaggingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler, err := commands.NewCreateBagCommandHandler(factory)
	require.NoError(t, err)

	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "BAG-00043", result.Number)
	assert.NoError(t, result.BagID.Validate())
	bagRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateBagCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateBagCommand{} // not constructed properly

	factory := new(MockBaggingUoWFactory)
	handler, err := commands.NewCreateBagCommandHandler(factory)
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateBagCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
