package commands

import (
	"context"
	"errors"

	"parcelbridge/internal/core/domain/model/bag"
	"parcelbridge/internal/core/domain/model/kernel"
)

// CreateBagResult carries the identifiers of a freshly opened bag.
type CreateBagResult struct {
	BagID  kernel.UUID
	Number string
}

// CreateBagCommandHandler opens a new empty bag with the next sequential
// warehouse bag number.
type CreateBagCommandHandler struct {
	uowFactory BaggingUoWFactory
}

// NewCreateBagCommandHandler creates a handler for opening bags.
func NewCreateBagCommandHandler(uowFactory BaggingUoWFactory) (CreateBagCommandHandler, error) {
	if uowFactory == nil {
		return CreateBagCommandHandler{}, errors.New("uowFactory must not be nil")
	}

	return CreateBagCommandHandler{uowFactory: uowFactory}, nil
}

// Handle opens a new bag.
func (h CreateBagCommandHandler) Handle(
	ctx context.Context,
	cmd CreateBagCommand,
) (CreateBagResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateBagResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateBagResult{}, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	number, err := uow.BagRepository().NextBagNumber(ctx)
	if err != nil {
		return CreateBagResult{}, err
	}

	newBag, err := bag.NewBag(kernel.NewUUID(), number)
	if err != nil {
		return CreateBagResult{}, err
	}

	if err := uow.BagRepository().Add(ctx, newBag); err != nil {
		return CreateBagResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return CreateBagResult{}, err
	}

	return CreateBagResult{BagID: newBag.ID(), Number: newBag.Number()}, nil
}
