package commands

import (
	"context"
	"errors"

	"parcelbridge/internal/pkg/errs"
)

// AddBagToManifestCommandHandler loads a sealed bag onto a draft manifest.
// A bag belongs to at most one manifest, so the handler checks current
// membership globally before delegating to the aggregate.
type AddBagToManifestCommandHandler struct {
	uowFactory ManifestUoWFactory
}

// NewAddBagToManifestCommandHandler creates a handler for loading bags.
func NewAddBagToManifestCommandHandler(
	uowFactory ManifestUoWFactory,
) (AddBagToManifestCommandHandler, error) {
	if uowFactory == nil {
		return AddBagToManifestCommandHandler{}, errors.New("uowFactory must not be nil")
	}

	return AddBagToManifestCommandHandler{uowFactory: uowFactory}, nil
}

// Handle loads the bag onto the manifest.
func (h AddBagToManifestCommandHandler) Handle(ctx context.Context, cmd AddBagToManifestCommand) error {
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

	targetBag, err := uow.BagRepository().Get(ctx, cmd.BagID())
	if err != nil {
		return err
	}

	holder, err := uow.ManifestRepository().FindByBagID(ctx, cmd.BagID())
	if err != nil {
		return err
	}
	if holder != nil {
		return errs.NewNotEligibleError("bag", "bag is already on manifest "+holder.Number())
	}

	if err := targetManifest.AddBag(targetBag); err != nil {
		return err
	}

	if err := refreshManifestTotals(ctx, uow, targetManifest); err != nil {
		return err
	}

	if err := uow.ManifestRepository().Update(ctx, targetManifest); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
