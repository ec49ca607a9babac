package commands

import (
	"context"
	"errors"
)

// RemoveBagFromManifestCommandHandler unloads a bag from a draft manifest.
type RemoveBagFromManifestCommandHandler struct {
	uowFactory ManifestUoWFactory
}

// NewRemoveBagFromManifestCommandHandler creates a handler for unloading bags.
func NewRemoveBagFromManifestCommandHandler(
	uowFactory ManifestUoWFactory,
) (RemoveBagFromManifestCommandHandler, error) {
	if uowFactory == nil {
		return RemoveBagFromManifestCommandHandler{}, errors.New("uowFactory must not be nil")
	}

	return RemoveBagFromManifestCommandHandler{uowFactory: uowFactory}, nil
}

// Handle unloads the bag from the manifest.
func (h RemoveBagFromManifestCommandHandler) Handle(
	ctx context.Context,
	cmd RemoveBagFromManifestCommand,
) error {
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

	if err := targetManifest.RemoveBag(targetBag); err != nil {
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
