package commands

import (
	"context"
	"errors"
)

// DeleteManifestCommandHandler deletes a draft manifest. The membership rows
// go with it; the bags and shipments that were on the draft are untouched.
type DeleteManifestCommandHandler struct {
	uowFactory ManifestUoWFactory
}

// NewDeleteManifestCommandHandler creates a handler for deleting manifests.
func NewDeleteManifestCommandHandler(
	uowFactory ManifestUoWFactory,
) (DeleteManifestCommandHandler, error) {
	if uowFactory == nil {
		return DeleteManifestCommandHandler{}, errors.New("uowFactory must not be nil")
	}

	return DeleteManifestCommandHandler{uowFactory: uowFactory}, nil
}

// Handle deletes the manifest.
func (h DeleteManifestCommandHandler) Handle(ctx context.Context, cmd DeleteManifestCommand) error {
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

	if err := targetManifest.EnsureDeletable(); err != nil {
		return err
	}

	if err := uow.ManifestRepository().Delete(ctx, targetManifest.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
