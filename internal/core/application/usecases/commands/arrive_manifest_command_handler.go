package commands

import (
	"context"
	"errors"
)

// ArriveManifestCommandHandler marks a departed manifest as arrived.
// Parcels keep their transit status until they are scanned in at the
// destination facility, one by one.
type ArriveManifestCommandHandler struct {
	uowFactory ManifestUoWFactory
}

// NewArriveManifestCommandHandler creates a handler for arriving manifests.
func NewArriveManifestCommandHandler(
	uowFactory ManifestUoWFactory,
) (ArriveManifestCommandHandler, error) {
	if uowFactory == nil {
		return ArriveManifestCommandHandler{}, errors.New("uowFactory must not be nil")
	}

	return ArriveManifestCommandHandler{uowFactory: uowFactory}, nil
}

// Handle arrives the manifest.
func (h ArriveManifestCommandHandler) Handle(ctx context.Context, cmd ArriveManifestCommand) error {
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

	if err := targetManifest.MarkArrived(); err != nil {
		return err
	}

	if err := uow.ManifestRepository().Update(ctx, targetManifest); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
