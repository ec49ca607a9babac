package commands

import (
	"errors"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

var (
	ErrRemoveBagFromManifestCommandIsNotConstructed = errors.New(
		"RemoveBagFromManifestCommand must be created via NewRemoveBagFromManifestCommand constructor",
	)
)

// RemoveBagFromManifestCommand unloads a bag from a draft manifest.
// The bag stays sealed and can be loaded onto another manifest.
type RemoveBagFromManifestCommand struct {
	manifestID kernel.UUID
	bagID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveBagFromManifestCommand creates a command to unload a bag.
func NewRemoveBagFromManifestCommand(
	manifestID kernel.UUID,
	bagID kernel.UUID,
) (RemoveBagFromManifestCommand, error) {
	if err := manifestID.Validate(); err != nil {
		return RemoveBagFromManifestCommand{}, errs.NewValueIsInvalidErrorWithCause("manifestID", err)
	}
	if err := bagID.Validate(); err != nil {
		return RemoveBagFromManifestCommand{}, errs.NewValueIsInvalidErrorWithCause("bagID", err)
	}

	return RemoveBagFromManifestCommand{
		manifestID: manifestID,
		bagID:      bagID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveBagFromManifestCommand) Validate() error {
	return c.guard.Validate(ErrRemoveBagFromManifestCommandIsNotConstructed)
}

// ManifestID returns the target manifest ID.
func (c RemoveBagFromManifestCommand) ManifestID() kernel.UUID {
	return c.manifestID
}

// BagID returns the bag to unload.
func (c RemoveBagFromManifestCommand) BagID() kernel.UUID {
	return c.bagID
}
