package commands

import (
	"errors"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

var (
	ErrAddBagToManifestCommandIsNotConstructed = errors.New(
		"AddBagToManifestCommand must be created via NewAddBagToManifestCommand constructor",
	)
)

// AddBagToManifestCommand loads a sealed bag onto a draft manifest.
type AddBagToManifestCommand struct {
	manifestID kernel.UUID
	bagID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewAddBagToManifestCommand creates a command to load a bag onto a manifest.
func NewAddBagToManifestCommand(
	manifestID kernel.UUID,
	bagID kernel.UUID,
) (AddBagToManifestCommand, error) {
	if err := manifestID.Validate(); err != nil {
		return AddBagToManifestCommand{}, errs.NewValueIsInvalidErrorWithCause("manifestID", err)
	}
	if err := bagID.Validate(); err != nil {
		return AddBagToManifestCommand{}, errs.NewValueIsInvalidErrorWithCause("bagID", err)
	}

	return AddBagToManifestCommand{
		manifestID: manifestID,
		bagID:      bagID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AddBagToManifestCommand) Validate() error {
	return c.guard.Validate(ErrAddBagToManifestCommandIsNotConstructed)
}

// ManifestID returns the target manifest ID.
func (c AddBagToManifestCommand) ManifestID() kernel.UUID {
	return c.manifestID
}

// BagID returns the bag to load.
func (c AddBagToManifestCommand) BagID() kernel.UUID {
	return c.bagID
}
