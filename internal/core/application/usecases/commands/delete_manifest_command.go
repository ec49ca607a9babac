package commands

import (
	"errors"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

var (
	ErrDeleteManifestCommandIsNotConstructed = errors.New(
		"DeleteManifestCommand must be created via NewDeleteManifestCommand constructor",
	)
)

// DeleteManifestCommand deletes a draft manifest. Members are detached, not
// mutated: bags stay sealed and loose shipments keep their status.
type DeleteManifestCommand struct {
	manifestID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteManifestCommand creates a command to delete a draft manifest.
func NewDeleteManifestCommand(manifestID kernel.UUID) (DeleteManifestCommand, error) {
	if err := manifestID.Validate(); err != nil {
		return DeleteManifestCommand{}, errs.NewValueIsInvalidErrorWithCause("manifestID", err)
	}

	return DeleteManifestCommand{
		manifestID: manifestID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteManifestCommand) Validate() error {
	return c.guard.Validate(ErrDeleteManifestCommandIsNotConstructed)
}

// ManifestID returns the target manifest ID.
func (c DeleteManifestCommand) ManifestID() kernel.UUID {
	return c.manifestID
}
