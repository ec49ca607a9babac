package commands

import (
	"errors"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

var (
	ErrFinalizeManifestCommandIsNotConstructed = errors.New(
		"FinalizeManifestCommand must be created via NewFinalizeManifestCommand constructor",
	)
)

// FinalizeManifestCommand locks a draft manifest for departure. Membership
// becomes immutable, every bag and loose shipment advances, and the customs
// documents are generated.
type FinalizeManifestCommand struct {
	manifestID kernel.UUID
	actor      *kernel.UUID

	guard guard.ConstructorGuard
}

// NewFinalizeManifestCommand creates a command to finalize a manifest.
func NewFinalizeManifestCommand(
	manifestID kernel.UUID,
	actor *kernel.UUID,
) (FinalizeManifestCommand, error) {
	if err := manifestID.Validate(); err != nil {
		return FinalizeManifestCommand{}, errs.NewValueIsInvalidErrorWithCause("manifestID", err)
	}
	if actor != nil {
		if err := actor.Validate(); err != nil {
			return FinalizeManifestCommand{}, errs.NewValueIsInvalidErrorWithCause("actor", err)
		}
	}

	return FinalizeManifestCommand{
		manifestID: manifestID,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c FinalizeManifestCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeManifestCommandIsNotConstructed)
}

// ManifestID returns the target manifest ID.
func (c FinalizeManifestCommand) ManifestID() kernel.UUID {
	return c.manifestID
}

// Actor returns the staff member finalizing the manifest, or nil.
func (c FinalizeManifestCommand) Actor() *kernel.UUID {
	return c.actor
}
