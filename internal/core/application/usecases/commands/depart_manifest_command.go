package commands

import (
	"errors"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

var (
	ErrDepartManifestCommandIsNotConstructed = errors.New(
		"DepartManifestCommand must be created via NewDepartManifestCommand constructor",
	)
)

// DepartManifestCommand records the physical handover of a finalized
// manifest's cargo to the airline.
type DepartManifestCommand struct {
	manifestID kernel.UUID
	actor      *kernel.UUID

	guard guard.ConstructorGuard
}

// NewDepartManifestCommand creates a command to depart a manifest.
func NewDepartManifestCommand(
	manifestID kernel.UUID,
	actor *kernel.UUID,
) (DepartManifestCommand, error) {
	if err := manifestID.Validate(); err != nil {
		return DepartManifestCommand{}, errs.NewValueIsInvalidErrorWithCause("manifestID", err)
	}
	if actor != nil {
		if err := actor.Validate(); err != nil {
			return DepartManifestCommand{}, errs.NewValueIsInvalidErrorWithCause("actor", err)
		}
	}

	return DepartManifestCommand{
		manifestID: manifestID,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DepartManifestCommand) Validate() error {
	return c.guard.Validate(ErrDepartManifestCommandIsNotConstructed)
}

// ManifestID returns the target manifest ID.
func (c DepartManifestCommand) ManifestID() kernel.UUID {
	return c.manifestID
}

// Actor returns the staff member recording the departure, or nil.
func (c DepartManifestCommand) Actor() *kernel.UUID {
	return c.actor
}
