package commands

import (
	"errors"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

var (
	ErrMarkManifestInTransitCommandIsNotConstructed = errors.New(
		"MarkManifestInTransitCommand must be created via NewMarkManifestInTransitCommand constructor",
	)
)

// MarkManifestInTransitCommand records the flight's takeoff: every parcel on
// a departed manifest moves into its corridor transit status. The manifest
// itself stays DEPARTED until arrival.
type MarkManifestInTransitCommand struct {
	manifestID kernel.UUID
	actor      *kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkManifestInTransitCommand creates a command to mark a manifest's cargo in transit.
func NewMarkManifestInTransitCommand(
	manifestID kernel.UUID,
	actor *kernel.UUID,
) (MarkManifestInTransitCommand, error) {
	if err := manifestID.Validate(); err != nil {
		return MarkManifestInTransitCommand{}, errs.NewValueIsInvalidErrorWithCause("manifestID", err)
	}
	if actor != nil {
		if err := actor.Validate(); err != nil {
			return MarkManifestInTransitCommand{}, errs.NewValueIsInvalidErrorWithCause("actor", err)
		}
	}

	return MarkManifestInTransitCommand{
		manifestID: manifestID,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkManifestInTransitCommand) Validate() error {
	return c.guard.Validate(ErrMarkManifestInTransitCommandIsNotConstructed)
}

// ManifestID returns the target manifest ID.
func (c MarkManifestInTransitCommand) ManifestID() kernel.UUID {
	return c.manifestID
}

// Actor returns the staff member recording the takeoff, or nil.
func (c MarkManifestInTransitCommand) Actor() *kernel.UUID {
	return c.actor
}
