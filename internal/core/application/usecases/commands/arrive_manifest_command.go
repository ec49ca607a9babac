package commands

import (
	"errors"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

var (
	ErrArriveManifestCommandIsNotConstructed = errors.New(
		"ArriveManifestCommand must be created via NewArriveManifestCommand constructor",
	)
)

// ArriveManifestCommand closes out a departed manifest once the flight has
// landed. Individual parcel arrivals are scanned separately at the
// destination facility.
type ArriveManifestCommand struct {
	manifestID kernel.UUID

	guard guard.ConstructorGuard
}

// NewArriveManifestCommand creates a command to arrive a manifest.
func NewArriveManifestCommand(manifestID kernel.UUID) (ArriveManifestCommand, error) {
	if err := manifestID.Validate(); err != nil {
		return ArriveManifestCommand{}, errs.NewValueIsInvalidErrorWithCause("manifestID", err)
	}

	return ArriveManifestCommand{
		manifestID: manifestID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ArriveManifestCommand) Validate() error {
	return c.guard.Validate(ErrArriveManifestCommandIsNotConstructed)
}

// ManifestID returns the target manifest ID.
func (c ArriveManifestCommand) ManifestID() kernel.UUID {
	return c.manifestID
}
