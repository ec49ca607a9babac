package commands

import (
	"errors"
	"time"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

var (
	ErrCreateManifestCommandIsNotConstructed = errors.New(
		"CreateManifestCommand must be created via NewCreateManifestCommand constructor",
	)
)

// CreateManifestCommand opens a draft export manifest for a flight,
// optionally pre-loading it with sealed bags. The manifest number is
// generated server-side.
type CreateManifestCommand struct {
	flightNumber     string
	mawbNumber       string
	airlineReference string
	departureAt      time.Time
	initialBagIDs    []kernel.UUID
	createdBy        *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateManifestCommand creates a command to open a draft manifest.
func NewCreateManifestCommand(
	flightNumber string,
	mawbNumber string,
	airlineReference string,
	departureAt time.Time,
	initialBagIDs []kernel.UUID,
	createdBy *kernel.UUID,
) (CreateManifestCommand, error) {
	if flightNumber == "" {
		return CreateManifestCommand{}, errs.NewValueIsRequiredError("flightNumber")
	}
	if departureAt.IsZero() {
		return CreateManifestCommand{}, errs.NewValueIsRequiredError("departureAt")
	}
	for _, bagID := range initialBagIDs {
		if err := bagID.Validate(); err != nil {
			return CreateManifestCommand{}, errs.NewValueIsInvalidErrorWithCause("initialBagIDs", err)
		}
	}
	if createdBy != nil {
		if err := createdBy.Validate(); err != nil {
			return CreateManifestCommand{}, errs.NewValueIsInvalidErrorWithCause("createdBy", err)
		}
	}

	return CreateManifestCommand{
		flightNumber:     flightNumber,
		mawbNumber:       mawbNumber,
		airlineReference: airlineReference,
		departureAt:      departureAt,
		initialBagIDs:    initialBagIDs,
		createdBy:        createdBy,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateManifestCommand) Validate() error {
	return c.guard.Validate(ErrCreateManifestCommandIsNotConstructed)
}

// FlightNumber returns the flight the manifest is attached to.
func (c CreateManifestCommand) FlightNumber() string {
	return c.flightNumber
}

// MAWBNumber returns the master air waybill number, if already known.
func (c CreateManifestCommand) MAWBNumber() string {
	return c.mawbNumber
}

// AirlineReference returns the airline booking reference, if any.
func (c CreateManifestCommand) AirlineReference() string {
	return c.airlineReference
}

// DepartureAt returns the scheduled departure time.
func (c CreateManifestCommand) DepartureAt() time.Time {
	return c.departureAt
}

// InitialBagIDs returns the sealed bags to load into the draft immediately.
func (c CreateManifestCommand) InitialBagIDs() []kernel.UUID {
	return c.initialBagIDs
}

// CreatedBy returns the staff member opening the manifest, or nil.
func (c CreateManifestCommand) CreatedBy() *kernel.UUID {
	return c.createdBy
}
