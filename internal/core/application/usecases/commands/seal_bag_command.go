package commands

import (
	"errors"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

var (
	ErrSealBagCommandIsNotConstructed = errors.New(
		"SealBagCommand must be created via NewSealBagCommand constructor",
	)
)

// SealBagCommand seals a non-empty bag and generates its air invoice.
type SealBagCommand struct {
	bagID kernel.UUID
	actor *kernel.UUID

	guard guard.ConstructorGuard
}

// NewSealBagCommand creates a command to seal a bag.
func NewSealBagCommand(bagID kernel.UUID, actor *kernel.UUID) (SealBagCommand, error) {
	if err := bagID.Validate(); err != nil {
		return SealBagCommand{}, errs.NewValueIsInvalidErrorWithCause("bagID", err)
	}
	if actor != nil {
		if err := actor.Validate(); err != nil {
			return SealBagCommand{}, errs.NewValueIsInvalidErrorWithCause("actor", err)
		}
	}

	return SealBagCommand{
		bagID: bagID,
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SealBagCommand) Validate() error {
	return c.guard.Validate(ErrSealBagCommandIsNotConstructed)
}

// BagID returns the target bag ID.
func (c SealBagCommand) BagID() kernel.UUID {
	return c.bagID
}

// Actor returns the warehouse staff member sealing the bag, or nil.
func (c SealBagCommand) Actor() *kernel.UUID {
	return c.actor
}
