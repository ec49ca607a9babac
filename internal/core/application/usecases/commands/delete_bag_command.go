package commands

import (
	"errors"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

var (
	ErrDeleteBagCommandIsNotConstructed = errors.New(
		"DeleteBagCommand must be created via NewDeleteBagCommand constructor",
	)
)

// DeleteBagCommand deletes an open bag. Any remaining members are returned to
// the warehouse first.
type DeleteBagCommand struct {
	bagID kernel.UUID
	actor *kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteBagCommand creates a command to delete an open bag.
func NewDeleteBagCommand(bagID kernel.UUID, actor *kernel.UUID) (DeleteBagCommand, error) {
	if err := bagID.Validate(); err != nil {
		return DeleteBagCommand{}, errs.NewValueIsInvalidErrorWithCause("bagID", err)
	}
	if actor != nil {
		if err := actor.Validate(); err != nil {
			return DeleteBagCommand{}, errs.NewValueIsInvalidErrorWithCause("actor", err)
		}
	}

	return DeleteBagCommand{
		bagID: bagID,
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteBagCommand) Validate() error {
	return c.guard.Validate(ErrDeleteBagCommandIsNotConstructed)
}

// BagID returns the target bag ID.
func (c DeleteBagCommand) BagID() kernel.UUID {
	return c.bagID
}

// Actor returns the warehouse staff member deleting the bag, or nil.
func (c DeleteBagCommand) Actor() *kernel.UUID {
	return c.actor
}
