package commands

import (
	"errors"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

var (
	ErrCreateBagCommandIsNotConstructed = errors.New(
		"CreateBagCommand must be created via NewCreateBagCommand constructor",
	)
)

// CreateBagCommand opens a new export bag at the Bangladesh warehouse.
// The bag number is assigned server-side from the warehouse sequence.
type CreateBagCommand struct {
	createdBy *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateBagCommand creates a command to open a new bag.
func NewCreateBagCommand(createdBy *kernel.UUID) (CreateBagCommand, error) {
	if createdBy != nil {
		if err := createdBy.Validate(); err != nil {
			return CreateBagCommand{}, errs.NewValueIsInvalidErrorWithCause("createdBy", err)
		}
	}

	return CreateBagCommand{
		createdBy: createdBy,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateBagCommand) Validate() error {
	return c.guard.Validate(ErrCreateBagCommandIsNotConstructed)
}

// CreatedBy returns the warehouse staff member opening the bag, or nil.
func (c CreateBagCommand) CreatedBy() *kernel.UUID {
	return c.createdBy
}
