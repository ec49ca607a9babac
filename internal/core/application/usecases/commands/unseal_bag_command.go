package commands

import (
	"errors"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

var (
	ErrUnsealBagCommandIsNotConstructed = errors.New(
		"UnsealBagCommand must be created via NewUnsealBagCommand constructor",
	)
)

// UnsealBagCommand reopens a sealed bag. A reason is mandatory because the
// warehouse audits every broken seal.
type UnsealBagCommand struct {
	bagID  kernel.UUID
	reason string
	actor  *kernel.UUID

	guard guard.ConstructorGuard
}

// NewUnsealBagCommand creates a command to unseal a bag.
func NewUnsealBagCommand(
	bagID kernel.UUID,
	reason string,
	actor *kernel.UUID,
) (UnsealBagCommand, error) {
	if err := bagID.Validate(); err != nil {
		return UnsealBagCommand{}, errs.NewValueIsInvalidErrorWithCause("bagID", err)
	}
	if actor != nil {
		if err := actor.Validate(); err != nil {
			return UnsealBagCommand{}, errs.NewValueIsInvalidErrorWithCause("actor", err)
		}
	}

	return UnsealBagCommand{
		bagID:  bagID,
		reason: reason,
		actor:  actor,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UnsealBagCommand) Validate() error {
	return c.guard.Validate(ErrUnsealBagCommandIsNotConstructed)
}

// BagID returns the target bag ID.
func (c UnsealBagCommand) BagID() kernel.UUID {
	return c.bagID
}

// Reason returns the audit reason for breaking the seal.
func (c UnsealBagCommand) Reason() string {
	return c.reason
}

// Actor returns the warehouse staff member unsealing the bag, or nil.
func (c UnsealBagCommand) Actor() *kernel.UUID {
	return c.actor
}
