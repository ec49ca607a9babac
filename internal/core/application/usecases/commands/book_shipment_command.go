package commands

import (
	"errors"

	"parcelbridge/internal/core/domain/model/shipment"
	"parcelbridge/internal/pkg/guard"
)

var (
	ErrBookShipmentCommandIsNotConstructed = errors.New(
		"BookShipmentCommand must be created via NewBookShipmentCommand constructor",
	)
)

// BookShipmentCommand represents a request to book a new shipment on one of
// the two corridors. The booking input itself is validated by the shipment
// aggregate; the optional idempotency key makes customer retries safe.
//
// Example:
//
//	cmd, err := NewBookShipmentCommand(booking, request.IdempotencyKey)
//	if err != nil {
//	    return err
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("booking failed: %w", err)
//	}
//	fmt.Printf("Booked shipment %s with AWB %s", result.ShipmentID, result.AWB)
type BookShipmentCommand struct {
	booking        shipment.Booking
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewBookShipmentCommand creates a command to book a shipment.
// An empty idempotency key disables deduplication for this booking.
func NewBookShipmentCommand(booking shipment.Booking, idempotencyKey string) (BookShipmentCommand, error) {
	if err := booking.Direction.Validate(); err != nil {
		return BookShipmentCommand{}, err
	}

	return BookShipmentCommand{
		booking:        booking,
		idempotencyKey: idempotencyKey,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c BookShipmentCommand) Validate() error {
	return c.guard.Validate(ErrBookShipmentCommandIsNotConstructed)
}

// Booking returns the booking input.
func (c BookShipmentCommand) Booking() shipment.Booking {
	return c.booking
}

// IdempotencyKey returns the client-supplied deduplication key, if any.
func (c BookShipmentCommand) IdempotencyKey() string {
	return c.idempotencyKey
}
