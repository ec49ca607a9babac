package commands

import (
	"context"
	"errors"
	"fmt"

	"parcelbridge/internal/core/ports"
)

// UpdateShipmentStatusCommandHandler advances a shipment along its corridor.
// The first transition out of PENDING assigns the air waybill, so the handler
// retries on AWB collisions the same way booking does.
type UpdateShipmentStatusCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewUpdateShipmentStatusCommandHandler creates a handler for status updates.
func NewUpdateShipmentStatusCommandHandler(
	uowFactory ShipmentUoWFactory,
) (UpdateShipmentStatusCommandHandler, error) {
	if uowFactory == nil {
		return UpdateShipmentStatusCommandHandler{}, errors.New("uowFactory must not be nil")
	}

	return UpdateShipmentStatusCommandHandler{uowFactory: uowFactory}, nil
}

// Handle applies the requested transition.
func (h UpdateShipmentStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateShipmentStatusCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt < maxAWBAttempts; attempt++ {
		lastErr = h.update(ctx, cmd)
		if lastErr == nil {
			return nil
		}
		if !errors.Is(lastErr, ports.ErrAWBTaken) {
			return lastErr
		}
	}

	return fmt.Errorf("updating shipment status: %w", lastErr)
}

func (h UpdateShipmentStatusCommandHandler) update(
	ctx context.Context,
	cmd UpdateShipmentStatusCommand,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	target, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err := target.TransitionTo(cmd.NextStatus(), cmd.Location(), cmd.Notes(), cmd.Actor()); err != nil {
		return err
	}

	if err := uow.ShipmentRepository().Update(ctx, target); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
