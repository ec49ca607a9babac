package commands

import (
	"context"
	"errors"

	"parcelbridge/internal/core/domain/model/shipment"
)

// AttachDeliveryProofCommandHandler marks a shipment delivered and stores the
// proof of delivery in the same transaction.
type AttachDeliveryProofCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewAttachDeliveryProofCommandHandler creates a handler for delivery proofs.
func NewAttachDeliveryProofCommandHandler(
	uowFactory ShipmentUoWFactory,
) (AttachDeliveryProofCommandHandler, error) {
	if uowFactory == nil {
		return AttachDeliveryProofCommandHandler{}, errors.New("uowFactory must not be nil")
	}

	return AttachDeliveryProofCommandHandler{uowFactory: uowFactory}, nil
}

// Handle delivers the shipment and attaches its proof of delivery.
func (h AttachDeliveryProofCommandHandler) Handle(
	ctx context.Context,
	cmd AttachDeliveryProofCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	target, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err := target.MarkDelivered(cmd.ReceiverName(), cmd.Notes(), cmd.DeliveredBy()); err != nil {
		return err
	}

	proof, err := shipmentProofFromCommand(cmd)
	if err != nil {
		return err
	}

	if err := uow.ShipmentRepository().Update(ctx, target); err != nil {
		return err
	}

	if err := uow.ShipmentRepository().AddDeliveryProof(ctx, proof); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func shipmentProofFromCommand(cmd AttachDeliveryProofCommand) (shipment.DeliveryProof, error) {
	return shipment.RestoreDeliveryProof(
		cmd.ShipmentID(),
		cmd.ReceiverName(),
		cmd.Notes(),
		cmd.SignatureRef(),
		cmd.DeliveredBy(),
		cmd.DeliveredAt(),
	)
}
