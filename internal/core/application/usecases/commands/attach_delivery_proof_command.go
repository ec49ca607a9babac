package commands

import (
	"errors"
	"time"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

var (
	ErrAttachDeliveryProofCommandIsNotConstructed = errors.New(
		"AttachDeliveryProofCommand must be created via NewAttachDeliveryProofCommand constructor",
	)
)

// AttachDeliveryProofCommand records the final delivery of a shipment
// together with proof of delivery.
type AttachDeliveryProofCommand struct {
	shipmentID   kernel.UUID
	receiverName string
	notes        string
	signatureRef string
	deliveredBy  *kernel.UUID
	deliveredAt  time.Time

	guard guard.ConstructorGuard
}

// NewAttachDeliveryProofCommand creates a command to deliver a shipment.
func NewAttachDeliveryProofCommand(
	shipmentID kernel.UUID,
	receiverName string,
	notes string,
	signatureRef string,
	deliveredBy *kernel.UUID,
	deliveredAt time.Time,
) (AttachDeliveryProofCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return AttachDeliveryProofCommand{}, errs.NewValueIsInvalidErrorWithCause("shipmentID", err)
	}
	if receiverName == "" {
		return AttachDeliveryProofCommand{}, errs.NewValueIsRequiredError("receiverName")
	}
	if deliveredAt.IsZero() {
		return AttachDeliveryProofCommand{}, errs.NewValueIsRequiredError("deliveredAt")
	}
	if deliveredBy != nil {
		if err := deliveredBy.Validate(); err != nil {
			return AttachDeliveryProofCommand{}, errs.NewValueIsInvalidErrorWithCause("deliveredBy", err)
		}
	}

	return AttachDeliveryProofCommand{
		shipmentID:   shipmentID,
		receiverName: receiverName,
		notes:        notes,
		signatureRef: signatureRef,
		deliveredBy:  deliveredBy,
		deliveredAt:  deliveredAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AttachDeliveryProofCommand) Validate() error {
	return c.guard.Validate(ErrAttachDeliveryProofCommandIsNotConstructed)
}

// ShipmentID returns the target shipment ID.
func (c AttachDeliveryProofCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// ReceiverName returns the name of the person who received the parcel.
func (c AttachDeliveryProofCommand) ReceiverName() string {
	return c.receiverName
}

// Notes returns any delivery notes.
func (c AttachDeliveryProofCommand) Notes() string {
	return c.notes
}

// SignatureRef returns a reference to a captured signature image, if any.
func (c AttachDeliveryProofCommand) SignatureRef() string {
	return c.signatureRef
}

// DeliveredBy returns the staff member who completed the delivery, or nil.
func (c AttachDeliveryProofCommand) DeliveredBy() *kernel.UUID {
	return c.deliveredBy
}

// DeliveredAt returns the moment of delivery.
func (c AttachDeliveryProofCommand) DeliveredAt() time.Time {
	return c.deliveredAt
}
