package shipment

import (
	"errors"
	"time"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

// ErrDeliveryProofIsNotConstructed is returned when attempting to use an improperly initialized DeliveryProof.
var ErrDeliveryProofIsNotConstructed = errors.New(
	"DeliveryProof must be created via NewDeliveryProof or RestoreDeliveryProof")

// DeliveryProof records who received the parcel at final delivery.
// It is written once together with the terminal status transition and never
// updated. SignatureRef points at the stored signature image, if one was
// captured.
type DeliveryProof struct {
	shipmentID   kernel.UUID
	receiverName string
	notes        string
	signatureRef string
	deliveredBy  *kernel.UUID
	deliveredAt  time.Time

	guard guard.ConstructorGuard
}

// NewDeliveryProof creates the proof of delivery for a shipment.
func NewDeliveryProof(
	shipmentID kernel.UUID, receiverName, notes, signatureRef string, deliveredBy *kernel.UUID,
) (DeliveryProof, error) {
	if err := shipmentID.Validate(); err != nil {
		return DeliveryProof{}, err
	}
	if receiverName == "" {
		return DeliveryProof{}, errs.NewValueIsRequiredError("receiverName")
	}
	if deliveredBy != nil {
		if err := deliveredBy.Validate(); err != nil {
			return DeliveryProof{}, err
		}
	}

	return DeliveryProof{
		shipmentID:   shipmentID,
		receiverName: receiverName,
		notes:        notes,
		signatureRef: signatureRef,
		deliveredBy:  deliveredBy,
		deliveredAt:  time.Now().UTC(),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// RestoreDeliveryProof reconstructs a proof of delivery from persistence.
func RestoreDeliveryProof(
	shipmentID kernel.UUID, receiverName, notes, signatureRef string,
	deliveredBy *kernel.UUID, deliveredAt time.Time,
) (DeliveryProof, error) {
	proof, err := NewDeliveryProof(shipmentID, receiverName, notes, signatureRef, deliveredBy)
	if err != nil {
		return DeliveryProof{}, err
	}

	proof.deliveredAt = deliveredAt
	return proof, nil
}

// ShipmentID returns the shipment the proof belongs to.
func (p DeliveryProof) ShipmentID() kernel.UUID {
	return p.shipmentID
}

// ReceiverName returns the name of the person who accepted the parcel.
func (p DeliveryProof) ReceiverName() string {
	return p.receiverName
}

// Notes returns free-form delivery notes.
func (p DeliveryProof) Notes() string {
	return p.notes
}

// SignatureRef returns the stored signature artifact reference, if any.
func (p DeliveryProof) SignatureRef() string {
	return p.signatureRef
}

// DeliveredBy returns the staff member who completed the delivery, or nil.
func (p DeliveryProof) DeliveredBy() *kernel.UUID {
	return p.deliveredBy
}

// DeliveredAt returns the delivery time.
func (p DeliveryProof) DeliveredAt() time.Time {
	return p.deliveredAt
}

// Validate ensures the proof was created through a constructor.
func (p DeliveryProof) Validate() error {
	return p.guard.Validate(ErrDeliveryProofIsNotConstructed)
}
