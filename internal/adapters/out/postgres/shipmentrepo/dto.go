// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. It handles the conversion between the shipment
// aggregate, its append-only tracking history and their database rows.
package shipmentrepo

import (
	"time"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/core/domain/model/shipment"
	"parcelbridge/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. The AWB carries a unique index so a collision during lazy
// assignment surfaces as a duplicate-key error instead of a double booking.
type ShipmentDTO struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AWB                  *string    `gorm:"uniqueIndex;size:15"`
	Direction            string     `gorm:"size:8;index"`
	Status               string     `gorm:"size:32;index"`
	SenderName           string
	SenderPhone          string
	SenderAddress        string
	SenderCountry        string `gorm:"size:2"`
	RecipientName        string
	RecipientPhone       string
	RecipientAddress     string
	RecipientCountry     string `gorm:"size:2"`
	OriginCountry        string `gorm:"size:2"`
	DestinationCountry   string `gorm:"size:2"`
	Contents             string
	DeclaredValue        float64
	Currency             string `gorm:"size:3"`
	EstimatedWeightGrams int64
	ActualWeightGrams    *int64
	ServiceType          string `gorm:"size:16"`
	PaymentMethod        string `gorm:"size:16"`
	PaymentStatus        string `gorm:"size:16"`
	ShippingCost         *float64
	IsFragile            bool
	IsLiquid             bool
	SpecialInstructions  string
	HKReference          string
	MAWBNumber           string
	BookedBy             *uuid.UUID `gorm:"type:uuid"`
	BookedAt             time.Time
	UpdatedAt            time.Time
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// TrackingEventDTO represents one row of a shipment's append-only history.
type TrackingEventDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID  uuid.UUID `gorm:"type:uuid;index"`
	Kind        string    `gorm:"size:16"`
	Status      string    `gorm:"size:32"`
	Description string
	Location    string
	Notes       string
	ActorID     *uuid.UUID `gorm:"type:uuid"`
	OccurredAt  time.Time  `gorm:"index"`
}

// TableName specifies the database table name for tracking events.
func (TrackingEventDTO) TableName() string {
	return "tracking_events"
}

// DeliveryProofDTO represents the proof of delivery row, written once at the
// terminal transition.
type DeliveryProofDTO struct {
	ShipmentID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReceiverName string
	Notes        string
	SignatureRef string
	DeliveredBy  *uuid.UUID `gorm:"type:uuid"`
	DeliveredAt  time.Time
}

// TableName specifies the database table name for delivery proofs.
func (DeliveryProofDTO) TableName() string {
	return "delivery_proofs"
}

func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	dto := ShipmentDTO{
		ID:                   aggregate.ID().Bytes(),
		Direction:            aggregate.Direction().String(),
		Status:               aggregate.Status().String(),
		SenderName:           aggregate.Sender().Name(),
		SenderPhone:          aggregate.Sender().Phone(),
		SenderAddress:        aggregate.Sender().Address(),
		SenderCountry:        aggregate.Sender().Country(),
		RecipientName:        aggregate.Recipient().Name(),
		RecipientPhone:       aggregate.Recipient().Phone(),
		RecipientAddress:     aggregate.Recipient().Address(),
		RecipientCountry:     aggregate.Recipient().Country(),
		OriginCountry:        aggregate.Direction().OriginCountry(),
		DestinationCountry:   aggregate.Direction().DestinationCountry(),
		Contents:             aggregate.Contents(),
		DeclaredValue:        aggregate.DeclaredValue(),
		Currency:             string(aggregate.Currency()),
		EstimatedWeightGrams: aggregate.EstimatedWeight().Grams(),
		ServiceType:          aggregate.ServiceType().String(),
		PaymentMethod:        aggregate.PaymentMethod().String(),
		PaymentStatus:        aggregate.PaymentStatus().String(),
		ShippingCost:         aggregate.ShippingCost(),
		IsFragile:            aggregate.IsFragile(),
		IsLiquid:             aggregate.IsLiquid(),
		SpecialInstructions:  aggregate.SpecialInstructions(),
		HKReference:          aggregate.HKReference(),
		MAWBNumber:           aggregate.MAWBNumber(),
		BookedAt:             aggregate.BookedAt(),
		UpdatedAt:            aggregate.UpdatedAt(),
	}

	if awb := aggregate.AWB(); awb != nil {
		value := awb.String()
		dto.AWB = &value
	}
	if weight := aggregate.ActualWeight(); weight != nil {
		grams := weight.Grams()
		dto.ActualWeightGrams = &grams
	}
	if bookedBy := aggregate.BookedBy(); bookedBy != nil {
		raw := bookedBy.Bytes()
		dto.BookedBy = &raw
	}

	return dto
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	direction, err := shipment.DirectionFromName(dto.Direction)
	if err != nil {
		return nil, err
	}
	status, err := shipment.StatusFromName(dto.Status)
	if err != nil {
		return nil, err
	}

	sender, err := shipment.RestoreContact(
		dto.SenderName, dto.SenderPhone, dto.SenderAddress, dto.SenderCountry)
	if err != nil {
		return nil, err
	}
	recipient, err := shipment.RestoreContact(
		dto.RecipientName, dto.RecipientPhone, dto.RecipientAddress, dto.RecipientCountry)
	if err != nil {
		return nil, err
	}

	serviceType, err := shipment.ServiceTypeFromName(dto.ServiceType)
	if err != nil {
		return nil, err
	}
	paymentMethod, err := shipment.PaymentMethodFromName(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := shipment.PaymentStatusFromName(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	estimatedWeight, err := kernel.NewWeight(dto.EstimatedWeightGrams)
	if err != nil {
		return nil, err
	}

	snapshot := shipment.ShipmentSnapshot{
		ID:                  id,
		Direction:           direction,
		Status:              status,
		Sender:              sender,
		Recipient:           recipient,
		Contents:            dto.Contents,
		DeclaredValue:       dto.DeclaredValue,
		Currency:            shipment.Currency(dto.Currency),
		EstimatedWeight:     estimatedWeight,
		ServiceType:         serviceType,
		PaymentMethod:       paymentMethod,
		PaymentStatus:       paymentStatus,
		ShippingCost:        dto.ShippingCost,
		IsFragile:           dto.IsFragile,
		IsLiquid:            dto.IsLiquid,
		SpecialInstructions: dto.SpecialInstructions,
		HKReference:         dto.HKReference,
		MAWBNumber:          dto.MAWBNumber,
		BookedAt:            dto.BookedAt,
		UpdatedAt:           dto.UpdatedAt,
	}

	if dto.AWB != nil {
		awb, awbErr := shipment.AWBFromString(*dto.AWB)
		if awbErr != nil {
			return nil, awbErr
		}
		snapshot.AWB = &awb
	}
	if dto.ActualWeightGrams != nil {
		actual, weightErr := kernel.NewWeight(*dto.ActualWeightGrams)
		if weightErr != nil {
			return nil, weightErr
		}
		snapshot.ActualWeight = &actual
	}
	if dto.BookedBy != nil {
		bookedBy, idErr := kernel.UUIDFromBytes((*dto.BookedBy)[:])
		if idErr != nil {
			return nil, idErr
		}
		snapshot.BookedBy = &bookedBy
	}

	return shipment.RestoreShipment(snapshot)
}

func eventFromDomain(event *tracking.Event) TrackingEventDTO {
	dto := TrackingEventDTO{
		ID:          event.ID().Bytes(),
		ShipmentID:  event.ShipmentID().Bytes(),
		Kind:        event.Kind().Name(),
		Status:      event.Status(),
		Description: event.Description(),
		Location:    event.Location(),
		Notes:       event.Notes(),
		OccurredAt:  event.OccurredAt(),
	}

	if actor := event.Actor(); actor != nil {
		raw := actor.Bytes()
		dto.ActorID = &raw
	}

	return dto
}

func proofFromDomain(proof shipment.DeliveryProof) DeliveryProofDTO {
	dto := DeliveryProofDTO{
		ShipmentID:   proof.ShipmentID().Bytes(),
		ReceiverName: proof.ReceiverName(),
		Notes:        proof.Notes(),
		SignatureRef: proof.SignatureRef(),
		DeliveredAt:  proof.DeliveredAt(),
	}

	if deliveredBy := proof.DeliveredBy(); deliveredBy != nil {
		raw := deliveredBy.Bytes()
		dto.DeliveredBy = &raw
	}

	return dto
}
