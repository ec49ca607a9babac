// Package bagrepo provides data transfer objects and mapping functions for
// bag persistence, including the membership join table and stored air
// invoices.
package bagrepo

import (
	"time"

	"parcelbridge/internal/core/domain/model/bag"
	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/core/ports"

	"github.com/google/uuid"
)

// BagDTO represents the database structure for persisting bag aggregates.
// The number carries a unique index because two concurrent creators may
// compute the same sequential value.
type BagDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number       string    `gorm:"uniqueIndex;size:16"`
	Status       string    `gorm:"size:16;index"`
	WeightGrams  int64
	SealedBy     *uuid.UUID `gorm:"type:uuid"`
	SealedAt     *time.Time
	UnsealedBy   *uuid.UUID `gorm:"type:uuid"`
	UnsealedAt   *time.Time
	UnsealReason string
	CreatedAt    time.Time
}

// TableName specifies the database table name for bag entities.
func (BagDTO) TableName() string {
	return "bags"
}

// BagShipmentDTO is one membership row. The unique index on shipment_id
// enforces the single-bag rule at the storage level: a shipment can be a
// member of at most one bag across the whole system.
type BagShipmentDTO struct {
	BagID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;primaryKey;uniqueIndex"`
	Position   int
}

// TableName specifies the database table name for bag membership rows.
func (BagShipmentDTO) TableName() string {
	return "bag_shipments"
}

// AirInvoiceDTO represents a stored air invoice document.
type AirInvoiceDTO struct {
	BagID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceNumber string    `gorm:"size:16"`
	FileName      string
	ContentType   string
	Content       []byte
	Rows          int
	GeneratedBy   *uuid.UUID `gorm:"type:uuid"`
	GeneratedAt   time.Time
}

// TableName specifies the database table name for air invoices.
func (AirInvoiceDTO) TableName() string {
	return "air_invoices"
}

func fromDomain(aggregate *bag.Bag) (BagDTO, []BagShipmentDTO) {
	dto := BagDTO{
		ID:           aggregate.ID().Bytes(),
		Number:       aggregate.Number(),
		Status:       aggregate.Status().String(),
		WeightGrams:  aggregate.Weight().Grams(),
		SealedAt:     aggregate.SealedAt(),
		UnsealedAt:   aggregate.UnsealedAt(),
		UnsealReason: aggregate.UnsealReason(),
		CreatedAt:    aggregate.CreatedAt(),
	}

	if sealedBy := aggregate.SealedBy(); sealedBy != nil {
		raw := sealedBy.Bytes()
		dto.SealedBy = &raw
	}
	if unsealedBy := aggregate.UnsealedBy(); unsealedBy != nil {
		raw := unsealedBy.Bytes()
		dto.UnsealedBy = &raw
	}

	members := make([]BagShipmentDTO, 0, len(aggregate.ShipmentIDs()))
	for position, shipmentID := range aggregate.ShipmentIDs() {
		members = append(members, BagShipmentDTO{
			BagID:      dto.ID,
			ShipmentID: shipmentID.Bytes(),
			Position:   position,
		})
	}

	return dto, members
}

func toDomain(dto BagDTO, members []BagShipmentDTO) (*bag.Bag, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := bag.StatusFromName(dto.Status)
	if err != nil {
		return nil, err
	}

	weight, err := kernel.NewWeight(dto.WeightGrams)
	if err != nil {
		return nil, err
	}

	snapshot := bag.BagSnapshot{
		ID:           id,
		Number:       dto.Number,
		Status:       status,
		Weight:       weight,
		SealedAt:     dto.SealedAt,
		UnsealedAt:   dto.UnsealedAt,
		UnsealReason: dto.UnsealReason,
		CreatedAt:    dto.CreatedAt,
	}

	if dto.SealedBy != nil {
		sealedBy, idErr := kernel.UUIDFromBytes((*dto.SealedBy)[:])
		if idErr != nil {
			return nil, idErr
		}
		snapshot.SealedBy = &sealedBy
	}
	if dto.UnsealedBy != nil {
		unsealedBy, idErr := kernel.UUIDFromBytes((*dto.UnsealedBy)[:])
		if idErr != nil {
			return nil, idErr
		}
		snapshot.UnsealedBy = &unsealedBy
	}

	snapshot.ShipmentIDs = make([]kernel.UUID, 0, len(members))
	for _, member := range members {
		shipmentID, idErr := kernel.UUIDFromBytes(member.ShipmentID[:])
		if idErr != nil {
			return nil, idErr
		}
		snapshot.ShipmentIDs = append(snapshot.ShipmentIDs, shipmentID)
	}

	return bag.RestoreBag(snapshot)
}

func invoiceFromDomain(invoice ports.AirInvoice, generatedAt time.Time) AirInvoiceDTO {
	dto := AirInvoiceDTO{
		BagID:         invoice.BagID.Bytes(),
		InvoiceNumber: invoice.InvoiceNumber,
		FileName:      invoice.Artifact.Name,
		ContentType:   invoice.Artifact.ContentType,
		Content:       invoice.Artifact.Content,
		Rows:          invoice.Artifact.Rows,
		GeneratedAt:   generatedAt,
	}

	if invoice.GeneratedBy != nil {
		raw := invoice.GeneratedBy.Bytes()
		dto.GeneratedBy = &raw
	}

	return dto
}
