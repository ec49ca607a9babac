// Package manifestrepo provides data transfer objects and mapping functions
// for manifest persistence, including the two membership join tables and
// the documents generated at finalize time.
package manifestrepo

import (
	"time"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/core/domain/model/manifest"
	"parcelbridge/internal/core/ports"

	"github.com/google/uuid"
)

// ManifestDTO represents the database structure for persisting manifest
// aggregates. The number carries a unique index; a date-based collision
// during generation surfaces as a duplicate-key error and the caller
// redraws.
type ManifestDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number           string    `gorm:"uniqueIndex;size:20"`
	FlightNumber     string    `gorm:"size:8"`
	MAWBNumber       string    `gorm:"size:16"`
	AirlineReference string
	DepartureAt      time.Time `gorm:"index"`
	Status           string    `gorm:"size:16;index"`
	TotalBags        int
	TotalParcels     int
	TotalWeightGrams int64
	CreatedBy        *uuid.UUID `gorm:"type:uuid"`
	CreatedAt        time.Time
	FinalizedBy      *uuid.UUID `gorm:"type:uuid"`
	FinalizedAt      *time.Time
}

// TableName specifies the database table name for manifest entities.
func (ManifestDTO) TableName() string {
	return "manifests"
}

// ManifestBagDTO is one bag membership row. The unique index on bag_id
// keeps a bag on at most one manifest across the whole system.
type ManifestBagDTO struct {
	ManifestID uuid.UUID `gorm:"type:uuid;primaryKey"`
	BagID      uuid.UUID `gorm:"type:uuid;primaryKey;uniqueIndex"`
	Position   int
}

// TableName specifies the database table name for manifest bag rows.
func (ManifestBagDTO) TableName() string {
	return "manifest_bags"
}

// ManifestShipmentDTO is one standalone shipment membership row. The unique
// index on shipment_id keeps a loose shipment on at most one manifest.
type ManifestShipmentDTO struct {
	ManifestID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;primaryKey;uniqueIndex"`
	Position   int
}

// TableName specifies the database table name for manifest shipment rows.
func (ManifestShipmentDTO) TableName() string {
	return "manifest_shipments"
}

// ManifestExportDTO represents the stored finalize-time documents: the
// printable sheet and the spreadsheet workbook.
type ManifestExportDTO struct {
	ManifestID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SheetName           string
	SheetContentType    string
	SheetContent        []byte
	WorkbookName        string
	WorkbookContentType string
	WorkbookContent     []byte
	Rows                int
	GeneratedBy         *uuid.UUID `gorm:"type:uuid"`
	GeneratedAt         time.Time
}

// TableName specifies the database table name for manifest exports.
func (ManifestExportDTO) TableName() string {
	return "manifest_exports"
}

func fromDomain(aggregate *manifest.Manifest) (ManifestDTO, []ManifestBagDTO, []ManifestShipmentDTO) {
	dto := ManifestDTO{
		ID:               aggregate.ID().Bytes(),
		Number:           aggregate.Number(),
		FlightNumber:     aggregate.FlightNumber(),
		MAWBNumber:       aggregate.MAWBNumber(),
		AirlineReference: aggregate.AirlineReference(),
		DepartureAt:      aggregate.DepartureAt(),
		Status:           aggregate.Status().String(),
		TotalBags:        aggregate.TotalBags(),
		TotalParcels:     aggregate.TotalParcels(),
		TotalWeightGrams: aggregate.TotalWeight().Grams(),
		CreatedAt:        aggregate.CreatedAt(),
		FinalizedAt:      aggregate.FinalizedAt(),
	}

	if createdBy := aggregate.CreatedBy(); createdBy != nil {
		raw := createdBy.Bytes()
		dto.CreatedBy = &raw
	}
	if finalizedBy := aggregate.FinalizedBy(); finalizedBy != nil {
		raw := finalizedBy.Bytes()
		dto.FinalizedBy = &raw
	}

	bags := make([]ManifestBagDTO, 0, len(aggregate.BagIDs()))
	for position, bagID := range aggregate.BagIDs() {
		bags = append(bags, ManifestBagDTO{
			ManifestID: dto.ID,
			BagID:      bagID.Bytes(),
			Position:   position,
		})
	}

	shipments := make([]ManifestShipmentDTO, 0, len(aggregate.ShipmentIDs()))
	for position, shipmentID := range aggregate.ShipmentIDs() {
		shipments = append(shipments, ManifestShipmentDTO{
			ManifestID: dto.ID,
			ShipmentID: shipmentID.Bytes(),
			Position:   position,
		})
	}

	return dto, bags, shipments
}

func toDomain(dto ManifestDTO, bags []ManifestBagDTO, shipments []ManifestShipmentDTO) (*manifest.Manifest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := manifest.StatusFromName(dto.Status)
	if err != nil {
		return nil, err
	}

	totalWeight, err := kernel.NewWeight(dto.TotalWeightGrams)
	if err != nil {
		return nil, err
	}

	snapshot := manifest.ManifestSnapshot{
		ID:               id,
		Number:           dto.Number,
		FlightNumber:     dto.FlightNumber,
		MAWBNumber:       dto.MAWBNumber,
		AirlineReference: dto.AirlineReference,
		DepartureAt:      dto.DepartureAt,
		Status:           status,
		TotalBags:        dto.TotalBags,
		TotalParcels:     dto.TotalParcels,
		TotalWeight:      totalWeight,
		CreatedAt:        dto.CreatedAt,
		FinalizedAt:      dto.FinalizedAt,
	}

	if dto.CreatedBy != nil {
		createdBy, idErr := kernel.UUIDFromBytes((*dto.CreatedBy)[:])
		if idErr != nil {
			return nil, idErr
		}
		snapshot.CreatedBy = &createdBy
	}
	if dto.FinalizedBy != nil {
		finalizedBy, idErr := kernel.UUIDFromBytes((*dto.FinalizedBy)[:])
		if idErr != nil {
			return nil, idErr
		}
		snapshot.FinalizedBy = &finalizedBy
	}

	snapshot.BagIDs = make([]kernel.UUID, 0, len(bags))
	for _, member := range bags {
		bagID, idErr := kernel.UUIDFromBytes(member.BagID[:])
		if idErr != nil {
			return nil, idErr
		}
		snapshot.BagIDs = append(snapshot.BagIDs, bagID)
	}

	snapshot.ShipmentIDs = make([]kernel.UUID, 0, len(shipments))
	for _, member := range shipments {
		shipmentID, idErr := kernel.UUIDFromBytes(member.ShipmentID[:])
		if idErr != nil {
			return nil, idErr
		}
		snapshot.ShipmentIDs = append(snapshot.ShipmentIDs, shipmentID)
	}

	return manifest.RestoreManifest(snapshot)
}

func exportFromDomain(export ports.ManifestExport, generatedAt time.Time) ManifestExportDTO {
	dto := ManifestExportDTO{
		ManifestID:          export.ManifestID.Bytes(),
		SheetName:           export.Sheet.Name,
		SheetContentType:    export.Sheet.ContentType,
		SheetContent:        export.Sheet.Content,
		WorkbookName:        export.Workbook.Name,
		WorkbookContentType: export.Workbook.ContentType,
		WorkbookContent:     export.Workbook.Content,
		Rows:                export.Sheet.Rows,
		GeneratedAt:         generatedAt,
	}

	if export.GeneratedBy != nil {
		raw := export.GeneratedBy.Bytes()
		dto.GeneratedBy = &raw
	}

	return dto
}
