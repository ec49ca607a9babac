package shipmentrepo

import (
	"context"
	"errors"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/core/domain/model/shipment"
	"parcelbridge/internal/core/ports"
	"parcelbridge/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
// Buffered tracking events are flushed as rows in the same transaction as
// the aggregate, then cleared, so the history and the status never diverge.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment and its buffered tracking events to the database.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return mapAWBCollision(err)
	}

	if err := r.flushEvents(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing shipment and its buffered tracking events.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ShipmentDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return mapAWBCollision(result.Error)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.flushEvents(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a shipment by ID.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByAWB retrieves a shipment by its public AWB number.
func (r *GormShipmentRepository) GetByAWB(ctx context.Context, awb string) (*shipment.Shipment, error) {
	if awb == "" {
		return nil, errs.NewValueIsRequiredError("awb")
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "awb = ?", awb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", awb)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByIDs retrieves the shipments for the given identifiers.
func (r *GormShipmentRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*shipment.Shipment, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []ShipmentDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	if len(dtos) != len(ids) {
		return nil, errs.NewObjectNotFoundError("shipments", "one or more requested shipments")
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}

	return shipments, nil
}

// Delete removes a shipment and its tracking events.
func (r *GormShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).
		Delete(&TrackingEventDTO{}, "shipment_id = ?", id.Bytes()).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ShipmentDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", id.String())
	}

	return nil
}

// AddDeliveryProof persists the proof of delivery record.
func (r *GormShipmentRepository) AddDeliveryProof(ctx context.Context, proof shipment.DeliveryProof) error {
	if err := proof.Validate(); err != nil {
		return err
	}

	dto := proofFromDomain(proof)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// flushEvents writes the aggregate's buffered tracking events and clears
// the buffer. Events are append-only; existing rows are never touched.
func (r *GormShipmentRepository) flushEvents(ctx context.Context, aggregate *shipment.Shipment) error {
	pending := aggregate.PendingEvents()
	if len(pending) == 0 {
		return nil
	}

	dtos := make([]TrackingEventDTO, 0, len(pending))
	for _, event := range pending {
		dtos = append(dtos, eventFromDomain(event))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return err
	}

	aggregate.ClearPendingEvents()
	return nil
}

// mapAWBCollision translates a duplicate-key violation on the awb unique
// index into the port-level sentinel so handlers can retry with a fresh
// number. Requires gorm.Config{TranslateError: true} on the connection.
func mapAWBCollision(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ports.ErrAWBTaken
	}
	return err
}
