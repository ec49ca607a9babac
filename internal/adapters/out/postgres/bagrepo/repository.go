package bagrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parcelbridge/internal/core/domain/model/bag"
	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/core/ports"
	"parcelbridge/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBagRepository implements BagRepository using GORM.
// Membership is stored in a join table and rewritten wholesale on every
// update; the bag aggregate is the source of truth for its member list.
type GormBagRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBagRepository creates a new GORM bag repository.
func NewGormBagRepository(db *gorm.DB, tracker aggregateTracker) *GormBagRepository {
	return &GormBagRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new bag to the database.
func (r *GormBagRepository) Add(ctx context.Context, aggregate *bag.Bag) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, members := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := r.replaceMembers(ctx, dto, members); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing bag and rewrites its membership rows.
func (r *GormBagRepository) Update(ctx context.Context, aggregate *bag.Bag) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, members := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&BagDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"number":        dto.Number,
		"status":        dto.Status,
		"weight_grams":  dto.WeightGrams,
		"sealed_by":     dto.SealedBy,
		"sealed_at":     dto.SealedAt,
		"unsealed_by":   dto.UnsealedBy,
		"unsealed_at":   dto.UnsealedAt,
		"unseal_reason": dto.UnsealReason,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.replaceMembers(ctx, dto, members); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a bag by ID.
func (r *GormBagRepository) Get(ctx context.Context, id kernel.UUID) (*bag.Bag, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BagDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bag", id.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// FindByShipmentID returns the bag containing the shipment, or nil if the
// shipment is in no bag.
func (r *GormBagRepository) FindByShipmentID(ctx context.Context, shipmentID kernel.UUID) (*bag.Bag, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var member BagShipmentDTO
	err := r.db.WithContext(ctx).First(&member, "shipment_id = ?", shipmentID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var dto BagDTO
	if err = r.db.WithContext(ctx).First(&dto, "id = ?", member.BagID).Error; err != nil {
		return nil, err
	}

	return r.load(ctx, dto)
}

// NextBagNumber computes the next sequential bag number.
func (r *GormBagRepository) NextBagNumber(ctx context.Context) (string, error) {
	var maxSequence int64
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(MAX(CAST(SUBSTRING(number FROM 5) AS INTEGER)), 0) FROM bags`).
		Row().Scan(&maxSequence)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("BAG-%05d", maxSequence+1), nil
}

// Delete removes a bag and its membership rows.
func (r *GormBagRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).
		Delete(&BagShipmentDTO{}, "bag_id = ?", id.Bytes()).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&BagDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("bag", id.String())
	}

	return nil
}

// SaveAirInvoice persists the air invoice generated at seal time.
func (r *GormBagRepository) SaveAirInvoice(ctx context.Context, invoice ports.AirInvoice) error {
	if err := invoice.BagID.Validate(); err != nil {
		return err
	}

	dto := invoiceFromDomain(invoice, time.Now().UTC())
	return r.db.WithContext(ctx).Create(&dto).Error
}

// DeleteAirInvoice discards the stored air invoice when a bag is unsealed.
func (r *GormBagRepository) DeleteAirInvoice(ctx context.Context, bagID kernel.UUID) error {
	if err := bagID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&AirInvoiceDTO{}, "bag_id = ?", bagID.Bytes()).Error
}

func (r *GormBagRepository) load(ctx context.Context, dto BagDTO) (*bag.Bag, error) {
	var members []BagShipmentDTO
	err := r.db.WithContext(ctx).
		Order("position").
		Find(&members, "bag_id = ?", dto.ID).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto, members)
}

func (r *GormBagRepository) replaceMembers(ctx context.Context, dto BagDTO, members []BagShipmentDTO) error {
	if err := r.db.WithContext(ctx).
		Delete(&BagShipmentDTO{}, "bag_id = ?", dto.ID).Error; err != nil {
		return err
	}

	if len(members) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Create(&members).Error
}
