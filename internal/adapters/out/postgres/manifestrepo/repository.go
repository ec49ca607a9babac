package manifestrepo

import (
	"context"
	"errors"
	"time"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/core/domain/model/manifest"
	"parcelbridge/internal/core/ports"
	"parcelbridge/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormManifestRepository implements ManifestRepository using GORM.
// Bag and standalone shipment membership live in two join tables that are
// rewritten wholesale on every update.
type GormManifestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormManifestRepository creates a new GORM manifest repository.
func NewGormManifestRepository(db *gorm.DB, tracker aggregateTracker) *GormManifestRepository {
	return &GormManifestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new manifest to the database.
// Returns ErrManifestNumberTaken on a number collision.
func (r *GormManifestRepository) Add(ctx context.Context, aggregate *manifest.Manifest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, bags, shipments := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrManifestNumberTaken
		}
		return err
	}

	if err := r.replaceMembers(ctx, dto, bags, shipments); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing manifest and rewrites its membership rows.
func (r *GormManifestRepository) Update(ctx context.Context, aggregate *manifest.Manifest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, bags, shipments := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ManifestDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"flight_number":      dto.FlightNumber,
		"mawb_number":        dto.MAWBNumber,
		"airline_reference":  dto.AirlineReference,
		"departure_at":       dto.DepartureAt,
		"status":             dto.Status,
		"total_bags":         dto.TotalBags,
		"total_parcels":      dto.TotalParcels,
		"total_weight_grams": dto.TotalWeightGrams,
		"finalized_by":       dto.FinalizedBy,
		"finalized_at":       dto.FinalizedAt,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.replaceMembers(ctx, dto, bags, shipments); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a manifest by ID.
func (r *GormManifestRepository) Get(ctx context.Context, id kernel.UUID) (*manifest.Manifest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ManifestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("manifest", id.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// FindByBagID returns the manifest containing the bag, or nil if there is none.
func (r *GormManifestRepository) FindByBagID(ctx context.Context, bagID kernel.UUID) (*manifest.Manifest, error) {
	if err := bagID.Validate(); err != nil {
		return nil, err
	}

	var member ManifestBagDTO
	err := r.db.WithContext(ctx).First(&member, "bag_id = ?", bagID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.getByRawID(ctx, member.ManifestID)
}

// FindByShipmentID returns the manifest containing the shipment as a
// standalone member, or nil if there is none.
func (r *GormManifestRepository) FindByShipmentID(ctx context.Context, shipmentID kernel.UUID) (*manifest.Manifest, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var member ManifestShipmentDTO
	err := r.db.WithContext(ctx).First(&member, "shipment_id = ?", shipmentID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.getByRawID(ctx, member.ManifestID)
}

// Delete removes a draft manifest and detaches its membership rows.
func (r *GormManifestRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	raw := id.Bytes()
	if err := r.db.WithContext(ctx).
		Delete(&ManifestBagDTO{}, "manifest_id = ?", raw).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Delete(&ManifestShipmentDTO{}, "manifest_id = ?", raw).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ManifestDTO{}, "id = ?", raw)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("manifest", id.String())
	}

	return nil
}

// SaveExport persists the documents generated at finalize time.
func (r *GormManifestRepository) SaveExport(ctx context.Context, export ports.ManifestExport) error {
	if err := export.ManifestID.Validate(); err != nil {
		return err
	}

	dto := exportFromDomain(export, time.Now().UTC())
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormManifestRepository) getByRawID(ctx context.Context, raw any) (*manifest.Manifest, error) {
	var dto ManifestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", raw).Error; err != nil {
		return nil, err
	}

	return r.load(ctx, dto)
}

func (r *GormManifestRepository) load(ctx context.Context, dto ManifestDTO) (*manifest.Manifest, error) {
	var bags []ManifestBagDTO
	err := r.db.WithContext(ctx).
		Order("position").
		Find(&bags, "manifest_id = ?", dto.ID).Error
	if err != nil {
		return nil, err
	}

	var shipments []ManifestShipmentDTO
	err = r.db.WithContext(ctx).
		Order("position").
		Find(&shipments, "manifest_id = ?", dto.ID).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto, bags, shipments)
}

func (r *GormManifestRepository) replaceMembers(
	ctx context.Context, dto ManifestDTO, bags []ManifestBagDTO, shipments []ManifestShipmentDTO,
) error {
	if err := r.db.WithContext(ctx).
		Delete(&ManifestBagDTO{}, "manifest_id = ?", dto.ID).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Delete(&ManifestShipmentDTO{}, "manifest_id = ?", dto.ID).Error; err != nil {
		return err
	}

	if len(bags) > 0 {
		if err := r.db.WithContext(ctx).Create(&bags).Error; err != nil {
			return err
		}
	}
	if len(shipments) > 0 {
		if err := r.db.WithContext(ctx).Create(&shipments).Error; err != nil {
			return err
		}
	}

	return nil
}
