package queries

import (
	"context"
	"time"

	"parcelbridge/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetShipmentTrackingQueryHandler resolves an air waybill to the public
// tracking view. Reads go straight to SQL; no aggregates are rehydrated for
// a read-only page.
type GetShipmentTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentTrackingQueryHandler creates a handler for tracking lookups.
func NewGetShipmentTrackingQueryHandler(db *gorm.DB) GetShipmentTrackingQueryHandler {
	return GetShipmentTrackingQueryHandler{db: db}
}

// Handle executes the tracking lookup.
func (h GetShipmentTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentTrackingQuery,
) (GetShipmentTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentTrackingQueryResponse{}, err
	}

	var response GetShipmentTrackingQueryResponse
	var shipmentID string

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			awb,
			direction,
			status,
			origin_country,
			destination_country,
			recipient_name,
			booked_at
		FROM shipments
		WHERE awb = ?
	`, query.AWB()).Row()

	err := row.Scan(
		&shipmentID,
		&response.AWB,
		&response.Direction,
		&response.Status,
		&response.Origin,
		&response.Destination,
		&response.RecipientName,
		&response.BookedAt,
	)
	if err != nil {
		return GetShipmentTrackingQueryResponse{}, errs.NewObjectNotFoundErrorWithCause(
			"awb", query.AWB(), err)
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			kind,
			status,
			description,
			location,
			occurred_at
		FROM tracking_events
		WHERE shipment_id = ?
		ORDER BY occurred_at DESC, id DESC
	`, shipmentID).Rows()
	if err != nil {
		return GetShipmentTrackingQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var event TrackingEventResponse
		var occurredAt time.Time

		err = rows.Scan(
			&event.Kind,
			&event.Status,
			&event.Description,
			&event.Location,
			&occurredAt,
		)
		if err != nil {
			return GetShipmentTrackingQueryResponse{}, err
		}

		event.OccurredAt = occurredAt
		response.Events = append(response.Events, event)
	}

	if err = rows.Err(); err != nil {
		return GetShipmentTrackingQueryResponse{}, err
	}

	return response, nil
}
