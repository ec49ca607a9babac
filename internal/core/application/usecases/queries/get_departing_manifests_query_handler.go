package queries

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// GetDepartingManifestsQueryHandler lists finalized manifests whose scheduled
// departure falls inside the look-ahead window, soonest first.
type GetDepartingManifestsQueryHandler struct {
	db *gorm.DB
}

// NewGetDepartingManifestsQueryHandler creates a handler for upcoming departure queries.
func NewGetDepartingManifestsQueryHandler(db *gorm.DB) GetDepartingManifestsQueryHandler {
	return GetDepartingManifestsQueryHandler{db: db}
}

// Handle executes the upcoming departures query.
func (h GetDepartingManifestsQueryHandler) Handle(
	ctx context.Context,
	query GetDepartingManifestsQuery,
) ([]GetDepartingManifestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	manifests := make([]GetDepartingManifestsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			number,
			flight_number,
			departure_at,
			total_bags,
			total_parcels
		FROM manifests
		WHERE status = 'FINALIZED'
		  AND departure_at BETWEEN ? AND ?
		ORDER BY departure_at
	`, now, now.Add(query.Window())).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var manifestResp GetDepartingManifestsQueryResponse

		err = rows.Scan(
			&manifestResp.Number,
			&manifestResp.FlightNumber,
			&manifestResp.DepartureAt,
			&manifestResp.TotalBags,
			&manifestResp.TotalParcels,
		)
		if err != nil {
			return nil, err
		}

		manifests = append(manifests, manifestResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return manifests, nil
}
