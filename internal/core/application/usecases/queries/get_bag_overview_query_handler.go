package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetBagOverviewQueryHandler lists bags still at the warehouse or on a
// manifest, with live member counts.
type GetBagOverviewQueryHandler struct {
	db *gorm.DB
}

// NewGetBagOverviewQueryHandler creates a handler for the bag overview.
func NewGetBagOverviewQueryHandler(db *gorm.DB) GetBagOverviewQueryHandler {
	return GetBagOverviewQueryHandler{db: db}
}

// Handle executes the bag overview query.
func (h GetBagOverviewQueryHandler) Handle(
	ctx context.Context,
	query GetBagOverviewQuery,
) ([]GetBagOverviewQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	bags := make([]GetBagOverviewQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			b.number,
			b.status,
			COUNT(m.shipment_id),
			b.weight_grams
		FROM bags b
		LEFT JOIN bag_shipments m ON m.bag_id = b.id
		WHERE b.status != 'DISPATCHED'
		GROUP BY b.id, b.number, b.status, b.weight_grams
		ORDER BY b.number
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var bagResp GetBagOverviewQueryResponse

		err = rows.Scan(
			&bagResp.Number,
			&bagResp.Status,
			&bagResp.ParcelCount,
			&bagResp.WeightGrams,
		)
		if err != nil {
			return nil, err
		}

		bags = append(bags, bagResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bags, nil
}
