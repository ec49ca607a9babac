package queries

import (
	"errors"

	"parcelbridge/internal/pkg/guard"
)

var (
	ErrGetBagOverviewQueryIsNotConstructed = errors.New(
		"GetBagOverviewQuery must be created via NewGetBagOverviewQuery constructor",
	)
)

// GetBagOverviewQuery lists every bag that has not yet been dispatched,
// with its live parcel count and weight. The warehouse floor screen polls it.
type GetBagOverviewQuery struct {
	guard guard.ConstructorGuard
}

// NewGetBagOverviewQuery creates a query for the warehouse bag overview.
func NewGetBagOverviewQuery() GetBagOverviewQuery {
	return GetBagOverviewQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetBagOverviewQuery) Validate() error {
	return q.guard.Validate(ErrGetBagOverviewQueryIsNotConstructed)
}

// GetBagOverviewQueryResponse is one bag on the warehouse floor.
type GetBagOverviewQueryResponse struct {
	Number      string
	Status      string
	ParcelCount int
	WeightGrams int64
}
