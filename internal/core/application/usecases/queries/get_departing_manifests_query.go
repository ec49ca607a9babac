package queries

import (
	"errors"
	"time"

	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

var (
	ErrGetDepartingManifestsQueryIsNotConstructed = errors.New(
		"GetDepartingManifestsQuery must be created via NewGetDepartingManifestsQuery constructor",
	)
)

// GetDepartingManifestsQuery lists finalized manifests scheduled to depart
// within a time window. The departure reminder job runs it hourly.
type GetDepartingManifestsQuery struct {
	window time.Duration

	guard guard.ConstructorGuard
}

// NewGetDepartingManifestsQuery creates a query for upcoming departures.
func NewGetDepartingManifestsQuery(window time.Duration) (GetDepartingManifestsQuery, error) {
	if window <= 0 {
		return GetDepartingManifestsQuery{}, errs.NewValueIsOutOfRangeError(
			"window", window, time.Nanosecond, 30*24*time.Hour)
	}

	return GetDepartingManifestsQuery{
		window: window,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDepartingManifestsQuery) Validate() error {
	return q.guard.Validate(ErrGetDepartingManifestsQueryIsNotConstructed)
}

// Window returns the look-ahead window.
func (q GetDepartingManifestsQuery) Window() time.Duration {
	return q.window
}

// GetDepartingManifestsQueryResponse is one upcoming departure.
type GetDepartingManifestsQueryResponse struct {
	Number       string
	FlightNumber string
	DepartureAt  time.Time
	TotalBags    int
	TotalParcels int
}
