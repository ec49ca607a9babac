package queries

import (
	"errors"
	"time"

	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

var (
	ErrGetShipmentTrackingQueryIsNotConstructed = errors.New(
		"GetShipmentTrackingQuery must be created via NewGetShipmentTrackingQuery constructor",
	)
)

// GetShipmentTrackingQuery retrieves the public tracking view of a shipment
// by its air waybill number. This is the query behind the customer-facing
// tracking page, so it exposes no internal identifiers.
//
// Example:
//
//	query, err := NewGetShipmentTrackingQuery("DH2026082812345")
//	if err != nil {
//	    return err
//	}
//
//	tracking, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("tracking lookup failed: %w", err)
//	}
//	fmt.Printf("%s: %s\n", tracking.AWB, tracking.Status)
type GetShipmentTrackingQuery struct {
	awb string

	guard guard.ConstructorGuard
}

// NewGetShipmentTrackingQuery creates a tracking query for an air waybill.
func NewGetShipmentTrackingQuery(awb string) (GetShipmentTrackingQuery, error) {
	if awb == "" {
		return GetShipmentTrackingQuery{}, errs.NewValueIsRequiredError("awb")
	}

	return GetShipmentTrackingQuery{
		awb:   awb,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentTrackingQueryIsNotConstructed)
}

// AWB returns the air waybill being tracked.
func (q GetShipmentTrackingQuery) AWB() string {
	return q.awb
}

// GetShipmentTrackingQueryResponse is the tracking view of one shipment:
// corridor, current status and the full event history, newest first.
type GetShipmentTrackingQueryResponse struct {
	AWB           string
	Direction     string
	Status        string
	Origin        string
	Destination   string
	RecipientName string
	BookedAt      time.Time
	Events        []TrackingEventResponse
}

// TrackingEventResponse is a single entry of the shipment's history.
type TrackingEventResponse struct {
	Kind        string
	Status      string
	Description string
	Location    string
	OccurredAt  time.Time
}
