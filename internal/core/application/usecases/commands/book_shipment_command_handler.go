package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/core/domain/model/shipment"
	"parcelbridge/internal/core/ports"
)

// maxAWBAttempts bounds the retries when a freshly generated air waybill
// collides with an existing one. Collisions are rare (5 random digits per
// direction per day) so three attempts is plenty.
const maxAWBAttempts = 3

// BookShipmentResult carries the identifiers the caller needs after booking.
type BookShipmentResult struct {
	ShipmentID kernel.UUID
	AWB        string
	Status     string
}

// BookShipmentCommandHandler books a new shipment. When an idempotency key is
// supplied and a deduplicator is configured, a repeated booking returns the
// previously created shipment instead of creating a duplicate.
type BookShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	dedup      ports.BookingDeduplicator
	log        zerolog.Logger
}

// NewBookShipmentCommandHandler creates a handler for booking shipments.
// dedup may be nil, in which case idempotency keys are ignored.
func NewBookShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	dedup ports.BookingDeduplicator,
	log zerolog.Logger,
) (BookShipmentCommandHandler, error) {
	if uowFactory == nil {
		return BookShipmentCommandHandler{}, errors.New("uowFactory must not be nil")
	}

	return BookShipmentCommandHandler{uowFactory: uowFactory, dedup: dedup, log: log}, nil
}

// Handle books the shipment and returns its identifiers.
func (h BookShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd BookShipmentCommand,
) (BookShipmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return BookShipmentResult{}, err
	}

	existing, ok, err := h.findExisting(ctx, cmd.IdempotencyKey())
	if err != nil {
		// Best effort: a broken dedup store must not block bookings, but its
		// failures have to stay visible.
		h.log.Debug().Err(err).Str("idempotency_key", cmd.IdempotencyKey()).
			Msg("booking dedup lookup failed; booking proceeds")
	} else if ok {
		return existing, nil
	}

	var result BookShipmentResult
	var lastErr error
	for attempt := 0; attempt < maxAWBAttempts; attempt++ {
		result, lastErr = h.book(ctx, cmd)
		if lastErr == nil {
			break
		}
		if !errors.Is(lastErr, ports.ErrAWBTaken) {
			return BookShipmentResult{}, lastErr
		}
	}
	if lastErr != nil {
		return BookShipmentResult{}, fmt.Errorf("booking shipment: %w", lastErr)
	}

	if h.dedup != nil && cmd.IdempotencyKey() != "" {
		// Best effort: losing the dedup record only risks a duplicate on a
		// retry, never a lost booking.
		_ = h.dedup.Remember(ctx, cmd.IdempotencyKey(), result.ShipmentID)
	}

	return result, nil
}

func (h BookShipmentCommandHandler) findExisting(
	ctx context.Context,
	key string,
) (BookShipmentResult, bool, error) {
	if h.dedup == nil || key == "" {
		return BookShipmentResult{}, false, nil
	}

	shipmentID, found, err := h.dedup.Find(ctx, key)
	if err != nil || !found {
		return BookShipmentResult{}, false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return BookShipmentResult{}, false, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	existing, err := uow.ShipmentRepository().Get(ctx, shipmentID)
	if err != nil {
		return BookShipmentResult{}, false, err
	}

	return resultFromShipment(existing), true, nil
}

func (h BookShipmentCommandHandler) book(
	ctx context.Context,
	cmd BookShipmentCommand,
) (BookShipmentResult, error) {
	newShipment, err := shipment.NewShipment(kernel.NewUUID(), cmd.Booking())
	if err != nil {
		return BookShipmentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return BookShipmentResult{}, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	if err := uow.ShipmentRepository().Add(ctx, newShipment); err != nil {
		return BookShipmentResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return BookShipmentResult{}, err
	}

	return resultFromShipment(newShipment), nil
}

func resultFromShipment(s *shipment.Shipment) BookShipmentResult {
	result := BookShipmentResult{
		ShipmentID: s.ID(),
		Status:     s.Status().String(),
	}
	if awb := s.AWB(); awb != nil {
		result.AWB = awb.String()
	}
	return result
}
