// Package tracking contains the append-only audit trail for shipment history.
// Events are recorded by the shipment aggregate whenever its status changes or
// its bag is sealed or unsealed, and are never updated or deleted afterwards.
package tracking

import (
	"errors"
	"time"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/pkg/errs"
)

// ErrEventIsNotConstructed is returned when attempting to use an improperly initialized Event.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent")

// Kind classifies a tracking event.
type Kind int

const (
	// KindUnknown is the zero value and never valid for a recorded event.
	KindUnknown Kind = iota
	// KindStatusChange marks a shipment status transition.
	KindStatusChange
	// KindBagSealed marks the sealing of the bag a shipment travels in.
	// The shipment status does not change; the event exists so the timeline
	// distinguishes a re-seal from the original bagging.
	KindBagSealed
	// KindBagUnsealed marks the unsealing of the bag a shipment travels in.
	KindBagUnsealed
)

var kindNames = map[Kind]string{
	KindStatusChange: "STATUS_CHANGE",
	KindBagSealed:    "BAG_SEALED",
	KindBagUnsealed:  "BAG_UNSEALED",
}

// Name returns the wire representation of the kind, or "UNKNOWN" for
// unrecognized values.
func (k Kind) Name() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsValid reports whether the kind is one of the recorded kinds.
func (k Kind) IsValid() bool {
	_, ok := kindNames[k]
	return ok
}

// KindFromName parses a wire kind name back into a Kind.
func KindFromName(name string) (Kind, error) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, nil
		}
	}
	return KindUnknown, errs.NewValueIsInvalidError("kind")
}

// Event is a single immutable entry in a shipment's history.
// Status holds the shipment status name at the moment the event was recorded,
// which for bag seal events is the unchanged current status.
type Event struct {
	id          kernel.UUID
	shipmentID  kernel.UUID
	kind        Kind
	status      string
	description string
	location    string
	notes       string
	actor       *kernel.UUID
	occurredAt  time.Time
}

// NewEvent creates a tracking event for a shipment.
// The actor is optional: system-triggered cascades record a nil actor.
func NewEvent(
	id kernel.UUID,
	shipmentID kernel.UUID,
	kind Kind,
	status string,
	description string,
	location string,
	notes string,
	actor *kernel.UUID,
	occurredAt time.Time,
) (*Event, error) {
	if err := errors.Join(
		validateID("id", id),
		validateID("shipmentID", shipmentID),
		validateKind(kind),
		validateStatus(status),
		validateOccurredAt(occurredAt),
	); err != nil {
		return nil, err
	}

	if actor != nil {
		if err := actor.Validate(); err != nil {
			return nil, err
		}
	}

	return &Event{
		id:          id,
		shipmentID:  shipmentID,
		kind:        kind,
		status:      status,
		description: description,
		location:    location,
		notes:       notes,
		actor:       actor,
		occurredAt:  occurredAt,
	}, nil
}

// RestoreEvent reconstructs an event from persistence.
func RestoreEvent(
	id kernel.UUID,
	shipmentID kernel.UUID,
	kind Kind,
	status string,
	description string,
	location string,
	notes string,
	actor *kernel.UUID,
	occurredAt time.Time,
) (*Event, error) {
	return NewEvent(id, shipmentID, kind, status, description, location, notes, actor, occurredAt)
}

// ID returns the unique identifier of the event.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// ShipmentID returns the shipment this event belongs to.
func (e *Event) ShipmentID() kernel.UUID {
	return e.shipmentID
}

// Kind returns the event classification.
func (e *Event) Kind() Kind {
	return e.kind
}

// Status returns the shipment status name recorded with the event.
func (e *Event) Status() string {
	return e.status
}

// Description returns the human-readable summary of what happened.
func (e *Event) Description() string {
	return e.description
}

// Location returns the place the event was recorded at, if any.
func (e *Event) Location() string {
	return e.location
}

// Notes returns free-form operator notes, if any.
func (e *Event) Notes() string {
	return e.notes
}

// Actor returns the staff member who triggered the event, or nil for
// system-generated entries.
func (e *Event) Actor() *kernel.UUID {
	return e.actor
}

// OccurredAt returns the moment the event was recorded.
func (e *Event) OccurredAt() time.Time {
	return e.occurredAt
}

func validateID(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}

func validateKind(kind Kind) error {
	if !kind.IsValid() {
		return errs.NewValueIsInvalidError("kind")
	}
	return nil
}

func validateStatus(status string) error {
	if status == "" {
		return errs.NewValueIsRequiredError("status")
	}
	return nil
}

func validateOccurredAt(occurredAt time.Time) error {
	if occurredAt.IsZero() {
		return errs.NewValueIsRequiredError("occurredAt")
	}
	return nil
}
