// Package shipment contains the shipment aggregate and its corridor-scoped
// status state machine. A shipment is the unit of carriage between
// Bangladesh and Hong Kong: it is booked, travels through warehouse, bag,
// manifest and flight stages, and ends delivered in the destination country.
//
// The aggregate is the only writer of its status. Regular moves go through
// TransitionTo, which enforces the corridor transition table. Container
// workflows (bags and manifests) drive the Mark* cascade mutators, which set
// the workflow statuses directly. Every mutation appends exactly one
// tracking event, buffered on the aggregate until the repository drains it
// inside the surrounding transaction.
package shipment

import (
	"errors"
	"fmt"
	"time"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/core/domain/model/tracking"
	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

// ErrShipmentIsNotConstructed is returned when attempting to use an improperly initialized Shipment.
var ErrShipmentIsNotConstructed = errors.New(
	"Shipment must be created via NewShipment or RestoreShipment")

// Booking carries the validated customer input for creating a shipment.
// StaffAssisted bookings are confirmed immediately: the shipment starts in
// BOOKED with an AWB already drawn, while self-service bookings start in
// PENDING and receive their AWB on the first staff confirmation.
type Booking struct {
	Direction           Direction
	Sender              Contact
	Recipient           Contact
	Contents            string
	DeclaredValue       float64
	Currency            Currency
	EstimatedWeight     kernel.Weight
	ServiceType         ServiceType
	PaymentMethod       PaymentMethod
	SpecialInstructions string
	IsFragile           bool
	IsLiquid            bool
	StaffAssisted       bool
	BookedBy            *kernel.UUID
}

// Shipment is the aggregate root for a single parcel.
type Shipment struct {
	id                  kernel.UUID
	awb                 *AWB
	direction           Direction
	status              Status
	sender              Contact
	recipient           Contact
	contents            string
	declaredValue       float64
	currency            Currency
	estimatedWeight     kernel.Weight
	actualWeight        *kernel.Weight
	serviceType         ServiceType
	paymentMethod       PaymentMethod
	paymentStatus       PaymentStatus
	shippingCost        *float64
	isFragile           bool
	isLiquid            bool
	specialInstructions string
	hkReference         string
	mawbNumber          string
	bookedBy            *kernel.UUID
	bookedAt            time.Time
	updatedAt           time.Time

	pendingEvents []*tracking.Event

	guard guard.ConstructorGuard
}

// NewShipment books a new shipment from the given input.
// Self-service bookings start in PENDING without an AWB. Staff-assisted
// bookings start in BOOKED and draw a candidate AWB immediately; the caller
// must verify AWB uniqueness on persist and rebuild the aggregate on a
// collision. Either way exactly one tracking event is buffered.
func NewShipment(id kernel.UUID, booking Booking) (*Shipment, error) {
	if err := errors.Join(
		validateShipmentID(id),
		booking.Direction.Validate(),
		validateContact("sender", booking.Sender),
		validateContact("recipient", booking.Recipient),
		validateContents(booking.Contents),
		validateDeclaredValue(booking.DeclaredValue),
		booking.Currency.Validate(),
		validateEstimatedWeight(booking.EstimatedWeight),
		booking.ServiceType.Validate(),
		booking.PaymentMethod.Validate(),
		validateBookedBy(booking.StaffAssisted, booking.BookedBy),
	); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	s := &Shipment{
		id:                  id,
		direction:           booking.Direction,
		status:              Pending,
		sender:              booking.Sender.inCountry(booking.Direction.OriginCountry()),
		recipient:           booking.Recipient.inCountry(booking.Direction.DestinationCountry()),
		contents:            booking.Contents,
		declaredValue:       booking.DeclaredValue,
		currency:            booking.Currency,
		estimatedWeight:     booking.EstimatedWeight,
		serviceType:         booking.ServiceType,
		paymentMethod:       booking.PaymentMethod,
		paymentStatus:       PaymentPending,
		isFragile:           booking.IsFragile,
		isLiquid:            booking.IsLiquid,
		specialInstructions: booking.SpecialInstructions,
		bookedBy:            booking.BookedBy,
		bookedAt:            now,
		updatedAt:           now,
		guard:               guard.NewConstructorGuard(),
	}

	if booking.StaffAssisted {
		s.status = Booked
		if err := s.ensureAWB(); err != nil {
			return nil, err
		}
	}

	if err := s.recordEvent(tracking.KindStatusChange, "Shipment booked", "", "", booking.BookedBy); err != nil {
		return nil, err
	}

	return s, nil
}

// ShipmentSnapshot carries the persisted state of a shipment for restoration.
type ShipmentSnapshot struct {
	ID                  kernel.UUID
	AWB                 *AWB
	Direction           Direction
	Status              Status
	Sender              Contact
	Recipient           Contact
	Contents            string
	DeclaredValue       float64
	Currency            Currency
	EstimatedWeight     kernel.Weight
	ActualWeight        *kernel.Weight
	ServiceType         ServiceType
	PaymentMethod       PaymentMethod
	PaymentStatus       PaymentStatus
	ShippingCost        *float64
	IsFragile           bool
	IsLiquid            bool
	SpecialInstructions string
	HKReference         string
	MAWBNumber          string
	BookedBy            *kernel.UUID
	BookedAt            time.Time
	UpdatedAt           time.Time
}

// RestoreShipment reconstructs a shipment aggregate from persistence.
func RestoreShipment(snapshot ShipmentSnapshot) (*Shipment, error) {
	if err := errors.Join(
		validateShipmentID(snapshot.ID),
		snapshot.Direction.Validate(),
		snapshot.Status.Validate(),
		validateContact("sender", snapshot.Sender),
		validateContact("recipient", snapshot.Recipient),
	); err != nil {
		return nil, err
	}

	return &Shipment{
		id:                  snapshot.ID,
		awb:                 snapshot.AWB,
		direction:           snapshot.Direction,
		status:              snapshot.Status,
		sender:              snapshot.Sender,
		recipient:           snapshot.Recipient,
		contents:            snapshot.Contents,
		declaredValue:       snapshot.DeclaredValue,
		currency:            snapshot.Currency,
		estimatedWeight:     snapshot.EstimatedWeight,
		actualWeight:        snapshot.ActualWeight,
		serviceType:         snapshot.ServiceType,
		paymentMethod:       snapshot.PaymentMethod,
		paymentStatus:       snapshot.PaymentStatus,
		shippingCost:        snapshot.ShippingCost,
		isFragile:           snapshot.IsFragile,
		isLiquid:            snapshot.IsLiquid,
		specialInstructions: snapshot.SpecialInstructions,
		hkReference:         snapshot.HKReference,
		mawbNumber:          snapshot.MAWBNumber,
		bookedBy:            snapshot.BookedBy,
		bookedAt:            snapshot.BookedAt,
		updatedAt:           snapshot.UpdatedAt,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the shipment was created through a constructor.
func (s *Shipment) Validate() error {
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// ID returns the unique identifier of the shipment.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// AWB returns the assigned air waybill number, or nil while the shipment is
// still PENDING.
func (s *Shipment) AWB() *AWB {
	return s.awb
}

// Direction returns the corridor the shipment travels.
func (s *Shipment) Direction() Direction {
	return s.direction
}

// Status returns the current lifecycle status.
func (s *Shipment) Status() Status {
	return s.status
}

// Sender returns the sending party.
func (s *Shipment) Sender() Contact {
	return s.sender
}

// Recipient returns the receiving party.
func (s *Shipment) Recipient() Contact {
	return s.recipient
}

// Contents returns the declared contents description.
func (s *Shipment) Contents() string {
	return s.contents
}

// DeclaredValue returns the declared customs value.
func (s *Shipment) DeclaredValue() float64 {
	return s.declaredValue
}

// Currency returns the declared value currency.
func (s *Shipment) Currency() Currency {
	return s.currency
}

// EstimatedWeight returns the weight declared at booking.
func (s *Shipment) EstimatedWeight() kernel.Weight {
	return s.estimatedWeight
}

// ActualWeight returns the weight measured at intake, or nil before intake.
func (s *Shipment) ActualWeight() *kernel.Weight {
	return s.actualWeight
}

// ServiceType returns the purchased service level.
func (s *Shipment) ServiceType() ServiceType {
	return s.serviceType
}

// PaymentMethod returns how carriage is paid.
func (s *Shipment) PaymentMethod() PaymentMethod {
	return s.paymentMethod
}

// PaymentStatus returns the settlement state of the carriage charge.
func (s *Shipment) PaymentStatus() PaymentStatus {
	return s.paymentStatus
}

// ShippingCost returns the quoted carriage charge, or nil before quoting.
func (s *Shipment) ShippingCost() *float64 {
	return s.shippingCost
}

// IsFragile reports whether the parcel needs fragile handling.
func (s *Shipment) IsFragile() bool {
	return s.isFragile
}

// IsLiquid reports whether the parcel contains liquids.
func (s *Shipment) IsLiquid() bool {
	return s.isLiquid
}

// SpecialInstructions returns free-form handling instructions.
func (s *Shipment) SpecialInstructions() string {
	return s.specialInstructions
}

// HKReference returns the Hong Kong partner reference, if assigned.
func (s *Shipment) HKReference() string {
	return s.hkReference
}

// MAWBNumber returns the master air waybill the parcel flew under, if any.
func (s *Shipment) MAWBNumber() string {
	return s.mawbNumber
}

// BookedBy returns the staff member who booked the shipment, or nil for
// self-service bookings.
func (s *Shipment) BookedBy() *kernel.UUID {
	return s.bookedBy
}

// BookedAt returns the booking time.
func (s *Shipment) BookedAt() time.Time {
	return s.bookedAt
}

// UpdatedAt returns the time of the last mutation.
func (s *Shipment) UpdatedAt() time.Time {
	return s.updatedAt
}

// IsEqual compares two shipments by identity.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return s.id.IsEqual(other.id)
}

// PendingEvents returns the tracking events buffered since the aggregate was
// loaded. Repositories persist them in the same transaction as the aggregate
// and then call ClearPendingEvents.
func (s *Shipment) PendingEvents() []*tracking.Event {
	return s.pendingEvents
}

// ClearPendingEvents drops the buffered events after they were persisted.
func (s *Shipment) ClearPendingEvents() {
	s.pendingEvents = nil
}

// TransitionTo performs a regular status move, the only sanctioned status
// change outside container cascades. The target must be the next link of the
// corridor chain or one of the exception statuses. Assigns the AWB lazily on
// the first move out of PENDING and appends one tracking event.
func (s *Shipment) TransitionTo(next Status, location, notes string, actor *kernel.UUID) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if !s.status.CanTransitionTo(s.direction, next) {
		return errs.NewInvalidTransitionError("shipment", s.status.String(), next.String())
	}

	previous := s.status
	s.status = next
	if err := s.ensureAWB(); err != nil {
		s.status = previous
		return err
	}

	description := fmt.Sprintf("Status updated from %s to %s", previous, next)
	return s.recordEvent(tracking.KindStatusChange, description, location, notes, actor)
}

// MarkBagged records that the shipment was placed into an export bag.
// Only export-corridor shipments in BOOKED or RECEIVED_AT_BD are baggable.
func (s *Shipment) MarkBagged(bagNumber string, actor *kernel.UUID) error {
	if s.direction != BDToHK {
		return errs.NewNotEligibleError("shipment", "only export shipments can be bagged")
	}
	if s.status != Booked && s.status != ReceivedAtBD {
		return errs.NewInvalidStateError("shipment", s.status.String())
	}

	s.status = BaggedForExport
	if err := s.ensureAWB(); err != nil {
		return err
	}

	description := fmt.Sprintf("Added to bag %s", bagNumber)
	return s.recordEvent(tracking.KindStatusChange, description, "Bangladesh Warehouse", "", actor)
}

// ReturnToWarehouse reverts the shipment to RECEIVED_AT_BD after it was
// taken out of a bag or manifest, or after its container was deleted.
func (s *Shipment) ReturnToWarehouse(description string, actor *kernel.UUID) error {
	s.status = ReceivedAtBD
	return s.recordEvent(tracking.KindStatusChange, description, "Bangladesh Warehouse", "", actor)
}

// AnnounceSealed re-announces the unchanged BAGGED_FOR_EXPORT status when
// the surrounding bag is sealed, so the timeline records the seal per member.
func (s *Shipment) AnnounceSealed(bagNumber string, actor *kernel.UUID) error {
	description := fmt.Sprintf("Bag %s sealed", bagNumber)
	return s.recordEvent(tracking.KindBagSealed, description, "Bangladesh Warehouse", "", actor)
}

// AnnounceUnsealed records that the surrounding bag was reopened.
func (s *Shipment) AnnounceUnsealed(bagNumber, reason string, actor *kernel.UUID) error {
	description := fmt.Sprintf("Bag %s unsealed: %s", bagNumber, reason)
	return s.recordEvent(tracking.KindBagUnsealed, description, "Bangladesh Warehouse", "", actor)
}

// MarkManifested records that the shipment entered a finalized flight manifest.
func (s *Shipment) MarkManifested(manifestNumber string, actor *kernel.UUID) error {
	s.status = InExportManifest
	if err := s.ensureAWB(); err != nil {
		return err
	}

	description := fmt.Sprintf("Added to manifest %s", manifestNumber)
	return s.recordEvent(tracking.KindStatusChange, description, "Bangladesh Warehouse", "", actor)
}

// MarkHandedToAirline records custody passing to the airline when the
// manifest departs.
func (s *Shipment) MarkHandedToAirline(flightNumber, mawbNumber string, actor *kernel.UUID) error {
	s.status = HandedToAirline
	s.mawbNumber = mawbNumber

	description := fmt.Sprintf("Departed on flight %s", flightNumber)
	return s.recordEvent(tracking.KindStatusChange, description, "Bangladesh Airport", "", actor)
}

// MarkInTransit advances the shipment to the airborne status of its corridor.
func (s *Shipment) MarkInTransit(actor *kernel.UUID) error {
	if s.status.IsTerminal() {
		return errs.NewInvalidStateError("shipment", s.status.String())
	}

	next := InTransitToHK
	description := "In transit to Hong Kong"
	if s.direction == HKToBD {
		next = InTransitToBD
		description = "In transit to Bangladesh"
	}

	s.status = next
	return s.recordEvent(tracking.KindStatusChange, description, "In Transit", "", actor)
}

// MarkDelivered completes the lifecycle with the terminal status of the
// corridor and records who received the parcel. Exception statuses must be
// resolved through the exception workflow first; delivery cannot leave them.
func (s *Shipment) MarkDelivered(receiverName, notes string, actor *kernel.UUID) error {
	if s.status.IsTerminal() || s.status.IsException() {
		return errs.NewInvalidStateError("shipment", s.status.String())
	}

	next := DeliveredInHK
	if s.direction == HKToBD {
		next = Delivered
	}

	s.status = next
	description := fmt.Sprintf("Delivered to %s", receiverName)
	return s.recordEvent(tracking.KindStatusChange, description, "Customer Location", notes, actor)
}

// EnsureDeletable checks that the shipment may still be deleted.
// Only PENDING bookings, which have no AWB and no processing history, are
// deletable.
func (s *Shipment) EnsureDeletable() error {
	if s.status != Pending {
		return errs.NewInvalidStateError("shipment", s.status.String())
	}
	return nil
}

// SetActualWeight records the weight measured at warehouse intake.
func (s *Shipment) SetActualWeight(weight kernel.Weight) error {
	if err := weight.Validate(); err != nil {
		return err
	}

	s.actualWeight = &weight
	s.touch()
	return nil
}

// SetShippingCost records the quoted carriage charge.
func (s *Shipment) SetShippingCost(cost float64) error {
	if cost < 0 {
		return errs.NewValueIsOutOfRangeError("shippingCost", cost, 0, "unbounded")
	}

	s.shippingCost = &cost
	s.touch()
	return nil
}

// MarkPaymentPaid settles the carriage charge.
func (s *Shipment) MarkPaymentPaid() {
	s.paymentStatus = PaymentPaid
	s.touch()
}

// SetHKReference records the Hong Kong partner reference.
func (s *Shipment) SetHKReference(reference string) {
	s.hkReference = reference
	s.touch()
}

func (s *Shipment) touch() {
	s.updatedAt = time.Now().UTC()
}

// ensureAWB lazily draws the AWB the first time the shipment leaves PENDING.
func (s *Shipment) ensureAWB() error {
	if s.awb != nil || s.status == Pending {
		return nil
	}

	awb, err := GenerateAWB(s.direction, s.bookedAt)
	if err != nil {
		return err
	}

	s.awb = &awb
	return nil
}

func (s *Shipment) recordEvent(kind tracking.Kind, description, location, notes string, actor *kernel.UUID) error {
	event, err := tracking.NewEvent(
		kernel.NewUUID(), s.id, kind, s.status.String(),
		description, location, notes, actor, time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	s.pendingEvents = append(s.pendingEvents, event)
	s.touch()
	return nil
}

func validateShipmentID(id kernel.UUID) error {
	return id.Validate()
}

func validateContact(name string, contact Contact) error {
	if err := contact.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}

func validateContents(contents string) error {
	if contents == "" {
		return errs.NewValueIsRequiredError("contents")
	}
	return nil
}

func validateDeclaredValue(value float64) error {
	if value < 0 {
		return errs.NewValueIsOutOfRangeError("declaredValue", value, 0, "unbounded")
	}
	return nil
}

func validateEstimatedWeight(weight kernel.Weight) error {
	if err := weight.Validate(); err != nil {
		return err
	}
	if weight.IsZero() {
		return errs.NewValueIsRequiredError("estimatedWeight")
	}
	return nil
}

func validateBookedBy(staffAssisted bool, bookedBy *kernel.UUID) error {
	if bookedBy != nil {
		return bookedBy.Validate()
	}
	if staffAssisted {
		return errs.NewValueIsRequiredError("bookedBy")
	}
	return nil
}
