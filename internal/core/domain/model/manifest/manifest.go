// Package manifest contains the flight manifest aggregate, the orchestration
// root of the export workflow. A manifest collects sealed bags and standalone
// shipments while in draft, is finalized into a frozen cargo list with
// generated documents, and then tracks the flight through departure and
// arrival. Finalize and depart cascade status changes into every member; the
// application layer wraps each cascade in a single transaction.
package manifest

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"parcelbridge/internal/core/domain/model/bag"
	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/core/domain/model/shipment"
	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

// ErrManifestIsNotConstructed is returned when attempting to use an improperly initialized Manifest.
var ErrManifestIsNotConstructed = errors.New(
	"Manifest must be created via NewManifest or RestoreManifest")

// GenerateManifestNumber draws a candidate manifest number: MF, the creation
// date as yyyymmdd and a four-digit random suffix. Like AWBs the suffix is
// collision-prone, so callers verify uniqueness on persist and redraw.
func GenerateManifestNumber(createdAt time.Time) (string, error) {
	suffix, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("manifestNumber", err)
	}

	return fmt.Sprintf("MF%s%04d", createdAt.UTC().Format("20060102"), suffix.Int64()), nil
}

// Manifest is the aggregate root for a flight manifest.
// The totals are derived caches over membership: they are recomputed through
// RecalculateTotals after every membership change and never written directly.
type Manifest struct {
	id               kernel.UUID
	number           string
	flightNumber     string
	mawbNumber       string
	airlineReference string
	departureAt      time.Time
	status           Status
	bagIDs           []kernel.UUID
	shipmentIDs      []kernel.UUID
	totalBags        int
	totalParcels     int
	totalWeight      kernel.Weight
	createdBy        *kernel.UUID
	createdAt        time.Time
	finalizedBy      *kernel.UUID
	finalizedAt      *time.Time

	guard guard.ConstructorGuard
}

// NewManifest creates an empty draft manifest for a flight.
func NewManifest(
	id kernel.UUID, number, flightNumber, mawbNumber, airlineReference string,
	departureAt time.Time, createdBy *kernel.UUID,
) (*Manifest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}
	if flightNumber == "" {
		return nil, errs.NewValueIsRequiredError("flightNumber")
	}
	if departureAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("departureAt")
	}
	if createdBy != nil {
		if err := createdBy.Validate(); err != nil {
			return nil, err
		}
	}

	return &Manifest{
		id:               id,
		number:           number,
		flightNumber:     flightNumber,
		mawbNumber:       mawbNumber,
		airlineReference: airlineReference,
		departureAt:      departureAt,
		status:           Draft,
		totalWeight:      kernel.ZeroWeight(),
		createdBy:        createdBy,
		createdAt:        time.Now().UTC(),
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// ManifestSnapshot carries the persisted state of a manifest for restoration.
type ManifestSnapshot struct {
	ID               kernel.UUID
	Number           string
	FlightNumber     string
	MAWBNumber       string
	AirlineReference string
	DepartureAt      time.Time
	Status           Status
	BagIDs           []kernel.UUID
	ShipmentIDs      []kernel.UUID
	TotalBags        int
	TotalParcels     int
	TotalWeight      kernel.Weight
	CreatedBy        *kernel.UUID
	CreatedAt        time.Time
	FinalizedBy      *kernel.UUID
	FinalizedAt      *time.Time
}

// RestoreManifest reconstructs a manifest aggregate from persistence.
func RestoreManifest(snapshot ManifestSnapshot) (*Manifest, error) {
	if err := errors.Join(
		snapshot.ID.Validate(),
		snapshot.Status.Validate(),
		snapshot.TotalWeight.Validate(),
	); err != nil {
		return nil, err
	}
	if snapshot.Number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}

	return &Manifest{
		id:               snapshot.ID,
		number:           snapshot.Number,
		flightNumber:     snapshot.FlightNumber,
		mawbNumber:       snapshot.MAWBNumber,
		airlineReference: snapshot.AirlineReference,
		departureAt:      snapshot.DepartureAt,
		status:           snapshot.Status,
		bagIDs:           snapshot.BagIDs,
		shipmentIDs:      snapshot.ShipmentIDs,
		totalBags:        snapshot.TotalBags,
		totalParcels:     snapshot.TotalParcels,
		totalWeight:      snapshot.TotalWeight,
		createdBy:        snapshot.CreatedBy,
		createdAt:        snapshot.CreatedAt,
		finalizedBy:      snapshot.FinalizedBy,
		finalizedAt:      snapshot.FinalizedAt,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the manifest was created through a constructor.
func (m *Manifest) Validate() error {
	return m.guard.Validate(ErrManifestIsNotConstructed)
}

// ID returns the unique identifier of the manifest.
func (m *Manifest) ID() kernel.UUID {
	return m.id
}

// Number returns the human-readable manifest number.
func (m *Manifest) Number() string {
	return m.number
}

// FlightNumber returns the flight the manifest is booked on.
func (m *Manifest) FlightNumber() string {
	return m.flightNumber
}

// MAWBNumber returns the master air waybill covering the cargo, if assigned.
func (m *Manifest) MAWBNumber() string {
	return m.mawbNumber
}

// AirlineReference returns the airline's own booking reference, if any.
func (m *Manifest) AirlineReference() string {
	return m.airlineReference
}

// DepartureAt returns the scheduled departure time.
func (m *Manifest) DepartureAt() time.Time {
	return m.departureAt
}

// Status returns the current lifecycle status.
func (m *Manifest) Status() Status {
	return m.status
}

// BagIDs returns the identifiers of the member bags.
func (m *Manifest) BagIDs() []kernel.UUID {
	return m.bagIDs
}

// ShipmentIDs returns the identifiers of the standalone member shipments.
func (m *Manifest) ShipmentIDs() []kernel.UUID {
	return m.shipmentIDs
}

// TotalBags returns the cached count of member bags.
func (m *Manifest) TotalBags() int {
	return m.totalBags
}

// TotalParcels returns the cached count of parcels reachable through bags
// plus standalone members.
func (m *Manifest) TotalParcels() int {
	return m.totalParcels
}

// TotalWeight returns the cached total cargo weight.
func (m *Manifest) TotalWeight() kernel.Weight {
	return m.totalWeight
}

// CreatedBy returns the staff member who created the manifest, or nil.
func (m *Manifest) CreatedBy() *kernel.UUID {
	return m.createdBy
}

// CreatedAt returns the manifest creation time.
func (m *Manifest) CreatedAt() time.Time {
	return m.createdAt
}

// FinalizedBy returns who finalized the manifest, or nil while draft.
func (m *Manifest) FinalizedBy() *kernel.UUID {
	return m.finalizedBy
}

// FinalizedAt returns when the manifest was finalized, or nil while draft.
func (m *Manifest) FinalizedAt() *time.Time {
	return m.finalizedAt
}

// ContainsBag reports whether the bag is a member of this manifest.
func (m *Manifest) ContainsBag(bagID kernel.UUID) bool {
	for _, id := range m.bagIDs {
		if id.IsEqual(bagID) {
			return true
		}
	}
	return false
}

// ContainsShipment reports whether the shipment is a standalone member.
func (m *Manifest) ContainsShipment(shipmentID kernel.UUID) bool {
	for _, id := range m.shipmentIDs {
		if id.IsEqual(shipmentID) {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the manifest has neither bags nor standalone
// shipments.
func (m *Manifest) IsEmpty() bool {
	return len(m.bagIDs) == 0 && len(m.shipmentIDs) == 0
}

// AddBag attaches a sealed bag to the draft manifest. The bag's own status
// does not change until finalize. The caller additionally enforces that the
// bag belongs to no other manifest.
func (m *Manifest) AddBag(b *bag.Bag) error {
	if m.status != Draft {
		return errs.NewInvalidStateError("manifest", m.status.String())
	}
	if b.Status() != bag.Sealed {
		return errs.NewNotEligibleError("bag",
			fmt.Sprintf("bag %s is %s, only sealed bags can join a manifest", b.Number(), b.Status()))
	}
	if m.ContainsBag(b.ID()) {
		return errs.NewNotEligibleError("bag",
			fmt.Sprintf("already a member of manifest %s", m.number))
	}

	m.bagIDs = append(m.bagIDs, b.ID())
	return nil
}

// RemoveBag detaches a bag from the draft manifest. The bag stays sealed.
func (m *Manifest) RemoveBag(b *bag.Bag) error {
	if m.status != Draft {
		return errs.NewInvalidStateError("manifest", m.status.String())
	}
	if !m.ContainsBag(b.ID()) {
		return errs.NewNotEligibleError("bag",
			fmt.Sprintf("not a member of manifest %s", m.number))
	}

	kept := m.bagIDs[:0]
	for _, id := range m.bagIDs {
		if !id.IsEqual(b.ID()) {
			kept = append(kept, id)
		}
	}
	m.bagIDs = kept
	return nil
}

// AddShipment attaches a standalone shipment to the draft manifest.
// Terminal shipments and shipments outside the accepted statuses are
// rejected; the caller additionally enforces that the shipment is in no bag
// and no other manifest.
func (m *Manifest) AddShipment(s *shipment.Shipment) error {
	if m.status != Draft {
		return errs.NewInvalidStateError("manifest", m.status.String())
	}
	if s.Status().IsTerminal() {
		return errs.NewNotEligibleError("shipment", "already in a terminal status")
	}
	if !isStandaloneEligible(s.Status()) {
		return errs.NewNotEligibleError("shipment",
			fmt.Sprintf("status %s does not allow manifest membership", s.Status()))
	}
	if m.ContainsShipment(s.ID()) {
		return errs.NewNotEligibleError("shipment",
			fmt.Sprintf("already a member of manifest %s", m.number))
	}

	m.shipmentIDs = append(m.shipmentIDs, s.ID())
	return nil
}

// RemoveShipment detaches a standalone shipment from the draft manifest and
// reverts it to the warehouse.
func (m *Manifest) RemoveShipment(s *shipment.Shipment, actor *kernel.UUID) error {
	if m.status != Draft {
		return errs.NewInvalidStateError("manifest", m.status.String())
	}
	if !m.ContainsShipment(s.ID()) {
		return errs.NewNotEligibleError("shipment",
			fmt.Sprintf("not a member of manifest %s", m.number))
	}

	description := fmt.Sprintf("Removed from manifest %s", m.number)
	if err := s.ReturnToWarehouse(description, actor); err != nil {
		return err
	}

	kept := m.shipmentIDs[:0]
	for _, id := range m.shipmentIDs {
		if !id.IsEqual(s.ID()) {
			kept = append(kept, id)
		}
	}
	m.shipmentIDs = kept
	return nil
}

// RecalculateTotals re-derives the cached totals from the live member
// aggregates. Bags contribute their member count and exact weight,
// standalone shipments their estimated weight.
func (m *Manifest) RecalculateTotals(bags []*bag.Bag, standalone []*shipment.Shipment) {
	parcels := 0
	weight := kernel.ZeroWeight()

	for _, b := range bags {
		if !m.ContainsBag(b.ID()) {
			continue
		}
		parcels += len(b.ShipmentIDs())
		weight = weight.Add(b.Weight())
	}

	for _, s := range standalone {
		if !m.ContainsShipment(s.ID()) {
			continue
		}
		parcels++
		weight = weight.Add(s.EstimatedWeight())
	}

	m.totalBags = len(m.bagIDs)
	m.totalParcels = parcels
	m.totalWeight = weight
}

// Finalize freezes the manifest. A draft with at least one member is
// required. The caller cascades IN_MANIFEST/IN_EXPORT_MANIFEST into members
// and generates the manifest documents in the same transaction.
func (m *Manifest) Finalize(actor *kernel.UUID) error {
	if m.status != Draft {
		return errs.NewInvalidStateError("manifest", m.status.String())
	}
	if m.IsEmpty() {
		return errs.NewInvalidStateErrorWithCause("manifest", m.status.String(),
			errors.New("cannot finalize an empty manifest"))
	}

	now := time.Now().UTC()
	m.status = Finalized
	m.finalizedBy = actor
	m.finalizedAt = &now
	return nil
}

// MarkDeparted records the flight leaving. Only a finalized manifest can
// depart: a draft has not been frozen and the chain does not reverse.
func (m *Manifest) MarkDeparted() error {
	if m.status != Finalized {
		return errs.NewInvalidStateError("manifest", m.status.String())
	}

	m.status = Departed
	return nil
}

// MarkArrived records the flight landing at the destination.
func (m *Manifest) MarkArrived() error {
	if m.status != Departed {
		return errs.NewInvalidStateError("manifest", m.status.String())
	}

	m.status = Arrived
	return nil
}

// EnsureDeletable checks that the manifest may be deleted. Only drafts are
// deletable, and deletion detaches members without mutating them.
func (m *Manifest) EnsureDeletable() error {
	if m.status != Draft {
		return errs.NewInvalidStateError("manifest", m.status.String())
	}
	return nil
}

func isStandaloneEligible(status shipment.Status) bool {
	return status == shipment.Booked ||
		status == shipment.ReceivedAtBD ||
		status == shipment.BaggedForExport
}
