// Package bag contains the export bag aggregate. A bag groups export
// shipments at the Bangladesh warehouse: shipments are added and removed
// while the bag is open, the bag is sealed before it can join a flight
// manifest, and its weight is always the exact sum of the estimated weights
// of its members.
package bag

import (
	"errors"
	"fmt"
	"time"

	"parcelbridge/internal/core/domain/model/kernel"
	"parcelbridge/internal/core/domain/model/shipment"
	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

// ErrBagIsNotConstructed is returned when attempting to use an improperly initialized Bag.
var ErrBagIsNotConstructed = errors.New("Bag must be created via NewBag or RestoreBag")

// Bag is the aggregate root for an export bag.
// Mutations that affect member shipments take the member aggregate as a
// parameter and drive its cascade mutators, so the caller persists both
// sides in one transaction.
type Bag struct {
	id           kernel.UUID
	number       string
	status       Status
	weight       kernel.Weight
	shipmentIDs  []kernel.UUID
	sealedBy     *kernel.UUID
	sealedAt     *time.Time
	unsealedBy   *kernel.UUID
	unsealedAt   *time.Time
	unsealReason string
	createdAt    time.Time

	guard guard.ConstructorGuard
}

// NewBag creates an empty open bag with the given sequential number.
// Numbers come from the repository's NextBagNumber, which reads the current
// maximum; see the repository for the concurrency caveat.
func NewBag(id kernel.UUID, number string) (*Bag, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}

	return &Bag{
		id:        id,
		number:    number,
		status:    Open,
		weight:    kernel.ZeroWeight(),
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// BagSnapshot carries the persisted state of a bag for restoration.
type BagSnapshot struct {
	ID           kernel.UUID
	Number       string
	Status       Status
	Weight       kernel.Weight
	ShipmentIDs  []kernel.UUID
	SealedBy     *kernel.UUID
	SealedAt     *time.Time
	UnsealedBy   *kernel.UUID
	UnsealedAt   *time.Time
	UnsealReason string
	CreatedAt    time.Time
}

// RestoreBag reconstructs a bag aggregate from persistence.
func RestoreBag(snapshot BagSnapshot) (*Bag, error) {
	if err := errors.Join(
		snapshot.ID.Validate(),
		snapshot.Status.Validate(),
		snapshot.Weight.Validate(),
	); err != nil {
		return nil, err
	}
	if snapshot.Number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}

	return &Bag{
		id:           snapshot.ID,
		number:       snapshot.Number,
		status:       snapshot.Status,
		weight:       snapshot.Weight,
		shipmentIDs:  snapshot.ShipmentIDs,
		sealedBy:     snapshot.SealedBy,
		sealedAt:     snapshot.SealedAt,
		unsealedBy:   snapshot.UnsealedBy,
		unsealedAt:   snapshot.UnsealedAt,
		unsealReason: snapshot.UnsealReason,
		createdAt:    snapshot.CreatedAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the bag was created through a constructor.
func (b *Bag) Validate() error {
	return b.guard.Validate(ErrBagIsNotConstructed)
}

// ID returns the unique identifier of the bag.
func (b *Bag) ID() kernel.UUID {
	return b.id
}

// Number returns the human-readable bag number.
func (b *Bag) Number() string {
	return b.number
}

// Status returns the current lifecycle status.
func (b *Bag) Status() Status {
	return b.status
}

// Weight returns the exact sum of member estimated weights.
func (b *Bag) Weight() kernel.Weight {
	return b.weight
}

// ShipmentIDs returns the identifiers of the member shipments.
func (b *Bag) ShipmentIDs() []kernel.UUID {
	return b.shipmentIDs
}

// SealedBy returns who sealed the bag, or nil while open.
func (b *Bag) SealedBy() *kernel.UUID {
	return b.sealedBy
}

// SealedAt returns when the bag was sealed, or nil while open.
func (b *Bag) SealedAt() *time.Time {
	return b.sealedAt
}

// UnsealedBy returns who last unsealed the bag, or nil if never unsealed.
func (b *Bag) UnsealedBy() *kernel.UUID {
	return b.unsealedBy
}

// UnsealedAt returns when the bag was last unsealed, or nil if never unsealed.
func (b *Bag) UnsealedAt() *time.Time {
	return b.unsealedAt
}

// UnsealReason returns the justification for the last unseal, if any.
func (b *Bag) UnsealReason() string {
	return b.unsealReason
}

// CreatedAt returns the bag creation time.
func (b *Bag) CreatedAt() time.Time {
	return b.createdAt
}

// Contains reports whether the shipment is a member of this bag.
func (b *Bag) Contains(shipmentID kernel.UUID) bool {
	for _, id := range b.shipmentIDs {
		if id.IsEqual(shipmentID) {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the bag has no members.
func (b *Bag) IsEmpty() bool {
	return len(b.shipmentIDs) == 0
}

// AddShipment places the shipment into the bag. The bag must be open and
// membership within this bag unique; the caller additionally enforces the
// global single-bag rule across all bags. The shipment is cascaded to
// BAGGED_FOR_EXPORT and the bag weight grows by its estimated weight.
func (b *Bag) AddShipment(s *shipment.Shipment, actor *kernel.UUID) error {
	if b.status != Open {
		return errs.NewInvalidStateError("bag", b.status.String())
	}
	if b.Contains(s.ID()) {
		return errs.NewNotEligibleError("shipment",
			fmt.Sprintf("already assigned to bag %s", b.number))
	}

	if err := s.MarkBagged(b.number, actor); err != nil {
		return err
	}

	b.shipmentIDs = append(b.shipmentIDs, s.ID())
	b.weight = b.weight.Add(s.EstimatedWeight())
	return nil
}

// RemoveShipment takes the shipment out of the bag. The bag must be open
// and the shipment a member. The shipment reverts to RECEIVED_AT_BD and the
// bag weight shrinks by its estimated weight, floored at zero.
func (b *Bag) RemoveShipment(s *shipment.Shipment, actor *kernel.UUID) error {
	if b.status != Open {
		return errs.NewInvalidStateError("bag", b.status.String())
	}
	if !b.Contains(s.ID()) {
		return errs.NewNotEligibleError("shipment",
			fmt.Sprintf("not a member of bag %s", b.number))
	}

	description := fmt.Sprintf("Removed from bag %s", b.number)
	if err := s.ReturnToWarehouse(description, actor); err != nil {
		return err
	}

	b.removeMember(s.ID())
	b.weight = b.weight.Subtract(s.EstimatedWeight())
	return nil
}

// Seal closes the bag. An empty bag cannot be sealed. The caller announces
// the seal on every member and generates the air invoice in the same
// transaction.
func (b *Bag) Seal(actor *kernel.UUID) error {
	if b.status != Open {
		return errs.NewInvalidStateError("bag", b.status.String())
	}
	if b.IsEmpty() {
		return errs.NewInvalidStateErrorWithCause("bag", b.status.String(),
			errors.New("cannot seal an empty bag"))
	}

	now := time.Now().UTC()
	b.status = Sealed
	b.sealedBy = actor
	b.sealedAt = &now
	return nil
}

// Unseal reopens a sealed bag with a mandatory reason. Bags already in a
// manifest cannot be unsealed. The caller discards the generated air invoice
// and announces the unseal on every member.
func (b *Bag) Unseal(reason string, actor *kernel.UUID) error {
	if b.status == InManifest || b.status == Dispatched {
		return errs.NewInvalidStateError("bag", b.status.String())
	}
	if b.status != Sealed {
		return errs.NewInvalidStateErrorWithCause("bag", b.status.String(),
			errors.New("bag is not sealed"))
	}
	if isBlank(reason) {
		return errs.NewValueIsRequiredError("reason")
	}

	now := time.Now().UTC()
	b.status = Open
	b.unsealedBy = actor
	b.unsealedAt = &now
	b.unsealReason = reason
	b.sealedBy = nil
	b.sealedAt = nil
	return nil
}

// EnterManifest marks the bag as belonging to a finalized manifest.
// Only sealed bags can enter.
func (b *Bag) EnterManifest() error {
	if b.status != Sealed {
		return errs.NewInvalidStateError("bag", b.status.String())
	}

	b.status = InManifest
	return nil
}

// Dispatch marks the bag as flown out with its departed manifest.
func (b *Bag) Dispatch() error {
	if b.status != InManifest {
		return errs.NewInvalidStateError("bag", b.status.String())
	}

	b.status = Dispatched
	return nil
}

// EnsureDeletable checks that the bag may be deleted. Only open bags are
// deletable; members are reverted to the warehouse by the caller first.
func (b *Bag) EnsureDeletable() error {
	if b.status != Open {
		return errs.NewInvalidStateError("bag", b.status.String())
	}
	return nil
}

// RecalculateWeight re-derives the weight cache from live member aggregates.
// Used after bulk loads to guarantee the cache never drifts from membership.
func (b *Bag) RecalculateWeight(members []*shipment.Shipment) {
	total := kernel.ZeroWeight()
	for _, member := range members {
		if b.Contains(member.ID()) {
			total = total.Add(member.EstimatedWeight())
		}
	}
	b.weight = total
}

func (b *Bag) removeMember(shipmentID kernel.UUID) {
	kept := b.shipmentIDs[:0]
	for _, id := range b.shipmentIDs {
		if !id.IsEqual(shipmentID) {
			kept = append(kept, id)
		}
	}
	b.shipmentIDs = kept
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
