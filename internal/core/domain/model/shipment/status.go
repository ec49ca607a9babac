package shipment

import (
	"parcelbridge/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
// It implements a per-corridor state machine: each direction has its own
// linear chain of statuses and a transition is only legal between adjacent
// links of the chain for the shipment's direction.
//
// Export corridor (BD_TO_HK):
//
//	PENDING > BOOKED > RECEIVED_AT_BD > READY_FOR_SORTING > BAGGED_FOR_EXPORT
//	        > IN_EXPORT_MANIFEST > HANDED_TO_AIRLINE > IN_TRANSIT_TO_HK
//	        > ARRIVED_AT_HK > DELIVERED_IN_HK
//
// Import corridor (HK_TO_BD):
//
//	PENDING > BOOKED > IN_TRANSIT_TO_BD > ARRIVED_AT_BD > CUSTOMS_CLEARANCE_BD
//	        > CUSTOMS_CLEARED_BD > READY_FOR_DELIVERY > OUT_FOR_DELIVERY
//	        > DELIVERED
//
// The two exception statuses are reachable from any non-terminal status of
// either corridor and are absorbing: no forward transition leaves them, and
// resolving an exception is a separate workflow.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Pending is the initial status of a customer self-service booking.
	// Pending shipments have no AWB yet and are the only ones deletable.
	Pending

	// Booked means the booking is confirmed and the AWB assigned.
	Booked

	// ReceivedAtBD means the parcel has been handed over at the Bangladesh
	// warehouse. Shipments removed from a bag or manifest return here.
	ReceivedAtBD

	// ReadyForSorting means the parcel passed intake checks at the warehouse.
	ReadyForSorting

	// BaggedForExport means the parcel sits inside an export bag.
	BaggedForExport

	// InExportManifest means the parcel belongs to a finalized flight manifest.
	InExportManifest

	// HandedToAirline means the manifest departed and the airline took custody.
	HandedToAirline

	// InTransitToHK means the parcel is airborne towards Hong Kong.
	InTransitToHK

	// ArrivedAtHK means the parcel landed in Hong Kong.
	ArrivedAtHK

	// DeliveredInHK is the terminal status of the export corridor.
	DeliveredInHK

	// InTransitToBD means the parcel is airborne towards Bangladesh.
	InTransitToBD

	// ArrivedAtBD means the parcel landed in Bangladesh.
	ArrivedAtBD

	// CustomsClearanceBD means the parcel entered Bangladesh customs processing.
	CustomsClearanceBD

	// CustomsClearedBD means Bangladesh customs released the parcel.
	CustomsClearedBD

	// ReadyForDelivery means the parcel awaits last-mile dispatch.
	ReadyForDelivery

	// OutForDelivery means a rider carries the parcel to the recipient.
	OutForDelivery

	// Delivered is the terminal status of the import corridor.
	Delivered

	// ExceptionDamaged flags a damaged parcel. Absorbing.
	ExceptionDamaged

	// ExceptionCustomsHold flags a parcel held by customs. Absorbing.
	ExceptionCustomsHold

	// ReturnedToSender is terminal: the parcel went back to its origin.
	ReturnedToSender
)

func getStatusNames() map[Status]string {
	return map[Status]string{
		Pending:              "PENDING",
		Booked:               "BOOKED",
		ReceivedAtBD:         "RECEIVED_AT_BD",
		ReadyForSorting:      "READY_FOR_SORTING",
		BaggedForExport:      "BAGGED_FOR_EXPORT",
		InExportManifest:     "IN_EXPORT_MANIFEST",
		HandedToAirline:      "HANDED_TO_AIRLINE",
		InTransitToHK:        "IN_TRANSIT_TO_HK",
		ArrivedAtHK:          "ARRIVED_AT_HK",
		DeliveredInHK:        "DELIVERED_IN_HK",
		InTransitToBD:        "IN_TRANSIT_TO_BD",
		ArrivedAtBD:          "ARRIVED_AT_BD",
		CustomsClearanceBD:   "CUSTOMS_CLEARANCE_BD",
		CustomsClearedBD:     "CUSTOMS_CLEARED_BD",
		ReadyForDelivery:     "READY_FOR_DELIVERY",
		OutForDelivery:       "OUT_FOR_DELIVERY",
		Delivered:            "DELIVERED",
		ExceptionDamaged:     "EXCEPTION_DAMAGED",
		ExceptionCustomsHold: "EXCEPTION_CUSTOMS_HOLD",
		ReturnedToSender:     "RETURNED_TO_SENDER",
	}
}

// getStatusChains returns the linear forward chain per corridor.
// A regular transition is only legal between adjacent links.
func getStatusChains() map[Direction][]Status {
	return map[Direction][]Status{
		BDToHK: {
			Pending, Booked, ReceivedAtBD, ReadyForSorting, BaggedForExport,
			InExportManifest, HandedToAirline, InTransitToHK, ArrivedAtHK, DeliveredInHK,
		},
		HKToBD: {
			Pending, Booked, InTransitToBD, ArrivedAtBD, CustomsClearanceBD,
			CustomsClearedBD, ReadyForDelivery, OutForDelivery, Delivered,
		},
	}
}

// Validate checks that the status is a known lifecycle state.
func (s Status) Validate() error {
	if _, ok := getStatusNames()[s]; !ok {
		return errs.NewValueIsInvalidError("status")
	}
	return nil
}

// String returns the wire name of the status.
func (s Status) String() string {
	if name, ok := getStatusNames()[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// StatusFromName parses a wire status name.
func StatusFromName(name string) (Status, error) {
	for status, statusName := range getStatusNames() {
		if statusName == name {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidError("status")
}

// IsTerminal reports whether the status ends the lifecycle.
// No transition of any kind leaves a terminal status.
func (s Status) IsTerminal() bool {
	return s == DeliveredInHK || s == Delivered || s == ReturnedToSender
}

// IsException reports whether the status is one of the absorbing exception
// states.
func (s Status) IsException() bool {
	return s == ExceptionDamaged || s == ExceptionCustomsHold
}

// NextStatuses returns the statuses legally reachable from s for the given
// corridor, exception statuses included. Terminal and exception statuses
// have no successors.
func (s Status) NextStatuses(direction Direction) []Status {
	if s.IsTerminal() || s.IsException() {
		return nil
	}

	var next []Status
	chain := getStatusChains()[direction]
	for i, status := range chain {
		if status == s && i+1 < len(chain) {
			next = append(next, chain[i+1])
			break
		}
	}

	return append(next, ExceptionDamaged, ExceptionCustomsHold)
}

// CanTransitionTo reports whether the move from s to next is legal for the
// given corridor. Legal moves are the single next link of the corridor chain
// plus the two exception statuses from any non-terminal, non-exception state.
func (s Status) CanTransitionTo(direction Direction, next Status) bool {
	for _, candidate := range s.NextStatuses(direction) {
		if candidate == next {
			return true
		}
	}
	return false
}
