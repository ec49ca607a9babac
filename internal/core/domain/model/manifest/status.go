package manifest

import (
	"parcelbridge/internal/pkg/errs"
)

// Status represents the lifecycle state of a flight manifest.
//
// State transitions:
//
//	DRAFT ──> FINALIZED ──> DEPARTED ──> ARRIVED
//
// The chain is strictly forward: no skip-ahead and no reversal. Deletion is
// terminal and allowed only while DRAFT.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Draft means membership may still be edited freely.
	Draft

	// Finalized means the manifest is frozen and its documents generated.
	Finalized

	// Departed means the flight left and the airline holds the cargo.
	Departed

	// Arrived means the flight landed at the destination.
	Arrived
)

func getStatusNames() map[Status]string {
	return map[Status]string{
		Draft:     "DRAFT",
		Finalized: "FINALIZED",
		Departed:  "DEPARTED",
		Arrived:   "ARRIVED",
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
