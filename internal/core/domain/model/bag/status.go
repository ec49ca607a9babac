package bag

import (
	"parcelbridge/internal/pkg/errs"
)

// Status represents the lifecycle state of an export bag.
//
// State transitions:
//
//	OPEN ──> SEALED ──> IN_MANIFEST ──> DISPATCHED
//	  ^         │
//	  └─────────┘
//	     (unseal)
//
// Unsealing is the only backwards move and is blocked once the bag joined a
// manifest. Deletion is terminal and allowed only while OPEN.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Open means the bag accepts membership changes.
	Open

	// Sealed means the bag is closed and its air invoice generated.
	Sealed

	// InManifest means the bag belongs to a finalized flight manifest.
	InManifest

	// Dispatched means the bag's manifest departed.
	Dispatched
)

func getStatusNames() map[Status]string {
	return map[Status]string{
		Open:       "OPEN",
		Sealed:     "SEALED",
		InManifest: "IN_MANIFEST",
		Dispatched: "DISPATCHED",
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
