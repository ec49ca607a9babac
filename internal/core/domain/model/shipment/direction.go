package shipment

import (
	"parcelbridge/internal/pkg/errs"
)

// Direction identifies which of the two corridors a shipment travels.
// Every shipment is pinned to one corridor at booking time and the corridor
// never changes afterwards; the status chain, the AWB prefix and the derived
// origin and destination countries all depend on it.
type Direction int

const (
	// DirectionUnknown represents an invalid or undefined direction.
	DirectionUnknown Direction = iota

	// BDToHK is the export corridor from Bangladesh to Hong Kong.
	BDToHK

	// HKToBD is the import corridor from Hong Kong to Bangladesh.
	HKToBD
)

func getDirectionNames() map[Direction]string {
	return map[Direction]string{
		BDToHK: "BD_TO_HK",
		HKToBD: "HK_TO_BD",
	}
}

// Validate checks that the direction is one of the two corridors.
func (d Direction) Validate() error {
	if _, ok := getDirectionNames()[d]; !ok {
		return errs.NewValueIsInvalidError("direction")
	}
	return nil
}

// String returns the wire name of the direction.
func (d Direction) String() string {
	if name, ok := getDirectionNames()[d]; ok {
		return name
	}
	return "UNKNOWN"
}

// DirectionFromName parses a wire direction name.
func DirectionFromName(name string) (Direction, error) {
	for direction, directionName := range getDirectionNames() {
		if directionName == name {
			return direction, nil
		}
	}
	return DirectionUnknown, errs.NewValueIsInvalidError("direction")
}

// OriginCountry returns the ISO country code parcels depart from.
func (d Direction) OriginCountry() string {
	if d == HKToBD {
		return "HK"
	}
	return "BD"
}

// DestinationCountry returns the ISO country code parcels arrive in.
func (d Direction) DestinationCountry() string {
	if d == HKToBD {
		return "BD"
	}
	return "HK"
}
