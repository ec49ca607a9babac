package shipment

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

// ErrAWBIsNotConstructed is returned when attempting to use an improperly initialized AWB.
var ErrAWBIsNotConstructed = errs.NewValueIsRequiredError(
	"AWB must be created via GenerateAWB or AWBFromString")

var awbPattern = regexp.MustCompile(`^(DH|HD)\d{13}$`)

// AWB is the public air waybill number of a shipment.
// The format is a two-letter corridor prefix (DH for BD_TO_HK, HD for
// HK_TO_BD), the booking date as yyyymmdd and a five-digit random suffix.
// The random suffix is deliberately short, so generation must be retried
// behind a uniqueness check; see GenerateAWB.
type AWB struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// GenerateAWB draws a candidate AWB for the given corridor and booking date.
// With only five random digits per day and corridor, two bookings can draw
// the same number: callers must treat the result as a candidate, verify
// uniqueness against storage and redraw on collision.
func GenerateAWB(direction Direction, bookedAt time.Time) (AWB, error) {
	if err := direction.Validate(); err != nil {
		return AWB{}, err
	}

	prefix := "DH"
	if direction == HKToBD {
		prefix = "HD"
	}

	suffix, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return AWB{}, errs.NewValueIsInvalidErrorWithCause("awb", err)
	}

	return AWB{
		value: fmt.Sprintf("%s%s%05d", prefix, bookedAt.UTC().Format("20060102"), suffix.Int64()),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// AWBFromString parses and validates an existing AWB number.
func AWBFromString(value string) (AWB, error) {
	if !awbPattern.MatchString(value) {
		return AWB{}, errs.NewValueIsInvalidError("awb")
	}

	return AWB{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// String returns the AWB number.
func (a AWB) String() string {
	return a.value
}

// Direction returns the corridor encoded in the AWB prefix.
func (a AWB) Direction() Direction {
	if len(a.value) >= 2 && a.value[:2] == "HD" {
		return HKToBD
	}
	return BDToHK
}

// IsEqual compares two AWBs for equality.
func (a AWB) IsEqual(other AWB) bool {
	return a.value == other.value
}

// Validate checks that the AWB was created through a constructor.
func (a AWB) Validate() error {
	return a.guard.Validate(ErrAWBIsNotConstructed)
}
