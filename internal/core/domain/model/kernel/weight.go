package kernel

import (
	"fmt"
	"math"

	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

// ErrWeightIsNotConstructed is returned when attempting to use an improperly initialized Weight.
// Weights must be created using NewWeight or NewWeightFromKilograms constructors.
var ErrWeightIsNotConstructed = errs.NewValueIsRequiredError(
	"weight must be created via NewWeight or NewWeightFromKilograms constructors")

// Weight represents a parcel or container weight stored in whole grams.
// Keeping the value in integer grams makes sums and subtractions over bag and
// manifest contents exact, with no floating point drift between a container
// total and the sum of its members.
//
// Weight is an immutable value object. The zero value is invalid and will
// fail validation - use the constructors to create instances.
//
// Example:
//
//	w, err := kernel.NewWeightFromKilograms(2.5)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Weight: %s", w) // Output: 2.500 kg
type Weight struct { //nolint:recvcheck //using for validation
	grams int64
	guard guard.ConstructorGuard
}

// NewWeight creates a Weight from whole grams.
// Zero is allowed so that empty containers can carry a valid total.
// Returns an error if grams is negative.
func NewWeight(grams int64) (Weight, error) {
	if grams < 0 {
		return Weight{}, errs.NewValueIsOutOfRangeError("grams", grams, 0, int64(math.MaxInt64))
	}

	return Weight{
		grams: grams,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// NewWeightFromKilograms creates a Weight from a kilogram amount, rounding to
// the nearest gram. The amount must be strictly positive: this constructor is
// meant for declared parcel weights, which cannot be zero.
func NewWeightFromKilograms(kilograms float64) (Weight, error) {
	if math.IsNaN(kilograms) || math.IsInf(kilograms, 0) {
		return Weight{}, errs.NewValueIsInvalidError("kilograms")
	}

	grams := int64(math.Round(kilograms * 1000))
	if grams <= 0 {
		return Weight{}, errs.NewValueIsOutOfRangeError("kilograms", kilograms, "0.001", "unbounded")
	}

	return Weight{
		grams: grams,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// ZeroWeight returns a valid weight of zero grams, the starting total for a
// freshly created container.
func ZeroWeight() Weight {
	return Weight{guard: guard.NewConstructorGuard()}
}

// Grams returns the weight in whole grams.
func (w Weight) Grams() int64 {
	return w.grams
}

// Kilograms returns the weight converted to kilograms.
func (w Weight) Kilograms() float64 {
	return float64(w.grams) / 1000
}

// IsZero reports whether the weight is exactly zero grams.
func (w Weight) IsZero() bool {
	return w.grams == 0
}

// Add returns the sum of two weights.
func (w Weight) Add(other Weight) Weight {
	return Weight{
		grams: w.grams + other.grams,
		guard: guard.NewConstructorGuard(),
	}
}

// Subtract returns the difference of two weights, floored at zero so a
// container total can never go negative.
func (w Weight) Subtract(other Weight) Weight {
	grams := w.grams - other.grams
	if grams < 0 {
		grams = 0
	}

	return Weight{
		grams: grams,
		guard: guard.NewConstructorGuard(),
	}
}

// IsEqual compares two weights for equality.
func (w Weight) IsEqual(other Weight) bool {
	return w.grams == other.grams
}

// String returns the weight formatted in kilograms with gram precision.
func (w Weight) String() string {
	return fmt.Sprintf("%.3f kg", w.Kilograms())
}

// Validate checks that the weight was created through a constructor.
// Returns ErrWeightIsNotConstructed for zero-value instances.
func (w Weight) Validate() error {
	return w.guard.Validate(ErrWeightIsNotConstructed)
}
