package carbon

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CalculateSavings compares emission against baselineEmission, both in kg.
//
// SavedKg is baselineEmission − emission and is negative when emission is
// the larger value; callers decide whether to show negative savings.
// Percentage is SavedKg relative to baselineEmission. Both fields are
// rounded half up to EmissionPlaces.
//
// Returns ErrInvalidInput for negative or non-finite inputs and
// ErrDivisionByZero for a zero baseline with non-zero savings. A zero
// baseline with zero savings yields 0%.
func CalculateSavings(emission, baselineEmission float64) (SavingsResult, error) {
	if !validNonNegative(emission) || !validNonNegative(baselineEmission) {
		return SavingsResult{}, fmt.Errorf("%w: emission %v and baseline %v must be finite and non-negative",
			ErrInvalidInput, emission, baselineEmission)
	}

	baseline := decimal.NewFromFloat(baselineEmission)
	saved := baseline.Sub(decimal.NewFromFloat(emission))

	pct, err := percentOf(saved, baseline)
	if err != nil {
		return SavingsResult{}, fmt.Errorf("savings of %v kg against zero baseline: %w", toFloat(saved), err)
	}

	return SavingsResult{
		SavedKg:    toFloat(roundHalfUp(saved, EmissionPlaces)),
		Percentage: toFloat(roundHalfUp(pct, EmissionPlaces)),
	}, nil
}
