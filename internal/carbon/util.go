package carbon

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RoundHalfUp rounds v to the given number of decimal places, with ties
// going towards positive infinity (1.005 → 1.01, -1.005 → -1.00).
//
// v is taken at its shortest decimal representation, so binary artifacts
// such as 2.675 being stored as 2.67499999... do not move a tie down.
// NaN and infinities are returned unchanged.
func RoundHalfUp(v float64, places int32) float64 {
	if !isFinite(v) {
		return v
	}
	return toFloat(roundHalfUp(decimal.NewFromFloat(v), places))
}

// roundHalfUp adds half a unit in the last kept place and floors.
func roundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	half := decimal.New(5, -(places + 1))
	return d.Add(half).RoundFloor(places)
}

// percentOf returns part/whole*100. A zero whole yields 0 when part is
// also zero and ErrDivisionByZero otherwise.
func percentOf(part, whole decimal.Decimal) (decimal.Decimal, error) {
	if whole.IsZero() {
		if part.IsZero() {
			return decimal.Zero, nil
		}
		return decimal.Zero, ErrDivisionByZero
	}
	return part.Mul(hundred).Div(whole), nil
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// validNonNegative reports whether v is finite and >= 0.
func validNonNegative(v float64) bool {
	return isFinite(v) && v >= 0
}
