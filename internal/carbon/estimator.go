package carbon

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// EmissionEstimator computes per-mode emissions for a distance.
type EmissionEstimator interface {
	// CalculateEmission returns the emission of mode over distanceKm.
	CalculateEmission(distanceKm float64, mode TransportMode) (EmissionResult, error)

	// CalculateAllModes returns every mode's emission ranked ascending,
	// with percentages against BaselineMode.
	CalculateAllModes(distanceKm float64) ([]ModeComparisonEntry, error)
}

// Calculator implements EmissionEstimator over a FactorTable.
type Calculator struct {
	table *FactorTable
}

// NewCalculator creates a calculator over table. A nil table selects
// DefaultFactorTable.
func NewCalculator(table *FactorTable) *Calculator {
	if table == nil {
		table = DefaultFactorTable()
	}
	return &Calculator{table: table}
}

// Table returns the factor table the calculator runs on.
func (c *Calculator) Table() *FactorTable {
	return c.table
}

// CalculateEmission computes distanceKm × factor(mode) in kg CO2, rounded
// half up to EmissionPlaces.
//
// Returns *UnknownModeError for a mode missing from the table and
// ErrInvalidDistance for a negative, NaN or infinite distance. A zero
// distance is valid and yields zero for every mode.
func (c *Calculator) CalculateEmission(distanceKm float64, mode TransportMode) (EmissionResult, error) {
	if err := validateDistance(distanceKm); err != nil {
		return EmissionResult{}, err
	}
	kg, err := c.emission(distanceKm, mode)
	if err != nil {
		return EmissionResult{}, err
	}
	return EmissionResult{Mode: mode, DistanceKm: distanceKm, Kg: toFloat(kg)}, nil
}

// CalculateAllModes computes the emission of every table mode and its
// percentage of the BaselineMode emission.
//
// Entries are sorted ascending by emission; equal emissions keep table
// order. Percentages come from the unrounded distance × factor products
// and only the result is rounded, so the baseline is exactly 100% at any
// positive distance. A zero baseline product (zero distance, or a zero
// baseline factor) yields 0% for zero-emission modes and
// ErrDivisionByZero for any mode that still emits.
func (c *Calculator) CalculateAllModes(distanceKm float64) ([]ModeComparisonEntry, error) {
	if err := validateDistance(distanceKm); err != nil {
		return nil, err
	}

	baseline, err := c.product(distanceKm, BaselineMode)
	if err != nil {
		return nil, err
	}

	entries := make([]ModeComparisonEntry, 0, len(c.table.entries))
	for _, info := range c.table.entries {
		kg, err := c.product(distanceKm, info.Mode)
		if err != nil {
			return nil, err
		}
		pct, err := percentOf(kg, baseline)
		if err != nil {
			return nil, fmt.Errorf("percentage of %q against zero %q emission at %v km: %w",
				info.Mode, BaselineMode, distanceKm, err)
		}
		pctRounded := toFloat(roundHalfUp(pct, EmissionPlaces))
		entries = append(entries, ModeComparisonEntry{
			Mode:                 info.Mode,
			EmissionKg:           toFloat(roundHalfUp(kg, EmissionPlaces)),
			PercentageVsBaseline: pctRounded,
			Band:                 SeverityBandFor(pctRounded),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].EmissionKg < entries[j].EmissionKg
	})
	return entries, nil
}

// emission returns the emission rounded to EmissionPlaces.
func (c *Calculator) emission(distanceKm float64, mode TransportMode) (decimal.Decimal, error) {
	kg, err := c.product(distanceKm, mode)
	if err != nil {
		return decimal.Zero, err
	}
	return roundHalfUp(kg, EmissionPlaces), nil
}

// product returns the exact distance × factor in kg.
func (c *Calculator) product(distanceKm float64, mode TransportMode) (decimal.Decimal, error) {
	factor, err := c.table.FactorFor(mode)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(distanceKm).Mul(decimal.NewFromFloat(factor)), nil
}

func validateDistance(distanceKm float64) error {
	if !validNonNegative(distanceKm) {
		return fmt.Errorf("%w: %v km must be finite and non-negative", ErrInvalidDistance, distanceKm)
	}
	return nil
}
