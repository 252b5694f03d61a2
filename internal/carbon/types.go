package carbon

// TransportMode identifies a way of travelling a route.
type TransportMode string

// Known transport modes of the default factor table.
const (
	ModeBicycle TransportMode = "bicycle"
	ModeCar     TransportMode = "car"
	ModeBus     TransportMode = "bus"
	ModeTruck   TransportMode = "truck"
)

// String returns the mode identifier.
func (m TransportMode) String() string {
	return string(m)
}

// ModeInfo is one row of a FactorTable.
type ModeInfo struct {
	// Mode is the table key.
	Mode TransportMode `json:"mode" yaml:"mode"`

	// Factor is the emission factor in kg CO2 per km.
	Factor float64 `json:"factor_kg_per_km" yaml:"factor_kg_per_km"`

	// Label, Icon and Color are display metadata for presentation layers.
	Label string `json:"label" yaml:"label"`
	Icon  string `json:"icon,omitempty" yaml:"icon"`
	Color string `json:"color,omitempty" yaml:"color"`
}

// EmissionResult is the emission of one mode over one distance.
type EmissionResult struct {
	Mode       TransportMode `json:"mode"`
	DistanceKm float64       `json:"distance_km"`

	// Kg is the emission in kg CO2, already rounded to EmissionPlaces.
	Kg float64 `json:"emission_kg"`
}

// ModeComparisonEntry is one row of an all-modes comparison.
type ModeComparisonEntry struct {
	Mode TransportMode `json:"mode"`

	// EmissionKg is rounded to EmissionPlaces.
	EmissionKg float64 `json:"emission_kg"`

	// PercentageVsBaseline is EmissionKg as a percentage of the baseline
	// mode's emission, rounded to EmissionPlaces.
	PercentageVsBaseline float64 `json:"percentage_vs_baseline"`

	// Band is the severity classification of PercentageVsBaseline.
	Band SeverityBand `json:"band"`
}

// SavingsResult compares an emission against a baseline emission.
type SavingsResult struct {
	// SavedKg is baseline minus emission. Negative when the emission is
	// higher than the baseline.
	SavedKg float64 `json:"saved_kg"`

	// Percentage is SavedKg relative to the baseline.
	Percentage float64 `json:"percentage"`
}

// CreditEstimate is the number of carbon credits needed to offset an emission.
type CreditEstimate struct {
	// Credits is rounded to CreditPlaces.
	Credits float64 `json:"credits"`
}

// PriceEstimate is the price range for buying a number of credits.
type PriceEstimate struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}
