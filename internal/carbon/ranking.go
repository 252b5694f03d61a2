package carbon

import "fmt"

// SeverityBand classifies a percentage of the baseline emission.
type SeverityBand int

const (
	// BandLow is up to and including 25% of the baseline.
	BandLow SeverityBand = iota
	// BandMedium is above 25% up to and including 75%.
	BandMedium
	// BandHigh is above 75% up to and including 100%.
	BandHigh
	// BandExcessive is above 100%.
	BandExcessive
)

// Upper bounds, inclusive, of the bands below BandExcessive.
const (
	bandLowMax    = 25.0
	bandMediumMax = 75.0
	bandHighMax   = 100.0
)

// SeverityBandFor returns the band of percentage. Boundary values belong
// to the lower band.
func SeverityBandFor(percentage float64) SeverityBand {
	switch {
	case percentage <= bandLowMax:
		return BandLow
	case percentage <= bandMediumMax:
		return BandMedium
	case percentage <= bandHighMax:
		return BandHigh
	default:
		return BandExcessive
	}
}

func (b SeverityBand) String() string {
	switch b {
	case BandLow:
		return "low"
	case BandMedium:
		return "medium"
	case BandHigh:
		return "high"
	case BandExcessive:
		return "excessive"
	default:
		return "unknown"
	}
}

// MarshalText encodes the band by name.
func (b SeverityBand) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText decodes a band name written by MarshalText.
func (b *SeverityBand) UnmarshalText(text []byte) error {
	for _, band := range []SeverityBand{BandLow, BandMedium, BandHigh, BandExcessive} {
		if band.String() == string(text) {
			*b = band
			return nil
		}
	}
	return fmt.Errorf("%w: unknown severity band %q", ErrInvalidInput, text)
}
