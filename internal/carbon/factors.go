package carbon

import (
	"fmt"
	"strings"
)

// FactorTable maps transport modes to emission factors in a fixed order.
// The order is the tie-break order of comparisons. A FactorTable is
// immutable once built and safe for concurrent use.
type FactorTable struct {
	entries []ModeInfo
	index   map[TransportMode]int
}

// DefaultFactorTable returns the built-in table: bicycle, car, bus, truck.
func DefaultFactorTable() *FactorTable {
	t, err := NewFactorTable(
		ModeInfo{Mode: ModeBicycle, Factor: FactorBicycle, Label: "Bicicleta", Icon: "🚲", Color: "#10b981"},
		ModeInfo{Mode: ModeCar, Factor: FactorCar, Label: "Carro", Icon: "🚗", Color: "#059669"},
		ModeInfo{Mode: ModeBus, Factor: FactorBus, Label: "Ônibus", Icon: "🚌", Color: "#34d399"},
		ModeInfo{Mode: ModeTruck, Factor: FactorTruck, Label: "Caminhão", Icon: "🚚", Color: "#047857"},
	)
	if err != nil {
		// The built-in entries are constants covered by tests.
		panic(err)
	}
	return t
}

// NewFactorTable builds a table from entries, keeping their order.
// Every mode must be non-empty and unique, every factor finite and
// non-negative, and BaselineMode must be present.
func NewFactorTable(entries ...ModeInfo) (*FactorTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: factor table has no modes", ErrInvalidInput)
	}

	t := &FactorTable{
		entries: make([]ModeInfo, 0, len(entries)),
		index:   make(map[TransportMode]int, len(entries)),
	}
	for i, e := range entries {
		e.Mode = TransportMode(strings.TrimSpace(string(e.Mode)))
		if e.Mode == "" {
			return nil, fmt.Errorf("%w: factor table entry %d has no mode", ErrInvalidInput, i)
		}
		if _, dup := t.index[e.Mode]; dup {
			return nil, fmt.Errorf("%w: duplicate mode %q in factor table", ErrInvalidInput, e.Mode)
		}
		if !validNonNegative(e.Factor) {
			return nil, fmt.Errorf("%w: factor %v for mode %q must be finite and non-negative",
				ErrInvalidInput, e.Factor, e.Mode)
		}
		if e.Label == "" {
			e.Label = string(e.Mode)
		}
		t.index[e.Mode] = len(t.entries)
		t.entries = append(t.entries, e)
	}

	if _, ok := t.index[BaselineMode]; !ok {
		return nil, fmt.Errorf("%w: factor table has no baseline mode %q", ErrInvalidInput, BaselineMode)
	}
	return t, nil
}

// FactorFor returns the emission factor for mode in kg CO2 per km.
func (t *FactorTable) FactorFor(mode TransportMode) (float64, error) {
	info, err := t.Info(mode)
	if err != nil {
		return 0, err
	}
	return info.Factor, nil
}

// Info returns the full table row for mode.
func (t *FactorTable) Info(mode TransportMode) (ModeInfo, error) {
	i, ok := t.index[mode]
	if !ok {
		return ModeInfo{}, &UnknownModeError{Mode: mode}
	}
	return t.entries[i], nil
}

// Modes returns all modes in table order.
func (t *FactorTable) Modes() []TransportMode {
	modes := make([]TransportMode, len(t.entries))
	for i, e := range t.entries {
		modes[i] = e.Mode
	}
	return modes
}

// Entries returns a copy of the table rows in table order.
func (t *FactorTable) Entries() []ModeInfo {
	out := make([]ModeInfo, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of modes.
func (t *FactorTable) Len() int {
	return len(t.entries)
}

// ParseMode normalizes s and checks it against the table.
func (t *FactorTable) ParseMode(s string) (TransportMode, error) {
	mode := TransportMode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := t.index[mode]; !ok {
		return "", &UnknownModeError{Mode: TransportMode(s)}
	}
	return mode, nil
}
