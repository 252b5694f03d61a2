package carbon

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFactorTable(t *testing.T) {
	table := DefaultFactorTable()

	assert.Equal(t, []TransportMode{ModeBicycle, ModeCar, ModeBus, ModeTruck}, table.Modes())

	want := map[TransportMode]float64{
		ModeBicycle: 0,
		ModeCar:     0.12,
		ModeBus:     0.089,
		ModeTruck:   0.96,
	}
	for mode, factor := range want {
		got, err := table.FactorFor(mode)
		require.NoError(t, err, "mode %s", mode)
		assert.Equal(t, factor, got, "mode %s", mode)
	}
}

// TestDefaultFactorTable_Metadata validates that every mode carries display
// metadata for presentation layers.
func TestDefaultFactorTable_Metadata(t *testing.T) {
	for _, info := range DefaultFactorTable().Entries() {
		t.Run(string(info.Mode), func(t *testing.T) {
			assert.NotEmpty(t, info.Label)
			assert.NotEmpty(t, info.Icon)
			assert.Regexp(t, `^#[0-9a-f]{6}$`, info.Color)
		})
	}
}

func TestFactorTable_FactorFor_Unknown(t *testing.T) {
	_, err := DefaultFactorTable().FactorFor("train")

	var modeErr *UnknownModeError
	require.ErrorAs(t, err, &modeErr)
	assert.Equal(t, TransportMode("train"), modeErr.Mode)
	assert.Contains(t, err.Error(), `"train"`)
}

func TestFactorTable_EntriesIsCopy(t *testing.T) {
	table := DefaultFactorTable()

	entries := table.Entries()
	entries[0].Factor = 99

	got, err := table.FactorFor(entries[0].Mode)
	require.NoError(t, err)
	assert.Equal(t, FactorBicycle, got)
}

func TestFactorTable_ParseMode(t *testing.T) {
	table := DefaultFactorTable()

	tests := []struct {
		in      string
		want    TransportMode
		wantErr bool
	}{
		{in: "car", want: ModeCar},
		{in: "  Bus ", want: ModeBus},
		{in: "TRUCK", want: ModeTruck},
		{in: "train", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := table.ParseMode(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewFactorTable_Validation(t *testing.T) {
	car := ModeInfo{Mode: ModeCar, Factor: FactorCar}

	tests := []struct {
		name    string
		entries []ModeInfo
	}{
		{name: "empty", entries: nil},
		{name: "blank mode", entries: []ModeInfo{car, {Mode: "  ", Factor: 1}}},
		{name: "duplicate mode", entries: []ModeInfo{car, car}},
		{name: "negative factor", entries: []ModeInfo{car, {Mode: ModeBus, Factor: -0.1}}},
		{name: "NaN factor", entries: []ModeInfo{car, {Mode: ModeBus, Factor: math.NaN()}}},
		{name: "infinite factor", entries: []ModeInfo{car, {Mode: ModeBus, Factor: math.Inf(1)}}},
		{name: "missing baseline", entries: []ModeInfo{{Mode: ModeBus, Factor: FactorBus}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewFactorTable(tt.entries...)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, table)
		})
	}
}

func TestNewFactorTable_DefaultsLabelToMode(t *testing.T) {
	table, err := NewFactorTable(ModeInfo{Mode: " car ", Factor: 0.2})
	require.NoError(t, err)

	info, err := table.Info(ModeCar)
	require.NoError(t, err)
	assert.Equal(t, "car", info.Label)
	assert.Equal(t, 1, table.Len())
}
