package routes

import (
	"bytes"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	table, err := NewTable(zerolog.Nop())
	require.NoError(t, err)

	assert.Len(t, table.Routes(), 40)
	assert.Len(t, table.Cities(), 15)
}

func TestTable_FindDistance(t *testing.T) {
	table, err := NewTable(zerolog.Nop())
	require.NoError(t, err)

	tests := []struct {
		name        string
		origin      string
		destination string
		want        float64
		wantFound   bool
	}{
		{name: "exact match", origin: "São Paulo, SP", destination: "Rio de Janeiro, RJ", want: 430, wantFound: true},
		{name: "reverse direction", origin: "Rio de Janeiro, RJ", destination: "São Paulo, SP", want: 430, wantFound: true},
		{name: "case and whitespace", origin: "  são paulo, sp ", destination: "RIO DE JANEIRO, RJ", want: 430, wantFound: true},
		{name: "short route", origin: "Niterói, RJ", destination: "Rio de Janeiro, RJ", want: 13, wantFound: true},
		{name: "longest route", origin: "Manaus, AM", destination: "São Paulo, SP", want: 3953, wantFound: true},
		{name: "unknown pair", origin: "Campinas, SP", destination: "Manaus, AM", wantFound: false},
		{name: "unknown city", origin: "Lisboa", destination: "Porto", wantFound: false},
		{name: "missing state suffix", origin: "São Paulo", destination: "Rio de Janeiro", wantFound: false},
		{name: "empty origin", origin: "", destination: "Rio de Janeiro, RJ", wantFound: false},
		{name: "blank destination", origin: "São Paulo, SP", destination: "   ", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := table.FindDistance(tt.origin, tt.destination)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTable_Cities(t *testing.T) {
	table, err := NewTable(zerolog.Nop())
	require.NoError(t, err)

	cities := table.Cities()

	assert.True(t, sortedStrings(cities), "cities should be sorted")
	assert.Equal(t, "Belo Horizonte, MG", cities[0])
	assert.Equal(t, "São Paulo, SP", cities[len(cities)-1])
	assert.Contains(t, cities, "Ouro Preto, MG")

	// Mutating the returned slice must not affect the table.
	cities[0] = "changed"
	assert.Equal(t, "Belo Horizonte, MG", table.Cities()[0])
}

func TestNew_FirstDuplicateWins(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	table, err := New([]Route{
		{Origin: "A", Destination: "B", DistanceKm: 10},
		{Origin: "b", Destination: "a", DistanceKm: 99},
		{Origin: "A", Destination: "C", DistanceKm: 5},
	}, logger)
	require.NoError(t, err)

	got, ok := table.FindDistance("B", "A")
	require.True(t, ok)
	assert.Equal(t, 10.0, got)
	assert.Len(t, table.Routes(), 2)
	assert.Equal(t, []string{"A", "B", "C"}, table.Cities())
	assert.Contains(t, buf.String(), "skipping duplicate route")
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name  string
		route Route
	}{
		{name: "empty origin", route: Route{Origin: " ", Destination: "B", DistanceKm: 1}},
		{name: "empty destination", route: Route{Origin: "A", DistanceKm: 1}},
		{name: "same city", route: Route{Origin: "A", Destination: " a ", DistanceKm: 1}},
		{name: "zero distance", route: Route{Origin: "A", Destination: "B"}},
		{name: "negative distance", route: Route{Origin: "A", Destination: "B", DistanceKm: -4}},
		{name: "NaN distance", route: Route{Origin: "A", Destination: "B", DistanceKm: math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := New([]Route{tt.route}, zerolog.Nop())
			assert.ErrorIs(t, err, ErrInvalidRoute)
			assert.Nil(t, table)
		})
	}
}

func TestLoad(t *testing.T) {
	doc := `
routes:
  - origin: Lisboa
    destination: Porto
    distance_km: 313
`
	table, err := Load(strings.NewReader(doc), zerolog.Nop())
	require.NoError(t, err)

	got, ok := table.FindDistance("porto", "LISBOA")
	require.True(t, ok)
	assert.Equal(t, 313.0, got)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "unknown field", doc: "routes:\n  - from: A\n    to: B\n"},
		{name: "bad distance type", doc: "routes:\n  - origin: A\n    destination: B\n    distance_km: far\n"},
		{name: "invalid route", doc: "routes:\n  - origin: A\n    destination: B\n    distance_km: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc), zerolog.Nop())
			assert.ErrorIs(t, err, ErrInvalidRoute)
		})
	}
}

func TestLoad_EmptyDocument(t *testing.T) {
	table, err := Load(strings.NewReader(""), zerolog.Nop())
	require.NoError(t, err)

	assert.Empty(t, table.Cities())
	_, ok := table.FindDistance("A", "B")
	assert.False(t, ok)
}

func TestTable_ConcurrentLookups(t *testing.T) {
	table, err := NewTable(zerolog.Nop())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, ok := table.FindDistance("Curitiba, PR", "Florianópolis, SC")
			assert.True(t, ok)
			assert.Equal(t, 300.0, got)
		}()
	}
	wg.Wait()
}

func sortedStrings(s []string) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			return false
		}
	}
	return true
}
