// Package routes provides road distances between known cities from a static table.
package routes

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

//go:embed data/routes.yaml
var routesYAML []byte

// ErrInvalidRoute is returned when route data cannot be loaded.
var ErrInvalidRoute = errors.New("invalid route data")

// DistanceProvider resolves the distance between two locations.
type DistanceProvider interface {
	// FindDistance returns the distance in km between origin and destination
	// in either direction. Returns (0, false) if the pair is unknown.
	FindDistance(origin, destination string) (float64, bool)

	// Cities returns every known location name, sorted.
	Cities() []string
}

// Route is one entry of the route table.
type Route struct {
	Origin      string  `yaml:"origin" json:"origin"`
	Destination string  `yaml:"destination" json:"destination"`
	DistanceKm  float64 `yaml:"distance_km" json:"distance_km"`
}

// Table implements DistanceProvider over an in-memory route list.
// It is immutable after construction and safe for concurrent use.
type Table struct {
	routes []Route
	cities []string
	logger zerolog.Logger

	// key: normalized "origin\x00destination", both directions
	index map[string]float64
}

// NewTable loads the embedded table of Brazilian routes.
func NewTable(logger zerolog.Logger) (*Table, error) {
	return Load(bytes.NewReader(routesYAML), logger)
}

// Load reads a YAML route table of the form
//
//	routes:
//	  - origin: "São Paulo, SP"
//	    destination: "Rio de Janeiro, RJ"
//	    distance_km: 430
func Load(r io.Reader, logger zerolog.Logger) (*Table, error) {
	var doc struct {
		Routes []Route `yaml:"routes"`
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: failed to parse route table: %v", ErrInvalidRoute, err)
	}
	return New(doc.Routes, logger)
}

// New builds a table from routes. When the same pair appears more than
// once, in either direction, the first entry wins.
func New(routes []Route, logger zerolog.Logger) (*Table, error) {
	t := &Table{
		routes: make([]Route, 0, len(routes)),
		logger: logger.With().Str("component", "routes").Logger(),
		index:  make(map[string]float64, 2*len(routes)),
	}

	seen := make(map[string]struct{})
	for i, r := range routes {
		r.Origin = strings.TrimSpace(r.Origin)
		r.Destination = strings.TrimSpace(r.Destination)
		if r.Origin == "" || r.Destination == "" {
			return nil, fmt.Errorf("%w: route %d needs both origin and destination", ErrInvalidRoute, i)
		}
		if normalize(r.Origin) == normalize(r.Destination) {
			return nil, fmt.Errorf("%w: route %d starts and ends at %q", ErrInvalidRoute, i, r.Origin)
		}
		if math.IsNaN(r.DistanceKm) || math.IsInf(r.DistanceKm, 0) || r.DistanceKm <= 0 {
			return nil, fmt.Errorf("%w: route %d (%s → %s) has distance %v, want a positive number",
				ErrInvalidRoute, i, r.Origin, r.Destination, r.DistanceKm)
		}

		fwd := key(r.Origin, r.Destination)
		rev := key(r.Destination, r.Origin)
		if _, dup := t.index[fwd]; dup {
			t.logger.Warn().
				Str("origin", r.Origin).
				Str("destination", r.Destination).
				Msg("skipping duplicate route")
			continue
		}
		t.index[fwd] = r.DistanceKm
		t.index[rev] = r.DistanceKm
		t.routes = append(t.routes, r)

		for _, city := range []string{r.Origin, r.Destination} {
			if _, ok := seen[city]; !ok {
				seen[city] = struct{}{}
				t.cities = append(t.cities, city)
			}
		}
	}
	sort.Strings(t.cities)

	t.logger.Debug().
		Int("routes", len(t.routes)).
		Int("cities", len(t.cities)).
		Msg("loaded route table")

	return t, nil
}

// FindDistance matches origin and destination after trimming whitespace,
// ignoring case, in either direction.
func (t *Table) FindDistance(origin, destination string) (float64, bool) {
	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return 0, false
	}
	d, ok := t.index[key(origin, destination)]
	if !ok {
		t.logger.Debug().
			Str("origin", origin).
			Str("destination", destination).
			Msg("route not found")
	}
	return d, ok
}

// Cities returns a copy of the sorted list of distinct city names.
func (t *Table) Cities() []string {
	out := make([]string, len(t.cities))
	copy(out, t.cities)
	return out
}

// Routes returns a copy of the route list in load order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func key(origin, destination string) string {
	return normalize(origin) + "\x00" + normalize(destination)
}
