// Package calculator runs the full emission estimate for a trip: distance
// resolution, selected-mode and baseline emissions, savings, the ranked
// mode comparison, and the carbon credit offset.
package calculator

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dimithria/Calculadora-CO2/internal/carbon"
	"github.com/dimithria/Calculadora-CO2/internal/routes"
)

// DistanceSource records where a report's distance came from.
type DistanceSource string

const (
	// DistanceManual is a distance supplied by the caller.
	DistanceManual DistanceSource = "manual"
	// DistanceRouteTable is a distance resolved through the route provider.
	DistanceRouteTable DistanceSource = "route_table"
)

// Request is one trip to estimate.
type Request struct {
	// ID correlates log lines. Generated when empty.
	ID string `json:"id,omitempty"`

	Origin      string `json:"origin"`
	Destination string `json:"destination"`

	// DistanceKm overrides the route table when positive. Zero means
	// "look the route up".
	DistanceKm float64 `json:"distance_km,omitempty"`

	Mode carbon.TransportMode `json:"mode"`
}

// Report is the complete result of one calculation.
type Report struct {
	RequestID      string               `json:"request_id"`
	Origin         string               `json:"origin"`
	Destination    string               `json:"destination"`
	DistanceKm     float64              `json:"distance_km"`
	DistanceSource DistanceSource       `json:"distance_source"`
	Mode           carbon.TransportMode `json:"mode"`

	Emission carbon.EmissionResult `json:"emission"`
	Baseline carbon.EmissionResult `json:"baseline"`

	Savings carbon.SavingsResult `json:"savings"`
	// ShowSavings is false when the selected mode is the baseline or does
	// not emit less than it.
	ShowSavings bool `json:"show_savings"`

	Comparison []carbon.ModeComparisonEntry `json:"comparison"`

	Credits carbon.CreditEstimate `json:"credits"`
	Price   carbon.PriceEstimate  `json:"price"`
}

// Service wires the carbon engine to a distance provider.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	estimator   carbon.EmissionEstimator
	pricing     carbon.CreditPricing
	provider    routes.DistanceProvider
	logger      zerolog.Logger // logger is immutable (copy-on-write)
	concurrency int
}

// DefaultBatchConcurrency bounds the number of calculations CalculateBatch runs at once.
const DefaultBatchConcurrency = 8

// NewService creates a Service. provider may be nil, in which case every
// request must carry an explicit distance.
func NewService(
	estimator carbon.EmissionEstimator,
	pricing carbon.CreditPricing,
	provider routes.DistanceProvider,
	logger zerolog.Logger,
) *Service {
	return &Service{
		estimator:   estimator,
		pricing:     pricing,
		provider:    provider,
		logger:      logger.With().Str("component", "calculator").Logger(),
		concurrency: DefaultBatchConcurrency,
	}
}

// WithConcurrency returns a copy of s whose batches run at most n
// calculations at once. Values below 1 are treated as 1.
func (s *Service) WithConcurrency(n int) *Service {
	if n < 1 {
		n = 1
	}
	cp := *s
	cp.concurrency = n
	return &cp
}

// Calculate validates req, resolves its distance and runs every engine step.
//
// Request problems (missing locations, bad distance, unknown route) wrap
// ErrInvalidRequest. Engine failures are returned with their carbon error
// kind intact, so errors.Is(err, carbon.ErrUnknownMode) and friends work.
func (s *Service) Calculate(ctx context.Context, req Request) (Report, error) {
	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}
	logger := s.logger.With().Str("request_id", id).Logger()

	report, err := s.calculate(ctx, id, req)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("origin", req.Origin).
			Str("destination", req.Destination).
			Str("mode", req.Mode.String()).
			Msg("calculation failed")
		return Report{}, err
	}

	logger.Info().
		Str("mode", report.Mode.String()).
		Float64("distance_km", report.DistanceKm).
		Str("distance_source", string(report.DistanceSource)).
		Float64("emission_kg", report.Emission.Kg).
		Float64("credits", report.Credits.Credits).
		Msg("calculation completed")
	return report, nil
}

func (s *Service) calculate(ctx context.Context, id string, req Request) (Report, error) {
	origin := strings.TrimSpace(req.Origin)
	destination := strings.TrimSpace(req.Destination)
	if err := validateLocations(origin, destination); err != nil {
		return Report{}, err
	}

	distance, source, err := s.resolveDistance(origin, destination, req.DistanceKm)
	if err != nil {
		return Report{}, err
	}

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	selected, err := s.estimator.CalculateEmission(distance, req.Mode)
	if err != nil {
		return Report{}, err
	}
	baseline, err := s.estimator.CalculateEmission(distance, carbon.BaselineMode)
	if err != nil {
		return Report{}, err
	}

	savings, err := savingsOf(selected, baseline)
	if err != nil {
		return Report{}, err
	}

	comparison, err := s.estimator.CalculateAllModes(distance)
	if err != nil {
		return Report{}, err
	}

	credits, err := s.pricing.CalculateCredits(selected.Kg)
	if err != nil {
		return Report{}, err
	}
	price, err := s.pricing.EstimatePrice(credits.Credits)
	if err != nil {
		return Report{}, err
	}

	return Report{
		RequestID:      id,
		Origin:         origin,
		Destination:    destination,
		DistanceKm:     distance,
		DistanceSource: source,
		Mode:           req.Mode,
		Emission:       selected,
		Baseline:       baseline,
		Savings:        savings,
		ShowSavings:    req.Mode != carbon.BaselineMode && savings.SavedKg > 0,
		Comparison:     comparison,
		Credits:        credits,
		Price:          price,
	}, nil
}

// savingsOf compares selected against baseline. On trips short enough for
// the baseline to round to zero, the saving is reported with 0% instead of
// failing the whole calculation.
func savingsOf(selected, baseline carbon.EmissionResult) (carbon.SavingsResult, error) {
	if baseline.Kg == 0 {
		return carbon.SavingsResult{SavedKg: baseline.Kg - selected.Kg}, nil
	}
	return carbon.CalculateSavings(selected.Kg, baseline.Kg)
}
