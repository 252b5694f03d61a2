package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/dimithria/Calculadora-CO2/internal/carbon"
)

var (
	// ErrInvalidRequest is the kind of every request validation failure.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrRouteNotFound is returned when no distance was given and the
	// provider does not know the route. It wraps ErrInvalidRequest.
	ErrRouteNotFound = fmt.Errorf("%w: route not found, provide the distance manually", ErrInvalidRequest)
)

func validateLocations(origin, destination string) error {
	if origin == "" {
		return fmt.Errorf("%w: origin is required", ErrInvalidRequest)
	}
	if destination == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidRequest)
	}
	return nil
}

// resolveDistance returns the manual distance when positive, otherwise the
// route table distance. Resolved distances must be greater than zero.
func (s *Service) resolveDistance(origin, destination string, manual float64) (float64, DistanceSource, error) {
	if math.IsNaN(manual) || math.IsInf(manual, 0) || manual < 0 {
		return 0, "", fmt.Errorf("%w: %w: %v km must be a positive number",
			ErrInvalidRequest, carbon.ErrInvalidDistance, manual)
	}
	if manual > 0 {
		return manual, DistanceManual, nil
	}

	if s.provider == nil {
		return 0, "", fmt.Errorf("%w: distance is required when no route table is configured", ErrInvalidRequest)
	}
	d, ok := s.provider.FindDistance(origin, destination)
	if !ok {
		return 0, "", fmt.Errorf("%w (%s → %s)", ErrRouteNotFound, origin, destination)
	}
	return d, DistanceRouteTable, nil
}
