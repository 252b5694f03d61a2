package carbon

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CreditPricing holds the credit size and the market price range of one credit.
type CreditPricing struct {
	// KgPerCredit is the kg CO2 offset by one credit.
	KgPerCredit float64 `json:"kg_per_credit"`

	// PriceMin and PriceMax bound the price of one credit.
	PriceMin float64 `json:"price_min"`
	PriceMax float64 `json:"price_max"`
}

// DefaultCreditPricing returns KgPerCredit, CreditPriceMin and CreditPriceMax.
func DefaultCreditPricing() CreditPricing {
	return CreditPricing{
		KgPerCredit: KgPerCredit,
		PriceMin:    CreditPriceMin,
		PriceMax:    CreditPriceMax,
	}
}

// Validate checks that the credit size is positive and the price range is
// non-negative and ordered.
func (p CreditPricing) Validate() error {
	if !isFinite(p.KgPerCredit) || p.KgPerCredit <= 0 {
		return fmt.Errorf("%w: kg_per_credit %v must be finite and positive", ErrInvalidInput, p.KgPerCredit)
	}
	if !validNonNegative(p.PriceMin) || !validNonNegative(p.PriceMax) || p.PriceMin > p.PriceMax {
		return fmt.Errorf("%w: price range [%v, %v] must be finite, non-negative and ordered",
			ErrInvalidInput, p.PriceMin, p.PriceMax)
	}
	return nil
}

// CalculateCredits returns emissionKg / KgPerCredit rounded half up to
// CreditPlaces. Returns ErrInvalidInput for a negative or non-finite emission.
func (p CreditPricing) CalculateCredits(emissionKg float64) (CreditEstimate, error) {
	if err := p.Validate(); err != nil {
		return CreditEstimate{}, err
	}
	if !validNonNegative(emissionKg) {
		return CreditEstimate{}, fmt.Errorf("%w: emission %v kg must be finite and non-negative", ErrInvalidInput, emissionKg)
	}

	credits := decimal.NewFromFloat(emissionKg).Div(decimal.NewFromFloat(p.KgPerCredit))
	return CreditEstimate{Credits: toFloat(roundHalfUp(credits, CreditPlaces))}, nil
}

// EstimatePrice returns the price range for credits. Min and Max scale
// credits by the price bounds and Average is their midpoint, all rounded
// half up to EmissionPlaces from the unrounded products. Returns
// ErrInvalidInput for negative or non-finite credits.
func (p CreditPricing) EstimatePrice(credits float64) (PriceEstimate, error) {
	if err := p.Validate(); err != nil {
		return PriceEstimate{}, err
	}
	if !validNonNegative(credits) {
		return PriceEstimate{}, fmt.Errorf("%w: credits %v must be finite and non-negative", ErrInvalidInput, credits)
	}

	c := decimal.NewFromFloat(credits)
	lo := c.Mul(decimal.NewFromFloat(p.PriceMin))
	hi := c.Mul(decimal.NewFromFloat(p.PriceMax))
	avg := lo.Add(hi).Div(decimal.NewFromInt(2))

	return PriceEstimate{
		Min:     toFloat(roundHalfUp(lo, EmissionPlaces)),
		Max:     toFloat(roundHalfUp(hi, EmissionPlaces)),
		Average: toFloat(roundHalfUp(avg, EmissionPlaces)),
	}, nil
}

// CalculateCredits applies DefaultCreditPricing.
func CalculateCredits(emissionKg float64) (CreditEstimate, error) {
	return DefaultCreditPricing().CalculateCredits(emissionKg)
}

// EstimatePrice applies DefaultCreditPricing.
func EstimatePrice(credits float64) (PriceEstimate, error) {
	return DefaultCreditPricing().EstimatePrice(credits)
}
