package carbon

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config bundles the data an engine runs on.
type Config struct {
	Table   *FactorTable
	Pricing CreditPricing
}

// DefaultConfig returns the built-in factor table and credit pricing.
func DefaultConfig() Config {
	return Config{
		Table:   DefaultFactorTable(),
		Pricing: DefaultCreditPricing(),
	}
}

// configFile is the YAML layout accepted by LoadConfig.
//
//	modes:
//	  - mode: car
//	    factor_kg_per_km: 0.12
//	    label: Carro
//	credit_pricing:
//	  kg_per_credit: 1000
//	  price_min: 50
//	  price_max: 150
type configFile struct {
	Modes         []modeRow         `yaml:"modes"`
	CreditPricing *creditPricingRow `yaml:"credit_pricing"`
}

type modeRow struct {
	Mode   string   `yaml:"mode"`
	Factor *float64 `yaml:"factor_kg_per_km"`
	Label  string   `yaml:"label"`
	Icon   string   `yaml:"icon"`
	Color  string   `yaml:"color"`
}

type creditPricingRow struct {
	KgPerCredit *float64 `yaml:"kg_per_credit"`
	PriceMin    *float64 `yaml:"price_min"`
	PriceMax    *float64 `yaml:"price_max"`
}

// LoadConfig reads a YAML factor table, for example a regional variant.
// A missing credit_pricing section, or any field missing from it, falls
// back to the defaults. Unknown fields are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	var file configFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("%w: empty factor configuration", ErrInvalidInput)
		}
		return Config{}, fmt.Errorf("failed to parse factor configuration: %w", err)
	}

	entries := make([]ModeInfo, 0, len(file.Modes))
	for i, row := range file.Modes {
		if row.Factor == nil {
			return Config{}, fmt.Errorf("%w: mode %d (%q) has no factor_kg_per_km", ErrInvalidInput, i, row.Mode)
		}
		entries = append(entries, ModeInfo{
			Mode:   TransportMode(row.Mode),
			Factor: *row.Factor,
			Label:  row.Label,
			Icon:   row.Icon,
			Color:  row.Color,
		})
	}

	table, err := NewFactorTable(entries...)
	if err != nil {
		return Config{}, err
	}

	pricing := DefaultCreditPricing()
	if p := file.CreditPricing; p != nil {
		if p.KgPerCredit != nil {
			pricing.KgPerCredit = *p.KgPerCredit
		}
		if p.PriceMin != nil {
			pricing.PriceMin = *p.PriceMin
		}
		if p.PriceMax != nil {
			pricing.PriceMax = *p.PriceMax
		}
	}
	if err := pricing.Validate(); err != nil {
		return Config{}, err
	}

	logger.Debug().
		Int("modes", table.Len()).
		Float64("kg_per_credit", pricing.KgPerCredit).
		Float64("price_min", pricing.PriceMin).
		Float64("price_max", pricing.PriceMax).
		Msg("loaded factor configuration")

	return Config{Table: table, Pricing: pricing}, nil
}
