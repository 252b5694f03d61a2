// Package carbon provides CO2 emission estimation for road transport modes,
// mode comparison against a baseline, and carbon credit offset pricing.
package carbon

const (
	// FactorBicycle is the emission factor for cycling in kg CO2 per km.
	FactorBicycle = 0.0

	// FactorCar is the emission factor for an average passenger car in kg CO2 per km.
	FactorCar = 0.12

	// FactorBus is the per-passenger emission factor for a bus in kg CO2 per km.
	FactorBus = 0.089

	// FactorTruck is the emission factor for a freight truck in kg CO2 per km.
	FactorTruck = 0.96

	// BaselineMode is the mode every comparison and saving is measured against.
	BaselineMode = ModeCar

	// KgPerCredit is the amount of CO2 offset by one carbon credit (one tonne).
	KgPerCredit = 1000.0

	// CreditPriceMin is the lower bound of the market price of one credit.
	// Prices are in BRL.
	CreditPriceMin = 50.0

	// CreditPriceMax is the upper bound of the market price of one credit.
	CreditPriceMax = 150.0

	// EmissionPlaces is the number of decimals emissions, savings, percentages
	// and prices are rounded to.
	EmissionPlaces = 2

	// CreditPlaces is the number of decimals credit counts are rounded to.
	CreditPlaces = 4
)
