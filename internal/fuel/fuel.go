// Package fuel holds the pure trip-cost arithmetic: fuel prices, the option
// lists the forms are built from, and the litres/cost computation.
package fuel

import "math"

// EconomyOption is one litres-per-100km efficiency band. Key is the figure
// used in arithmetic, Label is what the user sees.
type EconomyOption struct {
	Key   string
	Label string
}

// UnitPrice returns the per-litre price for a fuel type. Anything not in the
// table, Diesel included, takes the default price.
func UnitPrice(fuelType string) float64 {
	switch fuelType {
	case "Petrol(91)":
		return 1.35
	case "Petrol(98)":
		return 1.58
	case "LPG":
		return 0.58
	default:
		return 1.50
	}
}

// Options lists the fuel types the user can choose from, in display order.
func Options() []string {
	return []string{"Petrol(91)", "Petrol(98)", "LPG", "Diesel"}
}

// EconomyOptions lists the efficiency bands, in display order.
func EconomyOptions() []EconomyOption {
	return []EconomyOption{
		{Key: "5", Label: "Excellent (5L/100km)"},
		{Key: "8", Label: "Fair (8L/100km)"},
		{Key: "11", Label: "Poor (11L/100km)"},
		{Key: "14", Label: "Bad 14L/100km"},
	}
}

// ComputeCost returns the litres needed for the trip and the fuel cost.
// Litres are truncated to a whole number before pricing; the fraction of a
// litre is never charged for.
func ComputeCost(distanceKm, litresPer100Km int, unitPrice float64) (litres, cost float64) {
	litres = float64(distanceKm) * (float64(litresPer100Km) / 100)
	cost = math.Trunc(litres) * unitPrice
	return litres, cost
}
