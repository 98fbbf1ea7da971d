package usecase

import (
	"math"

	"github.com/kassaklap/backend/internal/domain"
)

// NormalizePrice computes the price per standard unit (per kg, per
// liter, or per item) for a product price and its free-text size
// description. Both result fields are nil when no unit price can be
// derived: a non-finite or negative price, an unparsable size text, or
// a zero amount. Callers treat the nil pair as "unit price
// unavailable", never as a failure.
func NormalizePrice(price float64, sizeText string) domain.UnitPrice {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return domain.UnitPrice{}
	}

	parsed, ok := ParseQuantity(sizeText)
	if !ok || parsed.Amount == 0 {
		return domain.UnitPrice{}
	}

	switch parsed.BaseUnit {
	case domain.BaseUnitGram:
		// amount is grams; per-kg price
		return unitPrice(round2(price/(parsed.Amount/1000)), domain.UnitTypeKilogram)
	case domain.BaseUnitMilliliter:
		// amount is milliliters; per-liter price
		return unitPrice(round2(price/(parsed.Amount/1000)), domain.UnitTypeLiter)
	default:
		// quantity parsed but neither mass nor volume
		return unitPrice(round2(price), domain.UnitTypeUnit)
	}
}

// round2 rounds half-up to 2 decimals, matching currency rounding.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func unitPrice(value float64, unitType string) domain.UnitPrice {
	return domain.UnitPrice{PricePerUnit: &value, UnitType: &unitType}
}
