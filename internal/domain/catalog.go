package domain

// Product is a single catalog line item. It belongs to exactly one
// CatalogEntry. The short JSON keys mirror the upstream dataset format.
type Product struct {
	Name       string  `json:"n"`
	Price      float64 `json:"p"`
	SizeText   string  `json:"s"`
	LinkSuffix string  `json:"l"`
}

// CatalogEntry groups the products of one establishment. Code is the
// lowercase establishment identifier (e.g. "ah") and is unique across
// the loaded catalog.
type CatalogEntry struct {
	Code     string    `json:"n"`
	Products []Product `json:"d"`
}

// MarketMetadata is the public display metadata for an establishment.
type MarketMetadata struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	BrandColor string `json:"brand_color"`
	BaseURL    string `json:"base_url"`
}

// BaseUnit is the normalized unit an amount is converted into before
// computing a price per standard unit.
type BaseUnit string

const (
	BaseUnitGram       BaseUnit = "gram"
	BaseUnitMilliliter BaseUnit = "milliliter"
	BaseUnitNone       BaseUnit = "none"
)

// ParsedQuantity is the result of parsing a free-text size string.
// Amount is already expressed in the base unit's smallest form
// (grams or milliliters).
type ParsedQuantity struct {
	Amount   float64
	BaseUnit BaseUnit
}

// Unit type labels for normalized prices.
const (
	UnitTypeKilogram = "kg"
	UnitTypeLiter    = "liter"
	UnitTypeUnit     = "unit"
)

// UnitPrice is a computed price per standard unit. Both fields are nil
// when no unit price could be derived; that is a normal outcome, not
// an error.
type UnitPrice struct {
	PricePerUnit *float64
	UnitType     *string
}
