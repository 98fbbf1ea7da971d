package domain

// ResultItem is the externally visible, per-product search result.
// The short JSON keys mirror the frontend's wire contract.
type ResultItem struct {
	Establishment string   `json:"e"`
	Name          string   `json:"n"`
	Price         float64  `json:"p"`
	SizeText      string   `json:"s"`
	Link          string   `json:"l"`
	PricePerUnit  *float64 `json:"price_per_unit"`
	UnitType      *string  `json:"unit_type"`
}

// Match is one fuzzy-match hit reported by the catalog index. It
// carries direct references to every product in the establishment
// whose name equals the matched value, so callers never have to
// re-locate products by string comparison.
type Match struct {
	EstablishmentCode string
	Value             string // the product name that matched, as stored
	Products          []Product
	Score             float64 // similarity in [0..1], higher is better
}
