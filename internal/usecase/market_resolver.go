package usecase

import (
	"strings"

	"github.com/kassaklap/backend/internal/domain"
)

// MarketResolver maps establishment codes to their public display
// metadata. Codes are lowercased once at construction, so lookups are
// plain map reads.
type MarketResolver struct {
	markets map[string]domain.MarketMetadata
}

// NewMarketResolver creates a resolver over the given metadata table.
// Later entries with the same code win.
func NewMarketResolver(markets []domain.MarketMetadata) *MarketResolver {
	byCode := make(map[string]domain.MarketMetadata, len(markets))
	for _, m := range markets {
		m.Code = strings.ToLower(m.Code)
		byCode[m.Code] = m
	}
	return &MarketResolver{markets: byCode}
}

// Resolve looks up a market by establishment code, case-insensitively.
// ok is false for unknown codes; callers skip those establishments
// rather than treating the miss as an error.
func (r *MarketResolver) Resolve(code string) (domain.MarketMetadata, bool) {
	m, ok := r.markets[strings.ToLower(code)]
	return m, ok
}

// DefaultMarkets is the metadata table for the markets currently
// onboarded. Catalog entries for other establishments are silently
// excluded from results until they get a row here.
func DefaultMarkets() []domain.MarketMetadata {
	return []domain.MarketMetadata{
		{
			Code:       "ah",
			Name:       "Albert Heijn",
			BrandColor: "#02ADE6",
			BaseURL:    "https://www.ah.nl/producten/product/",
		},
		{
			Code:       "dirk",
			Name:       "Dirk",
			BrandColor: "#E30614",
			BaseURL:    "https://www.dirk.nl/boodschappen/x/x/x/",
		},
		{
			Code:       "jumbo",
			Name:       "Jumbo",
			BrandColor: "#EDB716",
			BaseURL:    "https://www.jumbo.com/producten/",
		},
	}
}
