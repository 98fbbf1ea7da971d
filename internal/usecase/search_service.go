package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kassaklap/backend/internal/domain"
)

// SearchServiceConfig holds configuration for the search service.
type SearchServiceConfig struct {
	CacheTTL time.Duration
}

const defaultCacheTTL = time.Hour

// SearchService is the search orchestrator: it runs a query through
// the catalog index, resolves markets, computes unit prices and
// assembles the final result list. Responses are cached per
// normalized query.
type SearchService struct {
	index    *Index
	resolver *MarketResolver
	cache    domain.CacheRepository
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewSearchService creates a search service with its dependencies.
// cache may be nil to disable response caching.
func NewSearchService(
	index *Index,
	resolver *MarketResolver,
	cache domain.CacheRepository,
	logger zerolog.Logger,
	config SearchServiceConfig,
) *SearchService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &SearchService{
		index:    index,
		resolver: resolver,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Search returns the ranked result items for a query.
// Flow: check cache -> fuzzy match -> resolve market -> unit price ->
// assemble -> cache. The index ranking is preserved; products sharing
// a matched name appear together, in catalog order, at that match's
// rank. Establishments without market metadata are dropped. The
// returned slice is never nil on success.
func (s *SearchService) Search(ctx context.Context, query string) ([]domain.ResultItem, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidQuery
	}

	cacheKey := s.cacheKey(query)
	if cached, ok := s.getFromCache(ctx, cacheKey); ok {
		s.logger.Debug().Str("query", query).Int("results", len(cached)).Msg("search cache hit")
		return cached, nil
	}

	matches := s.index.Search(query)

	items := make([]domain.ResultItem, 0, len(matches))
	for _, match := range matches {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		market, ok := s.resolver.Resolve(match.EstablishmentCode)
		if !ok {
			s.logger.Debug().
				Str("code", match.EstablishmentCode).
				Msg("skipping establishment without market metadata")
			continue
		}

		for _, product := range match.Products {
			unit := NormalizePrice(product.Price, product.SizeText)
			items = append(items, domain.ResultItem{
				Establishment: market.Name,
				Name:          product.Name,
				Price:         product.Price,
				SizeText:      product.SizeText,
				Link:          market.BaseURL + product.LinkSuffix,
				PricePerUnit:  unit.PricePerUnit,
				UnitType:      unit.UnitType,
			})
		}
	}

	s.setInCache(ctx, cacheKey, items)

	s.logger.Debug().Str("query", query).Int("results", len(items)).Msg("search completed")
	return items, nil
}

// cacheKey builds a normalized cache key for a query.
// Format: "search:{normalized query}"
func (s *SearchService) cacheKey(query string) string {
	return "search:" + normalizeText(query)
}

// getFromCache retrieves a cached response; any cache problem counts
// as a miss.
func (s *SearchService) getFromCache(ctx context.Context, key string) ([]domain.ResultItem, bool) {
	if s.cache == nil {
		return nil, false
	}
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	items, ok := value.([]domain.ResultItem)
	return items, ok
}

// setInCache stores a response; failures are logged, not propagated.
func (s *SearchService) setInCache(ctx context.Context, key string, items []domain.ResultItem) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, items, s.cacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to cache search response")
	}
}
