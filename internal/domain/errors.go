package domain

import "errors"

var (
	// ErrInvalidQuery is returned when the search query is empty or blank
	ErrInvalidQuery = errors.New("query must not be empty")

	// ErrMalformedCatalog is returned when the catalog dataset fails schema validation
	ErrMalformedCatalog = errors.New("malformed catalog data")

	// ErrDuplicateEstablishment is returned when two catalog entries share a code
	ErrDuplicateEstablishment = errors.New("duplicate establishment code in catalog")

	// ErrUnknownMarket is returned when an establishment code has no market metadata
	ErrUnknownMarket = errors.New("no market metadata for establishment")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
