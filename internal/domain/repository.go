package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching search responses
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogSource defines the interface for loading the static product catalog
type CatalogSource interface {
	Load() ([]CatalogEntry, error)
}
