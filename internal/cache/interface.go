package cache

import (
	"context"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	CatalogKeyPrefix = "catalog"

	// ProductListKey holds the full catalog listing, newest first.
	ProductListKey = CatalogKeyPrefix + ":products"
	// ProductCountKey holds the catalog size shown on the admin dashboard.
	ProductCountKey = CatalogKeyPrefix + ":count"
)
