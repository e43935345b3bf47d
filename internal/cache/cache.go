package cache

import (
	"context"
	"time"
)

// Cache is a stale-tolerant TTL byte cache. Callers store marshaled
// responses so repeated reads within the TTL are byte-identical.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}
