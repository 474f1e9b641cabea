package common

import "time"

// CacheInterface is implemented by the in-process cache and the Redis cache.
// Values come back through GetInto so a shared cache can decode into the
// caller's type.
type CacheInterface interface {
	Set(key string, value interface{}, duration time.Duration)

	// GetInto copies the cached value into dst, which must be a non-nil
	// pointer. It reports false on a miss or a type mismatch.
	GetInto(key string, dst interface{}) bool

	Delete(key string)

	Close() error
}
