package common

import (
	"reflect"
	"strings"
	"time"

	"helo-luxury-air/portal/internal/metrics"

	"github.com/patrickmn/go-cache"
)

// CacheService is the in-memory cache used for wizard drafts and fleet listings.
type CacheService struct {
	cache   *cache.Cache
	metrics *metrics.MetricsRegistry
}

// Ensure CacheService implements CacheInterface
var _ CacheInterface = (*CacheService)(nil)

// NewCacheService builds a cache; metricsReg may be nil.
func NewCacheService(defaultExpiration, cleanUpInterval time.Duration, metricsReg *metrics.MetricsRegistry) *CacheService {
	return &CacheService{
		cache:   cache.New(defaultExpiration, cleanUpInterval),
		metrics: metricsReg,
	}
}

func (cs *CacheService) Set(key string, value interface{}, duration time.Duration) {
	cs.cache.Set(key, value, duration)
}

func (cs *CacheService) Get(key string) (interface{}, bool) {
	val, found := cs.cache.Get(key)
	if cs.metrics != nil {
		if found {
			cs.metrics.CacheHitsTotal.WithLabelValues(keyPattern(key)).Inc()
		} else {
			cs.metrics.CacheMissesTotal.WithLabelValues(keyPattern(key)).Inc()
		}
	}
	return val, found
}

func (cs *CacheService) Delete(key string) {
	cs.cache.Delete(key)
}

// GetInto assigns the stored value to *dst when the types line up.
func (cs *CacheService) GetInto(key string, dst interface{}) bool {
	val, found := cs.Get(key)
	if !found {
		return false
	}
	out := reflect.ValueOf(dst)
	if out.Kind() != reflect.Ptr || out.IsNil() {
		return false
	}
	in := reflect.ValueOf(val)
	if !in.IsValid() || !in.Type().AssignableTo(out.Elem().Type()) {
		return false
	}
	out.Elem().Set(in)
	return true
}

// Close is a no-op for in-memory cache
func (cs *CacheService) Close() error {
	return nil
}

// keyPattern keeps metric cardinality bounded: WIZARD_abc -> WIZARD_
func keyPattern(key string) string {
	if i := strings.Index(key, "_"); i >= 0 {
		return key[:i+1]
	}
	return key
}
