package validate

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// LEILookupResult is the outcome of a lei_status lookup (spec.md §6).
type LEILookupResult struct {
	Status string
	Active bool
}

// NatRegLookupResult is the outcome of a nat_reg_lookup (spec.md §6).
type NatRegLookupResult struct {
	Active bool
}

// DataSource is the external capability level-3 rules consult. Both
// methods return ok=false when the implementation has no answer (a
// no-op implementation that always returns false is conformant — L3
// rules silently skip on a missing answer rather than failing).
type DataSource interface {
	LEIStatus(lei string) (LEILookupResult, bool)
	NatRegLookup(authority, value string) (NatRegLookupResult, bool)
}

// NoopDataSource answers every lookup with "no information available".
// It is the default DataSource for a caller that runs L3 rules without
// wiring a real registry lookup.
type NoopDataSource struct{}

func (NoopDataSource) LEIStatus(string) (LEILookupResult, bool)            { return LEILookupResult{}, false }
func (NoopDataSource) NatRegLookup(string, string) (NatRegLookupResult, bool) { return NatRegLookupResult{}, false }

// CachingDataSource decorates a DataSource with a per-instance TTL
// cache, avoiding repeated round-trips for identifiers seen more than
// once in the same rule sweep. It owns its cache instance rather than
// reaching for a package-level one, per spec.md §5's prohibition on
// global caches; callers construct one per validation run (or reuse
// one across runs if they want cross-run caching).
type CachingDataSource struct {
	inner DataSource
	lei   *ttlcache.Cache[string, LEILookupResult]
	natReg *ttlcache.Cache[string, NatRegLookupResult]
}

// NewCachingDataSource wraps inner with caches of the given TTL.
func NewCachingDataSource(inner DataSource, ttl time.Duration) *CachingDataSource {
	return &CachingDataSource{
		inner:  inner,
		lei:    ttlcache.New(ttlcache.WithTTL[string, LEILookupResult](ttl)),
		natReg: ttlcache.New(ttlcache.WithTTL[string, NatRegLookupResult](ttl)),
	}
}

// LEIStatus implements DataSource, consulting the cache before falling
// through to inner.
func (c *CachingDataSource) LEIStatus(lei string) (LEILookupResult, bool) {
	if item := c.lei.Get(lei); item != nil {
		return item.Value(), true
	}
	res, ok := c.inner.LEIStatus(lei)
	if ok {
		c.lei.Set(lei, res, ttlcache.DefaultTTL)
	}
	return res, ok
}

// NatRegLookup implements DataSource, consulting the cache before
// falling through to inner.
func (c *CachingDataSource) NatRegLookup(authority, value string) (NatRegLookupResult, bool) {
	key := authority + "\x00" + value
	if item := c.natReg.Get(key); item != nil {
		return item.Value(), true
	}
	res, ok := c.inner.NatRegLookup(authority, value)
	if ok {
		c.natReg.Set(key, res, ttlcache.DefaultTTL)
	}
	return res, ok
}
