package chain

import (
	"context"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards"
	lru "github.com/hashicorp/golang-lru"
)

// cacheKind distinguishes the kinds of data held in an EpochCache.
type cacheKind int

const (
	cachedParameters cacheKind = iota
	cachedInfo
	cachedPoolStates
	cachedPots
)

type cacheKey struct {
	kind  cacheKind
	epoch int
}

// EpochCache is a Provider keeping the most recently used epoch data of
// another provider. The cached values are shared and must not be modified
// by the caller.
type EpochCache struct {
	Provider
	cache *lru.Cache
}

// NewEpochCache creates a new EpochCache holding at most size entries. An
// error is returned, if the size isn't positive.
func NewEpochCache(provider Provider, size int) (*EpochCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &EpochCache{
		Provider: provider,
		cache:    cache,
	}, nil
}

// fetch returns the cached value for the given key, or calls f and caches
// its result. Errors aren't cached.
func (c *EpochCache) fetch(key cacheKey, f func() (interface{}, error)) (interface{}, error) {
	if value, found := c.cache.Get(key); found {
		return value, nil
	}
	value, err := f()
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, value)
	return value, nil
}

func (c *EpochCache) ProtocolParameters(ctx context.Context, epoch int) (*rewards.ProtocolParameters, error) {
	value, err := c.fetch(cacheKey{kind: cachedParameters, epoch: epoch}, func() (interface{}, error) {
		return c.Provider.ProtocolParameters(ctx, epoch)
	})
	if err != nil {
		return nil, err
	}
	return value.(*rewards.ProtocolParameters), nil
}

func (c *EpochCache) EpochInfo(ctx context.Context, epoch int) (*rewards.EpochInfo, error) {
	value, err := c.fetch(cacheKey{kind: cachedInfo, epoch: epoch}, func() (interface{}, error) {
		return c.Provider.EpochInfo(ctx, epoch)
	})
	if err != nil {
		return nil, err
	}
	return value.(*rewards.EpochInfo), nil
}

func (c *EpochCache) PoolStates(ctx context.Context, epoch int) (map[string]*rewards.PoolState, error) {
	value, err := c.fetch(cacheKey{kind: cachedPoolStates, epoch: epoch}, func() (interface{}, error) {
		return c.Provider.PoolStates(ctx, epoch)
	})
	if err != nil {
		return nil, err
	}
	return value.(map[string]*rewards.PoolState), nil
}

func (c *EpochCache) AdaPots(ctx context.Context, epoch int) (*rewards.AdaPots, error) {
	value, err := c.fetch(cacheKey{kind: cachedPots, epoch: epoch}, func() (interface{}, error) {
		return c.Provider.AdaPots(ctx, epoch)
	})
	if err != nil {
		return nil, err
	}
	return value.(*rewards.AdaPots), nil
}

// Len returns the number of cached entries.
func (c *EpochCache) Len() int {
	return c.cache.Len()
}

// Purge removes all cached entries.
func (c *EpochCache) Purge() {
	c.cache.Purge()
}
