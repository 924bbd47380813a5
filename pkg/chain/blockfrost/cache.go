package blockfrost

import (
	"context"
	"github.com/blockfrost/blockfrost-go"
	lru "github.com/hashicorp/golang-lru"
)

// fetchPoolHistoryFunc is a function to fetch the history of a pool.
type fetchPoolHistoryFunc func(context.Context, string) ([]blockfrost.PoolHistory, error)

// historyCache allows fetching pool histories by making use of a
// cache. The cache stores a specified number of pool histories.
type historyCache struct {
	cache *lru.Cache
}

// newHistoryCache creates a new history cache of a given size.
func newHistoryCache(cacheSize int) (*historyCache, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &historyCache{cache: cache}, nil
}

// fetch fetches the history of the pool with the given ID. If the history
// is cached, then the cached history will be returned. If it isn't in the
// cache, then the given function 'f' will be called to fetch the history.
//
// An error will be returned, if the history couldn't be fetched.
func (h *historyCache) fetch(ctx context.Context, poolID string,
	f fetchPoolHistoryFunc) ([]blockfrost.PoolHistory, error) {
	if history, found := h.cache.Get(poolID); found {
		return history.([]blockfrost.PoolHistory), nil
	}
	history, err := f(ctx, poolID)
	if err != nil {
		return nil, err
	}
	h.cache.Add(poolID, history)
	return history, nil
}

// forget removes the history of the given pool such that the next fetch
// queries it again.
func (h *historyCache) forget(poolID string) {
	h.cache.Remove(poolID)
}
