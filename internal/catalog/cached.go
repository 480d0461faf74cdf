package catalog

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"recommend-backend/internal/recommend"
	"recommend-backend/internal/shared/telemetry"
	"recommend-backend/internal/shared/util"
)

const (
	defaultCacheSize = 64
	defaultCacheTTL  = 5 * time.Minute
	domainsKey       = "\x00domains"
)

type cacheEntry struct {
	items    []recommend.Item
	domains  []string
	storedAt time.Time
}

// CachedRepo keeps recently loaded catalogs in memory. Concurrent misses
// for the same domain share one load.
type CachedRepo struct {
	next  Repo
	cache *lru.Cache[string, cacheEntry]
	ttl   time.Duration
	group singleflight.Group
	now   func() time.Time
}

// NewCachedRepo wraps next. Non-positive size or ttl fall back to defaults.
func NewCachedRepo(next Repo, size int, ttl time.Duration) *CachedRepo {
	if size <= 0 {
		size = defaultCacheSize
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	cache, err := lru.New[string, cacheEntry](size)
	if err != nil {
		// lru.New only errors on non-positive size which we guard above.
		panic(err)
	}
	return &CachedRepo{next: next, cache: cache, ttl: ttl, now: time.Now}
}

func (r *CachedRepo) Load(ctx context.Context, domain string) ([]recommend.Item, error) {
	key, err := util.SanitizeDomain(domain)
	if err != nil {
		return r.next.Load(ctx, domain)
	}
	if entry, ok := r.fresh(key); ok {
		return entry.items, nil
	}

	// The load is shared by every waiter, so one caller's cancellation
	// must not fail the others.
	loadCtx := context.WithoutCancel(ctx)
	v, err, shared := r.group.Do(key, func() (any, error) {
		items, err := r.next.Load(loadCtx, key)
		if err != nil {
			return nil, err
		}
		r.cache.Add(key, cacheEntry{items: items, storedAt: r.now()})
		telemetry.Debug("catalog.cache.fill", map[string]any{"domain": key, "items": len(items)})
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		telemetry.Debug("catalog.cache.shared_load", map[string]any{"domain": key})
	}
	return v.([]recommend.Item), nil
}

func (r *CachedRepo) Domains(ctx context.Context) ([]string, error) {
	if entry, ok := r.fresh(domainsKey); ok {
		return entry.domains, nil
	}
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := r.group.Do(domainsKey, func() (any, error) {
		domains, err := r.next.Domains(loadCtx)
		if err != nil {
			return nil, err
		}
		r.cache.Add(domainsKey, cacheEntry{domains: domains, storedAt: r.now()})
		return domains, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

func (r *CachedRepo) fresh(key string) (cacheEntry, bool) {
	entry, ok := r.cache.Get(key)
	if !ok {
		return cacheEntry{}, false
	}
	if r.now().Sub(entry.storedAt) >= r.ttl {
		r.cache.Remove(key)
		return cacheEntry{}, false
	}
	return entry, true
}

var _ Repo = (*CachedRepo)(nil)
