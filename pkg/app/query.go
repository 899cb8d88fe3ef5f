package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/edc-app/edc/pkg/client"
	"github.com/edc-app/edc/pkg/store"
)

// Cache keys mirror the request paths so a mutation can drop everything
// under a path prefix.
const (
	keyTasks       = "/tasks"
	keyEvents      = "/calendar/events"
	keyHabits      = "/habits"
	keyCompletions = "/habits/completions"
	keyMood        = "/mood"
	keyCategories  = "/categories"
	keyAnalytics   = "/analytics"
)

func rangeKey(path string, from, to time.Time) string {
	return path + "?" + client.RangeValues(from, to).Encode()
}

// cached serves key from the local cache while it is fresh and otherwise
// calls fetch, de-duplicating concurrent fetches of the same key. When the
// API is unavailable a stale entry is served with a warning. In offline
// mode only the cache is consulted.
func cached[T any](ctx context.Context, s *Service, key string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	entry, hit := s.cacheGet(key)
	if hit {
		fresh := s.Settings.CacheTTL > 0 && s.now().Sub(entry.FetchedAt) < s.Settings.CacheTTL
		if fresh || s.Settings.Offline {
			var v T
			if err := json.Unmarshal(entry.Data, &v); err == nil {
				return v, nil
			}
			hit = false
		}
	}
	if s.Settings.Offline {
		return zero, fmt.Errorf("%w: nothing cached for %s", ErrOffline, key)
	}
	if s.API == nil {
		return zero, ErrNoAPI
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		s.cachePut(key, v)
		return v, nil
	})
	if err != nil {
		if hit && client.IsUnavailable(err) {
			var stale T
			if json.Unmarshal(entry.Data, &stale) == nil {
				s.warnf("app: %v; showing data cached %s", err, entry.FetchedAt.Local().Format(time.Kitchen))
				return stale, nil
			}
		}
		return zero, err
	}
	return v.(T), nil
}

func (s *Service) cacheGet(key string) (store.CacheEntry, bool) {
	if s.Persistence == nil {
		return store.CacheEntry{}, false
	}
	return s.Persistence.Get(key)
}

func (s *Service) cachePut(key string, v interface{}) {
	if s.Persistence == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		s.warnf("app: encode %s for cache: %v", key, err)
		return
	}
	if err := s.Persistence.Put(key, raw, s.now()); err != nil {
		s.warnf("app: cache %s: %v", key, err)
	}
}

// invalidate drops cached reads under each prefix. Failures only warn; the
// next read past the TTL refetches anyway.
func (s *Service) invalidate(ctx context.Context, prefixes ...string) {
	if s.Persistence == nil {
		return
	}
	for _, p := range prefixes {
		if _, err := s.Persistence.Invalidate(ctx, p); err != nil {
			s.warnf("app: invalidate %s: %v", p, err)
		}
	}
}

// Refresh drops every cached read.
func (s *Service) Refresh(ctx context.Context) (int, error) {
	if s.Persistence == nil {
		return 0, ErrNoPersistence
	}
	return s.Persistence.Invalidate(ctx, "")
}
