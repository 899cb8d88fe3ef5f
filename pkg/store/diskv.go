package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"github.com/edc-app/edc/pkg/tasks"
)

// Persistence is the local state kept between runs: saved task searches and
// the query cache.
type Persistence interface {
	SearchStore
	Cache
	Watch(ctx context.Context) (<-chan Event, error)
}

// SearchStore persists named task filters.
type SearchStore interface {
	Searches(ctx context.Context) (tasks.Searches, error)
	SaveSearch(ctx context.Context, name string, f tasks.Filter) (tasks.SavedSearch, error)
	DeleteSearch(ctx context.Context, ref string) error
}

// Cache keeps raw API responses keyed by request.
type Cache interface {
	Get(key string) (CacheEntry, bool)
	Put(key string, data []byte, fetched time.Time) error
	Invalidate(ctx context.Context, prefix string) (int, error)
}

// CacheEntry is one cached response.
type CacheEntry struct {
	Key       string          `json:"key"`
	FetchedAt time.Time       `json:"fetched_at"`
	Data      json.RawMessage `json:"data"`
}

const (
	searchesKey  = "searches/saved-task-searches"
	cacheDir     = "cache"
	searchesDir  = "searches"
	lockFile     = ".edc.lock"
	lockTimeout  = 3 * time.Second
	lockInterval = 50 * time.Millisecond
)

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	p, err := open(cfg.BasePath())
	if err != nil {
		return nil, err
	}
	return p, nil
}

func open(basePath string) (*persistence, error) {
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	for _, dir := range []string{searchesDir, cacheDir} {
		if err := os.MkdirAll(filepath.Join(basePath, dir), 0o755); err != nil {
			return nil, fmt.Errorf("store: ensure %s: %w", dir, err)
		}
	}
	return &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		lock:     flock.New(filepath.Join(basePath, lockFile)),
		newID:    newID,
	}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	lock     *flock.Flock
	newID    func() string
	now      func() time.Time
}

func newID() string {
	return uuid.New().String()
}

func (p *persistence) clock() time.Time {
	if p.now != nil {
		return p.now()
	}
	return time.Now()
}

// withLock serialises read-modify-write cycles across processes.
func (p *persistence) withLock(ctx context.Context, fn func() error) error {
	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()
	locked, err := p.lock.TryLockContext(ctx, lockInterval)
	if err != nil {
		return fmt.Errorf("store: acquire lock: %w", err)
	}
	if !locked {
		return errors.New("store: could not acquire lock")
	}
	defer func() { _ = p.lock.Unlock() }()
	return fn()
}

func (p *persistence) readSearches() (tasks.Searches, error) {
	if !p.d.Has(searchesKey) {
		return tasks.Searches{}, nil
	}
	val, err := p.d.Read(searchesKey)
	if err != nil {
		return nil, err
	}
	if len(val) == 0 {
		return tasks.Searches{}, nil
	}
	var list tasks.Searches
	if err := json.Unmarshal(val, &list); err != nil {
		return nil, fmt.Errorf("store: decode saved searches: %w", err)
	}
	return list, nil
}

func (p *persistence) writeSearches(list tasks.Searches) error {
	if list == nil {
		list = tasks.Searches{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return p.d.Write(searchesKey, data)
}

func (p *persistence) Searches(ctx context.Context) (tasks.Searches, error) {
	var list tasks.Searches
	err := p.withLock(ctx, func() error {
		var err error
		list, err = p.readSearches()
		return err
	})
	return list, err
}

func (p *persistence) SaveSearch(ctx context.Context, name string, f tasks.Filter) (tasks.SavedSearch, error) {
	var saved tasks.SavedSearch
	err := p.withLock(ctx, func() error {
		list, err := p.readSearches()
		if err != nil {
			return err
		}
		list, saved, err = list.Upsert(name, f, p.clock(), p.newID)
		if err != nil {
			return err
		}
		return p.writeSearches(list)
	})
	return saved, err
}

func (p *persistence) DeleteSearch(ctx context.Context, ref string) error {
	return p.withLock(ctx, func() error {
		list, err := p.readSearches()
		if err != nil {
			return err
		}
		list, err = list.Remove(ref)
		if err != nil {
			return err
		}
		return p.writeSearches(list)
	})
}

func (p *persistence) Get(key string) (CacheEntry, bool) {
	val, err := p.d.Read(toCacheKey(key))
	if err != nil {
		return CacheEntry{}, false
	}
	var e CacheEntry
	if err := json.Unmarshal(val, &e); err != nil {
		fmt.Fprintf(os.Stderr, "store: skipping corrupt cache entry %s: %v\n", key, err)
		_ = p.d.Erase(toCacheKey(key))
		return CacheEntry{}, false
	}
	return e, true
}

func (p *persistence) Put(key string, data []byte, fetched time.Time) error {
	raw, err := json.Marshal(CacheEntry{Key: key, FetchedAt: fetched, Data: data})
	if err != nil {
		return err
	}
	return p.d.Write(toCacheKey(key), raw)
}

// Invalidate erases every cached response whose request key starts with
// prefix and reports how many were removed.
func (p *persistence) Invalidate(ctx context.Context, prefix string) (int, error) {
	var doomed []string
	for key := range p.d.KeysPrefix(cacheDir+"/", ctx.Done()) {
		if strings.HasPrefix(fromCacheKey(key), prefix) {
			doomed = append(doomed, key)
		}
	}
	n := 0
	for _, key := range doomed {
		if err := p.d.Erase(key); err != nil && !errors.Is(err, os.ErrNotExist) {
			return n, fmt.Errorf("store: invalidate %s: %w", fromCacheKey(key), err)
		}
		n++
	}
	return n, nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s/%s", strings.Join(pathKey.Path, "/"), pathKey.FileName)
}

// toCacheKey makes `cache/<encoded request>`; the request key carries
// slashes and query strings so it is encoded into a single file name.
func toCacheKey(request string) string {
	return cacheDir + "/" + base64.RawURLEncoding.EncodeToString([]byte(request))
}

func fromCacheKey(key string) string {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(key, cacheDir+"/"))
	if err != nil {
		return ""
	}
	return string(raw)
}
