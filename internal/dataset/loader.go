package dataset

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"bikeshare/internal/config"
	"bikeshare/internal/logger"
)

// ErrUnknownCity is returned for a city that is not in the config.
var ErrUnknownCity = errors.New("unknown city")

// Loader resolves city names to datasets and keeps recently loaded tables
// in memory, so restarting a session on the same city does not re-read it.
type Loader struct {
	cfg   config.Config
	cache *lru.Cache[string, *Table]
	load  func(path string) (*Table, error)
}

// NewLoader creates a Loader caching up to cfg.CacheSize tables.
func NewLoader(cfg config.Config) (*Loader, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = 1
	}
	cache, err := lru.New[string, *Table](size)
	if err != nil {
		return nil, fmt.Errorf("create table cache: %w", err)
	}
	return &Loader{cfg: cfg, cache: cache, load: Load}, nil
}

// Load returns the full, unfiltered table for city.
// Returned tables are shared between callers and must not be modified.
func (l *Loader) Load(city string) (*Table, error) {
	c, ok := l.cfg.Lookup(city)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownCity, city)
	}
	path := l.cfg.DatasetPath(c)

	if t, ok := l.cache.Get(path); ok {
		logger.Debug("[DEBUG] Cache hit for %s (%s)\n", city, path)
		return t, nil
	}

	logger.Debug("[DEBUG] Loading %s from %s\n", city, path)
	t, err := l.load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", city, err)
	}
	l.cache.Add(path, t)
	logger.Debug("[DEBUG] Loaded %d trips for %s\n", t.Len(), city)
	return t, nil
}
