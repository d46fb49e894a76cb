// Package service owns the catalog snapshot lifecycle: fetch the upstream
// document, run the pipeline, swap the immutable result in under a lock, and
// answer read queries from whatever snapshot is current. The optional cache
// memoizes the transformed model list so restarts can serve without waiting
// on the upstream.
package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"catalogd/internal/cache"
	"catalogd/internal/catalog"
	"catalogd/pkg/types"
)

// cacheKey stores the full transformed catalog; filtered views are computed
// from the snapshot, not cached separately.
const cacheKey = "catalog:all"

// Source produces a decoded pricing document. internal/source.Client and
// internal/source.File both satisfy it.
type Source interface {
	Fetch(ctx context.Context) (*catalog.Document, error)
}

// Config carries construction parameters. Zero values mean "unspecified"
// and are replaced by defaults in New.
type Config struct {
	Source Source
	// Cache is optional; nil disables memoization entirely.
	Cache    cache.Cache
	CacheTTL time.Duration
	// MinRefreshInterval throttles forced refreshes.
	MinRefreshInterval time.Duration
	// Logger is optional; nil disables pipeline logging.
	Logger *zerolog.Logger
}

const (
	defaultCacheTTL           = time.Hour
	defaultMinRefreshInterval = 30 * time.Second
)

type Service struct {
	mu      sync.RWMutex
	cat     *catalog.Catalog
	buildID string
	builtAt time.Time
	lastErr string

	refreshes     uint64
	fetchFailures uint64

	src      Source
	cache    cache.Cache
	cacheTTL time.Duration
	limiter  *rate.Limiter
	log      zerolog.Logger
	started  time.Time
}

// New builds a Service. No I/O happens until Load or Refresh is called.
func New(cfg Config) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.MinRefreshInterval <= 0 {
		cfg.MinRefreshInterval = defaultMinRefreshInterval
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	return &Service{
		src:      cfg.Source,
		cache:    cfg.Cache,
		cacheTTL: cfg.CacheTTL,
		limiter:  rate.NewLimiter(rate.Every(cfg.MinRefreshInterval), 1),
		log:      log,
		started:  time.Now(),
	}
}

// Ready reports whether a snapshot exists.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cat != nil
}

// Snapshot returns the current catalog. The catalog is immutable; callers
// may hold it across the next swap and keep reading a consistent view.
func (s *Service) Snapshot() (*catalog.Catalog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cat, s.cat != nil
}

// Load primes the snapshot at startup: cached models first, upstream fetch
// when the cache has nothing. Cache failures degrade to a cold start.
func (s *Service) Load(ctx context.Context) error {
	if s.fromCache(ctx) {
		return nil
	}
	return s.refresh(ctx, false)
}

// Refresh forces a refetch, subject to the minimum refresh interval.
func (s *Service) Refresh(ctx context.Context) error {
	return s.refresh(ctx, true)
}

func (s *Service) refresh(ctx context.Context, throttled bool) error {
	if throttled && !s.limiter.Allow() {
		return ErrRefreshThrottled()
	}
	doc, err := s.src.Fetch(ctx)
	if err != nil {
		fetchFailuresTotal.Inc()
		s.mu.Lock()
		s.lastErr = err.Error()
		s.fetchFailures++
		s.mu.Unlock()
		s.log.Error().Err(err).Msg("catalog fetch failed")
		return err
	}
	cat := catalog.Build(doc)
	s.swap(cat)
	entriesDropped.Set(float64(len(doc.Keys) - len(cat.Models)))
	s.log.Info().
		Int("raw_entries", len(doc.Keys)).
		Int("models", len(cat.Models)).
		Int("providers", len(cat.Providers)).
		Msg("catalog refreshed")
	s.toCache(ctx, cat)
	return nil
}

func (s *Service) swap(cat *catalog.Catalog) {
	id := ulid.Make().String()
	s.mu.Lock()
	s.cat = cat
	s.buildID = id
	s.builtAt = time.Now()
	s.lastErr = ""
	s.refreshes++
	s.mu.Unlock()
	modelsCurrent.Set(float64(len(cat.Models)))
	refreshesTotal.Inc()
}

// fromCache rehydrates a snapshot from the memoized model list. Validation
// does not run again; the cached models were validated when built.
func (s *Service) fromCache(ctx context.Context) bool {
	if s.cache == nil {
		return false
	}
	b, ok, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		cacheMissesTotal.Inc()
		s.log.Warn().Err(err).Msg("cache get failed, falling back to fetch")
		return false
	}
	if !ok {
		cacheMissesTotal.Inc()
		return false
	}
	var models []types.Model
	if err := json.Unmarshal(b, &models); err != nil {
		cacheMissesTotal.Inc()
		s.log.Warn().Err(err).Msg("cached catalog is corrupt, refetching")
		return false
	}
	cacheHitsTotal.Inc()
	s.swap(catalog.FromModels(models))
	return true
}

// toCache memoizes the model list. Failures are absorbed; the snapshot is
// already live.
func (s *Service) toCache(ctx context.Context, cat *catalog.Catalog) {
	if s.cache == nil {
		return
	}
	b, err := json.Marshal(cat.Models)
	if err != nil {
		s.log.Warn().Err(err).Msg("cache encode failed")
		return
	}
	if err := s.cache.Put(ctx, cacheKey, b, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Msg("cache put failed")
	}
}

// Status reports snapshot metadata for GET /status.
func (s *Service) Status() types.StatusResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := types.StatusResponse{
		State:              "empty",
		BuildID:            s.buildID,
		LastError:          s.lastErr,
		UptimeSeconds:      int64(time.Since(s.started).Seconds()),
		ServerTimeUnix:     time.Now().Unix(),
		RefreshesTotal:     s.refreshes,
		FetchFailuresTotal: s.fetchFailures,
	}
	if s.cat != nil {
		st.State = "ready"
		st.Models = len(s.cat.Models)
		st.Providers = len(s.cat.Providers)
		st.Modes = len(s.cat.Modes)
		st.LastRefreshUnix = s.builtAt.Unix()
	} else if s.lastErr != "" {
		st.State = "error"
	}
	return st
}
