package search

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/folioworks/folio/pkg/domain/content"
	"github.com/folioworks/folio/pkg/infra/cache"
	"github.com/folioworks/folio/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultLimit    = 20
	MaxLimit        = 100
	DefaultCacheTTL = time.Minute
)

//go:generate mockery --name=Service --dir=. --output=./mocks --filename=service_mock.go --case=underscore --with-expecter
type Service interface {
	Search(ctx context.Context, query string, limit int) []Result
	Suggest(ctx context.Context, prefix string, limit int) []Suggestion
	// Rebuild reloads content and swaps the snapshot. Concurrent calls share
	// one load.
	Rebuild(ctx context.Context) (int, error)
	Snapshot() *Index
}

type ServiceOpts struct {
	Threshold    float64
	CacheTTL     time.Duration
	DefaultLimit int
}

type snapshot struct {
	index      *Index
	generation uint64
}

type service struct {
	logger       *logrus.Logger
	repo         content.Repository
	current      atomic.Pointer[snapshot]
	generation   atomic.Uint64
	group        singleflight.Group
	cache        *cache.TTLMap
	threshold    float64
	defaultLimit int
}

func NewService(logger *logrus.Logger, repo content.Repository, opts *ServiceOpts) Service {
	s := &service{
		logger:       logger,
		repo:         repo,
		threshold:    DefaultThreshold,
		defaultLimit: DefaultLimit,
	}
	ttl := DefaultCacheTTL
	if opts != nil {
		if opts.Threshold > 0 {
			s.threshold = opts.Threshold
		}
		if opts.CacheTTL > 0 {
			ttl = opts.CacheTTL
		}
		if opts.DefaultLimit > 0 {
			s.defaultLimit = opts.DefaultLimit
		}
	}
	s.cache = cache.NewTTLMap(ttl)
	s.current.Store(&snapshot{index: BuildIndex(nil)})
	return s
}

func (s *service) Snapshot() *Index {
	return s.current.Load().index
}

func (s *service) Search(_ context.Context, query string, limit int) []Result {
	limit = s.clamp(limit)
	snap := s.current.Load()
	key := "q:" + strconv.FormatUint(snap.generation, 10) + ":" + strconv.Itoa(limit) + ":" + normalize(query)

	if cached, ok := s.cache.Get(key); ok {
		prometheus.SearchQueries.WithLabelValues("query", "hit").Inc()
		return cached.([]Result)
	}
	prometheus.SearchQueries.WithLabelValues("query", "miss").Inc()

	results := snap.index.Query(query, limit)
	s.cache.Set(key, results)
	return results
}

func (s *service) Suggest(_ context.Context, prefix string, limit int) []Suggestion {
	prometheus.SearchQueries.WithLabelValues("suggest", "none").Inc()
	return s.current.Load().index.Suggest(prefix, s.clamp(limit))
}

func (s *service) Rebuild(ctx context.Context) (int, error) {
	v, err, shared := s.group.Do("rebuild", func() (interface{}, error) {
		items, err := s.repo.Load(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to load content: %w", err)
		}
		idx := BuildIndex(items, WithThreshold(s.threshold), WithLogger(s.logger))
		s.current.Store(&snapshot{index: idx, generation: s.generation.Add(1)})
		s.cache.Clear()
		prometheus.SearchIndexItems.Set(float64(idx.Len()))
		s.logger.WithFields(logrus.Fields{
			"items":   idx.Len(),
			"skipped": len(items) - idx.Len(),
		}).Info("search index rebuilt")
		return idx.Len(), nil
	})
	if err != nil {
		return 0, err
	}
	if shared {
		s.logger.Debug("search rebuild coalesced with an in-flight rebuild")
	}
	return v.(int), nil
}

func (s *service) clamp(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
