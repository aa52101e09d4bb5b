package catalog

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/osse101/SpellcastersBot_Go/internal/domain"
	"github.com/osse101/SpellcastersBot_Go/internal/metrics"
)

// FilterOptions restricts a listing. Empty School or Rank means no restriction.
type FilterOptions struct {
	Type   string
	School string
	Rank   string
}

// Service is the read API over the catalog. Every read goes through the cache,
// so it may trigger a fetch when the cache is empty or stale. No match is
// reported as an empty result or false, never as an error.
type Service interface {
	FetchData(ctx context.Context, force bool) (*Store, error)
	Search(ctx context.Context, query string) ([]domain.Entity, error)
	FindByName(ctx context.Context, name string) (domain.Entity, bool, error)
	Filter(ctx context.Context, opts FilterOptions) ([]domain.Entity, error)
	Random(ctx context.Context, entityType string) (domain.Entity, bool, error)
	All(ctx context.Context) ([]domain.Entity, error)
}

type service struct {
	cache *Cache
	intN  func(n int) int
}

// ServiceOption configures the query service.
type ServiceOption func(*service)

// WithRandomSource replaces the uniform source used by Random.
func WithRandomSource(r *rand.Rand) ServiceOption {
	return func(s *service) { s.intN = r.IntN }
}

// NewService creates a query service backed by cache
func NewService(cache *Cache, opts ...ServiceOption) Service {
	s := &service{
		cache: cache,
		intN:  rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) FetchData(ctx context.Context, force bool) (*Store, error) {
	return s.cache.Get(ctx, force)
}

func (s *service) Search(ctx context.Context, query string) ([]domain.Entity, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.Entity{}, nil
	}
	store, err := s.cache.Get(ctx, false)
	if err != nil {
		return nil, err
	}
	metrics.SearchesPerformed.Inc()
	return store.Search(query), nil
}

func (s *service) FindByName(ctx context.Context, name string) (domain.Entity, bool, error) {
	store, err := s.cache.Get(ctx, false)
	if err != nil {
		return nil, false, err
	}
	e, ok := store.FindByName(name)
	return e, ok, nil
}

func (s *service) Filter(ctx context.Context, opts FilterOptions) ([]domain.Entity, error) {
	store, err := s.cache.Get(ctx, false)
	if err != nil {
		return nil, err
	}
	return FilterStore(store, opts), nil
}

func (s *service) Random(ctx context.Context, entityType string) (domain.Entity, bool, error) {
	store, err := s.cache.Get(ctx, false)
	if err != nil {
		return nil, false, err
	}

	var pool []domain.Entity
	if entityType == "" {
		pool = store.All()
	} else if t, ok := domain.ParseEntityType(entityType); ok {
		pool = store.ByType(t)
	}

	if len(pool) == 0 {
		return nil, false, nil
	}
	return pool[s.intN(len(pool))], true, nil
}

func (s *service) All(ctx context.Context) ([]domain.Entity, error) {
	store, err := s.cache.Get(ctx, false)
	if err != nil {
		return nil, err
	}
	return store.All(), nil
}

// FilterStore applies opts to one snapshot. School compares against a hero's
// class and every other variant's magic school, ignoring case. Rank is an
// exact comparison, so variants without a rank never match a rank filter.
func FilterStore(store *Store, opts FilterOptions) []domain.Entity {
	t, ok := domain.ParseEntityType(opts.Type)
	if !ok {
		return []domain.Entity{}
	}

	results := make([]domain.Entity, 0)
	for _, e := range store.ByType(t) {
		if opts.School != "" {
			school, has := domain.SchoolOf(e)
			if !has || !strings.EqualFold(school, opts.School) {
				continue
			}
		}
		if opts.Rank != "" {
			rank, has := domain.RankOf(e)
			if !has || rank != opts.Rank {
				continue
			}
		}
		results = append(results, e)
	}
	return results
}
