package catalog

import (
	"log/slog"
	"strings"

	"github.com/osse101/SpellcastersBot_Go/internal/domain"
)

// Store is an immutable, indexed view over one Dataset. A new Store is built
// for every successful fetch; readers holding an old Store keep a consistent
// snapshot.
type Store struct {
	dataset    *domain.Dataset
	all        []domain.Entity
	byType     map[domain.EntityType][]domain.Entity
	byName     map[string]domain.Entity
	collisions []string
	index      *SearchIndex
}

// NewStore builds the lookup tables over a tagged copy of ds, so the caller's
// dataset is never written and stores built from the same dataset share no
// mutable state. Names are keyed lowercased; when two entities share a name
// the later one in concatenation order wins.
func NewStore(ds *domain.Dataset, threshold float64) *Store {
	if ds == nil {
		ds = &domain.Dataset{}
	}

	tagged := &domain.Dataset{
		BuildInfo:   ds.BuildInfo,
		Heroes:      tagCopies(ds.Heroes, func(h *domain.Hero) { h.Type = domain.EntityHero }),
		Units:       tagCopies(ds.Units, func(u *domain.Unit) { u.Type = domain.EntityUnit }),
		Spells:      tagCopies(ds.Spells, func(sp *domain.Spell) { sp.Type = domain.EntitySpell }),
		Titans:      tagCopies(ds.Titans, func(t *domain.Titan) { t.Type = domain.EntityTitan }),
		Consumables: tagCopies(ds.Consumables, func(c *domain.Consumable) { c.Type = domain.EntityConsumable }),
		GameConfig:  ds.GameConfig,
	}

	s := &Store{
		dataset: tagged,
		all:     make([]domain.Entity, 0, tagged.Total()),
		byType:  make(map[domain.EntityType][]domain.Entity, len(domain.EntityTypes())),
		byName:  make(map[string]domain.Entity, tagged.Total()),
	}

	for _, h := range tagged.Heroes {
		s.add(h)
	}
	for _, u := range tagged.Units {
		s.add(u)
	}
	for _, sp := range tagged.Spells {
		s.add(sp)
	}
	for _, t := range tagged.Titans {
		s.add(t)
	}
	for _, c := range tagged.Consumables {
		s.add(c)
	}

	s.index = NewSearchIndex(s.all, threshold)
	return s
}

// tagCopies returns shallow copies of the non-nil records with tag applied
func tagCopies[T any](src []*T, tag func(*T)) []*T {
	out := make([]*T, 0, len(src))
	for _, rec := range src {
		if rec == nil {
			continue
		}
		c := *rec
		tag(&c)
		out = append(out, &c)
	}
	return out
}

func (s *Store) add(e domain.Entity) {
	s.all = append(s.all, e)
	s.byType[e.GetType()] = append(s.byType[e.GetType()], e)

	key := nameKey(e.GetName())
	if prev, exists := s.byName[key]; exists {
		s.collisions = append(s.collisions, e.GetName())
		slog.Warn(LogMsgNameCollision,
			"name", e.GetName(),
			"kept_type", e.GetType(),
			"replaced_type", prev.GetType())
	}
	s.byName[key] = e
}

func nameKey(name string) string {
	return strings.ToLower(name)
}

// All returns every entity in concatenation order.
func (s *Store) All() []domain.Entity {
	return cloneEntities(s.all)
}

// Len returns the number of entities.
func (s *Store) Len() int {
	return len(s.all)
}

// ByType returns the native sequence of one variant, or nil for an unknown type.
func (s *Store) ByType(t domain.EntityType) []domain.Entity {
	return cloneEntities(s.byType[t])
}

// FindByName performs a case-insensitive exact lookup.
func (s *Store) FindByName(name string) (domain.Entity, bool) {
	e, ok := s.byName[nameKey(name)]
	return e, ok
}

// Search runs a fuzzy search over entity names.
func (s *Store) Search(query string) []domain.Entity {
	return s.index.Search(query)
}

// Index exposes the fuzzy index for callers that need scores.
func (s *Store) Index() *SearchIndex {
	return s.index
}

// NameCollisions lists names that replaced an earlier entity in the name map.
func (s *Store) NameCollisions() []string {
	out := make([]string, len(s.collisions))
	copy(out, s.collisions)
	return out
}

func (s *Store) BuildInfo() domain.BuildInfo { return s.dataset.BuildInfo }

// Dataset returns the underlying payload. Callers must treat it as read-only.
func (s *Store) Dataset() *domain.Dataset { return s.dataset }

func (s *Store) Heroes() []*domain.Hero            { return s.dataset.Heroes }
func (s *Store) Units() []*domain.Unit             { return s.dataset.Units }
func (s *Store) Spells() []*domain.Spell           { return s.dataset.Spells }
func (s *Store) Titans() []*domain.Titan           { return s.dataset.Titans }
func (s *Store) Consumables() []*domain.Consumable { return s.dataset.Consumables }

func cloneEntities(in []domain.Entity) []domain.Entity {
	if in == nil {
		return nil
	}
	out := make([]domain.Entity, len(in))
	copy(out, in)
	return out
}
