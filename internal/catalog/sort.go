package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/osse101/SpellcastersBot_Go/internal/domain"
)

// SortOrder selects how listings are ordered.
type SortOrder string

const (
	SortByName SortOrder = "name"
	SortByRank SortOrder = "rank"
)

// ParseSortOrder defaults to SortByName for unknown values.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == SortByRank {
		return SortByRank
	}
	return SortByName
}

// SortEntities returns a sorted copy. Names compare with English collation;
// rank order sorts by rank first and name second, unranked entities last.
func SortEntities(entities []domain.Entity, order SortOrder) []domain.Entity {
	out := cloneEntities(entities)
	collator := collate.New(language.English, collate.IgnoreCase)

	byName := func(a, b domain.Entity) bool {
		return collator.CompareString(a.GetName(), b.GetName()) < 0
	}

	if order == SortByRank {
		sort.SliceStable(out, func(i, j int) bool {
			ri, rj := rankOrder(out[i]), rankOrder(out[j])
			if ri != rj {
				return ri < rj
			}
			return byName(out[i], out[j])
		})
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return byName(out[i], out[j]) })
	return out
}

func rankOrder(e domain.Entity) int {
	rank, ok := domain.RankOf(e)
	if !ok {
		return domain.UnknownRankOrder
	}
	if n, known := domain.RankOrder[rank]; known {
		return n
	}
	return domain.UnknownRankOrder
}
