package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/SpellcastersBot_Go/internal/domain"
)

func TestSortEntities_ByName(t *testing.T) {
	in := []domain.Entity{
		&domain.Unit{BaseEntity: domain.BaseEntity{Name: "skeleton"}},
		&domain.Unit{BaseEntity: domain.BaseEntity{Name: "Harpy"}},
		&domain.Unit{BaseEntity: domain.BaseEntity{Name: "Knight"}},
	}

	out := SortEntities(in, SortByName)
	assert.Equal(t, []string{"Harpy", "Knight", "skeleton"}, names(out))
	assert.Equal(t, "skeleton", in[0].GetName(), "input is left untouched")
}

func TestSortEntities_ByRank(t *testing.T) {
	in := []domain.Entity{
		&domain.Hero{Name: "Frostmage"},
		&domain.Unit{BaseEntity: domain.BaseEntity{Name: "Knight"}, Rank: "III"},
		&domain.Unit{BaseEntity: domain.BaseEntity{Name: "Harpy"}, Rank: "II"},
		&domain.Unit{BaseEntity: domain.BaseEntity{Name: "Archer"}, Rank: "II"},
		&domain.Unit{BaseEntity: domain.BaseEntity{Name: "Oddity"}, Rank: "Star"},
	}

	out := SortEntities(in, SortByRank)
	assert.Equal(t, []string{"Archer", "Harpy", "Knight", "Frostmage", "Oddity"}, names(out))
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, SortByRank, ParseSortOrder("rank"))
	assert.Equal(t, SortByName, ParseSortOrder("name"))
	assert.Equal(t, SortByName, ParseSortOrder(""))
	assert.Equal(t, SortByName, ParseSortOrder("bogus"))
}
