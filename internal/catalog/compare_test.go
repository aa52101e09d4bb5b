package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpellcastersBot_Go/internal/domain"
)

func rowByLabel(rows []ComparisonRow, label string) (ComparisonRow, bool) {
	for _, r := range rows {
		if r.Label == label {
			return r, true
		}
	}
	return ComparisonRow{}, false
}

func TestCompare_SameType(t *testing.T) {
	store := loadStore(t)
	harpy, _ := store.FindByName("Harpy")
	knight, _ := store.FindByName("Knight")

	rows, err := Compare(harpy, knight)
	require.NoError(t, err)

	health, ok := rowByLabel(rows, "❤️ Health")
	require.True(t, ok)
	assert.Equal(t, "180", health.Left.Text)
	assert.Equal(t, "650", health.Right.Text)
	assert.False(t, health.LeftHigher)
	assert.True(t, health.RightHigher)

	rng, ok := rowByLabel(rows, "🎯 Range")
	require.True(t, ok, "row kept when one side has a value")
	assert.Equal(t, "4", rng.Left.Text)
	assert.Equal(t, "N/A", rng.Right.Text)
	assert.False(t, rng.LeftHigher || rng.RightHigher)

	rank, ok := rowByLabel(rows, "🏅 Rank")
	require.True(t, ok)
	assert.Equal(t, "II", rank.Left.Text)
	assert.Nil(t, rank.Left.Number)

	recharge, ok := rowByLabel(rows, "⏱️ Recharge")
	require.True(t, ok)
	assert.Equal(t, "s", recharge.Suffix)

	_, ok = rowByLabel(rows, "💎 Value")
	assert.False(t, ok, "rows missing on both sides are omitted")
}

func TestCompare_EqualValuesHaveNoWinner(t *testing.T) {
	a := &domain.Unit{BaseEntity: domain.BaseEntity{Name: "A", Type: domain.EntityUnit}, Health: 100}
	b := &domain.Unit{BaseEntity: domain.BaseEntity{Name: "B", Type: domain.EntityUnit}, Health: 100}

	rows, err := Compare(a, b)
	require.NoError(t, err)
	health, _ := rowByLabel(rows, "❤️ Health")
	assert.False(t, health.LeftHigher)
	assert.False(t, health.RightHigher)
}

func TestCompare_DifferentTypes(t *testing.T) {
	store := loadStore(t)
	harpy, _ := store.FindByName("Harpy")
	fireball, _ := store.FindByName("Fireball")

	_, err := Compare(harpy, fireball)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Unit vs Spell")
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "18.3", FormatNumber(18.3))
	assert.Equal(t, "250", FormatNumber(250))
	assert.Equal(t, "0.5", FormatNumber(0.5))
}
