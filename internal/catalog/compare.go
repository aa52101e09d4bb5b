package catalog

import (
	"fmt"
	"strconv"

	"github.com/osse101/SpellcastersBot_Go/internal/domain"
)

// Stat is one displayable attribute. Number is set for numeric stats so that
// comparisons can pick a winner.
type Stat struct {
	Text   string
	Number *float64
}

// ComparisonRow is one attribute of two entities side by side.
type ComparisonRow struct {
	Label       string
	Suffix      string
	Left        Stat
	Right       Stat
	LeftHigher  bool
	RightHigher bool
}

type statDef struct {
	label  string
	suffix string
	get    func(domain.Entity) (Stat, bool)
}

var comparedStats = []statDef{
	{"🏅 Rank", "", func(e domain.Entity) (Stat, bool) { return textStat(domain.RankOf(e)) }},
	{"🔮 School", "", func(e domain.Entity) (Stat, bool) { return textStat(domain.SchoolOf(e)) }},
	{"📂 Category", "", func(e domain.Entity) (Stat, bool) { return textStat(e.GetCategory(), e.GetCategory() != "") }},
	{"❤️ Health", "", statField(func(h *domain.Hero) *float64 { return &h.Health },
		func(u *domain.Unit) *float64 { return &u.Health }, nil,
		func(t *domain.Titan) *float64 { return &t.Health })},
	{"⚔️ Damage", "", statField(nil,
		func(u *domain.Unit) *float64 { return u.Damage },
		func(s *domain.Spell) *float64 { return s.Damage },
		func(t *domain.Titan) *float64 { return &t.Damage })},
	{"⚔️ DPS", "", statField(nil,
		func(u *domain.Unit) *float64 { return u.DPS }, nil,
		func(t *domain.Titan) *float64 { return &t.DPS })},
	{"🎯 Range", "", statField(nil,
		func(u *domain.Unit) *float64 { return u.Range },
		func(s *domain.Spell) *float64 { return s.Range }, nil)},
	{"🌪️ Speed", "", statField(func(h *domain.Hero) *float64 { return h.MovementSpeed },
		func(u *domain.Unit) *float64 { return u.MovementSpeed }, nil,
		func(t *domain.Titan) *float64 { return &t.MovementSpeed })},
	{"⚡ Charges", "", statField(nil,
		func(u *domain.Unit) *float64 { return &u.Charges },
		func(s *domain.Spell) *float64 { return &s.Charges },
		func(t *domain.Titan) *float64 { return &t.Charges })},
	{"⏱️ Recharge", "s", statField(nil,
		func(u *domain.Unit) *float64 { return &u.RechargeTime },
		func(s *domain.Spell) *float64 { return &s.RechargeTime },
		func(t *domain.Titan) *float64 { return &t.RechargeTime })},
	{"👥 Population", "", statField(func(h *domain.Hero) *float64 { return &h.Population },
		func(u *domain.Unit) *float64 { return &u.Population }, nil,
		func(t *domain.Titan) *float64 { return &t.Population })},
	{"💎 Value", "", func(e domain.Entity) (Stat, bool) {
		switch v := e.(type) {
		case *domain.Consumable:
			return numberStat(&v.Value)
		case *domain.Spell:
			return numberStat(v.Value)
		}
		return Stat{}, false
	}},
}

// Compare lines up the stats of two entities of the same variant. Rows where
// neither side has a value are omitted.
func Compare(a, b domain.Entity) ([]ComparisonRow, error) {
	if a.GetType() != b.GetType() {
		return nil, fmt.Errorf("%w: cannot compare different types: %s vs %s",
			domain.ErrInvalidInput, a.GetType(), b.GetType())
	}

	rows := make([]ComparisonRow, 0, len(comparedStats))
	for _, def := range comparedStats {
		left, hasLeft := def.get(a)
		right, hasRight := def.get(b)
		if !hasLeft && !hasRight {
			continue
		}
		row := ComparisonRow{
			Label:  def.label,
			Suffix: def.suffix,
			Left:   orNA(left, hasLeft),
			Right:  orNA(right, hasRight),
		}
		if left.Number != nil && right.Number != nil {
			row.LeftHigher = *left.Number > *right.Number
			row.RightHigher = *right.Number > *left.Number
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FormatNumber renders a stat without trailing zeros.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func textStat(s string, ok bool) (Stat, bool) {
	if !ok {
		return Stat{}, false
	}
	return Stat{Text: s}, true
}

func numberStat(f *float64) (Stat, bool) {
	if f == nil {
		return Stat{}, false
	}
	v := *f
	return Stat{Text: FormatNumber(v), Number: &v}, true
}

func orNA(s Stat, ok bool) Stat {
	if !ok {
		return Stat{Text: "N/A"}
	}
	return s
}

// statField dispatches on the variant; a nil getter means the variant has no
// such stat.
func statField(
	hero func(*domain.Hero) *float64,
	unit func(*domain.Unit) *float64,
	spell func(*domain.Spell) *float64,
	titan func(*domain.Titan) *float64,
) func(domain.Entity) (Stat, bool) {
	return func(e domain.Entity) (Stat, bool) {
		switch v := e.(type) {
		case *domain.Hero:
			if hero != nil {
				return numberStat(hero(v))
			}
		case *domain.Unit:
			if unit != nil {
				return numberStat(unit(v))
			}
		case *domain.Spell:
			if spell != nil {
				return numberStat(spell(v))
			}
		case *domain.Titan:
			if titan != nil {
				return numberStat(titan(v))
			}
		}
		return Stat{}, false
	}
}
