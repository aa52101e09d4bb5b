package domain

import (
	"regexp"
	"strings"
)

// EntityType is the variant discriminant assigned to every entity at ingestion.
type EntityType string

const (
	EntityHero       EntityType = "Hero"
	EntityUnit       EntityType = "Unit"
	EntitySpell      EntityType = "Spell"
	EntityTitan      EntityType = "Titan"
	EntityConsumable EntityType = "Consumable"
)

// entityOrder is the fixed concatenation order of the flattened collection.
var entityOrder = []EntityType{EntityHero, EntityUnit, EntitySpell, EntityTitan, EntityConsumable}

// EntityTypes returns every variant in concatenation order.
func EntityTypes() []EntityType {
	out := make([]EntityType, len(entityOrder))
	copy(out, entityOrder)
	return out
}

// ParseEntityType resolves a user-supplied type name case-insensitively.
func ParseEntityType(s string) (EntityType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range entityOrder {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}

// Entity is one game object. The set of implementations is closed to the five
// variants declared in this package.
type Entity interface {
	GetName() string
	GetType() EntityType
	GetEntityID() string
	GetDescription() string
	GetCategory() string
	GetTags() []string

	isEntity()
}

// SchoolOf returns the value compared by school filters: the class for heroes
// and the magic school for units, spells and titans.
func SchoolOf(e Entity) (string, bool) {
	switch v := e.(type) {
	case *Hero:
		return v.Class, v.Class != ""
	case *Unit:
		return v.MagicSchool, v.MagicSchool != ""
	case *Spell:
		return v.MagicSchool, v.MagicSchool != ""
	case *Titan:
		return v.MagicSchool, v.MagicSchool != ""
	default:
		return "", false
	}
}

// RankOf returns the rank of variants that carry one.
func RankOf(e Entity) (string, bool) {
	switch v := e.(type) {
	case *Unit:
		return v.Rank, v.Rank != ""
	case *Spell:
		return v.Rank, v.Rank != ""
	case *Titan:
		return v.Rank, v.Rank != ""
	default:
		return "", false
	}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// SlugOf returns the entity_id, falling back to a slug derived from the name.
func SlugOf(e Entity) string {
	if id := e.GetEntityID(); id != "" {
		return id
	}
	return whitespaceRun.ReplaceAllString(strings.ToLower(e.GetName()), "_")
}

// BaseEntity holds the fields shared by units, spells, titans and consumables.
type BaseEntity struct {
	Schema        string           `json:"$schema,omitempty"`
	Type          EntityType       `json:"type,omitempty"`
	EntityID      string           `json:"entity_id"`
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	Description   string           `json:"description"`
	ImageRequired bool             `json:"image_required"`
	ItemURL       string           `json:"item_url,omitempty"`
	Tags          []string         `json:"tags"`
	Changelog     []ChangelogEntry `json:"changelog,omitempty"`
	LastModified  string           `json:"last_modified,omitempty"`
}

func (b *BaseEntity) GetName() string        { return b.Name }
func (b *BaseEntity) GetType() EntityType    { return b.Type }
func (b *BaseEntity) GetEntityID() string    { return b.EntityID }
func (b *BaseEntity) GetDescription() string { return b.Description }
func (b *BaseEntity) GetCategory() string    { return b.Category }
func (b *BaseEntity) GetTags() []string      { return b.Tags }

// ChangelogEntry records a balance change for an entity.
type ChangelogEntry struct {
	Version     string `json:"version"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Hero is a playable spellcaster.
type Hero struct {
	Schema        string           `json:"$schema,omitempty"`
	Type          EntityType       `json:"type,omitempty"`
	EntityID      string           `json:"entity_id,omitempty"`
	Name          string           `json:"name"`
	Class         string           `json:"class"`
	Category      string           `json:"category"`
	MovementType  string           `json:"movement_type"`
	Health        float64          `json:"health"`
	MovementSpeed *float64         `json:"movement_speed,omitempty"`
	Population    float64          `json:"population"`
	ImageRequired bool             `json:"image_required"`
	Difficulty    float64          `json:"difficulty"`
	Tags          []string         `json:"tags"`
	Abilities     HeroAbilities    `json:"abilities"`
	Changelog     []ChangelogEntry `json:"changelog,omitempty"`
	Description   string           `json:"description,omitempty"`
	LastModified  string           `json:"last_modified,omitempty"`
}

func (h *Hero) GetName() string        { return h.Name }
func (h *Hero) GetType() EntityType    { return h.Type }
func (h *Hero) GetEntityID() string    { return h.EntityID }
func (h *Hero) GetDescription() string { return h.Description }
func (h *Hero) GetCategory() string    { return h.Category }
func (h *Hero) GetTags() []string      { return h.Tags }
func (*Hero) isEntity()                {}

// HeroAbilities groups a hero's ability slots.
type HeroAbilities struct {
	Passive  []Ability `json:"passive"`
	Primary  Ability   `json:"primary"`
	Defense  Ability   `json:"defense"`
	Ultimate Ability   `json:"ultimate"`
}

// Ability is a single hero ability.
type Ability struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Charges     *float64       `json:"charges,omitempty"`
	Duration    *float64       `json:"duration,omitempty"`
	Cooldown    *float64       `json:"cooldown,omitempty"`
	Damage      *float64       `json:"damage,omitempty"`
	Stats       map[string]any `json:"stats,omitempty"`
	Mechanics   *Mechanics     `json:"mechanics,omitempty"`
	Condition   *Condition     `json:"condition,omitempty"`
}

// Condition is a rule gating an ability.
type Condition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
	Notes    string `json:"notes,omitempty"`
}

// Unit is a summonable unit or building.
type Unit struct {
	BaseEntity
	MagicSchool    string     `json:"magic_school"`
	Rank           string     `json:"rank"`
	Damage         *float64   `json:"damage,omitempty"`
	Health         float64    `json:"health"`
	Range          *float64   `json:"range,omitempty"`
	MovementSpeed  *float64   `json:"movement_speed,omitempty"`
	MovementType   string     `json:"movement_type,omitempty"`
	DPS            *float64   `json:"dps,omitempty"`
	AttackInterval *float64   `json:"attack_interval,omitempty"`
	Charges        float64    `json:"charges"`
	RechargeTime   float64    `json:"recharge_time"`
	CastTime       float64    `json:"cast_time"`
	Population     float64    `json:"population"`
	Mechanics      *Mechanics `json:"mechanics,omitempty"`
}

func (*Unit) isEntity() {}

// IsBuilding reports whether the unit is a stationary building.
func (u *Unit) IsBuilding() bool { return u.Category == "Building" }

// Spell is an incantation.
type Spell struct {
	BaseEntity
	MagicSchool  string     `json:"magic_school"`
	Rank         string     `json:"rank"`
	Damage       *float64   `json:"damage,omitempty"`
	Range        *float64   `json:"range,omitempty"`
	Charges      float64    `json:"charges"`
	RechargeTime float64    `json:"recharge_time"`
	CastTime     float64    `json:"cast_time"`
	Duration     *float64   `json:"duration,omitempty"`
	Value        *float64   `json:"value,omitempty"`
	Mechanics    *Mechanics `json:"mechanics,omitempty"`
}

func (*Spell) isEntity() {}

// Titan is a late-game summon.
type Titan struct {
	BaseEntity
	MagicSchool        string          `json:"magic_school"`
	Rank               string          `json:"rank"`
	Damage             float64         `json:"damage"`
	Health             float64         `json:"health"`
	MovementSpeed      float64         `json:"movement_speed"`
	PassiveHealthRegen *float64        `json:"passive_health_regen,omitempty"`
	HealAmount         *float64        `json:"heal_amount,omitempty"`
	DPS                float64         `json:"dps"`
	AttackInterval     float64         `json:"attack_interval"`
	Charges            float64         `json:"charges"`
	RechargeTime       float64         `json:"recharge_time"`
	CastTime           float64         `json:"cast_time"`
	Population         float64         `json:"population"`
	Mechanics          *TitanMechanics `json:"mechanics,omitempty"`
}

func (*Titan) isEntity() {}

// Consumable is a single-use item.
type Consumable struct {
	BaseEntity
	EffectType string   `json:"effect_type"`
	Value      float64  `json:"value"`
	Duration   *float64 `json:"duration,omitempty"`
	BuffTarget string   `json:"buff_target,omitempty"`
	StackSize  *float64 `json:"stack_size,omitempty"`
}

func (*Consumable) isEntity() {}

// BuildInfo describes the upstream dataset version.
type BuildInfo struct {
	Version     string `json:"version"`
	GeneratedAt string `json:"generated_at"`
}

// Dataset is the full validated payload of one fetch cycle.
type Dataset struct {
	BuildInfo   BuildInfo      `json:"build_info"`
	Heroes      []*Hero        `json:"heroes"`
	Units       []*Unit        `json:"units"`
	Spells      []*Spell       `json:"spells"`
	Titans      []*Titan       `json:"titans"`
	Consumables []*Consumable  `json:"consumables"`
	GameConfig  map[string]any `json:"game_config,omitempty"`
}

// Counts returns the number of entities per variant.
func (d *Dataset) Counts() map[EntityType]int {
	return map[EntityType]int{
		EntityHero:       len(d.Heroes),
		EntityUnit:       len(d.Units),
		EntitySpell:      len(d.Spells),
		EntityTitan:      len(d.Titans),
		EntityConsumable: len(d.Consumables),
	}
}

// Total returns the number of entities across all variants.
func (d *Dataset) Total() int {
	return len(d.Heroes) + len(d.Units) + len(d.Spells) + len(d.Titans) + len(d.Consumables)
}

// GameConfigString reads a string value from the optional game_config block.
func (d *Dataset) GameConfigString(key, fallback string) string {
	if d.GameConfig == nil {
		return fallback
	}
	if s, ok := d.GameConfig[key].(string); ok && s != "" {
		return s
	}
	return fallback
}
