package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/SpellcastersBot_Go/internal/catalog"
	"github.com/osse101/SpellcastersBot_Go/internal/domain"
)

// Links holds the base URLs entity embeds point at
type Links struct {
	WikiBase  string
	ImageBase string
}

// DefaultLinks returns the public SpellcastersDB links
func DefaultLinks() Links {
	return Links{WikiBase: WikiBaseURL, ImageBase: ImageBaseURL}
}

// linksFor lets the dataset override the wiki location through game_config
func linksFor(store *catalog.Store) Links {
	links := DefaultLinks()
	if store != nil && store.Dataset() != nil {
		links.WikiBase = strings.TrimRight(store.Dataset().GameConfigString(GameConfigWikiURL, links.WikiBase), "/")
	}
	return links
}

var wikiPaths = map[domain.EntityType]string{
	domain.EntityHero:       "spellcasters",
	domain.EntityUnit:       "incantations/units",
	domain.EntitySpell:      "incantations/spells",
	domain.EntityTitan:      "titans",
	domain.EntityConsumable: "consumables",
}

var imageDirs = map[domain.EntityType]string{
	domain.EntityHero:       "heroes",
	domain.EntityUnit:       "units",
	domain.EntitySpell:      "spells",
	domain.EntityTitan:      "titans",
	domain.EntityConsumable: "consumables",
}

var schoolColors = map[string]int{
	"Astral":      ColorAstral,
	"War":         ColorWar,
	"Elemental":   ColorElemental,
	"Holy":        ColorHoly,
	"Necromancy":  ColorNecromancy,
	"Wild":        ColorWild,
	"Technomancy": ColorTechnomancy,
	"Titan":       ColorTitan,
}

// WikiURL returns the SpellcastersDB page of an entity
func (l Links) WikiURL(t domain.EntityType, id string) string {
	path, ok := wikiPaths[t]
	if !ok {
		return l.WikiBase
	}
	return fmt.Sprintf("%s/%s/%s", l.WikiBase, path, id)
}

// ImageURL returns the artwork of an entity
func (l Links) ImageURL(t domain.EntityType, id string) string {
	return fmt.Sprintf("%s/%s/%s.png", l.ImageBase, imageDirs[t], id)
}

var typePlurals = map[domain.EntityType]string{
	domain.EntityHero:       "Heroes",
	domain.EntityUnit:       "Units",
	domain.EntitySpell:      "Spells",
	domain.EntityTitan:      "Titans",
	domain.EntityConsumable: "Consumables",
}

func pluralName(t domain.EntityType) string {
	if p, ok := typePlurals[t]; ok {
		return p
	}
	return string(t) + "s"
}

func schoolColor(school string) int {
	if c, ok := schoolColors[school]; ok {
		return c
	}
	return ColorDefault
}

// EntityEmbed builds the detail card of any entity
func EntityEmbed(e domain.Entity, links Links) *discordgo.MessageEmbed {
	switch v := e.(type) {
	case *domain.Hero:
		return heroEmbed(v, links)
	case *domain.Unit:
		return unitEmbed(v, links)
	case *domain.Spell:
		return spellEmbed(v, links)
	case *domain.Titan:
		return titanEmbed(v, links)
	case *domain.Consumable:
		return consumableEmbed(v, links)
	default:
		return baseEmbed(e, TypeEmojis[string(e.GetType())], ColorDefault, links)
	}
}

// ErrorEmbed is a red embed carrying a single message
func ErrorEmbed(message string) *discordgo.MessageEmbed {
	if !strings.HasPrefix(message, "❌") {
		message = "❌ " + message
	}
	return &discordgo.MessageEmbed{Description: message, Color: ColorError}
}

func baseEmbed(e domain.Entity, emoji string, color int, links Links) *discordgo.MessageEmbed {
	id := domain.SlugOf(e)
	description := e.GetDescription()
	if description == "" {
		description = MsgNoDescription
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s %s", emoji, e.GetName()),
		Description: description,
		Color:       color,
		URL:         links.WikiURL(e.GetType(), id),
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: links.ImageURL(e.GetType(), id)},
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%s | ID: %s", FooterViewOnDB, id)},
	}
}

func field(name, value string, inline bool) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: inline}
}

func addFields(embed *discordgo.MessageEmbed, fields ...*discordgo.MessageEmbedField) {
	embed.Fields = append(embed.Fields, fields...)
}

// safe renders a value for an embed field, N/A when empty
func safe(s string) string {
	if s == "" {
		return MsgNotAvailable
	}
	return s
}

func num(f float64) string {
	return catalog.FormatNumber(f)
}

func optNum(f *float64, suffix string) string {
	if f == nil {
		return MsgNotAvailable
	}
	return num(*f) + suffix
}

func difficultyStars(d float64) string {
	n := int(d)
	if n <= 0 {
		return MsgNotAvailable
	}
	return strings.Repeat("⭐", min(n, 5))
}

func costString(charges, recharge, cast float64) string {
	parts := []string{
		"Charges: " + num(charges),
		"Recharge: " + num(recharge) + "s",
	}
	if cast > 0 {
		parts = append(parts, "Cast: "+num(cast)+"s")
	}
	return strings.Join(parts, " | ")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func heroEmbed(h *domain.Hero, links Links) *discordgo.MessageEmbed {
	embed := baseEmbed(h, TypeEmojis[string(domain.EntityHero)], ColorDefault, links)

	addFields(embed,
		field("🎓 Class", safe(h.Class), true),
		field("📂 Category", safe(h.Category), true),
		field("⭐ Difficulty", difficultyStars(h.Difficulty), true),
		field("❤️ Health", num(h.Health), true),
		field("👥 Population", num(h.Population), true),
		field("🦶 Movement", safe(h.MovementType), true),
	)

	primary := h.Abilities.Primary
	primaryDesc := orDefault(primary.Description, MsgNoAbilityDesc)
	if primary.Damage != nil && *primary.Damage != 0 {
		primaryDesc += "\n**Damage:** " + num(*primary.Damage)
	}
	if mechs := primary.Mechanics.Names(); len(mechs) > 0 {
		primaryDesc += fmt.Sprintf("\n*Mechanics: %s*", strings.Join(mechs, ", "))
	}
	addFields(embed, field("⚔️ Primary: "+orDefault(primary.Name, MsgUnknown), primaryDesc, false))

	def := h.Abilities.Defense
	defenseDesc := orDefault(def.Description, MsgNoAbilityDesc)
	var defStats []string
	if def.Charges != nil && *def.Charges != 0 {
		defStats = append(defStats, "Charges: "+num(*def.Charges))
	}
	if def.Cooldown != nil && *def.Cooldown != 0 {
		defStats = append(defStats, "CD: "+num(*def.Cooldown)+"s")
	}
	if def.Duration != nil && *def.Duration != 0 {
		defStats = append(defStats, "Dur: "+num(*def.Duration)+"s")
	}
	if len(defStats) > 0 {
		defenseDesc += fmt.Sprintf("\n*(%s)*", strings.Join(defStats, " | "))
	}
	addFields(embed, field("🛡️ Defense: "+orDefault(def.Name, MsgUnknown), defenseDesc, false))

	ult := h.Abilities.Ultimate
	ultDesc := orDefault(ult.Description, MsgNoAbilityDesc)
	if ult.Duration != nil && *ult.Duration != 0 {
		ultDesc += "\n**Duration:** " + num(*ult.Duration) + "s"
	}
	addFields(embed, field("🔥 Ultimate: "+orDefault(ult.Name, MsgUnknown), ultDesc, false))

	if len(h.Abilities.Passive) > 0 {
		lines := make([]string, 0, len(h.Abilities.Passive))
		for _, p := range h.Abilities.Passive {
			lines = append(lines, fmt.Sprintf("**%s**: %s", p.Name, p.Description))
		}
		addFields(embed, field("Passive", strings.Join(lines, "\n"), false))
	}

	return embed
}

func unitEmbed(u *domain.Unit, links Links) *discordgo.MessageEmbed {
	emoji := TypeEmojis[string(domain.EntityUnit)]
	if u.IsBuilding() {
		emoji = "🏗️"
	}
	embed := baseEmbed(u, emoji, schoolColor(u.MagicSchool), links)

	addFields(embed,
		field("🏅 Rank", safe(u.Rank), true),
		field("🔮 School", safe(u.MagicSchool), true),
		field("📂 Type", safe(u.Category), true),
		field("❤️ Health", num(u.Health), true),
		field("⚔️ Damage", optNum(u.Damage, ""), true),
		field("⚔️ DPS", optNum(u.DPS, ""), true),
		field("🎯 Range", optNum(u.Range, ""), true),
	)
	if !u.IsBuilding() {
		addFields(embed, field("🌪️ Speed", optNum(u.MovementSpeed, ""), true))
	}
	addFields(embed, field("💎 Cost", costString(u.Charges, u.RechargeTime, u.CastTime), false))

	if u.Mechanics != nil {
		mechs := u.Mechanics.Names()
		for _, extra := range []struct{ key, label string }{
			{"spawner", "Spawner"},
			{"aura", "Aura"},
			{"damage_modifiers", "Damage Modifiers"},
		} {
			if u.Mechanics.Has(extra.key) {
				mechs = append(mechs, extra.label)
			}
		}
		if len(mechs) > 0 {
			addFields(embed, field("⚙️ Mechanics", strings.Join(mechs, ", "), false))
		}
	}

	return embed
}

func spellEmbed(sp *domain.Spell, links Links) *discordgo.MessageEmbed {
	embed := baseEmbed(sp, TypeEmojis[string(domain.EntitySpell)], schoolColor(sp.MagicSchool), links)

	addFields(embed,
		field("🏅 Rank", safe(sp.Rank), true),
		field("🔮 School", safe(sp.MagicSchool), true),
		field("🎯 Range", optNum(sp.Range, ""), true),
	)
	if sp.Damage != nil {
		addFields(embed, field("⚔️ Damage", num(*sp.Damage), true))
	}
	if sp.Value != nil {
		addFields(embed, field("💚 Value", num(*sp.Value), true))
	}
	if sp.Duration != nil && *sp.Duration != 0 {
		addFields(embed, field("⏳ Duration", num(*sp.Duration)+"s", true))
	}
	addFields(embed, field("💎 Cost", costString(sp.Charges, sp.RechargeTime, sp.CastTime), false))

	if sp.Mechanics != nil {
		var details []string
		if waves, ok := sp.Mechanics.Extra["waves"].(float64); ok && waves != 0 {
			details = append(details, "Waves: "+num(waves))
		}
		if sp.Mechanics.Has("damage_modifiers") {
			details = append(details, "Modifiers")
		}
		details = append(details, sp.Mechanics.Names()...)
		if len(details) > 0 {
			addFields(embed, field("⚙️ Mechanics", strings.Join(details, ", "), true))
		}
	}

	return embed
}

func titanEmbed(t *domain.Titan, links Links) *discordgo.MessageEmbed {
	embed := baseEmbed(t, TypeEmojis[string(domain.EntityTitan)], schoolColor(t.MagicSchool), links)

	addFields(embed,
		field("🏅 Rank", safe(t.Rank), true),
		field("🔮 School", safe(t.MagicSchool), true),
		field("❤️ Health", num(t.Health), true),
		field("⚔️ Damage", num(t.Damage), true),
		field("⚔️ DPS", num(t.DPS), true),
		field("🌪️ Speed", num(t.MovementSpeed), true),
		field("💎 Cost", costString(t.Charges, t.RechargeTime, t.CastTime), false),
	)
	if t.PassiveHealthRegen != nil && *t.PassiveHealthRegen != 0 {
		addFields(embed, field("💚 Regen", num(*t.PassiveHealthRegen)+"/s", true))
	}
	if t.HealAmount != nil && *t.HealAmount != 0 {
		addFields(embed, field("💚 Heal Amount", num(*t.HealAmount), true))
	}

	if t.Mechanics != nil {
		if len(t.Mechanics.Aura) > 0 {
			lines := make([]string, 0, len(t.Mechanics.Aura))
			for _, a := range t.Mechanics.Aura {
				aura, _ := a.(map[string]any)
				name, _ := aura["name"].(string)
				desc, _ := aura["description"].(string)
				lines = append(lines, fmt.Sprintf("**%s**: %s", orDefault(name, MsgUnknown), desc))
			}
			addFields(embed, field("Aura", strings.Join(lines, "\n"), false))
		}
		if t.Mechanics.AutoCaptureAltars {
			addFields(embed, field("Special", "Auto-captures Altars", true))
		}
	}

	return embed
}

var effectLabels = map[string]string{
	"Charge_Refill": "⚡ Charge Refill",
	"Heal":          "💚 Heal",
	"Buff":          "🔮 Buff",
}

func consumableEmbed(c *domain.Consumable, links Links) *discordgo.MessageEmbed {
	embed := baseEmbed(c, TypeEmojis[string(domain.EntityConsumable)], ColorConsumable, links)

	label := c.EffectType
	if l, ok := effectLabels[c.EffectType]; ok {
		label = l
	}
	addFields(embed,
		field("✨ Effect", safe(label), true),
		field("💎 Value", num(c.Value), true),
	)
	if c.Duration != nil && *c.Duration != 0 {
		addFields(embed, field("⏳ Duration", num(*c.Duration)+"s", true))
	}
	if c.BuffTarget != "" {
		addFields(embed, field("🎯 Target", c.BuffTarget, true))
	}
	if c.StackSize != nil && *c.StackSize > 1 {
		addFields(embed, field("📚 Stack Size", num(*c.StackSize), true))
	}

	return embed
}
