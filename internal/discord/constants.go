package discord

import "time"

// External links
const (
	WikiBaseURL       = "https://www.spellcastersdb.com"
	ImageBaseURL      = "https://terribleturtle.github.io/spellcasters-community-api/assets"
	SpellcastersDBURL = "https://terribleturtle.github.io/spellcastersdb"
	SupportServerURL  = "https://discord.gg/spellcasters"
	InviteURLFormat   = "https://discord.com/oauth2/authorize?client_id=%s&permissions=0&scope=bot%%20applications.commands"
)

// game_config keys read from the dataset
const (
	GameConfigWikiURL   = "wiki_url"
	GameConfigGameName  = "game_name"
	GameConfigGenre     = "genre"
	GameConfigDeveloper = "developer"
)

// Embed colors
const (
	ColorAstral      = 0x2E86C1
	ColorWar         = 0xC0392B
	ColorElemental   = 0xF39C12
	ColorHoly        = 0xF1C40F
	ColorNecromancy  = 0x8E44AD
	ColorWild        = 0x27AE60
	ColorTechnomancy = 0x7F8C8D
	ColorTitan       = 0xE74C3C
	ColorDefault     = 0x0099FF
	ColorConsumable  = 0x00FF00
	ColorError       = 0xFF0000
	ColorCompare     = 0xFFAA00
	ColorHelp        = 0x5865F2
	ColorAbout       = 0x9B59B6
	ColorStats       = 0x00FF00
)

// Footer text
const (
	FooterViewOnDB   = "View on SpellcastersDB"
	FooterHelp       = "Tip: All name fields support autocomplete, just start typing!"
	FooterAbout      = "Powered by Spellcasters Community API v2"
	FooterPageFormat = "Page %d/%d | ID: %s"
)

// Presence shown while the bot is online
const PresenceText = "Spellcasters | /help"

// User-facing messages
const (
	MsgGenericError       = "There was an error while executing this command!"
	MsgDataUnavailable    = "❌ Game data is unavailable right now. Please try again later."
	MsgNoPermission       = "You do not have permission to run this."
	MsgRefreshRateLimited = "⏳ The database was refreshed recently. Please try again in a minute."
	MsgRefreshFailed      = "❌ Failed to refresh database."
	MsgNoListResults      = "❌ No entities found matching your filters."
	MsgNoRandomResults    = "No entities found."
	MsgNotYourButtons     = "These buttons are not for you!"
	MsgButtonsExpired     = "These buttons have expired. Run /list again."
	MsgCompareNotFound    = "❌ One or both entities could not be found."
	MsgNoDescription      = "No description provided."
	MsgNoAbilityDesc      = "No description."
	MsgUnknown            = "Unknown"
	MsgNotAvailable       = "N/A"
)

// Autocomplete and pagination limits
const (
	MaxAutocompleteChoices = 25
	PaginationTimeout      = 2 * time.Minute
)

// Component custom ID layout
const (
	ListComponentPrefix = "list"
	CustomIDSeparator   = "|"
	PagePrev            = "prev"
	PageNext            = "next"
)

// Type emojis
var TypeEmojis = map[string]string{
	"Hero":       "🧙",
	"Unit":       "🐾",
	"Spell":      "📜",
	"Titan":      "🗿",
	"Consumable": "💊",
}

// Scopes reported to the error webhook
const (
	ScopeStartup      = "Startup"
	ScopeCommand      = "Command: /"
	ScopeAutocomplete = "Autocomplete: /"
	ScopeComponent    = "Component: "
)
