package config

import "time"

// Environment variable names
const (
	EnvDiscordToken         = "DISCORD_TOKEN"
	EnvDiscordAppID         = "DISCORD_APP_ID"
	EnvGuildID              = "GUILD_ID"
	EnvDataURL              = "DATA_URL"
	EnvCacheTTLHours        = "CACHE_TTL_HOURS"
	EnvFetchTimeout         = "FETCH_TIMEOUT"
	EnvSearchThreshold      = "SEARCH_THRESHOLD"
	EnvErrorWebhookURL      = "ERROR_WEBHOOK_URL"
	EnvLogLevel             = "LOG_LEVEL"
	EnvLogFormat            = "LOG_FORMAT"
	EnvEnvironment          = "ENVIRONMENT"
	EnvServiceName          = "SERVICE_NAME"
	EnvVersion              = "VERSION"
	EnvHealthPort           = "HEALTH_PORT"
	EnvCommandCooldown      = "COMMAND_COOLDOWN"
	EnvRefreshRatePerMinute = "REFRESH_RATE_PER_MINUTE"
)

// Defaults
const (
	DefaultCacheTTLHours        = 6
	DefaultLogLevel             = "info"
	DefaultLogFormat            = "text"
	DefaultEnvironment          = "prod"
	DefaultServiceName          = "spellcasters-bot"
	DefaultVersion              = "dev"
	DefaultHealthPort           = 8080
	DefaultCommandCooldown      = 3 * time.Second
	DefaultRefreshRatePerMinute = 2
)

// Messages for variables that cannot be parsed
const (
	ErrMsgNotInteger  = "must be an integer"
	ErrMsgNotNumber   = "must be a number"
	ErrMsgNotDuration = "must be a duration such as 30s or 5m"
)

// envNames maps Config fields to the variables they are read from, so
// validation errors name what the operator sets
var envNames = map[string]string{
	"DiscordToken":         EnvDiscordToken,
	"DiscordAppID":         EnvDiscordAppID,
	"GuildID":              EnvGuildID,
	"DataURL":              EnvDataURL,
	"CacheTTL":             EnvCacheTTLHours,
	"FetchTimeout":         EnvFetchTimeout,
	"SearchThreshold":      EnvSearchThreshold,
	"ErrorWebhookURL":      EnvErrorWebhookURL,
	"LogLevel":             EnvLogLevel,
	"LogFormat":            EnvLogFormat,
	"Environment":          EnvEnvironment,
	"ServiceName":          EnvServiceName,
	"Version":              EnvVersion,
	"HealthPort":           EnvHealthPort,
	"CommandCooldown":      EnvCommandCooldown,
	"RefreshRatePerMinute": EnvRefreshRatePerMinute,
}

// Dotenv files, earlier files take precedence
var DotenvFiles = []string{".env.local", ".env"}
