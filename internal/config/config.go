package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/SpellcastersBot_Go/internal/domain"
)

// Config holds the application configuration
type Config struct {
	DiscordToken string `validate:"required"`
	DiscordAppID string
	GuildID      string // registers commands to one guild when set

	DataURL         string        `validate:"required,url"`
	CacheTTL        time.Duration `validate:"gt=0"`
	FetchTimeout    time.Duration `validate:"gt=0"`
	SearchThreshold float64       `validate:"gt=0,lte=1"`

	ErrorWebhookURL string `validate:"omitempty,url,startswith=https://"`
	LogLevel        string `validate:"oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	LogFormat       string `validate:"oneof=json text"`
	Environment     string `validate:"required"`
	ServiceName     string
	Version         string

	HealthPort int `validate:"gte=0,lte=65535"`
	// Bounded by the cooldown tracker's retention
	CommandCooldown      time.Duration `validate:"gte=0,lte=1h"`
	RefreshRatePerMinute int           `validate:"gt=0"`
}

// Load loads the bot configuration. .env.local and .env are read when
// present; real environment variables always win.
func Load() (*Config, error) {
	cfg, parseErrs := load()
	if err := validateConfig(cfg, parseErrs); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadForCLI loads the configuration without requiring a Discord token, for
// tooling that only reads the catalog.
func LoadForCLI() (*Config, error) {
	cfg, parseErrs := load()
	if err := validateConfig(cfg, parseErrs, "DiscordToken"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// load reads the configuration, returning unparsable variables by name
func load() (*Config, map[string]string) {
	for _, f := range DotenvFiles {
		// Missing files are fine, the environment may be set directly
		_ = godotenv.Load(f)
	}

	p := &envParser{}
	cfg := &Config{
		DiscordToken:         getEnv(EnvDiscordToken, ""),
		DiscordAppID:         getEnv(EnvDiscordAppID, ""),
		GuildID:              getEnv(EnvGuildID, ""),
		DataURL:              getEnv(EnvDataURL, domain.DefaultDataURL),
		CacheTTL:             p.hours(EnvCacheTTLHours, DefaultCacheTTLHours*time.Hour),
		FetchTimeout:         p.duration(EnvFetchTimeout, domain.DefaultFetchTimeout),
		SearchThreshold:      p.number(EnvSearchThreshold, domain.DefaultSearchThreshold),
		ErrorWebhookURL:      getEnv(EnvErrorWebhookURL, ""),
		LogLevel:             getEnv(EnvLogLevel, DefaultLogLevel),
		LogFormat:            getEnv(EnvLogFormat, DefaultLogFormat),
		Environment:          getEnv(EnvEnvironment, DefaultEnvironment),
		ServiceName:          getEnv(EnvServiceName, DefaultServiceName),
		Version:              getEnv(EnvVersion, DefaultVersion),
		HealthPort:           p.integer(EnvHealthPort, DefaultHealthPort),
		CommandCooldown:      p.duration(EnvCommandCooldown, DefaultCommandCooldown),
		RefreshRatePerMinute: p.integer(EnvRefreshRatePerMinute, DefaultRefreshRatePerMinute),
	}
	return cfg, p.errs
}

// IsDevelopment reports whether the bot runs in a development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "dev" || c.Environment == "development"
}

// HealthAddr returns the listen address of the health server, or "" when disabled
func (c *Config) HealthAddr() string {
	if c.HealthPort == 0 {
		return ""
	}
	return fmt.Sprintf(":%d", c.HealthPort)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// envParser reads typed variables. Unset or empty variables take the
// default; malformed ones take the default and are recorded in errs.
type envParser struct {
	errs map[string]string
}

func (p *envParser) fail(key, msg string) {
	if p.errs == nil {
		p.errs = make(map[string]string)
	}
	p.errs[key] = msg
}

func (p *envParser) lookup(key string) (string, bool) {
	value := getEnv(key, "")
	return value, value != ""
}

func (p *envParser) integer(key string, defaultValue int) int {
	raw, ok := p.lookup(key)
	if !ok {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, ErrMsgNotInteger)
		return defaultValue
	}
	return value
}

func (p *envParser) number(key string, defaultValue float64) float64 {
	raw, ok := p.lookup(key)
	if !ok {
		return defaultValue
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(key, ErrMsgNotNumber)
		return defaultValue
	}
	return value
}

func (p *envParser) duration(key string, defaultValue time.Duration) time.Duration {
	raw, ok := p.lookup(key)
	if !ok {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, ErrMsgNotDuration)
		return defaultValue
	}
	return value
}

// hours reads a (possibly fractional) number of hours
func (p *envParser) hours(key string, defaultValue time.Duration) time.Duration {
	raw, ok := p.lookup(key)
	if !ok {
		return defaultValue
	}
	hours, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(key, ErrMsgNotNumber)
		return defaultValue
	}
	return time.Duration(hours * float64(time.Hour))
}
