// Package config provides configuration management for letta-mcp using Viper.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/thoreinstein/letta-mcp/internal/errors"
	"github.com/thoreinstein/letta-mcp/internal/paths"
	"github.com/thoreinstein/letta-mcp/internal/redact"
	"github.com/thoreinstein/letta-mcp/internal/shaper"
)

// EnvPrefix is prepended to every environment variable, e.g. LETTA_API_KEY.
const EnvPrefix = "LETTA"

// DefaultBaseURL is the hosted Letta API.
const DefaultBaseURL = "https://api.letta.com"

// Config represents the top-level configuration structure.
type Config struct {
	APIKey       string       `mapstructure:"api_key" yaml:"api_key"`
	BaseURL      string       `mapstructure:"base_url" yaml:"base_url"`
	Timeout      int          `mapstructure:"timeout" yaml:"timeout"`
	MaxRetries   int          `mapstructure:"max_retries" yaml:"max_retries"`
	Retry        RetryConfig  `mapstructure:"retry" yaml:"retry"`
	RateLimit    float64      `mapstructure:"rate_limit" yaml:"rate_limit"`
	RateBurst    int          `mapstructure:"rate_burst" yaml:"rate_burst"`
	MaxIdleConns int          `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	Limits       LimitsConfig `mapstructure:"limits" yaml:"limits"`
	Server       ServerConfig `mapstructure:"server" yaml:"server"`
	Log          LogConfig    `mapstructure:"log" yaml:"log"`
}

// RetryConfig tunes the backoff between upstream attempts.
type RetryConfig struct {
	BaseDelay time.Duration `mapstructure:"base_delay" yaml:"base_delay"`
	MaxDelay  time.Duration `mapstructure:"max_delay" yaml:"max_delay"`
	Jitter    float64       `mapstructure:"jitter" yaml:"jitter"`
}

// LimitsConfig holds the response shaping thresholds.
type LimitsConfig struct {
	TextChars     int                   `mapstructure:"text_chars" yaml:"text_chars"`
	DetailChars   int                   `mapstructure:"detail_chars" yaml:"detail_chars"`
	ResponseChars int                   `mapstructure:"response_chars" yaml:"response_chars"`
	Pages         map[string]PageConfig `mapstructure:"pages" yaml:"pages"`
}

// PageConfig is the default and maximum page size of one list operation,
// keyed by the shaper.Op* names.
type PageConfig struct {
	Default int `mapstructure:"default" yaml:"default"`
	Max     int `mapstructure:"max" yaml:"max"`
}

// ServerConfig selects the MCP transport.
type ServerConfig struct {
	Transport      string   `mapstructure:"transport" yaml:"transport"`
	Addr           string   `mapstructure:"addr" yaml:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

// LogConfig holds logging overrides. Level is applied only when no -v flag is given.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// TimeoutDuration returns the per-call upstream timeout.
func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// MaxAttempts converts the retry ceiling into a total attempt count.
func (c *Config) MaxAttempts() int {
	return c.MaxRetries + 1
}

// Masked returns a copy of c with the credential redacted, for display.
func (c *Config) Masked() *Config {
	out := *c
	out.APIKey = redact.Mask(out.APIKey)
	return &out
}

// ShaperLimits converts the limits section for the response shaper.
func (c *Config) ShaperLimits() shaper.Limits {
	limits := shaper.Limits{
		TextChars:     c.Limits.TextChars,
		DetailChars:   c.Limits.DetailChars,
		ResponseChars: c.Limits.ResponseChars,
		Pages:         make(map[string]shaper.PageLimit, len(c.Limits.Pages)),
	}
	for op, p := range c.Limits.Pages {
		limits.Pages[op] = shaper.PageLimit{Default: p.Default, Max: p.Max}
	}
	return limits
}

// setDefaults registers every key so environment overrides resolve.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api_key", "")
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("timeout", 60)
	v.SetDefault("max_retries", 2)
	v.SetDefault("retry.base_delay", 500*time.Millisecond)
	v.SetDefault("retry.max_delay", 8*time.Second)
	v.SetDefault("retry.jitter", 0.2)
	v.SetDefault("rate_limit", 0.0)
	v.SetDefault("rate_burst", 1)
	v.SetDefault("max_idle_conns", 10)
	limits := shaper.DefaultLimits()
	v.SetDefault("limits.text_chars", limits.TextChars)
	v.SetDefault("limits.detail_chars", limits.DetailChars)
	v.SetDefault("limits.response_chars", limits.ResponseChars)
	for name, p := range limits.Pages {
		v.SetDefault("limits.pages."+name+".default", p.Default)
		v.SetDefault("limits.pages."+name+".max", p.Max)
	}
	v.SetDefault("server.transport", "stdio")
	v.SetDefault("server.addr", "127.0.0.1:8787")
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("log.level", "")
}

// newViper builds a Viper instance with search paths, env binding and defaults.
func newViper() *viper.Viper {
	v := viper.New()

	// Config file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Search paths (in order of precedence)
	v.AddConfigPath(".")
	v.AddConfigPath(paths.AppConfigDir())

	// Environment variable support; nested keys use underscores.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

// Default returns the configuration built from defaults and environment only.
func Default() *Config {
	var cfg Config
	// Defaults always decode.
	_ = newViper().Unmarshal(&cfg)
	return &cfg
}

// Load reads the configuration file and environment, then validates the
// result. If path is empty, the default locations are searched and a missing
// file falls back to defaults.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}

	if errs := Validate(cfg); len(errs) > 0 {
		return nil, errors.WithHint(
			errors.Mark(errors.Wrap(errors.Join(errs...), "validating config"), errors.ErrInvalidConfig),
			"Run: letta-mcp config show",
		)
	}

	return cfg, nil
}

// Read is Load without validation, for commands that report on an invalid
// configuration instead of refusing it.
func Read(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load with no file: defaults and env only.
		case errors.As(err, &notFound):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		case path != "" && isNotExist(err):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	return &cfg, nil
}

// UsedFile reports which config file Load would read, or "" when none exists.
func UsedFile(path string) string {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		return ""
	}
	return v.ConfigFileUsed()
}
