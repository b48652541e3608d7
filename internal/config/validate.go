package config

import (
	"io/fs"
	"net/url"
	"strings"

	"github.com/thoreinstein/letta-mcp/internal/errors"
	"github.com/thoreinstein/letta-mcp/internal/paths"
)

// CredentialPrefix is the recognizable prefix of Letta API keys.
const CredentialPrefix = "sk-let-"

// minTextChars keeps room for the truncation marker plus visible content.
const minTextChars = 32

// ConfigurationError reports a bad or missing setting. It is fatal at startup.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of *ConfigurationError values.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{&ConfigurationError{Field: "config", Reason: "is nil"}}
	}

	var errs []error
	add := func(field, reason string) {
		errs = append(errs, &ConfigurationError{Field: field, Reason: reason})
	}

	if err := validateBaseURL(cfg.BaseURL); err != "" {
		add("base_url", err)
	}
	if cfg.Timeout <= 0 {
		add("timeout", "must be a positive number of seconds")
	}
	if cfg.MaxRetries < 0 {
		add("max_retries", "must not be negative")
	}
	if cfg.Retry.BaseDelay < 0 {
		add("retry.base_delay", "must not be negative")
	}
	if cfg.Retry.MaxDelay < cfg.Retry.BaseDelay {
		add("retry.max_delay", "must be at least retry.base_delay")
	}
	if cfg.Retry.Jitter < 0 || cfg.Retry.Jitter >= 1 {
		add("retry.jitter", "must be in [0, 1)")
	}
	if cfg.RateLimit < 0 {
		add("rate_limit", "must not be negative")
	}
	if cfg.RateLimit > 0 && cfg.RateBurst < 1 {
		add("rate_burst", "must be at least 1 when rate_limit is set")
	}
	if cfg.Limits.TextChars < minTextChars {
		add("limits.text_chars", "must be at least 32")
	}
	if cfg.Limits.DetailChars < cfg.Limits.TextChars {
		add("limits.detail_chars", "must be at least limits.text_chars")
	}
	if cfg.Limits.ResponseChars < cfg.Limits.DetailChars {
		add("limits.response_chars", "must be at least limits.detail_chars")
	}
	for name, p := range cfg.Limits.Pages {
		if p.Default < 1 || p.Max < p.Default {
			add("limits.pages."+name, "requires 1 <= default <= max")
		}
	}
	switch cfg.Server.Transport {
	case "stdio", "http":
	default:
		add("server.transport", "must be stdio or http")
	}

	return errs
}

func validateBaseURL(raw string) string {
	if raw == "" {
		return "is required"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "is not a valid URL"
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "must use http or https"
	}
	if u.Host == "" {
		return "must include a host"
	}
	return ""
}

// RequireCredential fails when no API key is configured.
func RequireCredential(cfg *Config) error {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return errors.WithHint(
			errors.Mark(&ConfigurationError{Field: "api_key", Reason: "is required"}, errors.ErrMissingCredential),
			"Set LETTA_API_KEY or add api_key to "+paths.AppConfigFile(),
		)
	}
	return nil
}

// CredentialWarnings returns non-fatal findings about the credential's shape.
// The upstream rejects bad keys with an auth error, so a wrong prefix only warns.
func CredentialWarnings(cfg *Config) []string {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil
	}
	var warnings []string
	if !strings.HasPrefix(key, CredentialPrefix) {
		warnings = append(warnings, "api_key does not start with "+CredentialPrefix)
	}
	if key != cfg.APIKey {
		warnings = append(warnings, "api_key has surrounding whitespace")
	}
	return warnings
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
