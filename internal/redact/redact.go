// Package redact masks Letta API keys and other credentials before they
// reach logs, terminal output or diagnostic reports.
package redact

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// Placeholder replaces values too short to show a suffix.
const Placeholder = "********"

// sensitiveKeyParts mark attribute, env and header names holding secrets.
// Matching is case-insensitive on substrings.
var sensitiveKeyParts = []string{
	"API_KEY",
	"APIKEY",
	"TOKEN",
	"SECRET",
	"PASSWORD",
	"AUTHORIZATION",
	"CREDENTIAL",
}

// tokenPrefixes identify credentials by value regardless of their name.
var tokenPrefixes = []string{
	"sk-let-", // Letta
	"sk-",     // OpenAI and Anthropic provider keys passed through agent configs
	"Bearer ",
}

// Mask keeps the last four characters of value. Empty stays empty.
func Mask(value string) string {
	switch {
	case value == "":
		return ""
	case len(value) <= 4:
		return Placeholder
	default:
		return "****" + value[len(value)-4:]
	}
}

// SensitiveKey reports whether name suggests a secret value.
func SensitiveKey(name string) bool {
	upper := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	for _, part := range sensitiveKeyParts {
		if strings.Contains(upper, part) {
			return true
		}
	}
	return false
}

// LooksLikeToken reports whether value starts with a known credential prefix.
func LooksLikeToken(value string) bool {
	for _, prefix := range tokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// Value masks value when its name or shape marks it as a secret.
func Value(name, value string) string {
	if SensitiveKey(name) || LooksLikeToken(value) {
		return Mask(value)
	}
	return value
}

// Env returns a copy of env with secret values masked.
func Env(env map[string]string) map[string]string {
	if env == nil {
		return nil
	}
	out := make(map[string]string, len(env))
	for k, v := range env {
		out[k] = Value(k, v)
	}
	return out
}

// URL masks the password of a URL with embedded credentials. Unparseable
// input is returned unchanged.
func URL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.User == nil {
		return raw
	}
	password, ok := parsed.User.Password()
	if !ok || password == "" {
		return raw
	}
	user := url.User(parsed.User.Username()).String()
	parsed.User = nil
	rest := strings.TrimPrefix(parsed.String(), parsed.Scheme+"://")
	return parsed.Scheme + "://" + user + ":" + Mask(password) + "@" + rest
}

// Attr masks a slog attribute holding a secret. Groups are left to the
// handler, which visits their members individually.
func Attr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		return a
	case slog.KindString:
		if s := v.String(); SensitiveKey(a.Key) || LooksLikeToken(s) {
			return slog.String(a.Key, Mask(s))
		}
	default:
		if SensitiveKey(a.Key) {
			return slog.String(a.Key, Mask(fmt.Sprint(v.Any())))
		}
	}
	return a
}
