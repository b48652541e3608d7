// Package config provides configuration management for letta-mcp.
//
// Settings come from, in order of precedence: LETTA_* environment variables,
// a config.yaml file (current directory, then <ConfigHome>/letta-mcp/), and
// built-in defaults. Nested keys map to environment variables with
// underscores, so limits.text_chars is LETTA_LIMITS_TEXT_CHARS.
//
// # Configuration File
//
//	api_key: sk-let-...
//	base_url: https://api.letta.com
//	timeout: 60          # seconds, per upstream call
//	max_retries: 2       # retries after the first attempt
//	retry:
//	  base_delay: 500ms
//	  max_delay: 8s
//	  jitter: 0.2
//	limits:
//	  text_chars: 200
//	  pages:
//	    conversation_history: {default: 10, max: 50}
//	server:
//	  transport: stdio
//
// # Validation
//
// [Load] validates automatically and returns a wrapped error built from
// [ConfigurationError] values. A missing credential is checked separately by
// [RequireCredential] because commands such as doctor and config show must
// work without one. [CredentialWarnings] reports keys that lack the sk-let-
// prefix without failing.
package config
