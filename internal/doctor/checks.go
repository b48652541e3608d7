package doctor

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/thoreinstein/letta-mcp/internal/config"
	"github.com/thoreinstein/letta-mcp/internal/errors"
	"github.com/thoreinstein/letta-mcp/internal/redact"
)

// Check categories.
const (
	CategoryConfig   = "config"
	CategoryUpstream = "upstream"
	CategoryClients  = "clients"
)

// ConfigCheck validates the effective configuration.
type ConfigCheck struct {
	cfg     *config.Config
	source  string
	loadErr error
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck reports on cfg as loaded from source. A non-nil loadErr
// means loading itself failed.
func NewConfigCheck(cfg *config.Config, source string, loadErr error) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, source: source, loadErr: loadErr}
}

func (c *ConfigCheck) Name() string     { return "config" }
func (c *ConfigCheck) Category() string { return CategoryConfig }

func (c *ConfigCheck) Run(context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category(), Details: map[string]any{}}

	source := c.source
	if source == "" {
		source = "defaults and environment"
	}
	result.Details["source"] = source

	if c.loadErr != nil {
		result.Status = SeverityError
		result.Message = "configuration could not be loaded: " + c.loadErr.Error()
		result.FixHint = "fix the file or regenerate it with 'letta-mcp config init --force'"
		return result
	}

	if errs := config.Validate(c.cfg); len(errs) > 0 {
		problems := make([]string, 0, len(errs))
		for _, err := range errs {
			problems = append(problems, err.Error())
		}
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d configuration problem(s)", len(errs))
		result.Details["problems"] = problems
		result.FixHint = "run 'letta-mcp config show' to inspect the effective values"
		return result
	}

	result.Status = SeverityPass
	result.Message = "configuration is valid"
	return result
}

// CredentialCheck verifies an API key is configured and looks like a Letta
// key.
type CredentialCheck struct {
	cfg *config.Config
}

var _ Check = (*CredentialCheck)(nil)

// NewCredentialCheck creates a credential check for cfg.
func NewCredentialCheck(cfg *config.Config) *CredentialCheck {
	return &CredentialCheck{cfg: cfg}
}

func (c *CredentialCheck) Name() string     { return "credential" }
func (c *CredentialCheck) Category() string { return CategoryConfig }

func (c *CredentialCheck) Run(context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if err := config.RequireCredential(c.cfg); err != nil {
		result.Status = SeverityError
		result.Message = "no Letta API key configured"
		result.FixHint = "set LETTA_API_KEY or api_key in config.yaml"
		return result
	}

	result.Details = map[string]any{"api_key": redact.Mask(c.cfg.APIKey)}
	if warnings := config.CredentialWarnings(c.cfg); len(warnings) > 0 {
		result.Status = SeverityWarning
		result.Message = strings.Join(warnings, "; ")
		result.FixHint = "copy the key again from the Letta dashboard; keys start with " + config.CredentialPrefix
		return result
	}

	result.Status = SeverityPass
	result.Message = "API key present"
	return result
}

// EndpointCheck validates the upstream base URL.
type EndpointCheck struct {
	cfg *config.Config
}

var _ Check = (*EndpointCheck)(nil)

// NewEndpointCheck creates an endpoint check for cfg.
func NewEndpointCheck(cfg *config.Config) *EndpointCheck {
	return &EndpointCheck{cfg: cfg}
}

func (c *EndpointCheck) Name() string     { return "endpoint" }
func (c *EndpointCheck) Category() string { return CategoryConfig }

func (c *EndpointCheck) Run(context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"base_url": redact.URL(c.cfg.BaseURL)},
	}

	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		result.Status = SeverityError
		result.Message = "base_url is not an absolute http(s) URL"
		result.FixHint = "set LETTA_BASE_URL, for example " + config.DefaultBaseURL
		return result
	}

	if u.Scheme == "http" && !isLoopback(u.Hostname()) {
		result.Status = SeverityWarning
		result.Message = "base_url uses plain HTTP to a remote host; the API key is sent unencrypted"
		result.FixHint = "use https:// unless the server is on a trusted network"
		return result
	}

	result.Status = SeverityPass
	result.Message = "endpoint " + u.Scheme + "://" + u.Host
	return result
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// Pinger probes the upstream and reports how many agents it can see.
type Pinger interface {
	Ping(ctx context.Context) (int, error)
}

// ConnectivityCheck calls the upstream health endpoint and lists agents.
type ConnectivityCheck struct {
	pinger  Pinger
	timeout time.Duration
}

var _ Check = (*ConnectivityCheck)(nil)

// NewConnectivityCheck creates a connectivity check. A nil pinger means the
// configuration was unusable and the check is skipped.
func NewConnectivityCheck(pinger Pinger, timeout time.Duration) *ConnectivityCheck {
	return &ConnectivityCheck{pinger: pinger, timeout: timeout}
}

func (c *ConnectivityCheck) Name() string     { return "connectivity" }
func (c *ConnectivityCheck) Category() string { return CategoryUpstream }

func (c *ConnectivityCheck) Run(ctx context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if c.pinger == nil {
		result.Status = SeverityInfo
		result.Message = "skipped: configuration errors prevent connecting"
		return result
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	agents, err := c.pinger.Ping(ctx)
	latency := time.Since(start)
	result.Details = map[string]any{"latency_ms": latency.Milliseconds()}

	if err != nil {
		result.Status = SeverityError
		result.Message = "upstream unreachable: " + err.Error()
		var auth interface{ IsUnauthorized() bool }
		if errors.As(err, &auth) && auth.IsUnauthorized() {
			result.FixHint = "the API key was rejected; check LETTA_API_KEY"
		} else {
			result.FixHint = "check base_url and network access to the Letta server"
		}
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("upstream reachable, %d agent(s) visible", agents)
	result.Details["agents"] = agents
	return result
}
