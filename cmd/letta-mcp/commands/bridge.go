package commands

import (
	"log/slog"

	"github.com/thoreinstein/letta-mcp/internal/config"
	"github.com/thoreinstein/letta-mcp/internal/dispatch"
	"github.com/thoreinstein/letta-mcp/internal/errors"
	"github.com/thoreinstein/letta-mcp/internal/letta"
	"github.com/thoreinstein/letta-mcp/internal/retry"
	"github.com/thoreinstein/letta-mcp/internal/server"
	"github.com/thoreinstein/letta-mcp/internal/shaper"
	"github.com/thoreinstein/letta-mcp/internal/toolset"
	"github.com/thoreinstein/letta-mcp/internal/transport"
)

// bridge is the wired process: one transport, one upstream client and one
// tool registry shared by every call.
type bridge struct {
	transport *transport.Client
	letta     *letta.Client
	shaper    *shaper.Shaper
	registry  *dispatch.Registry
	server    *server.Server
}

// newBridge builds every component from cfg. cfg must already be validated.
func newBridge(cfg *config.Config, logger *slog.Logger) (*bridge, error) {
	tc, err := transport.New(transport.Config{
		BaseURL:      cfg.BaseURL,
		APIKey:       cfg.APIKey,
		Timeout:      cfg.TimeoutDuration(),
		MaxIdleConns: cfg.MaxIdleConns,
		UserAgent:    "letta-mcp/" + versionString(),
		RateLimit:    cfg.RateLimit,
		RateBurst:    cfg.RateBurst,
		Logger:       logger,
	})
	if err != nil {
		return nil, errors.NewConfigError(err)
	}

	b := &bridge{
		transport: tc,
		letta:     letta.New(tc, retryPolicy(cfg), logger),
		shaper:    shaper.New(cfg.ShaperLimits()),
		registry:  dispatch.NewRegistry(logger),
	}

	if err := toolset.New(b.letta, b.shaper).Register(b.registry); err != nil {
		tc.Close()
		return nil, errors.Wrap(err, "registering tools")
	}
	b.server = server.New(b.registry, server.Options{Version: versionString(), Logger: logger})
	return b, nil
}

// Close releases pooled upstream connections.
func (b *bridge) Close() {
	b.transport.Close()
}

func retryPolicy(cfg *config.Config) retry.Policy {
	return retry.Policy{
		MaxAttempts: cfg.MaxAttempts(),
		BaseDelay:   cfg.Retry.BaseDelay,
		MaxDelay:    cfg.Retry.MaxDelay,
		Jitter:      cfg.Retry.Jitter,
	}
}
