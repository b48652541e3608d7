package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/letta-mcp/internal/config"
	"github.com/thoreinstein/letta-mcp/internal/errors"
	"github.com/thoreinstein/letta-mcp/internal/server"
)

var (
	runHTTP           bool
	runAddr           string
	runAllowedOrigins []string
	runTest           bool
)

func init() {
	runCmd.Flags().BoolVar(&runHTTP, "http", false,
		"serve streamable HTTP instead of stdio")
	runCmd.Flags().StringVar(&runAddr, "addr", "",
		"listen address for --http (default from server.addr, 127.0.0.1:8787)")
	runCmd.Flags().StringSliceVar(&runAllowedOrigins, "allowed-origin", nil,
		"browser origin allowed to call the HTTP endpoint (repeatable)")
	runCmd.Flags().BoolVar(&runTest, "test", false,
		"check connectivity to the Letta server and exit")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Serve MCP",
	Long: `Serve the Letta tools over MCP.

By default the protocol runs over stdin and stdout, which is how MCP clients
launch letta-mcp. With --http it listens for streamable HTTP on --addr, with
the endpoint at /mcp and a health probe at /healthz.

SIGINT and SIGTERM stop the server gracefully. A missing API key or invalid
configuration stops startup with exit code 1.`,
	Example: `  # Serve over stdio
  letta-mcp run

  # Serve over HTTP for a local web client
  letta-mcp run --http --addr 127.0.0.1:8787 --allowed-origin http://localhost:5173

  # Verify the API key and base URL
  letta-mcp run --test

See Also: letta-mcp doctor, letta-mcp configure`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func runRun(c *cobra.Command, _ []string) error {
	cfg, err := loadConfigWithCredential()
	if err != nil {
		return err
	}
	applyRunFlags(c, cfg)

	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := loggerFrom(c)
	b, err := newBridge(cfg, logger)
	if err != nil {
		return err
	}
	defer b.Close()

	if runTest {
		return runConnectionTest(ctx, c.OutOrStdout(), b)
	}

	logger.Info("starting letta-mcp",
		"version", versionString(),
		"transport", cfg.Server.Transport,
		"base_url", cfg.BaseURL,
		"tools", len(b.registry.Tools()),
	)

	switch cfg.Server.Transport {
	case "http":
		err = b.server.ServeHTTP(ctx, server.HTTPOptions{
			Addr:           cfg.Server.Addr,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		})
	default:
		err = b.server.ServeStdio(ctx, c.InOrStdin(), c.OutOrStdout())
	}
	if err != nil {
		return errors.NewSystemError(err, "Run: letta-mcp doctor")
	}
	logger.Info("letta-mcp stopped")
	return nil
}

// applyRunFlags lets explicit flags override the configured server settings.
func applyRunFlags(c *cobra.Command, cfg *config.Config) {
	if runHTTP {
		cfg.Server.Transport = "http"
	}
	if c.Flags().Changed("addr") {
		cfg.Server.Addr = runAddr
	}
	if c.Flags().Changed("allowed-origin") {
		cfg.Server.AllowedOrigins = runAllowedOrigins
	}
}

// runConnectionTest checks the upstream health endpoint and agent listing.
func runConnectionTest(ctx context.Context, w io.Writer, b *bridge) error {
	health, err := b.letta.Health(ctx)
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "health check failed"), "Check base_url and LETTA_API_KEY, or run: letta-mcp doctor")
	}
	agents, err := b.letta.ListAgents(ctx, 0)
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "listing agents failed"), "Check that the API key has access to agents")
	}

	fmt.Fprintf(w, "Connected to %s\n", b.transport.BaseURL())
	fmt.Fprintf(w, "  status:  %s\n", health.Status)
	if health.Version != "" {
		fmt.Fprintf(w, "  version: %s\n", health.Version)
	}
	fmt.Fprintf(w, "  agents:  %d\n", len(agents.Items))
	fmt.Fprintf(w, "  tools:   %d\n", len(b.registry.Tools()))
	return nil
}
