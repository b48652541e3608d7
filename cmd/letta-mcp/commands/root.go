// Package commands implements the CLI commands for letta-mcp.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/letta-mcp/internal/config"
	"github.com/thoreinstein/letta-mcp/internal/errors"
	"github.com/thoreinstein/letta-mcp/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configPath holds the value of the --config flag.
var configPath string

// logCloser releases the --log-file handle once the command finishes.
var logCloser io.Closer

// errReported marks errors whose details were already written to the user.
// PrintError stays silent for them and only the exit code is propagated.
var errReported = errors.New("already reported")

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "auto",
		"log format: auto, text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: ./config.yaml or $XDG_CONFIG_HOME/letta-mcp/config.yaml)")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("letta-mcp version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "letta-mcp",
	Short: "MCP server for the Letta agent platform",
	Long: `letta-mcp exposes a Letta server's agents, memory, messages and tools to
MCP clients such as Claude Desktop, Claude Code, Cursor, Windsurf and Codex.

Results are shaped for AI callers: lists are paged summaries, long text is
truncated with a marker, and every result is a JSON envelope.

Logs are written to stderr. In stdio mode stdout carries only the protocol.`,
	Example: `  # Register with Claude Desktop
  letta-mcp configure --client claude-desktop

  # Check configuration and connectivity
  letta-mcp doctor

  # Serve over stdio (what MCP clients launch)
  letta-mcp run

  # Call a tool without an MCP client
  letta-mcp tools call letta_list_agents --args '{"limit": 5}'

  See Also: letta-mcp config, letta-mcp doctor`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
// Logs always go to stderr.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	logger, closer, err := logging.Build(logging.Options{
		Level:  resolveLevel(),
		Format: logging.Format(logFormat),
		Output: cmd.ErrOrStderr(),
		File:   logFile,
	})
	switch {
	case errors.Is(err, logging.ErrInvalidFormat):
		return errors.NewUserError(err, "Use one of: auto, text, json")
	case err != nil:
		return errors.NewUserError(err, "Check the --log-file path")
	}
	logCloser = closer

	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// resolveLevel applies -q and -v, then log.level (LETTA_LOG_LEVEL or the
// config file) when no -v was given.
func resolveLevel() slog.Level {
	if quiet {
		return slog.LevelError
	}
	if verbosity == 0 {
		if cfg, err := config.Read(configPath); err == nil && cfg.Log.Level != "" {
			if level, ok := logging.ParseLevel(cfg.Log.Level); ok {
				return level
			}
		}
	}
	return logging.LevelFromVerbosity(verbosity)
}


// loggerFrom returns the command's logger.
func loggerFrom(cmd *cobra.Command) *slog.Logger {
	ctx := cmd.Context()
	if ctx == nil {
		return slog.Default()
	}
	return logging.FromContext(ctx, slog.Default())
}

// loadConfig loads and validates the configuration. Failures carry the exit
// code and hint of a configuration error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	return cfg, nil
}

// loadConfigWithCredential is loadConfig for commands that call the upstream.
func loadConfigWithCredential() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := config.RequireCredential(cfg); err != nil {
		return nil, errors.NewConfigError(err)
	}
	for _, w := range config.CredentialWarnings(cfg) {
		slog.Warn(w)
	}
	return cfg, nil
}

// PrintError writes err and its suggestion to w. Errors already reported by
// the command print nothing.
func PrintError(w io.Writer, err error) {
	if err == nil || errors.Is(err, errReported) {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintf(w, "  %s\n", exitErr.Suggestion)
		return
	}
	for _, hint := range errors.GetHints(err) {
		fmt.Fprintf(w, "  %s\n", hint)
	}
}

// reported wraps err so PrintError skips it, keeping code as the exit code.
func reported(err error, code int) error {
	return errors.NewExitError(errors.Mark(err, errReported), code)
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	}()
	return rootCmd.Execute()
}
