package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/thoreinstein/letta-mcp/internal/config"
	"github.com/thoreinstein/letta-mcp/internal/dispatch"
	"github.com/thoreinstein/letta-mcp/internal/errors"
	"github.com/thoreinstein/letta-mcp/internal/shaper"
	"github.com/thoreinstein/letta-mcp/internal/toolset"
)

var (
	toolsListJSON bool
	toolsCallArgs string
)

func init() {
	toolsListCmd.Flags().BoolVar(&toolsListJSON, "json", false, "Output in JSON format")
	toolsCallCmd.Flags().StringVar(&toolsCallArgs, "args", "{}", "tool arguments as a JSON object")

	toolsCmd.AddCommand(toolsListCmd)
	toolsCmd.AddCommand(toolsCallCmd)
	rootCmd.AddCommand(toolsCmd)
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Inspect and call the MCP tools",
	Long: `Inspect the tools letta-mcp advertises to MCP clients, or call one
directly and print its result envelope.`,
}

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the MCP tools",
	Long: `List every tool with its side-effect mode and parameters.

Modes: read tools never change the Letta server, write tools do, and
destructive tools require confirm=true.`,
	Example: `  # Table of tools
  letta-mcp tools list

  # Full parameter detail
  letta-mcp tools list --json`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return runToolsListWithWriter(c.OutOrStdout())
	},
}

var toolsCallCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Call one tool and print its envelope",
	Long: `Call one tool against the configured Letta server, exactly as an MCP
client would, and print the JSON result envelope.

Exits 1 when the envelope reports success=false.`,
	Example: `  letta-mcp tools call letta_list_agents --args '{"limit": 5}'
  letta-mcp tools call letta_get_memory --args '{"agent_id": "agent-123"}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		cfg, err := loadConfigWithCredential()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runToolsCall(ctx, c.OutOrStdout(), cfg, loggerFrom(c), args[0], toolsCallArgs)
	},
}

// toolInfoJSON is one tool in JSON output.
type toolInfoJSON struct {
	Name        string          `json:"name"`
	Mode        string          `json:"mode"`
	Description string          `json:"description"`
	Params      []paramInfoJSON `json:"params"`
}

type paramInfoJSON struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Required    bool     `json:"required"`
	Default     any      `json:"default,omitempty"`
	Min         *float64 `json:"minimum,omitempty"`
	Max         *float64 `json:"maximum,omitempty"`
	Description string   `json:"description,omitempty"`
}

// listedTools builds the tool table without contacting the upstream. Page
// limits come from the config when it can be read.
func listedTools() []dispatch.Tool {
	cfg, err := config.Read(configPath)
	if err != nil {
		cfg = config.Default()
	}
	tools := toolset.New(nil, shaper.New(cfg.ShaperLimits())).Tools()
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })
	return tools
}

// runToolsListWithWriter allows injecting a writer for testing.
func runToolsListWithWriter(w io.Writer) error {
	tools := listedTools()

	if toolsListJSON {
		out := make([]toolInfoJSON, 0, len(tools))
		for _, t := range tools {
			info := toolInfoJSON{Name: t.Name, Mode: t.Mode.String(), Description: t.Description, Params: []paramInfoJSON{}}
			for _, p := range t.Params {
				info.Params = append(info.Params, paramInfoJSON{
					Name:        p.Name,
					Type:        string(p.Type),
					Required:    p.Required,
					Default:     p.Default,
					Min:         p.Min,
					Max:         p.Max,
					Description: p.Description,
				})
			}
			out = append(out, info)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(out), "encoding JSON")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMODE\tPARAMETERS")
	for _, t := range tools {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Name, t.Mode, formatParams(t.Params))
	}
	return errors.Wrap(tw.Flush(), "writing table")
}

// formatParams renders parameters as "agent_id, limit?".
func formatParams(params []dispatch.Param) string {
	if len(params) == 0 {
		return "-"
	}
	names := make([]string, 0, len(params))
	for _, p := range params {
		if p.Required {
			names = append(names, p.Name)
		} else {
			names = append(names, p.Name+"?")
		}
	}
	return strings.Join(names, ", ")
}

// parseToolArgs decodes --args. An empty value means no arguments.
func parseToolArgs(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}, nil
	}
	if !gjson.Valid(raw) || !gjson.Parse(raw).IsObject() {
		return nil, errors.NewUserError(
			errors.New("--args must be a JSON object"),
			`Example: --args '{"agent_id": "agent-123"}'`,
		)
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, errors.NewUserError(errors.Wrap(err, "decoding --args"), "")
	}
	return args, nil
}

// runToolsCall dispatches one tool and prints its envelope.
func runToolsCall(ctx context.Context, w io.Writer, cfg *config.Config, logger *slog.Logger, name, rawArgs string) error {
	args, err := parseToolArgs(rawArgs)
	if err != nil {
		return err
	}

	b, err := newBridge(cfg, logger)
	if err != nil {
		return err
	}
	defer b.Close()

	if _, ok := b.registry.Lookup(name); !ok {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrUnknownTool, "%q", name),
			"Run: letta-mcp tools list",
		)
	}

	logger.Debug("calling tool", "tool", name)
	env := b.registry.Dispatch(ctx, name, args)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		return errors.Wrap(err, "encoding envelope")
	}
	if !env.Success {
		return reported(errors.Newf("tool %s failed", name), errors.ExitUser)
	}
	return nil
}
