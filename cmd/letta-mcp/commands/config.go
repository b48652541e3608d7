package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/letta-mcp/internal/config"
	"github.com/thoreinstein/letta-mcp/internal/editor"
	"github.com/thoreinstein/letta-mcp/internal/errors"
	"github.com/thoreinstein/letta-mcp/internal/paths"
	"github.com/thoreinstein/letta-mcp/internal/redact"
	"github.com/thoreinstein/letta-mcp/pkg/fileutil"
)

var (
	configInitForce   bool
	configShowSecrets bool
)

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false,
		"overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configGetCmd.Flags().BoolVar(&configShowSecrets, "show-secrets", false,
		"print api_key unmasked")
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage letta-mcp configuration",
	Long: `Manage the letta-mcp configuration file.

Settings are read from flags, LETTA_* environment variables, config.yaml in
the current directory or ` + paths.AppConfigFile() + `, and built-in defaults,
in that order. Nested keys map to environment variables with underscores,
e.g. limits.text_chars is LETTA_LIMITS_TEXT_CHARS.

Without a subcommand, shows the effective configuration.`,
	Example: `  # Show effective configuration
  letta-mcp config

  # Create a config file with defaults
  letta-mcp config init

See Also: letta-mcp doctor`,
	RunE: func(c *cobra.Command, _ []string) error {
		return runConfigShowWithWriter(c.OutOrStdout())
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Print the effective configuration as YAML. The API key is masked.`,
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return runConfigShowWithWriter(c.OutOrStdout())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with defaults",
	Long: `Write config.yaml with every setting at its default value and a comment
describing it. The file is created with mode 0600.

Writes to --config when given, otherwise ` + paths.AppConfigFile() + `.`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return runConfigInitWithWriter(c.OutOrStdout())
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in your editor",
	Long: `Open the config file in $EDITOR (or $VISUAL, nano, vi). The file is
created with defaults if it does not exist, and validated after the editor
exits.`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		streams := editor.Streams{In: c.InOrStdin(), Out: c.OutOrStdout(), Err: c.ErrOrStderr()}
		return runConfigEdit(c.Context(), c.OutOrStdout(), streams)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one effective setting",
	Long: `Print one setting from the effective configuration. Nested keys use
dots, e.g. retry.base_delay or limits.pages.list_agents.max. The API key is
masked unless --show-secrets is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		return runConfigGetWithWriter(c.OutOrStdout(), args[0])
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting in the config file",
	Long: `Set one key in the config file, creating the file with defaults if it
does not exist. Comments and other settings are preserved. The result is
validated and the file is left unchanged if the new value is invalid.`,
	Example: `  letta-mcp config set timeout 30
  letta-mcp config set limits.pages.list_agents.default 25`,
	Args: cobra.ExactArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		return runConfigSetWithWriter(c.OutOrStdout(), args[0], args[1])
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(c *cobra.Command, _ []string) {
		fmt.Fprintln(c.OutOrStdout(), configFilePath())
	},
}

// configFilePath is the file config init writes and config show reports.
func configFilePath() string {
	if configPath != "" {
		return configPath
	}
	if used := config.UsedFile(""); used != "" {
		return used
	}
	return paths.AppConfigFile()
}

// runConfigShowWithWriter allows injecting a writer for testing.
func runConfigShowWithWriter(w io.Writer) error {
	cfg, err := config.Read(configPath)
	if err != nil {
		return errors.NewConfigError(err)
	}

	data, err := fileutil.MarshalYAML(cfg.Masked())
	if err != nil {
		return err
	}

	source := config.UsedFile(configPath)
	if source == "" {
		source = "defaults and environment"
	}
	fmt.Fprintf(w, "# source: %s\n", source)
	_, err = w.Write(data)
	return errors.Wrap(err, "writing config")
}

const configHeader = "# letta-mcp configuration.\n# Environment variables (LETTA_*) override these values.\n\n"

// configComments documents each top-level key in config init output.
var configComments = map[string]string{
	"api_key":        "Letta API key (starts with sk-let-). Prefer LETTA_API_KEY.",
	"base_url":       "Letta server URL.",
	"timeout":        "Per-request timeout in seconds.",
	"max_retries":    "Retries after the first attempt for transient failures (429, 5xx, network).",
	"retry":          "Exponential backoff between retries.",
	"rate_limit":     "Client-side requests per second to the Letta server; 0 disables.",
	"rate_burst":     "Requests allowed in a burst when rate_limit is set.",
	"max_idle_conns": "Idle HTTP connections kept per host.",
	"limits":         "Response shaping: text ceilings in characters and page sizes per list operation.",
	"server":         "MCP transport: stdio, or http on addr with optional CORS origins.",
	"log":            "Log level (trace, debug, info, warn, error) when no -v flag is given.",
}

// commentedDefaults renders the default configuration with a comment above
// each top-level key.
func commentedDefaults() (*yaml.Node, error) {
	cfg := config.Default()
	cfg.APIKey = ""

	var node yaml.Node
	if err := node.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, "encoding defaults")
	}
	if node.Kind != yaml.MappingNode {
		return nil, errors.Newf("encoding defaults: unexpected node kind %d", node.Kind)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if comment, ok := configComments[key.Value]; ok {
			key.HeadComment = comment
		}
	}
	return &node, nil
}

// runConfigInitWithWriter allows injecting a writer for testing.
func runConfigInitWithWriter(w io.Writer) error {
	path := configPath
	if path == "" {
		path = paths.AppConfigFile()
	}

	if fileutil.Exists(path) && !configInitForce {
		return errors.NewUserError(
			errors.Newf("config file already exists at %s", path),
			"Use --force to overwrite it",
		)
	}

	if err := writeDefaults(path); err != nil {
		return err
	}

	fmt.Fprintf(w, "Wrote %s\n", path)
	fmt.Fprintln(w, "Set api_key there or export LETTA_API_KEY, then run: letta-mcp doctor")
	return nil
}

// writeDefaults writes the commented default configuration to path.
func writeDefaults(path string) error {
	node, err := commentedDefaults()
	if err != nil {
		return err
	}
	data, err := fileutil.MarshalYAML(node)
	if err != nil {
		return err
	}
	data = append([]byte(configHeader), data...)
	if err := fileutil.WriteFileCreatingDirs(path, data, fileutil.PrivatePerm); err != nil {
		return errors.NewSystemError(err, "Check that the directory is writable")
	}
	return nil
}

// runConfigEdit opens the config file in an editor and validates the result.
func runConfigEdit(ctx context.Context, w io.Writer, streams editor.Streams) error {
	path := configFilePath()
	if !fileutil.Exists(path) {
		if err := writeDefaults(path); err != nil {
			return err
		}
		fmt.Fprintf(w, "Created %s with defaults\n", path)
	}

	if err := editor.Open(ctx, path, streams); err != nil {
		if errors.Is(err, editor.ErrNoEditor) {
			return errors.NewUserError(err, "Set $EDITOR, or edit "+path+" directly")
		}
		return errors.NewSystemError(err, "Check $EDITOR")
	}

	if _, err := config.Load(path); err != nil {
		return errors.NewConfigError(errors.Wrapf(err, "%s is not valid after editing", path))
	}
	fmt.Fprintf(w, "%s is valid\n", path)
	return nil
}

// lookupNode walks a dotted key through nested mappings.
func lookupNode(node *yaml.Node, key string) *yaml.Node {
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	for _, part := range strings.Split(key, ".") {
		if node.Kind != yaml.MappingNode {
			return nil
		}
		var next *yaml.Node
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == part {
				next = node.Content[i+1]
				break
			}
		}
		if next == nil {
			return nil
		}
		node = next
	}
	return node
}

func unknownKeyError(key string) error {
	return errors.NewUserError(errors.Newf("unknown config key %q", key), "Run: letta-mcp config show")
}

// runConfigGetWithWriter allows injecting a writer for testing.
func runConfigGetWithWriter(w io.Writer, key string) error {
	cfg, err := config.Read(configPath)
	if err != nil {
		return errors.NewConfigError(err)
	}
	if !configShowSecrets {
		cfg = cfg.Masked()
	}

	var root yaml.Node
	if err := root.Encode(cfg); err != nil {
		return errors.Wrap(err, "encoding config")
	}
	node := lookupNode(&root, key)
	if node == nil {
		return unknownKeyError(key)
	}

	if node.Kind == yaml.ScalarNode {
		fmt.Fprintln(w, node.Value)
		return nil
	}
	data, err := fileutil.MarshalYAML(node)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "writing value")
}

// runConfigSetWithWriter allows injecting a writer for testing.
func runConfigSetWithWriter(w io.Writer, key, value string) error {
	defaults, err := commentedDefaults()
	if err != nil {
		return err
	}
	if target := lookupNode(defaults, key); target == nil || target.Kind != yaml.ScalarNode {
		return unknownKeyError(key)
	}

	path := configFilePath()
	if !fileutil.Exists(path) {
		if err := writeDefaults(path); err != nil {
			return err
		}
	}
	original, err := os.ReadFile(path)
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "reading config"), "")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(original, &doc); err != nil {
		return errors.NewConfigError(errors.Wrapf(err, "parsing %s", path))
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	setNode(doc.Content[0], strings.Split(key, "."), value)

	data, err := fileutil.MarshalYAML(&doc)
	if err != nil {
		return err
	}
	if err := fileutil.AtomicWriteFile(path, data, fileutil.PrivatePerm); err != nil {
		return errors.NewSystemError(err, "Check that the file is writable")
	}

	if _, err := config.Load(path); err != nil {
		if restoreErr := fileutil.AtomicWriteFile(path, original, fileutil.PrivatePerm); restoreErr != nil {
			return errors.Join(err, restoreErr)
		}
		return errors.NewConfigError(errors.Wrapf(err, "%s=%s rejected", key, value))
	}

	shown := value
	if key == "api_key" && !configShowSecrets {
		shown = redact.Mask(value)
	}
	fmt.Fprintf(w, "Set %s = %s in %s\n", key, shown, path)
	return nil
}

// setNode sets the scalar at keys, creating intermediate mappings.
func setNode(node *yaml.Node, keys []string, value string) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != keys[0] {
			continue
		}
		if len(keys) == 1 {
			node.Content[i+1] = &yaml.Node{Kind: yaml.ScalarNode, Value: value}
			return
		}
		child := node.Content[i+1]
		if child.Kind != yaml.MappingNode {
			child = &yaml.Node{Kind: yaml.MappingNode}
			node.Content[i+1] = child
		}
		setNode(child, keys[1:], value)
		return
	}

	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: keys[0]}
	if len(keys) == 1 {
		node.Content = append(node.Content, keyNode, &yaml.Node{Kind: yaml.ScalarNode, Value: value})
		return
	}
	child := &yaml.Node{Kind: yaml.MappingNode}
	node.Content = append(node.Content, keyNode, child)
	setNode(child, keys[1:], value)
}
