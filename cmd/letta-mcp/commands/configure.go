package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/letta-mcp/internal/backup"
	"github.com/thoreinstein/letta-mcp/internal/clientconfig"
	"github.com/thoreinstein/letta-mcp/internal/config"
	"github.com/thoreinstein/letta-mcp/internal/errors"
	"github.com/thoreinstein/letta-mcp/internal/paths"
	"github.com/thoreinstein/letta-mcp/internal/redact"
)

var (
	configureClient      string
	configureName        string
	configurePath        string
	configureForce       bool
	configureDryRun      bool
	configurePrint       bool
	configureShowSecrets bool
	configureNoBackup    bool
	restoreID            string
	restoreList          bool
)

func init() {
	for _, c := range []*cobra.Command{configureCmd, configureRemoveCmd} {
		c.Flags().StringVar(&configureClient, "client", paths.ClientClaudeDesktop,
			"MCP client: "+strings.Join(paths.Clients(), ", "))
		c.Flags().StringVar(&configureName, "name", clientconfig.DefaultName,
			"server entry name")
		c.Flags().StringVar(&configurePath, "path", "",
			"client config file (default: the client's standard location)")
		c.Flags().BoolVar(&configureDryRun, "dry-run", false,
			"print the resulting file instead of writing it")
		c.Flags().BoolVar(&configureShowSecrets, "show-secrets", false,
			"do not mask the API key in printed output")
	}
	for _, c := range []*cobra.Command{configureCmd, configureRemoveCmd} {
		c.Flags().BoolVar(&configureNoBackup, "no-backup", false,
			"do not snapshot the client config before writing")
	}
	configureRestoreCmd.Flags().StringVar(&configureClient, "client", paths.ClientClaudeDesktop,
		"MCP client: "+strings.Join(paths.Clients(), ", "))
	configureRestoreCmd.Flags().StringVar(&restoreID, "id", "",
		"snapshot to restore (default: the newest)")
	configureRestoreCmd.Flags().BoolVar(&restoreList, "list", false,
		"list snapshots instead of restoring")

	configureCmd.Flags().BoolVarP(&configureForce, "force", "f", false,
		"replace an existing entry with the same name")
	configureCmd.Flags().BoolVar(&configurePrint, "print", false,
		"print the entry snippet to paste by hand instead of writing")

	configureCmd.AddCommand(configureRemoveCmd)
	configureCmd.AddCommand(configureRestoreCmd)
	rootCmd.AddCommand(configureCmd)
}

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Register letta-mcp with an MCP client",
	Long: `Add a letta-mcp server entry to an MCP client's configuration.

The entry launches this executable with "run" and passes LETTA_API_KEY,
LETTA_BASE_URL, LETTA_TIMEOUT and LETTA_MAX_RETRIES from the current
configuration, so the client does not depend on a letta-mcp config file.

Other servers and settings in the file are preserved. Files are written
atomically and created with mode 0600 because they hold the API key. An
existing file is snapshotted first; see letta-mcp configure restore.

Supported clients: ` + strings.Join(paths.Clients(), ", "),
	Example: `  # Register with Claude Desktop
  letta-mcp configure

  # Register with Codex under a custom name, replacing any existing entry
  letta-mcp configure --client codex --name letta-prod --force

  # Preview the change
  letta-mcp configure --client cursor --dry-run

  See Also: letta-mcp configure remove, letta-mcp doctor`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return runConfigureWithWriter(c.OutOrStdout(), c.ErrOrStderr())
	},
}

var configureRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the letta-mcp entry from an MCP client",
	Long:  `Remove the named server entry from an MCP client's configuration.`,
	Example: `  letta-mcp configure remove --client cursor
  letta-mcp configure remove --client codex --name letta-prod`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return runConfigureRemoveWithWriter(c.OutOrStdout())
	},
}

var configureRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore an MCP client config from a snapshot",
	Long: `Restore a client config file from a snapshot taken by configure or
configure remove. The current file is snapshotted before it is replaced.`,
	Example: `  # Undo the last change to the Cursor config
  letta-mcp configure restore --client cursor

  # List snapshots, then restore a specific one
  letta-mcp configure restore --client codex --list
  letta-mcp configure restore --client codex --id 20260501T120000Z`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return runConfigureRestoreWithWriter(c.OutOrStdout())
	},
}

// backupManager returns the snapshot store for client configs.
func backupManager() *backup.Manager {
	return backup.NewManager(backup.WithVersion(versionString()))
}

// snapshotBeforeWrite saves the current client config unless --no-backup
// is set. A missing file is not an error.
func snapshotBeforeWrite(w io.Writer, m *clientconfig.Manager) error {
	if configureNoBackup {
		return nil
	}
	manifest, err := backupManager().Snapshot(m.Client(), m.Path())
	if err != nil {
		if errors.Is(err, backup.ErrNothingToBackUp) {
			return nil
		}
		return errors.NewSystemError(errors.Wrap(err, "saving backup"), "Use --no-backup to skip the snapshot")
	}
	fmt.Fprintf(w, "Saved backup %s\n", manifest.ID)
	return nil
}

// openClientManager resolves --client and --path into a Manager.
func openClientManager() (*clientconfig.Manager, error) {
	if !paths.ValidClient(configureClient) {
		return nil, errors.NewUserError(
			errors.Wrapf(paths.ErrUnknownClient, "%q", configureClient),
			"Valid clients: "+strings.Join(paths.Clients(), ", "),
		)
	}
	if configurePath != "" {
		return clientconfig.NewManager(configureClient, configurePath), nil
	}
	m, err := clientconfig.Open(configureClient)
	if err != nil {
		return nil, errors.NewSystemError(err, "Use --path to name the config file")
	}
	return m, nil
}

// executablePath returns the absolute path clients should launch.
func executablePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, "locating letta-mcp executable")
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return exe, nil
}

// maskKey hides the API key in text printed to the terminal.
func maskKey(text, key string) string {
	if configureShowSecrets || strings.TrimSpace(key) == "" {
		return text
	}
	return strings.ReplaceAll(text, key, redact.Mask(key))
}

// runConfigureWithWriter allows injecting writers for testing.
func runConfigureWithWriter(w, errw io.Writer) error {
	m, err := openClientManager()
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if config.RequireCredential(cfg) != nil {
		fmt.Fprintln(errw, "warning: no API key configured; the entry will not include LETTA_API_KEY")
	}

	exe, err := executablePath()
	if err != nil {
		return err
	}
	entry := clientconfig.NewEntry(clientconfig.EntryOptions{
		Name:       configureName,
		Executable: exe,
		Config:     cfg,
	})

	if configurePrint {
		snippet, err := m.Snippet(entry)
		if err != nil {
			return err
		}
		fmt.Fprint(w, maskKey(string(snippet), cfg.APIKey))
		return nil
	}

	change, err := m.Add(entry, configureForce, true)
	if err != nil {
		if errors.Is(err, clientconfig.ErrEntryExists) {
			return errors.NewUserError(err, "Use --force to replace it")
		}
		return err
	}

	if configureDryRun {
		fmt.Fprintf(w, "# %s (dry run, not written)\n", change.Path)
		fmt.Fprint(w, maskKey(string(change.Content), cfg.APIKey))
		return nil
	}

	if err := snapshotBeforeWrite(w, m); err != nil {
		return err
	}
	if change, err = m.Add(entry, configureForce, false); err != nil {
		return err
	}

	verb := "Added"
	if change.Replaced {
		verb = "Replaced"
	}
	fmt.Fprintf(w, "%s %q in %s\n", verb, change.Name, change.Path)
	fmt.Fprintf(w, "Restart %s to load the server.\n", configureClient)
	return nil
}

// runConfigureRemoveWithWriter allows injecting a writer for testing.
func runConfigureRemoveWithWriter(w io.Writer) error {
	m, err := openClientManager()
	if err != nil {
		return err
	}

	change, err := m.Remove(configureName, true)
	if err != nil {
		if errors.Is(err, clientconfig.ErrNotFound) {
			return errors.NewUserError(err, "Run: letta-mcp doctor to see where letta-mcp is registered")
		}
		return err
	}

	if configureDryRun {
		fmt.Fprintf(w, "# %s (dry run, not written)\n", change.Path)
		fmt.Fprint(w, string(change.Content))
		return nil
	}

	if err := snapshotBeforeWrite(w, m); err != nil {
		return err
	}
	if change, err = m.Remove(configureName, false); err != nil {
		return err
	}
	fmt.Fprintf(w, "Removed %q from %s\n", change.Name, change.Path)
	return nil
}

// runConfigureRestoreWithWriter allows injecting a writer for testing.
func runConfigureRestoreWithWriter(w io.Writer) error {
	if !paths.ValidClient(configureClient) {
		return errors.NewUserError(
			errors.Wrapf(paths.ErrUnknownClient, "%q", configureClient),
			"Valid clients: "+strings.Join(paths.Clients(), ", "),
		)
	}
	mgr := backupManager()

	if restoreList {
		manifests, err := mgr.List(configureClient)
		if err != nil {
			if errors.Is(err, backup.ErrNoBackupsFound) {
				fmt.Fprintf(w, "No snapshots for %s in %s\n", configureClient, mgr.Dir(configureClient))
				return nil
			}
			return err
		}
		for _, m := range manifests {
			fmt.Fprintf(w, "%s  %s  %s (%d bytes)\n", m.ID, m.CreatedAt.Local().Format("2006-01-02 15:04:05"), m.File.OriginalPath, m.File.Size)
		}
		return nil
	}

	id := restoreID
	if id == "" {
		latest, err := mgr.Latest(configureClient)
		if err != nil {
			if errors.Is(err, backup.ErrNoBackupsFound) {
				return errors.NewUserError(err, "Snapshots are taken by letta-mcp configure and configure remove")
			}
			return err
		}
		id = latest.ID
	}

	manifest, err := mgr.Restore(configureClient, id)
	if err != nil {
		switch {
		case errors.Is(err, backup.ErrNoBackupsFound):
			return errors.NewUserError(err, "Run: letta-mcp configure restore --list")
		case errors.Is(err, backup.ErrBackupCorrupted):
			return errors.NewSystemError(err, "Pick another snapshot with --id")
		}
		return err
	}
	fmt.Fprintf(w, "Restored %s from snapshot %s\n", manifest.File.OriginalPath, manifest.ID)
	return nil
}
