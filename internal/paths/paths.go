package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName names the per-user configuration directory.
const AppName = "letta-mcp"

// ConfigDirEnv overrides the directory returned by AppConfigDir.
const ConfigDirEnv = "LETTA_MCP_CONFIG_DIR"

// Client identifiers for supported MCP hosts.
const (
	ClientClaudeDesktop = "claude-desktop"
	ClientClaudeCode    = "claude-code"
	ClientCursor        = "cursor"
	ClientWindsurf      = "windsurf"
	ClientCodex         = "codex"
)

// Format is the on-disk encoding of a client's MCP configuration.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

var (
	ErrHomeDirNotFound = errors.New("home directory not found")
	ErrUnknownClient   = errors.New("unknown MCP client")
)

// client describes where one MCP host keeps its server list. Exactly one of
// homeRel and configRel is set: homeRel is relative to the home directory,
// configRel to the platform config directory.
type client struct {
	name      string
	format    Format
	homeRel   string
	configRel string
}

// clients is ordered for help text and shell completion.
var clients = []client{
	{name: ClientClaudeDesktop, format: FormatJSON, configRel: filepath.Join("Claude", "claude_desktop_config.json")},
	{name: ClientClaudeCode, format: FormatJSON, homeRel: ".claude.json"},
	{name: ClientCursor, format: FormatJSON, homeRel: filepath.Join(".cursor", "mcp.json")},
	{name: ClientWindsurf, format: FormatJSON, homeRel: filepath.Join(".codeium", "windsurf", "mcp_config.json")},
	{name: ClientCodex, format: FormatTOML, homeRel: filepath.Join(".codex", "config.toml")},
}

func lookup(name string) (client, bool) {
	for _, c := range clients {
		if c.name == name {
			return c, true
		}
	}
	return client{}, false
}

// Clients returns the supported client identifiers.
func Clients() []string {
	names := make([]string, len(clients))
	for i, c := range clients {
		names[i] = c.name
	}
	return names
}

func ValidClient(name string) bool {
	_, ok := lookup(name)
	return ok
}

// ClientFormat returns the config encoding for a client, or "" if unknown.
func ClientFormat(name string) Format {
	c, _ := lookup(name)
	return c.format
}

// configHome is xdg.ConfigHome, except that Claude Desktop on Windows roams
// under %APPDATA% rather than %LOCALAPPDATA%.
func configHome() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return appData
		}
	}
	return xdg.ConfigHome
}

// ClientConfigPath returns the MCP configuration file for a client, or ""
// when the client is unknown or the home directory cannot be found.
func ClientConfigPath(name string) string {
	p, _ := ResolveClientConfigPath(name)
	return p
}

// ResolveClientConfigPath is ClientConfigPath with errors.
func ResolveClientConfigPath(name string) (string, error) {
	c, ok := lookup(name)
	if !ok {
		return "", errors.Wrapf(ErrUnknownClient, "%q", name)
	}
	if c.configRel != "" {
		return filepath.Join(configHome(), c.configRel), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return filepath.Join(home, c.homeRel), nil
}

// AppConfigDir returns the directory holding letta-mcp's config.yaml and
// backups. ConfigDirEnv overrides the XDG location.
func AppConfigDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppName)
}

func AppConfigFile() string {
	return filepath.Join(AppConfigDir(), "config.yaml")
}
