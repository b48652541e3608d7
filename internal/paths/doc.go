// Package paths resolves where letta-mcp keeps its own files and where each
// supported MCP client keeps its server list.
//
// letta-mcp's config.yaml and backups live in <xdg.ConfigHome>/letta-mcp
// unless LETTA_MCP_CONFIG_DIR points elsewhere. Client files:
//
//	claude-desktop  <ConfigHome>/Claude/claude_desktop_config.json  (%APPDATA% on Windows)
//	claude-code     ~/.claude.json
//	cursor          ~/.cursor/mcp.json
//	windsurf        ~/.codeium/windsurf/mcp_config.json
//	codex           ~/.codex/config.toml
package paths
