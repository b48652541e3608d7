// Package backup keeps snapshots of MCP client config files so that
// letta-mcp configure and remove can be undone.
//
// Snapshots live under the letta-mcp config directory:
//
//	<config dir>/backups/
//	└── {client}/
//	    └── {id}/
//	        ├── manifest.json
//	        └── {file}
//
// The manifest records the original path, permissions and a SHA256 digest.
// [Manager.Restore] refuses to restore a snapshot whose digest no longer
// matches, returning [ErrBackupCorrupted], and snapshots the current file
// first so a restore can itself be undone.
//
// [Manager.Prune] keeps the newest snapshots per client; [DefaultRetentionCount]
// is used when no count is configured.
package backup
