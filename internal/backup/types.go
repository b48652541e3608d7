package backup

import (
	"io/fs"
	"time"

	"github.com/cockroachdb/errors"
)

// ManifestVersion is the manifest format version.
const ManifestVersion = 1

// DefaultRetentionCount is the number of snapshots kept per client.
const DefaultRetentionCount = 5

const manifestName = "manifest.json"

var (
	// ErrNoBackupsFound indicates no snapshots exist for the client.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrBackupCorrupted indicates a snapshot no longer matches its digest.
	ErrBackupCorrupted = errors.New("backup corrupted")

	// ErrNothingToBackUp indicates the source file does not exist yet.
	ErrNothingToBackUp = errors.New("nothing to back up")
)

// Manifest describes one snapshot. It is stored as manifest.json next to
// the copied file.
type Manifest struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Client    string    `json:"client"`
	File      File      `json:"file"`

	// ToolVersion is the letta-mcp version that took the snapshot.
	ToolVersion string `json:"tool_version"`

	// ID names the snapshot directory. Populated on load.
	ID string `json:"-"`
}

// File describes the copied config file.
type File struct {
	OriginalPath string      `json:"original_path"`
	Name         string      `json:"name"`
	SHA256       string      `json:"sha256"`
	Mode         fs.FileMode `json:"mode"`
	Size         int64       `json:"size"`
}
