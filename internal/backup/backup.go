package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/letta-mcp/internal/paths"
	"github.com/thoreinstein/letta-mcp/pkg/fileutil"
)

const idLayout = "20060102T150405Z"

// Manager creates, lists, restores and prunes snapshots.
type Manager struct {
	rootDir        string
	retentionCount int
	version        string
	now            func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets the number of snapshots kept per client.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// WithVersion records the tool version in new manifests.
func WithVersion(v string) Option {
	return func(m *Manager) {
		m.version = v
	}
}

// WithClock overrides the snapshot timestamp source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a Manager rooted at <config dir>/backups unless
// overridden.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:        filepath.Join(paths.AppConfigDir(), "backups"),
		retentionCount: DefaultRetentionCount,
		version:        "dev",
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Dir returns the snapshot directory for client.
func (m *Manager) Dir(client string) string {
	return filepath.Join(m.rootDir, client)
}

// Snapshot copies path into a new snapshot for client and prunes old ones.
// It returns ErrNothingToBackUp when path does not exist.
func (m *Manager) Snapshot(client, path string) (*Manifest, error) {
	if client == "" {
		return nil, errors.New("client is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrNothingToBackUp, "%s does not exist", path)
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}

	created := m.now().UTC()
	id, dir, err := m.allocate(client, created)
	if err != nil {
		return nil, err
	}

	file := File{
		OriginalPath: path,
		Name:         filepath.Base(path),
		SHA256:       digest(data),
		Mode:         info.Mode().Perm(),
		Size:         int64(len(data)),
	}
	// Copies may hold the API key, so they are always private.
	if err := fileutil.AtomicWriteFile(filepath.Join(dir, file.Name), data, fileutil.PrivatePerm); err != nil {
		return nil, errors.Wrap(err, "copying config")
	}

	manifest := &Manifest{
		Version:     ManifestVersion,
		CreatedAt:   created,
		Client:      client,
		File:        file,
		ToolVersion: m.version,
		ID:          id,
	}
	encoded, err := fileutil.MarshalJSON(manifest)
	if err != nil {
		return nil, err
	}
	if err := fileutil.AtomicWriteFile(filepath.Join(dir, manifestName), encoded, fileutil.PrivatePerm); err != nil {
		return nil, errors.Wrap(err, "writing manifest")
	}

	if err := m.Prune(client, m.retentionCount); err != nil {
		return manifest, err
	}
	return manifest, nil
}

// allocate creates a fresh snapshot directory. Snapshots taken within the
// same second get a numeric suffix.
func (m *Manager) allocate(client string, created time.Time) (string, string, error) {
	if err := os.MkdirAll(m.Dir(client), 0o700); err != nil {
		return "", "", errors.Wrap(err, "creating backup directory")
	}
	base := created.Format(idLayout)
	for n := 1; ; n++ {
		id := base
		if n > 1 {
			id = fmt.Sprintf("%s-%d", base, n)
		}
		dir := filepath.Join(m.Dir(client), id)
		err := os.Mkdir(dir, 0o700)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", errors.Wrap(err, "creating backup directory")
		}
	}
}

// Restore writes a snapshot back to its original path. The current file,
// if any and if different, is snapshotted first.
func (m *Manager) Restore(client, id string) (*Manifest, error) {
	manifest, err := m.Get(client, id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(m.Dir(client), manifest.ID, manifest.File.Name))
	if err != nil {
		return nil, errors.Wrapf(err, "reading backup %s", manifest.ID)
	}
	if digest(data) != manifest.File.SHA256 {
		return nil, errors.Wrapf(ErrBackupCorrupted, "backup %s digest mismatch", manifest.ID)
	}

	target := manifest.File.OriginalPath
	if current, err := os.ReadFile(target); err == nil && digest(current) != manifest.File.SHA256 {
		if _, err := m.Snapshot(client, target); err != nil {
			return nil, errors.Wrap(err, "saving current config before restore")
		}
	}

	if err := fileutil.WriteFileCreatingDirs(target, data, manifest.File.Mode); err != nil {
		return nil, errors.Wrapf(err, "restoring %s", target)
	}
	return manifest, nil
}

// Latest returns the newest snapshot for client.
func (m *Manager) Latest(client string) (*Manifest, error) {
	manifests, err := m.List(client)
	if err != nil {
		return nil, err
	}
	return &manifests[0], nil
}

// List returns the snapshots for client, newest first.
func (m *Manager) List(client string) ([]Manifest, error) {
	entries, err := os.ReadDir(m.Dir(client))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(client, entry.Name())
		if err != nil {
			continue
		}
		manifests = append(manifests, *manifest)
	}
	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return compareIDs(b.ID, a.ID)
	})
	return manifests, nil
}

// Get loads the manifest of one snapshot.
func (m *Manager) Get(client, id string) (*Manifest, error) {
	if id == "" {
		return nil, errors.New("backup ID is required")
	}

	data, err := os.ReadFile(filepath.Join(m.Dir(client), id, manifestName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s", id)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	manifest.ID = id
	return &manifest, nil
}

// Prune removes all but the newest keep snapshots for client.
func (m *Manager) Prune(client string, keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	manifests, err := m.List(client)
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil
		}
		return err
	}

	for i := keep; i < len(manifests); i++ {
		if err := os.RemoveAll(filepath.Join(m.Dir(client), manifests[i].ID)); err != nil {
			return errors.Wrapf(err, "removing backup %s", manifests[i].ID)
		}
	}
	return nil
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// compareIDs orders IDs from the same second by their numeric suffix.
func compareIDs(a, b string) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
