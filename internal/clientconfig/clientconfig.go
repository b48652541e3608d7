// Package clientconfig registers letta-mcp in the configuration files of MCP
// clients such as Claude Desktop, Cursor and Codex.
//
// JSON clients share the {"mcpServers": {...}} layout; Codex uses a TOML
// [mcp_servers.<name>] table. Keys outside the server entry are preserved on
// write, and every write is atomic.
package clientconfig

import (
	"os"

	"github.com/thoreinstein/letta-mcp/internal/errors"
	"github.com/thoreinstein/letta-mcp/internal/paths"
	"github.com/thoreinstein/letta-mcp/pkg/fileutil"
)

// Sentinel errors for registration.
var (
	ErrEntryExists  = errors.New("server entry already exists")
	ErrNotFound     = errors.New("server entry not found")
	ErrInvalidEntry = errors.New("invalid server entry: name and command or url required")
)

// Manager edits one client's config file.
type Manager struct {
	client string
	path   string
	format paths.Format
}

// Open returns a Manager for a supported client at its default location.
func Open(client string) (*Manager, error) {
	path, err := paths.ResolveClientConfigPath(client)
	if err != nil {
		return nil, err
	}
	return NewManager(client, path), nil
}

// NewManager returns a Manager for client's config at path.
func NewManager(client, path string) *Manager {
	return &Manager{client: client, path: path, format: paths.ClientFormat(client)}
}

// Client returns the client identifier.
func (m *Manager) Client() string { return m.client }

// Path returns the config file path.
func (m *Manager) Path() string { return m.path }

// Exists reports whether the config file is present.
func (m *Manager) Exists() bool { return fileutil.Exists(m.path) }

func (m *Manager) load() (document, error) {
	data, err := fileutil.ReadFileWithLimit(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			data = nil
		} else {
			return nil, errors.Wrapf(err, "reading %s", m.path)
		}
	}

	var doc document
	switch m.format {
	case paths.FormatJSON:
		doc, err = parseJSON(data)
	case paths.FormatTOML:
		doc, err = parseTOML(data)
	default:
		return nil, errors.Wrapf(paths.ErrUnknownClient, "%q", m.client)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s", m.path)
	}
	return doc, nil
}

func (m *Manager) save(doc document) error {
	data, err := doc.encode()
	if err != nil {
		return err
	}
	perm := fileutil.PrivatePerm
	if info, err := os.Stat(m.path); err == nil {
		perm = info.Mode().Perm()
	}
	return fileutil.WriteFileCreatingDirs(m.path, data, perm)
}

// Validate parses the config file and reports syntax errors. A missing file
// is valid.
func (m *Manager) Validate() error {
	_, err := m.load()
	return err
}

// Names lists registered server names in sorted order.
func (m *Manager) Names() ([]string, error) {
	doc, err := m.load()
	if err != nil {
		return nil, err
	}
	return doc.names(), nil
}

// Get returns the named entry or ErrNotFound.
func (m *Manager) Get(name string) (*Entry, error) {
	doc, err := m.load()
	if err != nil {
		return nil, err
	}
	e, ok := doc.entry(name)
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%q in %s", name, m.path)
	}
	return e, nil
}

// Change describes the outcome of Add or Remove.
type Change struct {
	Path     string
	Name     string
	Replaced bool
	Content  []byte
}

// Add registers e. An existing entry with the same name is replaced only
// when force is set. With dryRun the resulting file content is returned in
// Change.Content and nothing is written.
func (m *Manager) Add(e *Entry, force, dryRun bool) (*Change, error) {
	if e == nil || e.Name == "" || (e.Command == "" && e.URL == "") {
		return nil, ErrInvalidEntry
	}

	doc, err := m.load()
	if err != nil {
		return nil, err
	}
	_, exists := doc.entry(e.Name)
	if exists && !force {
		return nil, errors.WithHint(
			errors.Wrapf(ErrEntryExists, "%q in %s", e.Name, m.path),
			"use --force to replace it",
		)
	}
	doc.set(e)

	change := &Change{Path: m.path, Name: e.Name, Replaced: exists}
	if dryRun {
		change.Content, err = doc.encode()
		return change, err
	}
	return change, m.save(doc)
}

// Remove deletes the named entry. Removing an absent entry returns
// ErrNotFound and leaves the file untouched.
func (m *Manager) Remove(name string, dryRun bool) (*Change, error) {
	doc, err := m.load()
	if err != nil {
		return nil, err
	}
	if !doc.remove(name) {
		return nil, errors.Wrapf(ErrNotFound, "%q in %s", name, m.path)
	}

	change := &Change{Path: m.path, Name: name}
	if dryRun {
		change.Content, err = doc.encode()
		return change, err
	}
	return change, m.save(doc)
}

// Snippet renders e as the minimal config a user could paste into the
// client's file by hand.
func (m *Manager) Snippet(e *Entry) ([]byte, error) {
	var doc document
	switch m.format {
	case paths.FormatJSON:
		doc = &jsonDocument{Servers: map[string]*Entry{}}
	case paths.FormatTOML:
		doc = &tomlDocument{tree: map[string]any{}}
	default:
		return nil, errors.Wrapf(paths.ErrUnknownClient, "%q", m.client)
	}
	doc.set(e)
	return doc.encode()
}

// Registration is the state of one client as seen by doctor.
type Registration struct {
	Client     string
	Path       string
	Exists     bool
	Registered bool
	Err        error
}

// Scan inspects every supported client for an entry named name.
func Scan(name string) []Registration {
	clients := paths.Clients()
	out := make([]Registration, 0, len(clients))
	for _, client := range clients {
		reg := Registration{Client: client}
		m, err := Open(client)
		if err != nil {
			reg.Err = err
			out = append(out, reg)
			continue
		}
		reg.Path = m.Path()
		reg.Exists = m.Exists()
		if reg.Exists {
			if _, err := m.Get(name); err == nil {
				reg.Registered = true
			} else if !errors.Is(err, ErrNotFound) {
				reg.Err = err
			}
		}
		out = append(out, reg)
	}
	return out
}
