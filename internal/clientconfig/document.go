package clientconfig

import (
	"encoding/json"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/letta-mcp/internal/errors"
	"github.com/thoreinstein/letta-mcp/pkg/fileutil"
)

// document is a parsed client config that can be edited and re-encoded.
type document interface {
	entry(name string) (*Entry, bool)
	set(e *Entry)
	remove(name string) bool
	names() []string
	encode() ([]byte, error)
}

// jsonDocument is the mcpServers layout shared by Claude Desktop, Claude
// Code, Cursor and Windsurf. Top-level keys other than mcpServers are kept
// verbatim.
type jsonDocument struct {
	Servers       map[string]*Entry
	unknownFields map[string]json.RawMessage
}

func parseJSON(data []byte) (*jsonDocument, error) {
	doc := &jsonDocument{Servers: map[string]*Entry{}}
	if len(data) == 0 {
		return doc, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parsing JSON")
	}
	if servers, ok := raw["mcpServers"]; ok {
		if err := json.Unmarshal(servers, &doc.Servers); err != nil {
			return nil, errors.Wrap(err, "parsing mcpServers")
		}
		delete(raw, "mcpServers")
	}
	if doc.Servers == nil {
		doc.Servers = map[string]*Entry{}
	}
	for name, e := range doc.Servers {
		if e == nil {
			delete(doc.Servers, name)
			continue
		}
		e.Name = name
	}
	if len(raw) > 0 {
		doc.unknownFields = raw
	}
	return doc, nil
}

func (d *jsonDocument) entry(name string) (*Entry, bool) {
	e, ok := d.Servers[name]
	return e, ok
}

func (d *jsonDocument) set(e *Entry) {
	d.Servers[e.Name] = e
}

func (d *jsonDocument) remove(name string) bool {
	if _, ok := d.Servers[name]; !ok {
		return false
	}
	delete(d.Servers, name)
	return true
}

func (d *jsonDocument) names() []string {
	return sortedKeys(d.Servers)
}

func (d *jsonDocument) encode() ([]byte, error) {
	out := make(map[string]any, len(d.unknownFields)+1)
	for k, v := range d.unknownFields {
		out[k] = v
	}
	out["mcpServers"] = d.Servers
	return fileutil.MarshalJSON(out)
}

// tomlDocument is Codex's config.toml. Servers live under [mcp_servers.<name>].
// Other tables are round-tripped through a generic map, which drops comments.
type tomlDocument struct {
	tree map[string]any
}

const codexServersKey = "mcp_servers"

func parseTOML(data []byte) (*tomlDocument, error) {
	doc := &tomlDocument{tree: map[string]any{}}
	if len(data) == 0 {
		return doc, nil
	}
	if err := toml.Unmarshal(data, &doc.tree); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, errors.Wrapf(err, "parsing TOML at line %d, column %d", row, col)
		}
		return nil, errors.Wrap(err, "parsing TOML")
	}
	if v, ok := doc.tree[codexServersKey]; ok {
		if _, isTable := v.(map[string]any); !isTable {
			return nil, errors.Newf("parsing TOML: %s must be a table", codexServersKey)
		}
	}
	return doc, nil
}

func (d *tomlDocument) servers(create bool) map[string]any {
	if s, ok := d.tree[codexServersKey].(map[string]any); ok {
		return s
	}
	if !create {
		return nil
	}
	s := map[string]any{}
	d.tree[codexServersKey] = s
	return s
}

func (d *tomlDocument) entry(name string) (*Entry, bool) {
	raw, ok := d.servers(false)[name].(map[string]any)
	if !ok {
		return nil, false
	}

	e := &Entry{Name: name}
	e.Type, _ = raw["type"].(string)
	e.Command, _ = raw["command"].(string)
	e.URL, _ = raw["url"].(string)
	if args, ok := raw["args"].([]any); ok {
		for _, a := range args {
			if s, ok := a.(string); ok {
				e.Args = append(e.Args, s)
			}
		}
	}
	if env, ok := raw["env"].(map[string]any); ok {
		e.Env = make(map[string]string, len(env))
		for k, v := range env {
			if s, ok := v.(string); ok {
				e.Env[k] = s
			}
		}
	}
	return e, true
}

func (d *tomlDocument) set(e *Entry) {
	table := map[string]any{}
	if existing, ok := d.servers(false)[e.Name].(map[string]any); ok {
		table = existing
	}
	assign := func(key, value string) {
		if value == "" {
			delete(table, key)
			return
		}
		table[key] = value
	}
	assign("type", e.Type)
	assign("command", e.Command)
	assign("url", e.URL)
	if len(e.Args) > 0 {
		table["args"] = e.Args
	} else {
		delete(table, "args")
	}
	if len(e.Env) > 0 {
		table["env"] = e.Env
	} else {
		delete(table, "env")
	}
	d.servers(true)[e.Name] = table
}

func (d *tomlDocument) remove(name string) bool {
	s := d.servers(false)
	if _, ok := s[name]; !ok {
		return false
	}
	delete(s, name)
	return true
}

func (d *tomlDocument) names() []string {
	return sortedKeys(d.servers(false))
}

func (d *tomlDocument) encode() ([]byte, error) {
	return fileutil.MarshalTOML(d.tree)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
