package clientconfig

import (
	"encoding/json"
	"strconv"

	"github.com/thoreinstein/letta-mcp/internal/config"
	"github.com/thoreinstein/letta-mcp/internal/redact"
)

// DefaultName is the server key written into client configs.
const DefaultName = "letta"

// Entry is one MCP server registration as MCP clients understand it.
type Entry struct {
	// Name is the map key in the client config and is not serialized.
	Name string `json:"-" toml:"-"`

	Type    string            `json:"type,omitempty" toml:"type,omitempty"`
	Command string            `json:"command,omitempty" toml:"command,omitempty"`
	Args    []string          `json:"args,omitempty" toml:"args,omitempty"`
	URL     string            `json:"url,omitempty" toml:"url,omitempty"`
	Env     map[string]string `json:"env,omitempty" toml:"env,omitempty"`

	// unknownFields keeps per-entry keys this package does not model.
	unknownFields map[string]json.RawMessage
}

// MarshalJSON writes the modeled fields over any preserved unknown ones.
func (e *Entry) MarshalJSON() ([]byte, error) {
	type plain Entry
	known, err := json.Marshal((*plain)(e))
	if err != nil {
		return nil, err
	}
	if len(e.unknownFields) == 0 {
		return known, nil
	}

	merged := make(map[string]json.RawMessage, len(e.unknownFields)+4)
	for k, v := range e.unknownFields {
		merged[k] = v
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// UnmarshalJSON reads the modeled fields and keeps the rest.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	if err := json.Unmarshal(data, (*plain)(e)); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range []string{"type", "command", "args", "url", "env"} {
		delete(raw, k)
	}
	if len(raw) > 0 {
		e.unknownFields = raw
	}
	return nil
}

// EntryOptions describes how the bridge should be launched by a client.
type EntryOptions struct {
	Name       string
	Executable string
	Args       []string
	Config     *config.Config
}

// NewEntry builds the stdio registration for letta-mcp. The environment
// carries the connection settings so the client-launched process does not
// depend on a config file.
func NewEntry(opts EntryOptions) *Entry {
	name := opts.Name
	if name == "" {
		name = DefaultName
	}
	args := opts.Args
	if len(args) == 0 {
		args = []string{"run"}
	}

	e := &Entry{
		Name:    name,
		Command: opts.Executable,
		Args:    args,
	}
	if cfg := opts.Config; cfg != nil {
		e.Env = map[string]string{
			"LETTA_BASE_URL":    cfg.BaseURL,
			"LETTA_TIMEOUT":     strconv.Itoa(cfg.Timeout),
			"LETTA_MAX_RETRIES": strconv.Itoa(cfg.MaxRetries),
		}
		if cfg.APIKey != "" {
			e.Env["LETTA_API_KEY"] = cfg.APIKey
		}
	}
	return e
}

// Masked returns a copy with the API key replaced, for display.
func (e *Entry) Masked() *Entry {
	out := *e
	out.Env = redact.Env(e.Env)
	return &out
}
