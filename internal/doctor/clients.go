package doctor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/letta-mcp/internal/clientconfig"
	"github.com/thoreinstein/letta-mcp/internal/errors"
	"github.com/thoreinstein/letta-mcp/pkg/fileutil"
)

// RegistrationCheck reports which MCP clients have a letta-mcp entry.
type RegistrationCheck struct {
	name string
	scan func(name string) []clientconfig.Registration
}

var _ Check = (*RegistrationCheck)(nil)

// NewRegistrationCheck looks for entries called name in every supported
// client.
func NewRegistrationCheck(name string) *RegistrationCheck {
	return &RegistrationCheck{name: name, scan: clientconfig.Scan}
}

func (c *RegistrationCheck) Name() string     { return "registration" }
func (c *RegistrationCheck) Category() string { return CategoryClients }

func (c *RegistrationCheck) Run(context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	regs := c.scan(c.name)
	var registered []string
	clients := make([]map[string]any, 0, len(regs))
	for _, r := range regs {
		entry := map[string]any{"client": r.Client, "path": r.Path, "registered": r.Registered}
		if r.Err != nil {
			entry["error"] = r.Err.Error()
		}
		clients = append(clients, entry)
		if r.Registered {
			registered = append(registered, r.Client)
		}
	}
	result.Details = map[string]any{"clients": clients}

	if len(registered) == 0 {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("no MCP client has a %q server entry", c.name)
		result.FixHint = "run 'letta-mcp configure --client <client>'"
		return result
	}

	result.Status = SeverityPass
	result.Message = "registered in " + strings.Join(registered, ", ")
	return result
}

// ConfigSyntaxCheck parses each existing client config and reports syntax
// errors with their position.
type ConfigSyntaxCheck struct {
	managers []*clientconfig.Manager
}

var _ Check = (*ConfigSyntaxCheck)(nil)

// NewConfigSyntaxCheck validates the given client configs. Files that do not
// exist are skipped.
func NewConfigSyntaxCheck(managers []*clientconfig.Manager) *ConfigSyntaxCheck {
	return &ConfigSyntaxCheck{managers: managers}
}

func (c *ConfigSyntaxCheck) Name() string     { return "client-config-syntax" }
func (c *ConfigSyntaxCheck) Category() string { return CategoryClients }

// syntaxFileResult is the validation outcome for one file.
type syntaxFileResult struct {
	Client string `json:"client"`
	Path   string `json:"path"`
	Error  string `json:"error,omitempty"`
}

func (c *ConfigSyntaxCheck) Run(context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category(), Details: map[string]any{}}

	var files []syntaxFileResult
	var errorCount int
	for _, m := range c.managers {
		if !m.Exists() {
			continue
		}
		fr := syntaxFileResult{Client: m.Client(), Path: m.Path()}
		if err := m.Validate(); err != nil {
			fr.Error = describeSyntaxError(m.Path(), err)
			errorCount++
		}
		files = append(files, fr)
	}

	result.Details["files"] = files
	result.Details["checked"] = len(files)

	switch {
	case errorCount > 0:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d client config file(s) have syntax errors", errorCount)
		result.FixHint = "fix the reported files; configure refuses to edit a file it cannot parse"
	case len(files) > 0:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d client config file(s) parsed", len(files))
	default:
		result.Status = SeverityInfo
		result.Message = "no client config files found"
	}
	return result
}

func describeSyntaxError(path string, err error) string {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		return formatTOMLError(decodeErr)
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		data, readErr := fileutil.ReadFileWithLimit(path)
		if readErr == nil {
			return formatJSONError(err, data)
		}
	}
	return err.Error()
}

// formatJSONError extracts position information from JSON syntax errors.
func formatJSONError(err error, data []byte) string {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := offsetToLineCol(data, int(syntaxErr.Offset))
		return fmt.Sprintf("JSON syntax error at line %d, column %d: %s", line, col, syntaxErr.Error())
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		line, col := offsetToLineCol(data, int(typeErr.Offset))
		return fmt.Sprintf("JSON type error at line %d, column %d: %s", line, col, typeErr.Error())
	}

	return fmt.Sprintf("JSON error: %v", err)
}

// formatTOMLError extracts position information from TOML decode errors.
func formatTOMLError(err *toml.DecodeError) string {
	row, col := err.Position()
	return fmt.Sprintf("TOML syntax error at line %d, column %d: %s", row, col, err.Error())
}

// offsetToLineCol converts a byte offset to 1-indexed line and column.
func offsetToLineCol(data []byte, offset int) (line, col int) {
	offset = max(0, min(offset, len(data)))

	line = 1
	lineStart := 0
	for i := range offset {
		if data[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, offset - lineStart + 1
}

// KeyFilePermissionCheck warns when a file holding the Letta API key is
// accessible to other users, and can chmod it back to 0600.
type KeyFilePermissionCheck struct {
	paths []string
	loose []looseFile
}

var (
	_ Check = (*KeyFilePermissionCheck)(nil)
	_ Fixer = (*KeyFilePermissionCheck)(nil)
)

// NewKeyFilePermissionCheck inspects the given files. Callers pass only
// files known to contain the key.
func NewKeyFilePermissionCheck(paths []string) *KeyFilePermissionCheck {
	return &KeyFilePermissionCheck{paths: paths}
}

func (c *KeyFilePermissionCheck) Name() string     { return "key-file-permissions" }
func (c *KeyFilePermissionCheck) Category() string { return CategoryClients }

func (c *KeyFilePermissionCheck) Run(context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}
	c.loose = nil

	if runtime.GOOS == "windows" {
		result.Status = SeverityInfo
		result.Message = "skipped on windows"
		return result
	}

	for _, path := range c.paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if perm := info.Mode().Perm(); perm&0o077 != 0 {
			c.loose = append(c.loose, looseFile{path: path, perm: perm})
		}
	}

	if len(c.loose) == 0 {
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d file(s) holding the API key are private", len(c.paths))
		return result
	}

	details := make([]map[string]string, 0, len(c.loose))
	for _, f := range c.loose {
		details = append(details, map[string]string{
			"path":        f.path,
			"problem":     "readable or writable by other users",
			"permissions": fmt.Sprintf("%04o", f.perm),
		})
	}
	result.Status = SeverityWarning
	result.Message = fmt.Sprintf("%d file(s) holding the API key are accessible to other users", len(c.loose))
	result.Details = map[string]any{"issues": details}
	result.Fixable = true
	result.FixHint = "run 'letta-mcp doctor --fix' or chmod 600 the listed files"
	return result
}

func (c *KeyFilePermissionCheck) CanFix() bool { return len(c.loose) > 0 }

func (c *KeyFilePermissionCheck) Fix() []FixResult {
	results := make([]FixResult, 0, len(c.loose))
	for _, f := range c.loose {
		results = append(results, f.restrict())
	}
	return results
}
