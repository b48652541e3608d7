package dispatch

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/thoreinstein/letta-mcp/internal/errors"
)

// MaxDescriptionChars bounds tool descriptions advertised to clients.
const MaxDescriptionChars = 200

// Type is a JSON schema primitive type.
type Type string

// Supported parameter types.
const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
)

func (t Type) valid() bool {
	switch t {
	case TypeString, TypeInteger, TypeNumber, TypeBoolean, TypeObject, TypeArray:
		return true
	}
	return false
}

// Mode describes a tool's side effects.
type Mode int

const (
	// ReadOnly tools never change upstream state and are safe to repeat.
	ReadOnly Mode = iota
	// Write tools change upstream state.
	Write
	// Destructive tools irreversibly remove upstream state. They require
	// confirm=true.
	Destructive
)

func (m Mode) String() string {
	switch m {
	case ReadOnly:
		return "read"
	case Write:
		return "write"
	case Destructive:
		return "destructive"
	default:
		return "unknown"
	}
}

// ConfirmParam is the argument destructive tools must set to true.
const ConfirmParam = "confirm"

// Param describes one tool argument.
type Param struct {
	Name        string
	Type        Type
	Required    bool
	Description string
	// Default is applied when the argument is absent. Must match Type.
	Default any
	// Min and Max bound numeric arguments, and the length of strings.
	Min *float64
	Max *float64
	// Items is the element type of array parameters.
	Items Type
}

// Bound is a convenience for Param.Min and Param.Max.
func Bound(v float64) *float64 {
	return &v
}

// Result is what a handler returns on success.
type Result struct {
	Data any
	// Meta carries shaping details merged into the envelope metadata.
	Meta Metadata
}

// Handler executes a validated tool call.
type Handler func(ctx context.Context, args Args) (Result, error)

// Tool is one entry of the static tool table.
type Tool struct {
	Name        string
	Description string
	Params      []Param
	Mode        Mode
	Handler     Handler
}

// Param returns the parameter named name.
func (t *Tool) Param(name string) (Param, bool) {
	for _, p := range t.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

func (t *Tool) check() error {
	if t.Name == "" {
		return errors.New("tool name is required")
	}
	if t.Handler == nil {
		return errors.Newf("tool %s: handler is required", t.Name)
	}
	if n := utf8.RuneCountInString(t.Description); n > MaxDescriptionChars {
		return errors.Newf("tool %s: description is %d chars, limit is %d", t.Name, n, MaxDescriptionChars)
	}

	seen := make(map[string]bool, len(t.Params))
	for _, p := range t.Params {
		if p.Name == "" {
			return errors.Newf("tool %s: parameter name is required", t.Name)
		}
		if seen[p.Name] {
			return errors.Newf("tool %s: duplicate parameter %s", t.Name, p.Name)
		}
		seen[p.Name] = true
		if !p.Type.valid() {
			return errors.Newf("tool %s: parameter %s has unsupported type %q", t.Name, p.Name, p.Type)
		}
		if p.Default != nil {
			if _, err := coerce(p, p.Default); err != nil {
				return errors.Newf("tool %s: parameter %s default: %s", t.Name, p.Name, err.Reason)
			}
		}
	}

	if t.Mode == Destructive {
		p, ok := t.Param(ConfirmParam)
		if !ok || p.Type != TypeBoolean {
			return errors.Newf("tool %s: destructive tools need a boolean %s parameter", t.Name, ConfirmParam)
		}
	}
	return nil
}

// ValidationError reports an argument that does not satisfy a tool schema.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}
