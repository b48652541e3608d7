package dispatch

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"sort"
	"unicode/utf8"
)

// maxExactInt is the largest integer a JSON number carries without loss.
const maxExactInt = 1 << 53

// Args are validated, normalized arguments. Integers are int, numbers are
// float64, arrays are []any, objects are map[string]any.
type Args map[string]any

// Has reports whether name was supplied or defaulted.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String returns a string argument or "".
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Int returns an integer argument or 0.
func (a Args) Int(name string) int {
	n, _ := a[name].(int)
	return n
}

// Float returns a number argument or 0.
func (a Args) Float(name string) float64 {
	switch v := a[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Bool returns a boolean argument or false.
func (a Args) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// Strings returns the string elements of an array argument.
func (a Args) Strings(name string) []string {
	items, _ := a[name].([]any)
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Object returns an object argument or nil.
func (a Args) Object(name string) map[string]any {
	m, _ := a[name].(map[string]any)
	return m
}

// validate checks raw against the tool schema and returns normalized Args
// with defaults applied. Fields are checked in declaration order so the
// first reported problem is deterministic.
func (t *Tool) validate(raw map[string]any) (Args, error) {
	var unknown []string
	for k := range raw {
		if _, ok := t.Param(k); !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &ValidationError{Field: unknown[0], Reason: "is not a known argument"}
	}

	args := make(Args, len(t.Params))
	for _, p := range t.Params {
		v, present := raw[p.Name]
		if !present || v == nil {
			if p.Required {
				return nil, &ValidationError{Field: p.Name, Reason: "is required"}
			}
			if p.Default != nil {
				v = p.Default
			} else {
				continue
			}
		}

		norm, verr := coerce(p, v)
		if verr != nil {
			return nil, verr
		}
		if p.Required && p.Type == TypeString && norm.(string) == "" {
			return nil, &ValidationError{Field: p.Name, Reason: "must not be empty"}
		}
		args[p.Name] = norm
	}

	if t.Mode == Destructive && !args.Bool(ConfirmParam) {
		return nil, &ValidationError{Field: ConfirmParam, Reason: "must be true to perform a destructive operation"}
	}
	return args, nil
}

// coerce checks v against p and returns its normalized form.
func coerce(p Param, v any) (any, *ValidationError) {
	fail := func(format string, a ...any) (any, *ValidationError) {
		return nil, &ValidationError{Field: p.Name, Reason: fmt.Sprintf(format, a...)}
	}

	switch p.Type {
	case TypeString:
		s, ok := v.(string)
		if !ok {
			return fail("must be a string")
		}
		n := float64(utf8.RuneCountInString(s))
		if p.Min != nil && n < *p.Min {
			return fail("must be at least %g characters", *p.Min)
		}
		if p.Max != nil && n > *p.Max {
			return fail("must be at most %g characters", *p.Max)
		}
		return s, nil

	case TypeBoolean:
		b, ok := v.(bool)
		if !ok {
			return fail("must be a boolean")
		}
		return b, nil

	case TypeInteger, TypeNumber:
		f, ok := number(v)
		if !ok {
			return fail("must be a number")
		}
		if p.Type == TypeInteger {
			if f != math.Trunc(f) || math.IsInf(f, 0) {
				return fail("must be an integer")
			}
		}
		if p.Min != nil && f < *p.Min {
			return fail("must be >= %g", *p.Min)
		}
		if p.Max != nil && f > *p.Max {
			return fail("must be <= %g", *p.Max)
		}
		if p.Type == TypeInteger {
			if math.Abs(f) > maxExactInt {
				return fail("is out of range")
			}
			return int(f), nil
		}
		return f, nil

	case TypeArray:
		items, ok := v.([]any)
		if !ok {
			if ss, isStrings := v.([]string); isStrings {
				items = make([]any, len(ss))
				for i, s := range ss {
					items[i] = s
				}
			} else {
				return fail("must be an array")
			}
		}
		items = slices.Clone(items)
		if p.Items != "" {
			for i, it := range items {
				norm, err := coerce(Param{Name: fmt.Sprintf("%s[%d]", p.Name, i), Type: p.Items}, it)
				if err != nil {
					return nil, err
				}
				items[i] = norm
			}
		}
		return items, nil

	case TypeObject:
		m, ok := v.(map[string]any)
		if !ok {
			return fail("must be an object")
		}
		return m, nil
	}
	return fail("has unsupported type %q", p.Type)
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
