package resource

import (
	"fmt"
	"strings"
	"unicode"
)

type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindDate
	KindStringList
	KindRef
)

// Field describes one payload field: its JSON name, how to validate it and
// what to fill in when a create payload omits it.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Enum     []string
	Min      *float64
	Default  any
	Unique   bool
}

// Min is a convenience for Field.Min literals.
func Min(v float64) *float64 { return &v }

// Schema is the per-resource configuration the generic engine runs on. Name is
// the lowercase label used in client-facing messages ("task", "planning
// template"); ListOrder is the SQL clause FindAll sorts by.
type Schema struct {
	Name      string
	ListOrder string
	Fields    []Field
}

// Label returns the schema name with its first letter upper-cased, for
// "<Label> not found" messages.
func (s Schema) Label() string {
	r := []rune(s.Name)
	if len(r) == 0 {
		return ""
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func (s Schema) NotFoundMessage() string { return s.Label() + " not found" }

// Missing returns the names of required fields that are absent, null or blank
// in the payload.
func (s Schema) Missing(payload map[string]any) []string {
	var missing []string
	for _, f := range s.Fields {
		if !f.Required {
			continue
		}
		v, ok := payload[f.Name]
		if !ok || v == nil {
			missing = append(missing, f.Name)
			continue
		}
		if str, isStr := v.(string); isStr && strings.TrimSpace(str) == "" {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// Blank returns the names of required fields that are present in the payload
// but null or blank. Used on partial updates, where absent fields are fine but
// a required field must not be emptied out.
func (s Schema) Blank(payload map[string]any) []string {
	var blank []string
	for _, f := range s.Fields {
		if !f.Required {
			continue
		}
		v, ok := payload[f.Name]
		if !ok {
			continue
		}
		if v == nil {
			blank = append(blank, f.Name)
			continue
		}
		if str, isStr := v.(string); isStr && strings.TrimSpace(str) == "" {
			blank = append(blank, f.Name)
		}
	}
	return blank
}

func (s Schema) MissingMessage(fields []string) string {
	noun := "field"
	if len(fields) > 1 {
		noun = "fields"
	}
	return fmt.Sprintf("Missing required %s %s: %s", s.Name, noun, strings.Join(fields, ", "))
}

// Normalize trims string fields in place and, when applyDefaults is set,
// fills in schema defaults for absent fields. Defaults are only applied on
// create: a partial update must not resurrect them.
func (s Schema) Normalize(payload map[string]any, applyDefaults bool) {
	for _, f := range s.Fields {
		v, ok := payload[f.Name]
		if !ok {
			if applyDefaults && f.Default != nil {
				payload[f.Name] = f.Default
			}
			continue
		}
		if str, isStr := v.(string); isStr {
			payload[f.Name] = strings.TrimSpace(str)
		}
	}
}

// Check validates enum membership and numeric minimums on the fields present
// in the payload. Fields the schema does not know about pass through
// untouched; the store simply ignores them.
func (s Schema) Check(payload map[string]any) *ValidationError {
	var problems []string
	for _, f := range s.Fields {
		v, ok := payload[f.Name]
		if !ok || v == nil {
			continue
		}
		switch f.Kind {
		case KindNumber:
			n, isNum := asNumber(v)
			if !isNum {
				problems = append(problems, f.Name+" must be a number")
				continue
			}
			if f.Min != nil && n < *f.Min {
				problems = append(problems, fmt.Sprintf("%s must be at least %g", f.Name, *f.Min))
			}
		case KindString:
			str, isStr := v.(string)
			if !isStr {
				problems = append(problems, f.Name+" must be a string")
				continue
			}
			if len(f.Enum) > 0 && str != "" && !contains(f.Enum, str) {
				problems = append(problems, fmt.Sprintf("%s must be one of: %s", f.Name, strings.Join(f.Enum, ", ")))
			}
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Message: strings.Join(problems, "; ")}
}

// UniqueMessage names the schema's unique fields, for duplicate-key errors.
func (s Schema) UniqueMessage() string {
	var names []string
	for _, f := range s.Fields {
		if f.Unique {
			names = append(names, f.Name)
		}
	}
	if len(names) == 0 {
		return s.Name + " violates a unique constraint"
	}
	return strings.Join(names, ", ") + " must be unique"
}

// asNumber accepts both decoded JSON numbers and the int literals schema
// defaults are written with.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
