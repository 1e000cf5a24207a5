package form

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/linskybing/dynamic-forms/internal/domain/errs"
)

// FormSchema is one published, immutable version of a form's fields.
type FormSchema struct {
	FormID  string     `json:"formId"`
	Version int        `json:"version"`
	Title   string     `json:"title,omitempty"`
	Fields  []FieldDef `json:"fields"`
	// AllowMultipleSubmissions unset means allowed.
	AllowMultipleSubmissions *bool `json:"allowMultipleSubmissions,omitempty"`
}

// MultipleSubmissionsAllowed reports whether one user may submit this form
// more than once.
func (s *FormSchema) MultipleSubmissionsAllowed() bool {
	return s.AllowMultipleSubmissions == nil || *s.AllowMultipleSubmissions
}

func (s *FormSchema) Field(key string) (FieldDef, bool) {
	i := s.index(key)
	if i < 0 {
		return FieldDef{}, false
	}
	return s.Fields[i], true
}

func (s *FormSchema) index(key string) int {
	for i := range s.Fields {
		if s.Fields[i].Key == key {
			return i
		}
	}
	return -1
}

// SchemaStore resolves a published schema version.
type SchemaStore interface {
	Get(ctx context.Context, formID string, version int) (*FormSchema, error)
}

// SchemaDiff lists field keys that changed between two versions, each sorted.
type SchemaDiff struct {
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
	Retyped []string `json:"retyped"`
}

// Historical reports whether values of key must be shown as recorded rather
// than re-validated under the newer version.
func (d SchemaDiff) Historical(key string) bool {
	return containsString(d.Removed, key) || containsString(d.Retyped, key)
}

func Diff(older, newer *FormSchema) SchemaDiff {
	d := SchemaDiff{Added: []string{}, Removed: []string{}, Retyped: []string{}}
	for _, f := range newer.Fields {
		old, ok := older.Field(f.Key)
		switch {
		case !ok:
			d.Added = append(d.Added, f.Key)
		case old.Type != f.Type:
			d.Retyped = append(d.Retyped, f.Key)
		}
	}
	for _, f := range older.Fields {
		if _, ok := newer.Field(f.Key); !ok {
			d.Removed = append(d.Removed, f.Key)
		}
	}
	sort.Strings(d.Added)
	sort.Strings(d.Removed)
	sort.Strings(d.Retyped)
	return d
}

// CheckInvariants rejects schemas the engine cannot evaluate totally.
func CheckInvariants(s *FormSchema) error {
	const op = "form.CheckInvariants"
	if s.FormID == "" {
		return errs.New(errs.KindSchemaInvariantViolation, op, "formId is required")
	}
	if len(s.Fields) == 0 {
		return errs.New(errs.KindSchemaInvariantViolation, op, "schema must contain at least one field")
	}
	seen := map[string]bool{}
	for i, f := range s.Fields {
		if f.Key == "" {
			return errs.New(errs.KindSchemaInvariantViolation, op, "field at index %d has no key", i)
		}
		if seen[f.Key] {
			return errs.New(errs.KindSchemaInvariantViolation, op, "duplicate field key %q", f.Key)
		}
		seen[f.Key] = true
		if !f.Type.Valid() {
			return errs.New(errs.KindSchemaInvariantViolation, op, "field %q has invalid type %q", f.Key, f.Type)
		}
		if err := checkOptions(f); err != nil {
			return errs.New(errs.KindSchemaInvariantViolation, op, "%v", err)
		}
		if err := CheckVisibility(s, i); err != nil {
			return err
		}
		for j, r := range f.Validations {
			if err := checkRule(s, r); err != nil {
				return errs.New(errs.KindSchemaInvariantViolation, op, "field %q rule %d: %v", f.Key, j, err)
			}
		}
	}
	return nil
}

// CheckVisibility verifies the visibility rule of field i references only
// fields declared before it.
func CheckVisibility(s *FormSchema, i int) error {
	f := s.Fields[i]
	if f.VisibleWhen == nil {
		return nil
	}
	if err := checkExpression(f.VisibleWhen); err != nil {
		return errs.New(errs.KindSchemaInvariantViolation, "form.CheckVisibility", "field %q: %v", f.Key, err)
	}
	for _, ref := range f.VisibleWhen.Refs() {
		j := s.index(ref)
		if j < 0 {
			return errs.New(errs.KindSchemaInvariantViolation, "form.CheckVisibility",
				"field %q visibility references undeclared field %q", f.Key, ref)
		}
		if j >= i {
			return errs.New(errs.KindSchemaInvariantViolation, "form.CheckVisibility",
				"field %q visibility depends on %q, which is not declared before it", f.Key, ref)
		}
	}
	return nil
}

func checkOptions(f FieldDef) error {
	if !f.Type.HasOptions() {
		return nil
	}
	if len(f.Options) == 0 {
		return fmt.Errorf("field %q of type %q requires a non-empty options list", f.Key, f.Type)
	}
	values := map[string]bool{}
	for i, o := range f.Options {
		if o.Value == "" || o.Label == "" {
			return fmt.Errorf("option %d in field %q must have label and value", i, f.Key)
		}
		if values[o.Value] {
			return fmt.Errorf("duplicate option value %q in field %q", o.Value, f.Key)
		}
		values[o.Value] = true
	}
	return nil
}

func checkRule(s *FormSchema, r ValidationRule) error {
	switch r.Kind {
	case RuleBuiltin:
		if !r.Builtin.declarable() {
			return fmt.Errorf("unknown builtin %q", r.Builtin)
		}
		if r.Builtin.needsLimit() && r.Limit == nil {
			return fmt.Errorf("builtin %q requires a limit", r.Builtin)
		}
		if r.Builtin == BuiltinFileType && len(r.Accept) == 0 {
			return fmt.Errorf("builtin %q requires accept", r.Builtin)
		}
	case RuleRegex:
		if _, err := regexp.Compile(r.Pattern); err != nil {
			return fmt.Errorf("invalid pattern: %w", err)
		}
	case RuleConditional:
		if r.When == nil || r.Then == nil {
			return fmt.Errorf("conditional rule requires when and then")
		}
		if err := checkExpression(r.When); err != nil {
			return err
		}
		for _, ref := range r.When.Refs() {
			if s.index(ref) < 0 {
				return fmt.Errorf("condition references undeclared field %q", ref)
			}
		}
		return checkRule(s, *r.Then)
	default:
		return fmt.Errorf("unknown rule kind %q", r.Kind)
	}
	return nil
}

func checkExpression(e *Expression) error {
	if e == nil {
		return nil
	}
	if !e.Op.valid() {
		return fmt.Errorf("unknown operator %q", e.Op)
	}
	if e.Op.combinator() {
		if len(e.Args) == 0 {
			return fmt.Errorf("operator %q requires arguments", e.Op)
		}
		if e.Op == OpNot && len(e.Args) != 1 {
			return fmt.Errorf("operator not takes exactly one argument")
		}
		for _, a := range e.Args {
			if err := checkExpression(a); err != nil {
				return err
			}
		}
		return nil
	}
	if e.Field == "" {
		return fmt.Errorf("operator %q requires a field", e.Op)
	}
	return nil
}
