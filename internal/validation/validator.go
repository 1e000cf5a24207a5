// Package validation checks a submitted payload against a published form schema.
package validation

import (
	"github.com/linskybing/dynamic-forms/internal/domain/form"
)

// FieldError is one failed check. Rule is the rule that failed; required and
// type failures carry an engine-emitted builtin rule.
type FieldError struct {
	FieldKey string              `json:"field"`
	Rule     form.ValidationRule `json:"rule"`
	Message  string              `json:"message"`
}

// Result lists errors in field declaration order, then rule declaration
// order. VisibleFields keeps declaration order as well.
type Result struct {
	Errors        []FieldError `json:"errors"`
	VisibleFields []string     `json:"visibleFields"`
}

func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

func (r *Result) IsVisible(key string) bool {
	for _, k := range r.VisibleFields {
		if k == key {
			return true
		}
	}
	return false
}

// ErrorsFor returns the errors reported for one field.
func (r *Result) ErrorsFor(key string) []FieldError {
	var out []FieldError
	for _, e := range r.Errors {
		if e.FieldKey == key {
			out = append(out, e)
		}
	}
	return out
}

// Validate runs the schema's visibility and validation rules over payload.
// It never modifies payload. The only error is a schema invariant violation.
func Validate(schema *form.FormSchema, payload form.Payload) (*Result, error) {
	res := &Result{Errors: []FieldError{}, VisibleFields: []string{}}

	// Invisible fields read as empty for every later rule, so hiding a field
	// also hides what depends on it.
	effective := make(form.Payload, len(payload))
	visible := make([]bool, len(schema.Fields))
	for i, f := range schema.Fields {
		if err := form.CheckVisibility(schema, i); err != nil {
			return nil, err
		}
		visible[i] = form.Evaluate(schema, f.VisibleWhen, effective)
		if v, ok := payload[f.Key]; ok && visible[i] {
			effective[f.Key] = v
		}
		if visible[i] {
			res.VisibleFields = append(res.VisibleFields, f.Key)
		}
	}

	for i, f := range schema.Fields {
		if !visible[i] {
			continue
		}
		v, ok := payload[f.Key]
		if !ok || v.IsEmpty() {
			if f.Required {
				res.Errors = append(res.Errors, FieldError{
					FieldKey: f.Key,
					Rule:     form.Builtin(form.BuiltinRequired),
					Message:  "Field '" + f.DisplayName() + "' is required",
				})
			}
			continue
		}
		shaped := true
		if msg, ok := checkShape(f, v); !ok {
			res.Errors = append(res.Errors, FieldError{FieldKey: f.Key, Rule: form.Builtin(form.BuiltinType), Message: msg})
			shaped = false
		}
		for _, rule := range f.Validations {
			// Builtins assume a well-shaped value; patterns only read text.
			if !shaped && !textRule(rule) {
				continue
			}
			if fe, failed := runRule(schema, f, rule, rule, v, effective); failed {
				res.Errors = append(res.Errors, fe)
			}
		}
	}
	return res, nil
}

// runRule applies rule; declared is the top-level rule reported on failure.
func runRule(schema *form.FormSchema, f form.FieldDef, declared, rule form.ValidationRule, v form.Value, effective form.Payload) (FieldError, bool) {
	switch rule.Kind {
	case form.RuleConditional:
		if rule.Then == nil || !form.Evaluate(schema, rule.When, effective) {
			return FieldError{}, false
		}
		return runRule(schema, f, declared, *rule.Then, v, effective)
	case form.RuleRegex:
		if msg, ok := checkRegex(f, rule, v); !ok {
			return FieldError{FieldKey: f.Key, Rule: declared, Message: messageFor(rule, msg)}, true
		}
	case form.RuleBuiltin:
		if msg, ok := checkBuiltin(f, rule, v); !ok {
			return FieldError{FieldKey: f.Key, Rule: declared, Message: messageFor(rule, msg)}, true
		}
	}
	return FieldError{}, false
}

// textRule reports whether rule resolves to a regex, possibly behind conditionals.
func textRule(rule form.ValidationRule) bool {
	switch rule.Kind {
	case form.RuleRegex:
		return true
	case form.RuleConditional:
		return rule.Then != nil && textRule(*rule.Then)
	}
	return false
}

func messageFor(rule form.ValidationRule, fallback string) string {
	if rule.Message != "" {
		return rule.Message
	}
	return fallback
}
