package form

import (
	"testing"

	"github.com/linskybing/dynamic-forms/internal/domain/errs"
	"github.com/stretchr/testify/assert"
)

func validSchema() *FormSchema {
	return &FormSchema{FormID: "intake", Version: 1, Fields: []FieldDef{
		{Key: "kind", Type: FieldRadio, Options: []Option{{Value: "a", Label: "A"}, {Value: "b", Label: "B"}}},
		{Key: "notes", Type: FieldTextarea, VisibleWhen: &Expression{Op: OpEq, Field: "kind", Value: "b"},
			Validations: []ValidationRule{BuiltinLimit(BuiltinMaxLength, 200)}},
	}}
}

func TestCheckInvariants_Valid(t *testing.T) {
	assert.NoError(t, CheckInvariants(validSchema()))
}

func TestCheckInvariants_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *FormSchema)
	}{
		{"missing form id", func(s *FormSchema) { s.FormID = "" }},
		{"no fields", func(s *FormSchema) { s.Fields = nil }},
		{"empty key", func(s *FormSchema) { s.Fields[1].Key = "" }},
		{"duplicate key", func(s *FormSchema) { s.Fields[1].Key = "kind" }},
		{"unknown type", func(s *FormSchema) { s.Fields[1].Type = "colour" }},
		{"options missing", func(s *FormSchema) { s.Fields[0].Options = nil }},
		{"duplicate option", func(s *FormSchema) { s.Fields[0].Options[1].Value = "a" }},
		{"option without label", func(s *FormSchema) { s.Fields[0].Options[1].Label = "" }},
		{"forward visibility", func(s *FormSchema) {
			s.Fields[0].VisibleWhen = &Expression{Op: OpNotEmpty, Field: "notes"}
		}},
		{"self visibility", func(s *FormSchema) {
			s.Fields[1].VisibleWhen = &Expression{Op: OpNotEmpty, Field: "notes"}
		}},
		{"undeclared visibility ref", func(s *FormSchema) {
			s.Fields[1].VisibleWhen = &Expression{Op: OpNotEmpty, Field: "ghost"}
		}},
		{"unknown operator", func(s *FormSchema) { s.Fields[1].VisibleWhen.Op = "like" }},
		{"not with two args", func(s *FormSchema) {
			s.Fields[1].VisibleWhen = &Expression{Op: OpNot, Args: []*Expression{
				{Op: OpEmpty, Field: "kind"}, {Op: OpEmpty, Field: "kind"},
			}}
		}},
		{"leaf without field", func(s *FormSchema) { s.Fields[1].VisibleWhen.Field = "" }},
		{"unknown builtin", func(s *FormSchema) {
			s.Fields[1].Validations = []ValidationRule{Builtin("palindrome")}
		}},
		{"engine builtin declared", func(s *FormSchema) {
			s.Fields[1].Validations = []ValidationRule{Builtin(BuiltinRequired)}
		}},
		{"limit missing", func(s *FormSchema) {
			s.Fields[1].Validations = []ValidationRule{Builtin(BuiltinMinLength)}
		}},
		{"file type without accept", func(s *FormSchema) {
			s.Fields[1].Validations = []ValidationRule{Builtin(BuiltinFileType)}
		}},
		{"bad regex", func(s *FormSchema) {
			s.Fields[1].Validations = []ValidationRule{Regex("([a-z")}
		}},
		{"conditional without then", func(s *FormSchema) {
			s.Fields[1].Validations = []ValidationRule{{Kind: RuleConditional, When: &Expression{Op: OpEmpty, Field: "kind"}}}
		}},
		{"conditional undeclared ref", func(s *FormSchema) {
			s.Fields[1].Validations = []ValidationRule{
				Conditional(&Expression{Op: OpEmpty, Field: "ghost"}, Builtin(BuiltinEmail)),
			}
		}},
		{"conditional with bad nested rule", func(s *FormSchema) {
			s.Fields[1].Validations = []ValidationRule{
				Conditional(&Expression{Op: OpEmpty, Field: "kind"}, Regex("(")),
			}
		}},
		{"unknown rule kind", func(s *FormSchema) {
			s.Fields[1].Validations = []ValidationRule{{Kind: "script"}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSchema()
			tt.mutate(s)
			err := CheckInvariants(s)
			assert.ErrorIs(t, err, errs.ErrSchemaInvariantViolation)
		})
	}
}

func TestCheckInvariants_ConditionalMayReferenceLaterField(t *testing.T) {
	s := validSchema()
	s.Fields[0].Validations = []ValidationRule{
		Conditional(&Expression{Op: OpNotEmpty, Field: "notes"}, BuiltinLimit(BuiltinMinLength, 1)),
	}
	assert.NoError(t, CheckInvariants(s))
}

func TestDiff(t *testing.T) {
	older := &FormSchema{FormID: "f", Version: 1, Fields: []FieldDef{
		{Key: "name", Type: FieldText},
		{Key: "age", Type: FieldText},
		{Key: "fax", Type: FieldPhone},
	}}
	newer := &FormSchema{FormID: "f", Version: 2, Fields: []FieldDef{
		{Key: "name", Type: FieldText},
		{Key: "age", Type: FieldNumber},
		{Key: "email", Type: FieldEmail},
		{Key: "city", Type: FieldText},
	}}

	d := Diff(older, newer)
	assert.Equal(t, []string{"city", "email"}, d.Added)
	assert.Equal(t, []string{"fax"}, d.Removed)
	assert.Equal(t, []string{"age"}, d.Retyped)

	assert.True(t, d.Historical("fax"))
	assert.True(t, d.Historical("age"))
	assert.False(t, d.Historical("name"))
	assert.False(t, d.Historical("email"))
}

func TestDiff_SameSchemaIsEmpty(t *testing.T) {
	s := validSchema()
	d := Diff(s, s)
	assert.Empty(t, d.Added)
	assert.Empty(t, d.Removed)
	assert.Empty(t, d.Retyped)
	assert.NotNil(t, d.Added)
}
