package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/linskybing/dynamic-forms/internal/domain/errs"
	"github.com/linskybing/dynamic-forms/pkg/utils"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const documentSchemaURL = "https://dynamic-forms.local/schemas/form-schema.json"

// documentSchema describes the document the form builder produces.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["formId", "fields"],
  "properties": {
    "formId": {"type": "string", "minLength": 1},
    "version": {"type": "integer", "minimum": 0},
    "title": {"type": "string"},
    "allowMultipleSubmissions": {"type": "boolean"},
    "fields": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["key", "type"],
        "properties": {
          "key": {"type": "string", "minLength": 1},
          "label": {"type": "string"},
          "type": {"enum": ["text", "textarea", "number", "email", "phone", "date", "datetime",
            "single-select", "multi-select", "checkbox", "radio", "file-single", "file-multi",
            "richtext", "rating", "slider", "address"]},
          "required": {"type": "boolean"},
          "options": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["value", "label"],
              "properties": {"value": {"type": "string"}, "label": {"type": "string"}}
            }
          },
          "validations": {"type": "array", "items": {"$ref": "#/$defs/rule"}},
          "visibleWhen": {"$ref": "#/$defs/expr"}
        }
      }
    }
  },
  "$defs": {
    "rule": {
      "type": "object",
      "required": ["kind"],
      "properties": {
        "kind": {"enum": ["builtin", "regex", "conditional"]},
        "builtin": {"type": "string"},
        "limit": {"type": "number"},
        "accept": {"type": "array", "items": {"type": "string"}},
        "pattern": {"type": "string"},
        "when": {"$ref": "#/$defs/expr"},
        "then": {"$ref": "#/$defs/rule"},
        "message": {"type": "string"}
      }
    },
    "expr": {
      "type": "object",
      "required": ["op"],
      "properties": {
        "op": {"enum": ["eq", "ne", "lt", "lte", "gt", "gte", "in", "contains", "empty", "notEmpty", "and", "or", "not"]},
        "field": {"type": "string"},
        "args": {"type": "array", "items": {"$ref": "#/$defs/expr"}}
      }
    }
  }
}`

var (
	compiledOnce     sync.Once
	compiledDocument *jsonschema.Schema
	compileErr       error
)

func documentValidator() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(documentSchemaURL, strings.NewReader(documentSchema)); err != nil {
			compileErr = fmt.Errorf("form schema document load failed: %w", err)
			return
		}
		compiledDocument, compileErr = c.Compile(documentSchemaURL)
	})
	return compiledDocument, compileErr
}

// DecodeSchema parses an admin-authored schema document, checks its shape
// and the engine invariants.
func DecodeSchema(raw []byte, format Format) (*FormSchema, error) {
	const op = "form.DecodeSchema"
	if format == FormatYAML {
		converted, err := utils.YAMLToJSON(string(raw))
		if err != nil {
			return nil, errs.Wrap(errs.KindSchemaInvariantViolation, op, err)
		}
		raw = []byte(converted)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errs.Wrap(errs.KindSchemaInvariantViolation, op, err)
	}
	validator, err := documentValidator()
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(doc); err != nil {
		return nil, errs.Wrap(errs.KindSchemaInvariantViolation, op, err)
	}

	var s FormSchema
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&s); err != nil {
		return nil, errs.Wrap(errs.KindSchemaInvariantViolation, op, err)
	}
	if err := CheckInvariants(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
