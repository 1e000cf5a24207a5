package form

type FieldType string

const (
	FieldText         FieldType = "text"
	FieldTextarea     FieldType = "textarea"
	FieldNumber       FieldType = "number"
	FieldEmail        FieldType = "email"
	FieldPhone        FieldType = "phone"
	FieldDate         FieldType = "date"
	FieldDatetime     FieldType = "datetime"
	FieldSingleSelect FieldType = "single-select"
	FieldMultiSelect  FieldType = "multi-select"
	FieldCheckbox     FieldType = "checkbox"
	FieldRadio        FieldType = "radio"
	FieldFileSingle   FieldType = "file-single"
	FieldFileMulti    FieldType = "file-multi"
	FieldRichtext     FieldType = "richtext"
	FieldRating       FieldType = "rating"
	FieldSlider       FieldType = "slider"
	FieldAddress      FieldType = "address"
)

// FieldTypes lists the closed set of field types in builder order.
var FieldTypes = []FieldType{
	FieldText, FieldTextarea, FieldNumber, FieldEmail, FieldPhone, FieldDate, FieldDatetime,
	FieldSingleSelect, FieldMultiSelect, FieldCheckbox, FieldRadio, FieldFileSingle, FieldFileMulti,
	FieldRichtext, FieldRating, FieldSlider, FieldAddress,
}

const (
	DateLayout     = "2006-01-02"
	DatetimeLayout = "2006-01-02T15:04:05Z07:00"
)

func (t FieldType) Valid() bool {
	for _, ft := range FieldTypes {
		if ft == t {
			return true
		}
	}
	return false
}

func (t FieldType) Numeric() bool {
	return t == FieldNumber || t == FieldRating || t == FieldSlider
}

func (t FieldType) HasOptions() bool {
	return t == FieldSingleSelect || t == FieldMultiSelect || t == FieldRadio
}

func (t FieldType) IsFile() bool {
	return t == FieldFileSingle || t == FieldFileMulti
}

func (t FieldType) IsList() bool {
	return t == FieldMultiSelect || t == FieldFileMulti
}

// Option is a choice of a select or radio field. Payloads store Value, never Label.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

type FieldDef struct {
	Key         string           `json:"key"`
	Label       string           `json:"label,omitempty"`
	Type        FieldType        `json:"type"`
	Required    bool             `json:"required,omitempty"`
	Options     []Option         `json:"options,omitempty"`
	Validations []ValidationRule `json:"validations,omitempty"`
	VisibleWhen *Expression      `json:"visibleWhen,omitempty"`
}

// DisplayName is the label if set, otherwise the key.
func (f FieldDef) DisplayName() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Key
}

func (f FieldDef) HasOption(value string) bool {
	for _, o := range f.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}
