package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type ValueKind string

const (
	KindScalar ValueKind = "scalar"
	KindList   ValueKind = "list"
	KindFile   ValueKind = "file"
	KindFiles  ValueKind = "files"
)

// FileRef points at an uploaded file. The engine only reads its metadata.
type FileRef struct {
	FileID      string `json:"fileId"`
	Name        string `json:"name,omitempty"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType,omitempty"`
}

// Value is one field's submitted value.
//
//	scalar: Scalar holds string, float64, bool or nil
//	list:   List holds scalar items rendered as strings (option keys)
//	file:   Files holds exactly one reference
//	files:  Files holds any number of references
type Value struct {
	Kind   ValueKind
	Scalar any
	List   []string
	Files  []FileRef
}

func Text(s string) Value { return Value{Kind: KindScalar, Scalar: s} }
func Number(f float64) Value { return Value{Kind: KindScalar, Scalar: f} }
func Bool(b bool) Value { return Value{Kind: KindScalar, Scalar: b} }
func List(items ...string) Value { return Value{Kind: KindList, List: items} }
func File(ref FileRef) Value { return Value{Kind: KindFile, Files: []FileRef{ref}} }
func Files(refs ...FileRef) Value { return Value{Kind: KindFiles, Files: refs} }
func nullValue() Value { return Value{Kind: KindScalar} }

// IsEmpty reports whether v counts as "no answer": null, "", an empty list or no file.
func (v Value) IsEmpty() bool {
	switch v.Kind {
	case KindScalar:
		if v.Scalar == nil {
			return true
		}
		s, ok := v.Scalar.(string)
		return ok && s == ""
	case KindList:
		return len(v.List) == 0
	case KindFile, KindFiles:
		return len(v.Files) == 0
	}
	return true
}

// String renders a scalar for comparison and messages.
func (v Value) String() string {
	switch s := v.Scalar.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	}
	return fmt.Sprint(v.Scalar)
}

// Float returns the numeric reading of a scalar; numeric strings are accepted.
func (v Value) Float() (float64, bool) {
	return toFloat(v.Scalar)
}

func (v Value) Clone() Value {
	out := Value{Kind: v.Kind, Scalar: v.Scalar}
	if v.List != nil {
		out.List = append([]string(nil), v.List...)
	}
	if v.Files != nil {
		out.Files = append([]FileRef(nil), v.Files...)
	}
	return out
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindList:
		if v.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.List)
	case KindFile:
		if len(v.Files) == 0 {
			return []byte("null"), nil
		}
		return json.Marshal(v.Files[0])
	case KindFiles:
		if v.Files == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Files)
	}
	return json.Marshal(v.Scalar)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = nullValue()
		return nil
	}
	switch data[0] {
	case '{':
		var ref FileRef
		if err := json.Unmarshal(data, &ref); err != nil {
			return err
		}
		*v = File(ref)
		return nil
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if len(raw) > 0 && bytes.HasPrefix(bytes.TrimSpace(raw[0]), []byte("{")) {
			refs := make([]FileRef, 0, len(raw))
			if err := json.Unmarshal(data, &refs); err != nil {
				return err
			}
			*v = Files(refs...)
			return nil
		}
		items := make([]string, 0, len(raw))
		for _, r := range raw {
			var s any
			if err := json.Unmarshal(r, &s); err != nil {
				return err
			}
			switch s.(type) {
			case map[string]any, []any:
				return fmt.Errorf("list items must be scalars")
			}
			items = append(items, Value{Kind: KindScalar, Scalar: s}.String())
		}
		*v = List(items...)
		return nil
	}
	var s any
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = Value{Kind: KindScalar, Scalar: s}
	return nil
}

// Payload maps field keys to submitted values.
type Payload map[string]Value

func (p Payload) Clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v.Clone()
	}
	return out
}

// EmptyValue is the value an absent key reads as for a field of type t.
func EmptyValue(t FieldType) Value {
	switch t {
	case FieldCheckbox:
		return Bool(false)
	case FieldMultiSelect:
		return List()
	case FieldFileSingle:
		return Value{Kind: KindFile}
	case FieldFileMulti:
		return Files()
	case FieldNumber, FieldRating, FieldSlider:
		return nullValue()
	}
	return Text("")
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
