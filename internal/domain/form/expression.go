package form

import (
	"sort"
	"strings"
	"time"
)

type Op string

const (
	OpEq       Op = "eq"
	OpNe       Op = "ne"
	OpLt       Op = "lt"
	OpLte      Op = "lte"
	OpGt       Op = "gt"
	OpGte      Op = "gte"
	OpIn       Op = "in"
	OpContains Op = "contains"
	OpEmpty    Op = "empty"
	OpNotEmpty Op = "notEmpty"
	OpAnd      Op = "and"
	OpOr       Op = "or"
	OpNot      Op = "not"
)

// Expression is a boolean condition over field values. Leaves compare one
// field against a literal; and/or/not combine child expressions.
type Expression struct {
	Op    Op            `json:"op"`
	Field string        `json:"field,omitempty"`
	Value any           `json:"value,omitempty"`
	Args  []*Expression `json:"args,omitempty"`
}

func (op Op) combinator() bool {
	return op == OpAnd || op == OpOr || op == OpNot
}

func (op Op) valid() bool {
	switch op {
	case OpEq, OpNe, OpLt, OpLte, OpGt, OpGte, OpIn, OpContains, OpEmpty, OpNotEmpty, OpAnd, OpOr, OpNot:
		return true
	}
	return false
}

// Refs returns the field keys referenced anywhere in the expression, sorted.
func (e *Expression) Refs() []string {
	seen := map[string]bool{}
	var walk func(*Expression)
	walk = func(x *Expression) {
		if x == nil {
			return
		}
		if x.Field != "" {
			seen[x.Field] = true
		}
		for _, a := range x.Args {
			walk(a)
		}
	}
	walk(e)
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Evaluate reports whether expr holds for payload. Absent keys read as the
// field type's empty value; keys the schema does not declare read as empty
// text. A nil expression is true.
func Evaluate(schema *FormSchema, expr *Expression, payload Payload) bool {
	if expr == nil {
		return true
	}
	switch expr.Op {
	case OpAnd:
		for _, a := range expr.Args {
			if !Evaluate(schema, a, payload) {
				return false
			}
		}
		return true
	case OpOr:
		for _, a := range expr.Args {
			if Evaluate(schema, a, payload) {
				return true
			}
		}
		return false
	case OpNot:
		if len(expr.Args) == 0 {
			return false
		}
		return !Evaluate(schema, expr.Args[0], payload)
	}

	ft := FieldText
	if schema != nil {
		if f, ok := schema.Field(expr.Field); ok {
			ft = f.Type
		}
	}
	v, ok := payload[expr.Field]
	if !ok {
		v = EmptyValue(ft)
	}
	return compare(expr.Op, ft, v, expr.Value)
}

func compare(op Op, ft FieldType, v Value, lit any) bool {
	switch op {
	case OpEmpty:
		return v.IsEmpty()
	case OpNotEmpty:
		return !v.IsEmpty()
	case OpIn:
		items, ok := literalList(lit)
		if !ok {
			return false
		}
		if v.Kind == KindList {
			for _, x := range v.List {
				if !containsString(items, x) {
					return false
				}
			}
			return len(v.List) > 0
		}
		for _, it := range items {
			if compareScalar(OpEq, ft, v, it) {
				return true
			}
		}
		return false
	case OpContains:
		if v.Kind == KindList {
			return containsString(v.List, literalString(lit))
		}
		if v.Kind == KindScalar {
			s, ok := v.Scalar.(string)
			return ok && strings.Contains(s, literalString(lit))
		}
		return false
	}

	switch {
	case ft.IsFile():
		return false
	case v.Kind == KindList:
		items, ok := literalList(lit)
		if !ok {
			return false
		}
		same := sameSet(v.List, items)
		switch op {
		case OpEq:
			return same
		case OpNe:
			return !same
		}
		return false
	}
	return compareScalar(op, ft, v, lit)
}

func compareScalar(op Op, ft FieldType, v Value, lit any) bool {
	var c int
	var ok bool
	switch {
	case ft == FieldDate:
		c, ok = compareTimes(v.String(), literalString(lit), DateLayout, true)
	case ft == FieldDatetime:
		c, ok = compareTimes(v.String(), literalString(lit), time.RFC3339, false)
	case ft.Numeric():
		c, ok = compareFloats(v, lit)
	case ft == FieldCheckbox:
		c, ok = compareBools(v, lit)
	default:
		c, ok = strings.Compare(v.String(), literalString(lit)), v.Kind == KindScalar
	}
	if !ok {
		// Unknown ordering: only "not equal" can hold.
		return op == OpNe
	}
	switch op {
	case OpEq:
		return c == 0
	case OpNe:
		return c != 0
	case OpLt:
		return c < 0
	case OpLte:
		return c <= 0
	case OpGt:
		return c > 0
	case OpGte:
		return c >= 0
	}
	return false
}

func compareTimes(a, b, layout string, calendarDay bool) (int, bool) {
	ta, err := time.Parse(layout, a)
	if err != nil {
		return 0, false
	}
	tb, err := time.Parse(layout, b)
	if err != nil {
		return 0, false
	}
	if calendarDay {
		ta = ta.Truncate(24 * time.Hour)
		tb = tb.Truncate(24 * time.Hour)
	}
	return ta.Compare(tb), true
}

func compareFloats(v Value, lit any) (int, bool) {
	a, ok := v.Float()
	if !ok {
		return 0, false
	}
	b, ok := toFloat(lit)
	if !ok {
		return 0, false
	}
	switch {
	case a < b:
		return -1, true
	case a > b:
		return 1, true
	}
	return 0, true
}

func compareBools(v Value, lit any) (int, bool) {
	a, ok := v.Scalar.(bool)
	if !ok {
		return 0, false
	}
	var b bool
	switch x := lit.(type) {
	case bool:
		b = x
	case string:
		b = x == "true"
	default:
		return 0, false
	}
	if a == b {
		return 0, true
	}
	if !a {
		return -1, true
	}
	return 1, true
}

func literalString(lit any) string {
	return Value{Kind: KindScalar, Scalar: lit}.String()
}

func literalList(lit any) ([]string, bool) {
	switch x := lit.(type) {
	case []string:
		return x, true
	case []any:
		out := make([]string, len(x))
		for i, it := range x {
			out[i] = literalString(it)
		}
		return out, true
	}
	return nil, false
}

func containsString(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func sameSet(a, b []string) bool {
	as := map[string]bool{}
	for _, x := range a {
		as[x] = true
	}
	bs := map[string]bool{}
	for _, x := range b {
		bs[x] = true
	}
	if len(as) != len(bs) {
		return false
	}
	for k := range as {
		if !bs[k] {
			return false
		}
	}
	return true
}
