package validation

import (
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/linskybing/dynamic-forms/internal/domain/form"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[\+]?[1-9][\d]{0,15}$`)

	phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

// checkShape is the implicit check every field type gets before its declared
// rules run.
func checkShape(f form.FieldDef, v form.Value) (string, bool) {
	name := f.DisplayName()
	switch {
	case f.Type.Numeric():
		if v.Kind != form.KindScalar {
			return fmt.Sprintf("Field '%s' must be a number", name), false
		}
		if _, ok := v.Float(); !ok {
			return fmt.Sprintf("Field '%s' must be a number", name), false
		}
	case f.Type == form.FieldCheckbox:
		if _, ok := v.Scalar.(bool); !ok || v.Kind != form.KindScalar {
			return fmt.Sprintf("Field '%s' must be true or false", name), false
		}
	case f.Type == form.FieldMultiSelect:
		if v.Kind != form.KindList {
			return fmt.Sprintf("Field '%s' must be a list of options", name), false
		}
		for _, item := range v.List {
			if !f.HasOption(item) {
				return fmt.Sprintf("Invalid option '%s' for field '%s'", item, name), false
			}
		}
	case f.Type == form.FieldSingleSelect || f.Type == form.FieldRadio:
		if v.Kind != form.KindScalar || !f.HasOption(v.String()) {
			return fmt.Sprintf("Invalid option '%s' for field '%s'", v.String(), name), false
		}
	case f.Type == form.FieldFileSingle:
		if v.Kind != form.KindFile || len(v.Files) != 1 {
			return fmt.Sprintf("Field '%s' must be a single file", name), false
		}
	case f.Type == form.FieldFileMulti:
		if v.Kind != form.KindFiles && v.Kind != form.KindFile {
			return fmt.Sprintf("Field '%s' must be a list of files", name), false
		}
	case f.Type == form.FieldEmail:
		if v.Kind != form.KindScalar || !validEmail(v.String()) {
			return fmt.Sprintf("Field '%s' must be a valid email address", name), false
		}
	case f.Type == form.FieldPhone:
		if v.Kind != form.KindScalar || !validPhone(v.String()) {
			return fmt.Sprintf("Field '%s' must be a valid phone number", name), false
		}
	case f.Type == form.FieldDate:
		if _, err := time.Parse(form.DateLayout, v.String()); err != nil || v.Kind != form.KindScalar {
			return fmt.Sprintf("Field '%s' must be a valid date (YYYY-MM-DD)", name), false
		}
	case f.Type == form.FieldDatetime:
		if _, err := time.Parse(form.DatetimeLayout, v.String()); err != nil || v.Kind != form.KindScalar {
			return fmt.Sprintf("Field '%s' must be a valid datetime", name), false
		}
	default:
		if v.Kind != form.KindScalar {
			return fmt.Sprintf("Field '%s' must be a single value", name), false
		}
	}
	return "", true
}

func validEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// validPhone ignores spaces, dashes and parentheses.
func validPhone(s string) bool {
	return phonePattern.MatchString(phoneSeparators.Replace(s))
}

func checkRegex(f form.FieldDef, rule form.ValidationRule, v form.Value) (string, bool) {
	re, err := regexp.Compile(rule.Pattern)
	if err != nil {
		// CheckInvariants rejects bad patterns at publish time.
		return fmt.Sprintf("Field '%s' has an invalid pattern", f.DisplayName()), false
	}
	for _, s := range textsOf(v) {
		if !re.MatchString(s) {
			return fmt.Sprintf("Field '%s' does not match the required format", f.DisplayName()), false
		}
	}
	return "", true
}

func checkBuiltin(f form.FieldDef, rule form.ValidationRule, v form.Value) (string, bool) {
	name := f.DisplayName()
	limit := 0.0
	if rule.Limit != nil {
		limit = *rule.Limit
	}

	switch rule.Builtin {
	case form.BuiltinEmail:
		if !validEmail(v.String()) {
			return fmt.Sprintf("Field '%s' must be a valid email address", name), false
		}
	case form.BuiltinPhone:
		if !validPhone(v.String()) {
			return fmt.Sprintf("Field '%s' must be a valid phone number", name), false
		}
	case form.BuiltinMinLength:
		if float64(lengthOf(v)) < limit {
			return fmt.Sprintf("Field '%s' must be at least %s characters", name, formatLimit(limit)), false
		}
	case form.BuiltinMaxLength:
		if float64(lengthOf(v)) > limit {
			return fmt.Sprintf("Field '%s' must be at most %s characters", name, formatLimit(limit)), false
		}
	case form.BuiltinMin:
		n, ok := v.Float()
		if !ok || n < limit {
			return fmt.Sprintf("Field '%s' must be at least %s", name, formatLimit(limit)), false
		}
	case form.BuiltinMax:
		n, ok := v.Float()
		if !ok || n > limit {
			return fmt.Sprintf("Field '%s' must be at most %s", name, formatLimit(limit)), false
		}
	case form.BuiltinFileType:
		for _, ref := range v.Files {
			if !acceptsFile(rule.Accept, ref) {
				return fmt.Sprintf("File '%s' is not an accepted type for field '%s'", ref.Name, name), false
			}
		}
	case form.BuiltinFileSize:
		for _, ref := range v.Files {
			if float64(ref.Size) > limit {
				return fmt.Sprintf("File '%s' exceeds the maximum size of %s bytes", ref.Name, formatLimit(limit)), false
			}
		}
	}
	return "", true
}

// lengthOf counts characters for scalars and items for lists.
func lengthOf(v form.Value) int {
	switch v.Kind {
	case form.KindList:
		return len(v.List)
	case form.KindFile, form.KindFiles:
		return len(v.Files)
	}
	return utf8.RuneCountInString(v.String())
}

func textsOf(v form.Value) []string {
	switch v.Kind {
	case form.KindList:
		return v.List
	case form.KindFile, form.KindFiles:
		out := make([]string, 0, len(v.Files))
		for _, ref := range v.Files {
			out = append(out, ref.Name)
		}
		return out
	}
	return []string{v.String()}
}

// acceptsFile matches an accept entry against the file extension (".pdf"),
// the exact MIME type, or a MIME wildcard ("image/*").
func acceptsFile(accept []string, ref form.FileRef) bool {
	ext := strings.ToLower(filepath.Ext(ref.Name))
	mime := strings.ToLower(ref.ContentType)
	for _, a := range accept {
		a = strings.ToLower(strings.TrimSpace(a))
		switch {
		case strings.HasPrefix(a, "."):
			if a == ext {
				return true
			}
		case strings.HasSuffix(a, "/*"):
			if mime != "" && strings.HasPrefix(mime, strings.TrimSuffix(a, "*")) {
				return true
			}
		case strings.Contains(a, "/"):
			if a == mime {
				return true
			}
		default:
			if "."+a == ext {
				return true
			}
		}
	}
	return false
}

func formatLimit(f float64) string {
	if f == math.Trunc(f) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
