package form

type RuleKind string

const (
	RuleBuiltin     RuleKind = "builtin"
	RuleRegex       RuleKind = "regex"
	RuleConditional RuleKind = "conditional"
)

type BuiltinKind string

const (
	BuiltinEmail     BuiltinKind = "email"
	BuiltinPhone     BuiltinKind = "phone"
	BuiltinMinLength BuiltinKind = "minLength"
	BuiltinMaxLength BuiltinKind = "maxLength"
	BuiltinMin       BuiltinKind = "min"
	BuiltinMax       BuiltinKind = "max"
	BuiltinFileType  BuiltinKind = "fileType"
	BuiltinFileSize  BuiltinKind = "fileSize"

	// Emitted by the engine itself, never declared in a schema.
	BuiltinRequired BuiltinKind = "required"
	BuiltinType     BuiltinKind = "type"
)

// ValidationRule is one closed-variant check attached to a field.
//
// builtin rules read Limit (lengths, numeric bounds, max bytes) or Accept
// (file extensions or MIME types); regex rules read Pattern; conditional
// rules run Then only when When holds.
type ValidationRule struct {
	Kind    RuleKind        `json:"kind"`
	Builtin BuiltinKind     `json:"builtin,omitempty"`
	Limit   *float64        `json:"limit,omitempty"`
	Accept  []string        `json:"accept,omitempty"`
	Pattern string          `json:"pattern,omitempty"`
	When    *Expression     `json:"when,omitempty"`
	Then    *ValidationRule `json:"then,omitempty"`
	Message string          `json:"message,omitempty"`
}

func Builtin(kind BuiltinKind) ValidationRule {
	return ValidationRule{Kind: RuleBuiltin, Builtin: kind}
}

func BuiltinLimit(kind BuiltinKind, limit float64) ValidationRule {
	return ValidationRule{Kind: RuleBuiltin, Builtin: kind, Limit: &limit}
}

func Regex(pattern string) ValidationRule {
	return ValidationRule{Kind: RuleRegex, Pattern: pattern}
}

func Conditional(when *Expression, then ValidationRule) ValidationRule {
	return ValidationRule{Kind: RuleConditional, When: when, Then: &then}
}

func (b BuiltinKind) needsLimit() bool {
	switch b {
	case BuiltinMinLength, BuiltinMaxLength, BuiltinMin, BuiltinMax, BuiltinFileSize:
		return true
	}
	return false
}

func (b BuiltinKind) declarable() bool {
	switch b {
	case BuiltinEmail, BuiltinPhone, BuiltinFileType:
		return true
	}
	return b.needsLimit()
}
