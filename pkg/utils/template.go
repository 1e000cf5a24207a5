package utils

import "strings"

// ReplacePlaceholders substitutes every {{key}} in template.
func ReplacePlaceholders(template string, values map[string]string) string {
	for key, val := range values {
		template = strings.ReplaceAll(template, "{{"+key+"}}", val)
	}
	return template
}
