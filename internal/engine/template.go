package engine

import (
	"fmt"
	"strings"
)

// RenderTemplate substitutes every {{key}} occurrence in template with the
// context value for key. Unresolved placeholders are left verbatim; this is a
// narrow substitution helper, not a templating engine.
func RenderTemplate(template string, context map[string]any) string {
	result := template
	for key, value := range context {
		result = strings.ReplaceAll(result, "{{"+key+"}}", stringify(value))
	}
	return result
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
