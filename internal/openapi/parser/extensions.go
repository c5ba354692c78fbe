package parser

import "strings"

// ExtensionNamespace is the vendor prefix under which form display hints
// travel through OpenAPI documents: a nested "x-formstate" map or flattened
// "x-formstate-*" keys. Recognised entries include "strategy" (error display
// strategy for the field or operation) and "warn" (rule kinds demoted to
// non-blocking warnings).
const ExtensionNamespace = "x-formstate"

func extractExtensions(raw map[string]any) map[string]any {
	if len(raw) == 0 {
		return nil
	}

	result := make(map[string]any)
	for key, value := range raw {
		switch {
		case key == ExtensionNamespace:
			if mapped, ok := cloneMap(value); ok && len(mapped) > 0 {
				result[key] = mapped
			}
		case strings.HasPrefix(key, ExtensionNamespace+"-"):
			result[key] = value
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func cloneMap(value any) (map[string]any, bool) {
	mapped, ok := value.(map[string]any)
	if !ok {
		return nil, false
	}
	cloned := make(map[string]any, len(mapped))
	for k, v := range mapped {
		cloned[k] = v
	}
	return cloned, true
}
