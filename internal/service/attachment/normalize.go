// internal/service/attachment/normalize.go
package attachment

import (
	"encoding/json"
	"strings"
)

// NormalizeURLList collapses every attachment-URL shape seen coming out of
// storage into one canonical list of trimmed, non-empty URL strings. The
// column is TEXT[], but historical rows and admin form input have carried
// a native list, a JSON-encoded list, a comma-joined string, or a single
// bare URL. Inconsistent shapes never leak past this function.
func NormalizeURLList(raw interface{}) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case []string:
		return cleanList(v)
	case []interface{}:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
		return cleanList(items)
	case string:
		return normalizeString(v)
	default:
		return []string{}
	}
}

func normalizeString(s string) []string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return []string{}
	}

	// JSON-encoded list or JSON-encoded single URL.
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, `"`) {
		var list []string
		if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
			return cleanList(list)
		}
		var single string
		if err := json.Unmarshal([]byte(trimmed), &single); err == nil {
			return cleanList([]string{single})
		}
	}

	if strings.Contains(trimmed, ",") {
		return cleanList(strings.Split(trimmed, ","))
	}

	return cleanList([]string{trimmed})
}

func cleanList(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		out = append(out, u)
	}
	return out
}
