package config

import (
	"fmt"
	"strings"
)

// Parse turns rc file lines into a key/value map. Blank lines and lines
// starting with '#' are skipped, a leading BOM is ignored, and a value
// wrapped in double quotes is unquoted. Later keys override earlier ones.
func Parse(lines []string) (map[string]string, error) {
	out := make(map[string]string, len(lines))

	for i, line := range lines {
		if i == 0 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, ok := strings.Cut(trimmed, "=")
		if !ok {
			return nil, fmt.Errorf("config: line %d: expected key=value", i+1)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("config: line %d: empty key", i+1)
		}

		out[key] = unquote(strings.TrimSpace(value))
	}
	return out, nil
}

func unquote(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		return v[1 : len(v)-1]
	}
	return v
}

// quote wraps values containing spaces so Parse reads them back intact.
func quote(v string) string {
	if strings.ContainsAny(v, " \t") {
		return `"` + v + `"`
	}
	return v
}
