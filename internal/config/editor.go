package config

import "strings"

// Set assigns key in lines, keeping comments and an inline comment on the
// edited line. It reports whether an existing assignment was replaced;
// otherwise the assignment is appended.
func Set(lines []string, key, value string) ([]string, bool) {
	value = quote(value)

	for i, line := range lines {
		k, old, ok := assignment(line)
		if !ok || k != key {
			continue
		}
		if idx := strings.Index(old, " #"); idx >= 0 {
			lines[i] = key + "=" + value + " " + strings.TrimSpace(old[idx:])
		} else {
			lines[i] = key + "=" + value
		}
		return lines, true
	}

	return append(lines, key+"="+value), false
}

// Unset drops every assignment of key and reports whether one was found.
func Unset(lines []string, key string) ([]string, bool) {
	var out []string
	removed := false

	for _, line := range lines {
		if k, _, ok := assignment(line); ok && k == key {
			removed = true
			continue
		}
		out = append(out, line)
	}
	return out, removed
}

// assignment splits a "key=value" line. Comments and blank lines are not
// assignments.
func assignment(line string) (key, value string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}
	key, value, ok = strings.Cut(trimmed, "=")
	return strings.TrimSpace(key), value, ok
}
