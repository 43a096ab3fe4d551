package config

import (
	"github.com/footprint-tools/unilang/internal/domain"
	"github.com/footprint-tools/unilang/internal/paths"
)

// Defaults holds the value used for each known key when the rc file does
// not set it. Most come straight from domain.ConfigKeys; some are computed.
var Defaults = func() map[string]func() string {
	m := make(map[string]func() string, len(domain.ConfigKeys))
	for _, key := range domain.ConfigKeys {
		value := key.Default
		m[key.Name] = func() string { return value }
	}
	m["history_path"] = paths.HistoryFilePath
	return m
}()

// Get returns the value for a config key.
// It checks the rc file first, then falls back to the default.
// Returns the value and whether it was found (in file or defaults).
func Get(key string) (string, bool) {
	if cfg, err := load(); err == nil {
		if value, exists := cfg[key]; exists {
			return value, true
		}
	}

	if defaultFn, ok := Defaults[key]; ok {
		return defaultFn(), true
	}
	return "", false
}

// GetAll returns all config values (user overrides merged with defaults).
// An unreadable rc file yields the defaults alone.
func GetAll() (map[string]string, error) {
	result := make(map[string]string, len(Defaults))
	for key, valueFn := range Defaults {
		result[key] = valueFn()
	}

	cfg, err := load()
	if err != nil {
		return result, nil
	}
	for key, value := range cfg {
		result[key] = value
	}
	return result, nil
}

func load() (map[string]string, error) {
	lines, err := ReadLines()
	if err != nil {
		return nil, err
	}
	return Parse(lines)
}

// Known reports whether key is a documented configuration key.
func Known(key string) bool {
	for _, k := range domain.ConfigKeys {
		if k.Name == key {
			return true
		}
	}
	return false
}
