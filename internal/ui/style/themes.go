package style

import (
	"os"
	"strings"
)

// ColorConfig holds all configurable colors for the UI.
// Values can be ANSI color numbers (0-255) or "bold" for bold styling.
type ColorConfig struct {
	Success  string
	Warning  string
	Error    string
	Info     string
	Muted    string
	Header   string
	Command  string
	Argument string
}

// BaseThemeNames lists available theme bases (dark/light is detected).
var BaseThemeNames = []string{"default", "mono", "contrast"}

// Themes contains the built-in color themes.
// Dark themes use bright colors, light themes use dark ones.
var Themes = map[string]ColorConfig{
	"default-dark": {
		Success:  "10",  // bright green
		Warning:  "11",  // bright yellow
		Error:    "9",   // bright red
		Info:     "14",  // bright cyan
		Muted:    "245", // medium gray
		Header:   "bold",
		Command:  "12", // bright blue
		Argument: "13", // bright magenta
	},
	"default-light": {
		Success:  "28",  // dark green
		Warning:  "130", // dark orange
		Error:    "124", // dark red
		Info:     "30",  // dark cyan
		Muted:    "243", // medium-dark gray
		Header:   "bold",
		Command:  "27", // dark blue
		Argument: "90", // dark magenta
	},
	"mono-dark": {
		Success:  "252",
		Warning:  "250",
		Error:    "255",
		Info:     "252",
		Muted:    "243",
		Header:   "bold",
		Command:  "255",
		Argument: "248",
	},
	"mono-light": {
		Success:  "236",
		Warning:  "238",
		Error:    "232",
		Info:     "236",
		Muted:    "245",
		Header:   "bold",
		Command:  "232",
		Argument: "240",
	},
	"contrast-dark": {
		Success:  "46",
		Warning:  "226",
		Error:    "196",
		Info:     "51",
		Muted:    "250",
		Header:   "bold",
		Command:  "231",
		Argument: "219",
	},
	"contrast-light": {
		Success:  "22",
		Warning:  "94",
		Error:    "88",
		Info:     "18",
		Muted:    "239",
		Header:   "bold",
		Command:  "16",
		Argument: "53",
	},
}

// colorConfigKeys maps config key names to ColorConfig fields.
var colorConfigKeys = map[string]func(*ColorConfig) *string{
	"color_success":  func(c *ColorConfig) *string { return &c.Success },
	"color_warning":  func(c *ColorConfig) *string { return &c.Warning },
	"color_error":    func(c *ColorConfig) *string { return &c.Error },
	"color_info":     func(c *ColorConfig) *string { return &c.Info },
	"color_muted":    func(c *ColorConfig) *string { return &c.Muted },
	"color_header":   func(c *ColorConfig) *string { return &c.Header },
	"color_command":  func(c *ColorConfig) *string { return &c.Command },
	"color_argument": func(c *ColorConfig) *string { return &c.Argument },
}

// ResolveThemeName appends -dark or -light to a base theme name that has
// neither suffix.
func ResolveThemeName(name string, dark bool) string {
	if strings.HasSuffix(name, "-dark") || strings.HasSuffix(name, "-light") {
		return name
	}
	if dark {
		return name + "-dark"
	}
	return name + "-light"
}

// LoadColorConfig builds a ColorConfig from the given configuration map.
// Resolution priority:
//  1. Environment variable (UNILANG_COLOR_*)
//  2. Config file value (color_*)
//  3. Theme value (UNILANG_THEME, then the theme key)
//  4. The default theme for the background
func LoadColorConfig(cfg map[string]string, dark bool) ColorConfig {
	themeName := ResolveThemeName("default", dark)
	if envTheme := os.Getenv("UNILANG_THEME"); envTheme != "" {
		themeName = ResolveThemeName(envTheme, dark)
	} else if cfgTheme := cfg["theme"]; cfgTheme != "" {
		themeName = ResolveThemeName(cfgTheme, dark)
	}

	result, ok := Themes[themeName]
	if !ok {
		result = Themes[ResolveThemeName("default", dark)]
	}

	for key, field := range colorConfigKeys {
		if v := os.Getenv("UNILANG_" + strings.ToUpper(key)); v != "" {
			*field(&result) = v
			continue
		}
		if v := cfg[key]; v != "" {
			*field(&result) = v
		}
	}
	return result
}
