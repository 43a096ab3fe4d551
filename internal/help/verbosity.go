package help

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvVerbosity overrides the configured help verbosity.
const EnvVerbosity = "UNILANG_HELP_VERBOSITY"

// Verbosity selects how much a help page shows. Every level shows
// everything the level below it shows, plus more.
type Verbosity int

const (
	Minimal Verbosity = iota
	Basic
	Standard
	Detailed
	Comprehensive
)

var verbosityNames = []string{"minimal", "basic", "standard", "detailed", "comprehensive"}

func (v Verbosity) String() string {
	if v >= Minimal && v <= Comprehensive {
		return verbosityNames[v]
	}
	return fmt.Sprintf("Verbosity(%d)", int(v))
}

// ParseVerbosity accepts a level number or name. Numbers above the highest
// level clamp to Comprehensive.
func ParseVerbosity(s string) (Verbosity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return Standard, fmt.Errorf("help verbosity must not be negative, got %d", n)
		}
		if n > int(Comprehensive) {
			return Comprehensive, nil
		}
		return Verbosity(n), nil
	}
	for i, name := range verbosityNames {
		if s == name {
			return Verbosity(i), nil
		}
	}
	return Standard, fmt.Errorf("unknown help verbosity %q", s)
}

// ResolveVerbosity picks the verbosity from the environment, then the
// configured value, then Standard.
func ResolveVerbosity(configured string) Verbosity {
	if env := os.Getenv(EnvVerbosity); env != "" {
		if v, err := ParseVerbosity(env); err == nil {
			return v
		}
	}
	if configured != "" {
		if v, err := ParseVerbosity(configured); err == nil {
			return v
		}
	}
	return Standard
}
