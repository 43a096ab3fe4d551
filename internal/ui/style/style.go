// Package style provides semantic terminal styling using lipgloss.
//
// This package is the only place where lipgloss is imported. All styling
// is semantic (Success, Command, Argument, etc.) rather than visual.
//
// A disabled Styler returns its input unchanged with no ANSI codes.
package style

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/footprint-tools/unilang/internal/domain"
)

// Styler implements domain.Styler with lipgloss styles built from a theme.
type Styler struct {
	enabled bool
	colors  ColorConfig

	success  lipgloss.Style
	warning  lipgloss.Style
	errorSt  lipgloss.Style
	info     lipgloss.Style
	muted    lipgloss.Style
	header   lipgloss.Style
	command  lipgloss.Style
	argument lipgloss.Style
}

// NoColor reports whether NO_COLOR or UNILANG_NO_COLOR is set to a
// non-empty value.
func NoColor() bool {
	return os.Getenv("NO_COLOR") != "" || os.Getenv("UNILANG_NO_COLOR") != ""
}

// New builds a Styler. The colour environment overrides enable, and cfg
// supplies the theme and per-role overrides. A nil cfg means defaults.
func New(enable bool, cfg map[string]string) *Styler {
	return NewFor(os.Stdout, enable, cfg)
}

// NewFor is New with an explicit output used for background detection.
func NewFor(out io.Writer, enable bool, cfg map[string]string) *Styler {
	s := &Styler{enabled: enable && !NoColor()}
	if !s.enabled {
		return s
	}

	// Always emit ANSI256 once enabled, whatever the output looks like.
	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(termenv.ANSI256)

	s.colors = LoadColorConfig(cfg, termenv.NewOutput(out).HasDarkBackground())
	s.success = makeStyle(r, s.colors.Success)
	s.warning = makeStyle(r, s.colors.Warning)
	s.errorSt = makeStyle(r, s.colors.Error)
	s.info = makeStyle(r, s.colors.Info)
	s.muted = makeStyle(r, s.colors.Muted)
	s.header = makeStyle(r, s.colors.Header)
	s.command = makeStyle(r, s.colors.Command)
	s.argument = makeStyle(r, s.colors.Argument)
	return s
}

// makeStyle creates a lipgloss style from a color value.
// The value can be "bold" for bold styling, or an ANSI color number (0-255).
func makeStyle(r *lipgloss.Renderer, value string) lipgloss.Style {
	if value == "bold" {
		return r.NewStyle().Bold(true)
	}
	return r.NewStyle().Foreground(lipgloss.Color(value))
}

// Colors returns the resolved colour configuration. It is empty when
// styling is disabled.
func (s *Styler) Colors() ColorConfig {
	return s.colors
}

// Enabled returns whether styling is active.
func (s *Styler) Enabled() bool {
	return s.enabled
}

func (s *Styler) render(st lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return st.Render(text)
}

// Success styles text for successful operations.
func (s *Styler) Success(text string) string { return s.render(s.success, text) }

// Warning styles text for warnings and deprecation notices.
func (s *Styler) Warning(text string) string { return s.render(s.warning, text) }

// Error styles error messages and codes.
func (s *Styler) Error(text string) string { return s.render(s.errorSt, text) }

// Info styles informational text.
func (s *Styler) Info(text string) string { return s.render(s.info, text) }

// Muted styles secondary information such as kinds and defaults.
func (s *Styler) Muted(text string) string { return s.render(s.muted, text) }

// Header styles section titles.
func (s *Styler) Header(text string) string { return s.render(s.header, text) }

// Command styles a command name.
func (s *Styler) Command(text string) string { return s.render(s.command, text) }

// Argument styles an argument name.
func (s *Styler) Argument(text string) string { return s.render(s.argument, text) }

// NopStyler is a no-op styler that returns text unchanged.
// Useful for testing or when styling is disabled.
type NopStyler struct{}

func (NopStyler) Enabled() bool               { return false }
func (NopStyler) Success(text string) string  { return text }
func (NopStyler) Warning(text string) string  { return text }
func (NopStyler) Error(text string) string    { return text }
func (NopStyler) Info(text string) string     { return text }
func (NopStyler) Muted(text string) string    { return text }
func (NopStyler) Header(text string) string   { return text }
func (NopStyler) Command(text string) string  { return text }
func (NopStyler) Argument(text string) string { return text }

var _ domain.Styler = (*Styler)(nil)
var _ domain.Styler = NopStyler{}
