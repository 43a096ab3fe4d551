// Package help renders command help pages and command listings.
package help

import (
	"fmt"
	"sort"
	"strings"

	"github.com/footprint-tools/unilang/internal/command"
	"github.com/footprint-tools/unilang/internal/domain"
	"github.com/footprint-tools/unilang/internal/ui/style"
)

// Lookup is the part of a registry the generator reads.
type Lookup interface {
	Command(name string) (*command.CommandDefinition, bool)
	WithPrefix(prefix string) []*command.CommandDefinition
}

// Generator renders help text from command definitions.
type Generator struct {
	lookup    Lookup
	verbosity Verbosity
	styler    domain.Styler
}

// Option configures a Generator.
type Option func(*Generator)

func WithVerbosity(v Verbosity) Option {
	return func(g *Generator) { g.verbosity = clamp(v) }
}

func WithStyler(s domain.Styler) Option {
	return func(g *Generator) {
		if s != nil {
			g.styler = s
		}
	}
}

// NewGenerator creates a generator at Standard verbosity with no styling.
func NewGenerator(lookup Lookup, opts ...Option) *Generator {
	g := &Generator{lookup: lookup, verbosity: Standard, styler: style.NopStyler{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Verbosity returns the generator's default verbosity.
func (g *Generator) Verbosity() Verbosity {
	return g.verbosity
}

// Command renders help for a command name or alias at the default verbosity.
func (g *Generator) Command(name string) (string, bool) {
	return g.CommandAt(name, g.verbosity)
}

// CommandAt renders help for a command name or alias at verbosity v.
func (g *Generator) CommandAt(name string, v Verbosity) (string, bool) {
	def, ok := g.lookup.Command(name)
	if !ok {
		return "", false
	}
	return g.Render(def, v), true
}

func clamp(v Verbosity) Verbosity {
	if v < Minimal {
		return Minimal
	}
	if v > Comprehensive {
		return Comprehensive
	}
	return v
}

// Render builds the help page for def. Each level appends at least one
// section to the output of the level below.
func (g *Generator) Render(def *command.CommandDefinition, v Verbosity) string {
	v = clamp(v)
	var b strings.Builder

	g.writeSummary(&b, def)
	if v >= Basic {
		g.writeArguments(&b, def)
	}
	if v >= Standard {
		g.writeUsage(&b, def)
	}
	if v >= Detailed {
		g.writeDetails(&b, def)
	}
	if v >= Comprehensive {
		g.writeArgumentDetails(&b, def)
	}
	return b.String()
}

func (g *Generator) section(b *strings.Builder, title string) {
	b.WriteString("\n")
	b.WriteString(g.styler.Header(title))
	b.WriteString("\n")
}

func (g *Generator) row(b *strings.Builder, paint func(string) string, width int, name, text string) {
	fmt.Fprintf(b, "   %s  %s\n", paint(fmt.Sprintf("%-*s", width, name)), text)
}

func (g *Generator) writeSummary(b *strings.Builder, def *command.CommandDefinition) {
	b.WriteString(g.styler.Command(def.FullName()))
	if def.Description != "" {
		b.WriteString(" - ")
		b.WriteString(def.Description)
	}
	b.WriteString("\n")
}

func (g *Generator) writeArguments(b *strings.Builder, def *command.CommandDefinition) {
	g.section(b, "ARGUMENTS")
	if len(def.Arguments) == 0 {
		b.WriteString("   none\n")
		return
	}

	width := 0
	for _, a := range def.Arguments {
		width = max(width, len(a.Name))
	}
	for _, a := range def.Arguments {
		text := g.styler.Muted(a.Kind.String())
		if a.Attributes.Optional {
			text += " (optional)"
		}
		if a.Description != "" {
			text += "  " + a.Description
		}
		g.row(b, g.styler.Argument, width, a.Name, text)
	}
}

func (g *Generator) writeUsage(b *strings.Builder, def *command.CommandDefinition) {
	g.section(b, "USAGE")
	parts := []string{def.FullName()}
	for _, a := range def.Arguments {
		p := fmt.Sprintf("%s::<%s>", a.Name, a.Kind)
		if a.Attributes.Multiple {
			p += "..."
		}
		if a.Attributes.Optional {
			p = "[" + p + "]"
		}
		parts = append(parts, p)
	}
	b.WriteString("   ")
	b.WriteString(strings.Join(parts, " "))
	b.WriteString("\n")
	fmt.Fprintf(b, "   %s ?\n", def.FullName())

	if len(def.Examples) > 0 {
		g.section(b, "EXAMPLES")
		for _, ex := range def.Examples {
			b.WriteString("   ")
			b.WriteString(ex)
			b.WriteString("\n")
		}
	}
}

func (g *Generator) writeDetails(b *strings.Builder, def *command.CommandDefinition) {
	g.section(b, "DETAILS")

	version := def.Version
	if version == "" {
		version = "unversioned"
	}
	status := string(def.Status)
	if status == "" {
		status = string(command.StatusStable)
	}

	type field struct{ name, value string }
	fields := []field{
		{"version", version},
		{"status", status},
	}
	if def.DeprecationMessage != "" {
		fields = append(fields, field{"deprecated", def.DeprecationMessage})
	}
	if def.Hint != "" {
		fields = append(fields, field{"hint", def.Hint})
	}
	if len(def.Aliases) > 0 {
		fields = append(fields, field{"aliases", strings.Join(def.Aliases, ", ")})
	}
	if len(def.Tags) > 0 {
		fields = append(fields, field{"tags", strings.Join(def.Tags, ", ")})
	}
	if def.Category != "" {
		fields = append(fields, field{"category", def.Category})
	}
	if len(def.Permissions) > 0 {
		fields = append(fields, field{"permissions", strings.Join(def.Permissions, ", ")})
	}
	if def.Idempotent {
		fields = append(fields, field{"idempotent", "yes"})
	}
	if def.HTTPMethodHint != "" {
		fields = append(fields, field{"http method", def.HTTPMethodHint})
	}
	for _, a := range def.Arguments {
		if len(a.ValidationRules) == 0 {
			continue
		}
		rules := make([]string, len(a.ValidationRules))
		for i, r := range a.ValidationRules {
			rules[i] = r.String()
		}
		fields = append(fields, field{"rules " + a.Name, strings.Join(rules, ", ")})
	}

	width := 0
	for _, f := range fields {
		width = max(width, len(f.name))
	}
	for _, f := range fields {
		g.row(b, g.styler.Info, width, f.name, f.value)
	}
}

func (g *Generator) writeArgumentDetails(b *strings.Builder, def *command.CommandDefinition) {
	g.section(b, "ARGUMENT DETAILS")
	if len(def.Arguments) == 0 {
		b.WriteString("   none\n")
	}

	for i, a := range def.Arguments {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "   %s\n", g.styler.Argument(a.Name))

		lines := [][2]string{
			{"kind", a.Kind.String()},
			{"position", fmt.Sprintf("%d", i+1)},
			{"required", yesNo(a.Required())},
		}
		if a.Attributes.HasDefault {
			lines = append(lines, [2]string{"default", a.Attributes.Default})
		}
		lines = append(lines,
			[2]string{"multiple", yesNo(a.Attributes.Multiple)},
			[2]string{"sensitive", yesNo(a.Attributes.Sensitive)},
			[2]string{"interactive", yesNo(a.Attributes.Interactive)},
		)
		if a.Hint != "" {
			lines = append(lines, [2]string{"hint", a.Hint})
		}
		if a.Description != "" {
			lines = append(lines, [2]string{"description", a.Description})
		}
		if len(a.Aliases) > 0 {
			lines = append(lines, [2]string{"aliases", strings.Join(a.Aliases, ", ")})
		}
		if len(a.Tags) > 0 {
			lines = append(lines, [2]string{"tags", strings.Join(a.Tags, ", ")})
		}
		for _, r := range a.ValidationRules {
			lines = append(lines, [2]string{"rule", r.String()})
		}
		for _, l := range lines {
			fmt.Fprintf(b, "      %-12s %s\n", l[0], l[1])
		}
	}

	g.section(b, "COMMAND METADATA")
	meta := [][2]string{
		{"priority", fmt.Sprintf("%d", def.Priority)},
		{"hidden", yesNo(def.Hidden)},
		{"auto help", yesNo(def.AutoHelp)},
	}
	if def.RoutineLink != "" {
		meta = append(meta, [2]string{"routine", def.RoutineLink})
	}
	for _, m := range meta {
		fmt.Fprintf(b, "   %-12s %s\n", m[0], m[1])
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// List renders the commands under prefix grouped by category, or by
// top-level namespace when a command has no category. Hidden commands are
// left out. An empty prefix lists everything.
func (g *Generator) List(prefix string) string {
	var visible []*command.CommandDefinition
	for _, def := range g.lookup.WithPrefix(prefix) {
		if !def.Hidden {
			visible = append(visible, def)
		}
	}

	var b strings.Builder
	title := "COMMANDS"
	if prefix != "" && prefix != command.Separator {
		title = "COMMANDS UNDER " + prefix
	}
	b.WriteString(g.styler.Header(title))
	b.WriteString("\n")

	if len(visible) == 0 {
		b.WriteString("   no commands registered\n")
		return b.String()
	}

	groups := make(map[string][]*command.CommandDefinition)
	width := 0
	for _, def := range visible {
		group := groupOf(def)
		groups[group] = append(groups[group], def)
		width = max(width, len(def.FullName()))
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmds := groups[name]
		sort.SliceStable(cmds, func(i, j int) bool {
			if cmds[i].Priority != cmds[j].Priority {
				return cmds[i].Priority < cmds[j].Priority
			}
			return cmds[i].FullName() < cmds[j].FullName()
		})

		b.WriteString("\n")
		b.WriteString(name)
		b.WriteString("\n")
		for _, def := range cmds {
			text := def.Description
			if def.Status == command.StatusDeprecated {
				text += " " + g.styler.Warning("(deprecated)")
			}
			g.row(&b, g.styler.Command, width, def.FullName(), text)
		}
	}

	b.WriteString("\nSee '<command> ?' for help on a specific command.\n")
	return b.String()
}

func groupOf(def *command.CommandDefinition) string {
	if def.Category != "" {
		return def.Category
	}
	segments := strings.Split(strings.TrimPrefix(def.FullName(), command.Separator), command.Separator)
	if len(segments) > 1 {
		return segments[0]
	}
	return "general"
}
