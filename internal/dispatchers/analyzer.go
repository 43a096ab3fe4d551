// Package dispatchers verifies parsed instructions against the registry
// and runs the routines bound to them.
package dispatchers

import (
	"github.com/footprint-tools/unilang/internal/command"
	"github.com/footprint-tools/unilang/internal/help"
	"github.com/footprint-tools/unilang/internal/parser"
	"github.com/footprint-tools/unilang/internal/usage"
)

// helpPositional requests help when it appears as a positional argument.
const helpPositional = "??"

// CommandSource is the read side of a registry.
type CommandSource interface {
	Command(name string) (*command.CommandDefinition, bool)
	WithPrefix(prefix string) []*command.CommandDefinition
	Names() []string
}

// Analyzer binds and coerces parsed instructions into verified commands.
type Analyzer struct {
	source CommandSource
	help   *help.Generator
}

// NewAnalyzer creates an analyzer. A nil generator renders help at the
// default verbosity.
func NewAnalyzer(source CommandSource, gen *help.Generator) *Analyzer {
	if gen == nil {
		gen = help.NewGenerator(source)
	}
	return &Analyzer{source: source, help: gen}
}

// Analyze verifies every instruction, stopping at the first error.
func (a *Analyzer) Analyze(instructions []parser.Instruction) ([]*command.VerifiedCommand, error) {
	out := make([]*command.VerifiedCommand, 0, len(instructions))
	for _, in := range instructions {
		cmd, err := a.AnalyzeOne(in)
		if err != nil {
			return nil, err
		}
		out = append(out, cmd)
	}
	return out, nil
}

// AnalyzeOne verifies a single instruction. Help requests are answered
// before any argument checks, so "cmd ?" shows help even when required
// arguments are missing.
func (a *Analyzer) AnalyzeOne(in parser.Instruction) (*command.VerifiedCommand, error) {
	name := command.JoinPath(in.Path)

	if in.HelpRequested || hasHelpPositional(in.Positional) {
		return nil, a.helpFor(name)
	}
	if name == "" {
		return nil, usage.HelpRequested(a.help.List(""))
	}

	def, ok := a.source.Command(name)
	if !ok {
		if len(a.source.WithPrefix(name)) > 0 {
			return nil, usage.HelpRequested(a.help.List(name))
		}
		return nil, a.notFound(name)
	}

	args, err := bind(def, in)
	if err != nil {
		return nil, err
	}
	return &command.VerifiedCommand{Definition: def, Arguments: args}, nil
}

func (a *Analyzer) helpFor(name string) error {
	if name == "" {
		return usage.HelpRequested(a.help.List(""))
	}
	if def, ok := a.source.Command(name); ok {
		return usage.HelpRequested(a.help.Render(def, a.help.Verbosity()))
	}
	if len(a.source.WithPrefix(name)) > 0 {
		return usage.HelpRequested(a.help.List(name))
	}
	return a.notFound(name)
}

func (a *Analyzer) notFound(name string) error {
	suggestions := FindSimilar(name, a.source.Names(), defaultSuggestionsCount, commandSuggestDistance)
	return usage.CommandNotFound(name, suggestions...)
}

func hasHelpPositional(positional []string) bool {
	for _, p := range positional {
		if p == helpPositional {
			return true
		}
	}
	return false
}
