// Package repl runs instructions typed one line at a time against a
// pipeline, prompting for interactive arguments the user left out.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/footprint-tools/unilang/internal/command"
	"github.com/footprint-tools/unilang/internal/domain"
	"github.com/footprint-tools/unilang/internal/log"
	"github.com/footprint-tools/unilang/internal/parser"
	"github.com/footprint-tools/unilang/internal/pipeline"
	"github.com/footprint-tools/unilang/internal/ui"
	"github.com/footprint-tools/unilang/internal/ui/prompt"
	"github.com/footprint-tools/unilang/internal/ui/style"
	"github.com/footprint-tools/unilang/internal/usage"
)

// maxPrompts bounds how many interactive arguments one line may ask for.
const maxPrompts = 8

// DefaultPrompt is printed before each line.
const DefaultPrompt = "unilang> "

// Lookup finds command definitions for prompting.
type Lookup interface {
	Command(name string) (*command.CommandDefinition, bool)
}

// REPL reads instructions from in and reports results on out and errOut.
type REPL struct {
	pipeline *pipeline.Pipeline
	lookup   Lookup

	in       *bufio.Reader
	out      domain.OutputWriter
	errOut   io.Writer
	prompter prompt.Prompter
	styler   domain.Styler
	logger   domain.Logger
	prompt   string
	truncate ui.Truncation
}

// Option configures a REPL.
type Option func(*REPL)

// WithPrompter replaces the prompter used for interactive arguments.
func WithPrompter(p prompt.Prompter) Option {
	return func(r *REPL) { r.prompter = p }
}

func WithStyler(s domain.Styler) Option {
	return func(r *REPL) { r.styler = s }
}

func WithLogger(l domain.Logger) Option {
	return func(r *REPL) { r.logger = log.OrNop(l) }
}

// WithTruncation limits the routine output printed for each line.
func WithTruncation(t ui.Truncation) Option {
	return func(r *REPL) { r.truncate = t }
}

// WithPrompt changes the line prompt.
func WithPrompt(p string) Option {
	return func(r *REPL) { r.prompt = p }
}

// New creates a REPL. Without WithPrompter, interactive values are read
// from in as plain lines.
func New(p *pipeline.Pipeline, lookup Lookup, in io.Reader, out domain.OutputWriter, errOut io.Writer, opts ...Option) *REPL {
	r := &REPL{
		pipeline: p,
		lookup:   lookup,
		in:       bufio.NewReader(in),
		out:      out,
		errOut:   errOut,
		styler:   style.NopStyler{},
		logger:   log.NopLogger{},
		prompt:   DefaultPrompt,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.prompter == nil {
		r.prompter = prompt.NewLine(r.in, errOut)
	}
	return r
}

// Run reads lines until EOF, "exit" or "quit", or until ctx ends.
func (r *REPL) Run(ctx context.Context) error {
	lines := newLineReader(r.in)
	defer lines.stop()

	r.logger.Info("repl: session %s started", r.pipeline.SessionID())
	defer r.logger.Info("repl: session %s ended", r.pipeline.SessionID())

	for {
		_, _ = r.out.Printf("%s", r.styler.Muted(r.prompt))

		raw, err := lines.next(ctx)
		line := strings.TrimSpace(raw)

		if line != "" {
			if line == "exit" || line == "quit" {
				return nil
			}
			r.Execute(line)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				_, _ = r.out.Println()
				return nil
			}
			return err
		}
	}
}

// Execute runs one line, prompting for missing interactive arguments and
// retrying until the line stops asking or the user cancels.
func (r *REPL) Execute(line string) pipeline.Result {
	res := r.pipeline.ProcessCommand(line)

	for i := 0; i < maxPrompts && usage.CodeOf(res.Err) == usage.CodeInteractiveRequired; i++ {
		next, err := r.fill(line, res.Err)
		if err != nil {
			if errors.Is(err, prompt.ErrCancelled) {
				_, _ = fmt.Fprintln(r.errOut, r.styler.Warning("cancelled"))
				return res
			}
			r.logger.Warn("repl: prompt failed: %v", err)
			break
		}
		line = next
		res = r.pipeline.ProcessCommand(line)
	}

	ui.Report(r.out, r.errOut, r.styler, res, r.truncate)
	return res
}

// fill asks for the argument named in err and returns line with the value
// added as a named argument of the instruction that declared it.
func (r *REPL) fill(line string, err error) (string, error) {
	ue, ok := usage.As(err)
	if !ok || ue.Argument == "" {
		return "", fmt.Errorf("no argument to prompt for")
	}

	instructions, perr := parser.ParseMultiple(line)
	if perr != nil {
		return "", perr
	}

	for i, in := range instructions {
		def, found := r.lookup.Command(command.JoinPath(in.Path))
		if !found {
			continue
		}
		arg, declared := def.Argument(ue.Argument)
		if !declared || !arg.Attributes.Interactive || len(in.Named[arg.Name]) > 0 {
			continue
		}

		value, perr := r.prompter.Prompt(prompt.Request{
			Name:      arg.Name,
			Hint:      arg.Hint,
			Sensitive: arg.Attributes.Sensitive,
		})
		if perr != nil {
			return "", perr
		}

		instructions[i] = withNamed(in, arg.Name, value)
		return render(instructions), nil
	}
	return "", fmt.Errorf("argument '%s' is not interactive", ue.Argument)
}

func withNamed(in parser.Instruction, name, value string) parser.Instruction {
	named := make(map[string][]string, len(in.Named)+1)
	for k, v := range in.Named {
		named[k] = v
	}
	named[name] = []string{value}
	in.Named = named
	in.NamedOrder = append(append([]string(nil), in.NamedOrder...), name)
	return in
}

func render(instructions []parser.Instruction) string {
	parts := make([]string, len(instructions))
	for i, in := range instructions {
		parts[i] = in.String()
	}
	return strings.Join(parts, " "+parser.DefaultInstructionDelimiter+" ")
}
