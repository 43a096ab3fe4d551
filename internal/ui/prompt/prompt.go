// Package prompt asks the user for argument values that a command marks
// as interactive. Sensitive values are never echoed.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/footprint-tools/unilang/internal/domain"
	"github.com/footprint-tools/unilang/internal/ui"
	"github.com/footprint-tools/unilang/internal/ui/style"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("prompt: cancelled")

// Request describes the value being asked for.
type Request struct {
	Name      string
	Hint      string
	Sensitive bool
}

func (r Request) label() string {
	if r.Hint != "" {
		return fmt.Sprintf("%s (%s)", r.Name, r.Hint)
	}
	return r.Name
}

// Prompter reads one value from the user.
type Prompter interface {
	Prompt(req Request) (string, error)
}

// For picks a Prompter for the given streams: the bubbletea input when
// both are terminals, a plain line reader otherwise.
func For(in io.Reader, out io.Writer, styler domain.Styler) Prompter {
	if styler == nil {
		styler = style.NopStyler{}
	}
	if ui.IsTerminal(in) && ui.IsTerminal(out) {
		return &Terminal{in: in, out: out, styler: styler}
	}
	return NewLine(in, out)
}

// Line reads values one line at a time. It is used for pipes and tests.
type Line struct {
	in  io.Reader
	r   *bufio.Reader
	out io.Writer
}

// NewLine creates a line prompter.
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{in: in, r: bufio.NewReader(in), out: out}
}

// Prompt writes the label and reads one line. A sensitive value read from
// a terminal is not echoed. EOF before any input is ErrCancelled.
func (l *Line) Prompt(req Request) (string, error) {
	_, _ = fmt.Fprintf(l.out, "%s: ", req.label())

	if req.Sensitive {
		if f, ok := l.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			b, err := term.ReadPassword(int(f.Fd()))
			_, _ = fmt.Fprintln(l.out)
			if err != nil {
				return "", err
			}
			return string(b), nil
		}
	}

	line, err := l.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", ErrCancelled
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
