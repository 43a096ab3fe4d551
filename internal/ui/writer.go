// Package ui holds the terminal output writer.
//
// The pager runs whatever command the user configured through the pager
// key or $PAGER, the same trust model as git or man.
package ui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"

	"github.com/footprint-tools/unilang/internal/domain"
)

// Writer implements domain.OutputWriter.
type Writer struct {
	out           io.Writer
	pagerDisabled bool
	configGetter  func(string) (string, bool)
	envGetter     func(string) string
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithPagerDisabled disables the pager.
func WithPagerDisabled() WriterOption {
	return func(w *Writer) {
		w.pagerDisabled = true
	}
}

// WithConfigGetter sets the config getter used to read the pager key.
func WithConfigGetter(fn func(string) (string, bool)) WriterOption {
	return func(w *Writer) {
		w.configGetter = fn
	}
}

// WithEnvGetter sets the environment variable getter function.
func WithEnvGetter(fn func(string) string) WriterOption {
	return func(w *Writer) {
		w.envGetter = fn
	}
}

// NewWriter creates a Writer on stdout.
func NewWriter(opts ...WriterOption) *Writer {
	return NewWriterTo(os.Stdout, opts...)
}

// NewWriterTo creates a Writer on out.
func NewWriterTo(out io.Writer, opts ...WriterOption) *Writer {
	w := &Writer{
		out:       out,
		envGetter: os.Getenv,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (n int, err error) {
	return w.out.Write(p)
}

// Printf formats and prints to the output.
func (w *Writer) Printf(format string, args ...any) (int, error) {
	return fmt.Fprintf(w.out, format, args...)
}

// Println prints a line to the output.
func (w *Writer) Println(args ...any) (int, error) {
	return fmt.Fprintln(w.out, args...)
}

// Pager displays content through a pager if appropriate.
//
// Precedence:
//  1. pager disabled → direct output
//  2. output not a TTY → direct output
//  3. pager config key → configured pager, "cat" bypasses
//  4. $PAGER → env pager, "cat" bypasses
//  5. default: "less -FRSX"
func (w *Writer) Pager(content string) {
	if w.pagerDisabled || !IsTerminal(w.out) {
		_, _ = fmt.Fprint(w.out, content)
		return
	}

	if w.configGetter != nil {
		if p, ok := w.configGetter("pager"); ok && p != "" {
			w.runPagerCmd(p, content)
			return
		}
	}
	if w.envGetter != nil {
		if p := w.envGetter("PAGER"); p != "" {
			w.runPagerCmd(p, content)
			return
		}
	}
	w.runPager("less", []string{"-FRSX"}, content)
}

func (w *Writer) runPagerCmd(pagerCmd string, content string) {
	parts := strings.Fields(pagerCmd)
	if len(parts) == 0 || parts[0] == "cat" {
		_, _ = fmt.Fprint(w.out, content)
		return
	}
	w.runPager(parts[0], parts[1:], content)
}

func (w *Writer) runPager(pager string, args []string, content string) {
	cmd := exec.Command(pager, args...)
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = w.out
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		_, _ = fmt.Fprint(w.out, content)
	}
}

var _ domain.OutputWriter = (*Writer)(nil)
