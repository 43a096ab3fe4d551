package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/footprint-tools/unilang/internal/app"
	"github.com/footprint-tools/unilang/internal/help"
	"github.com/footprint-tools/unilang/internal/loader"
	"github.com/footprint-tools/unilang/internal/ui"
	"github.com/footprint-tools/unilang/internal/usage"
)

// Flags holds the global flags shared by every subcommand.
type Flags struct {
	Verbosity   string
	NoColor     bool
	NoPager     bool
	NoHistory   bool
	Definitions []string
	Prefix      string
	OnConflict  string
	Head        int
	Tail        int
	Width       int
}

func (f *Flags) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&f.Verbosity, "verbosity", "V", "", "Help verbosity: 0-4 or minimal, basic, standard, detailed, comprehensive")
	fs.BoolVar(&f.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&f.NoPager, "no-pager", false, "Do not use pager for output")
	fs.BoolVar(&f.NoHistory, "no-history", false, "Do not record executed commands")
	fs.StringArrayVar(&f.Definitions, "definitions", nil, "Extra command definition file (YAML or JSON), optionally as prefix=path; repeatable")
	fs.StringVar(&f.Prefix, "prefix", "", "Namespace prefix applied to every extra definition file")
	fs.StringVar(&f.OnConflict, "on-conflict", "fail", "What to do when definition files share a command: fail, first or last")
	fs.IntVar(&f.Head, "head", 0, "Print only the first N lines of command output")
	fs.IntVar(&f.Tail, "tail", 0, "Print only the last N lines of command output")
	fs.IntVar(&f.Width, "width", 0, "Cut command output lines to N columns")
}

// sources returns the definition files to load. configured is the
// comma separated definitions key, used when no flag names a file.
func (f *Flags) sources(configured string) (app.Sources, error) {
	policy, err := loader.ParseConflictPolicy(f.OnConflict)
	if err != nil {
		return app.Sources{}, usage.Parse(-1, "--on-conflict: %v", err)
	}
	files := f.Definitions
	if len(files) == 0 {
		for _, p := range strings.Split(configured, ",") {
			if p = strings.TrimSpace(p); p != "" {
				files = append(files, p)
			}
		}
	}
	return app.Sources{Files: files, Prefix: f.Prefix, OnConflict: policy}, nil
}

func (f *Flags) truncation() ui.Truncation {
	return ui.Truncation{Head: max(f.Head, 0), Tail: max(f.Tail, 0), Width: max(f.Width, 0)}
}

// verbosity returns the flag value when set, else the configured one.
func (f *Flags) verbosity(configured help.Verbosity) (help.Verbosity, error) {
	if f.Verbosity == "" {
		return configured, nil
	}
	return help.ParseVerbosity(f.Verbosity)
}
