// Package app wires the services a front-end needs: config, logging,
// history, output and styling, plus the registry and pipeline built on them.
package app

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/footprint-tools/unilang/internal/config"
	"github.com/footprint-tools/unilang/internal/domain"
	"github.com/footprint-tools/unilang/internal/log"
	"github.com/footprint-tools/unilang/internal/paths"
	"github.com/footprint-tools/unilang/internal/store"
	"github.com/footprint-tools/unilang/internal/ui"
	"github.com/footprint-tools/unilang/internal/ui/style"
)

// Options configures the application factory.
type Options struct {
	// Out receives command output; nil means stdout.
	Out           io.Writer
	PagerDisabled bool

	LogEnabled bool
	LogLevel   log.Level

	StyleEnabled bool
	StyleConfig  map[string]string

	HistoryEnabled bool
	HistoryPath    string
}

// DefaultOptions reads the options from configuration.
func DefaultOptions(cfg domain.ConfigProvider) Options {
	all, _ := cfg.GetAll()
	get := func(key string) string {
		v, _ := cfg.Get(key)
		return v
	}

	historyPath := get("history_path")
	if historyPath == "" {
		historyPath = paths.HistoryFilePath()
	}

	return Options{
		LogEnabled:     get("enable_log") == "true",
		LogLevel:       log.ParseLevel(get("log_level")),
		StyleEnabled:   ColorEnabled(get("color"), os.Stdout),
		StyleConfig:    all,
		HistoryEnabled: get("history_enabled") != "false",
		HistoryPath:    historyPath,
	}
}

// ColorEnabled resolves the color setting against the output file:
// "always" and "never" are absolute, anything else means auto.
func ColorEnabled(setting string, f *os.File) bool {
	switch setting {
	case "always":
		return true
	case "never":
		return false
	}
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// New creates a new Application with all dependencies wired up.
func New(cfg domain.ConfigProvider, opts Options) (*domain.Application, error) {
	var logger domain.Logger = log.NopLogger{}
	if opts.LogEnabled {
		// a log that cannot be opened is not fatal
		if err := log.Init(paths.LogFilePath(), opts.LogLevel); err == nil {
			logger = log.Default()
		}
	}

	var history domain.HistoryStore
	if opts.HistoryEnabled {
		s, err := store.New(opts.HistoryPath)
		if err != nil {
			_ = logger.Close()
			return nil, err
		}
		history = s
	}

	var writerOpts []ui.WriterOption
	if opts.PagerDisabled {
		writerOpts = append(writerOpts, ui.WithPagerDisabled())
	}
	writerOpts = append(writerOpts, ui.WithConfigGetter(cfg.Get))

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	return &domain.Application{
		History: history,
		Config:  cfg,
		Logger:  logger,
		Output:  ui.NewWriterTo(out, writerOpts...),
		Styler:  style.NewFor(out, opts.StyleEnabled, opts.StyleConfig),
	}, nil
}

// NewForTesting creates an Application suitable for testing: no history,
// NopLogger, no pager and no styling.
func NewForTesting() *domain.Application {
	return &domain.Application{
		Config: config.NewProvider(),
		Logger: log.NopLogger{},
		Output: ui.NewWriter(ui.WithPagerDisabled()),
		Styler: style.NopStyler{},
	}
}

// Close cleans up application resources.
func Close(app *domain.Application) error {
	if app.Logger != nil {
		_ = app.Logger.Close()
	}
	if app.History != nil {
		return app.History.Close()
	}
	return nil
}
