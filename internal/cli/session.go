package cli

import (
	"os"

	"github.com/google/uuid"

	"github.com/footprint-tools/unilang/internal/app"
	"github.com/footprint-tools/unilang/internal/config"
	"github.com/footprint-tools/unilang/internal/domain"
	"github.com/footprint-tools/unilang/internal/pipeline"
	"github.com/footprint-tools/unilang/internal/registry"
)

// session is the application opened for one invocation.
type session struct {
	app      *domain.Application
	registry *registry.Registry
	pipeline *pipeline.Pipeline
}

func (s *session) close() {
	_ = app.Close(s.app)
}

// open builds the application, registry and pipeline for one run,
// applying the global flags on top of the configuration.
func open(env Env, flags *Flags) (*session, error) {
	cfg := env.Config
	if cfg == nil {
		cfg = config.NewProvider()
	}

	opts := app.DefaultOptions(cfg)
	opts.Out = env.Out
	f, _ := env.Out.(*os.File)
	opts.StyleEnabled = !flags.NoColor && app.ColorEnabled(configured(cfg, "color"), f)
	opts.PagerDisabled = flags.NoPager
	if flags.NoHistory {
		opts.HistoryEnabled = false
	}

	a, err := app.New(cfg, opts)
	if err != nil {
		return nil, err
	}

	src, err := flags.sources(configured(cfg, "definitions"))
	if err != nil {
		_ = app.Close(a)
		return nil, err
	}
	reg, err := app.NewRegistry(a, src)
	if err != nil {
		_ = app.Close(a)
		return nil, err
	}

	verbosity, err := flags.verbosity(app.Verbosity(cfg))
	if err != nil {
		_ = app.Close(a)
		return nil, err
	}

	sessionID := uuid.NewString()
	a.Logger.Debug("cli: session %s started", sessionID)

	return &session{
		app:      a,
		registry: reg,
		pipeline: app.NewPipeline(a, reg, verbosity, sessionID),
	}, nil
}

func configured(cfg domain.ConfigProvider, key string) string {
	v, _ := cfg.Get(key)
	return v
}
