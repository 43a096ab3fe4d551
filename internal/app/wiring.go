package app

import (
	"os"
	"strings"

	"github.com/footprint-tools/unilang/internal/builtins"
	"github.com/footprint-tools/unilang/internal/domain"
	"github.com/footprint-tools/unilang/internal/format"
	"github.com/footprint-tools/unilang/internal/help"
	"github.com/footprint-tools/unilang/internal/loader"
	"github.com/footprint-tools/unilang/internal/pipeline"
	"github.com/footprint-tools/unilang/internal/registry"
)

// Version is reported by .system.version. Release builds set it with
// -ldflags "-X github.com/footprint-tools/unilang/internal/app.Version=...".
var Version = "dev"

// EnvCredentials lists the user:token pairs .auth.login accepts,
// comma separated.
const EnvCredentials = "UNILANG_CREDENTIALS"

// Sources lists the extra definition files merged over the bundled
// commands. Each file is "path" or "prefix=path"; Prefix goes in front of
// every extra file's namespace.
type Sources struct {
	Files      []string
	Prefix     string
	OnConflict loader.ConflictPolicy
}

// NewRegistry builds the static registry: the bundled commands followed
// by every extra definition file, in order. Conflicts resolved by the
// policy are logged as warnings.
func NewRegistry(a *domain.Application, src Sources) (*registry.Registry, error) {
	defs, err := builtins.Definitions()
	if err != nil {
		return nil, err
	}
	modules := []loader.Module{{Name: "builtins", Definitions: defs}}
	for _, f := range src.Files {
		if f == "" {
			continue
		}
		modules = append(modules, loader.ParseModule(f).Under(src.Prefix))
	}

	agg, err := loader.Aggregate(modules, src.OnConflict)
	if err != nil {
		return nil, err
	}
	for _, c := range agg.Conflicts {
		a.Logger.Warn("registry: %s, keeping the %s definition", c, src.OnConflict)
	}

	routines := builtins.Routines(builtins.Deps{
		Config:      a.Config,
		History:     a.History,
		Layout:      format.LayoutFrom(a.Config),
		Version:     Version,
		Credentials: credentials(os.Getenv(EnvCredentials)),
	})
	return loader.NewRegistry(agg.Definitions, routines, registry.WithLogger(a.Logger))
}

func credentials(s string) map[string]string {
	creds := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		user, token, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if ok && user != "" && token != "" {
			creds[user] = token
		}
	}
	return creds
}

// NewPipeline creates a pipeline over reg that renders help with the
// application styler and records into the application history.
func NewPipeline(a *domain.Application, reg *registry.Registry, verbosity help.Verbosity, sessionID string) *pipeline.Pipeline {
	gen := help.NewGenerator(reg, help.WithVerbosity(verbosity), help.WithStyler(a.Styler))

	opts := []pipeline.Option{
		pipeline.WithHelp(gen),
		pipeline.WithLogger(a.Logger),
		pipeline.WithSessionID(sessionID),
		pipeline.WithStdout(a.Output),
	}
	if a.History != nil {
		opts = append(opts, pipeline.WithHistory(a.History))
	}
	return pipeline.New(reg, opts...)
}

// Verbosity resolves the help verbosity from the environment and config.
func Verbosity(cfg domain.ConfigProvider) help.Verbosity {
	v, _ := cfg.Get("help_verbosity")
	return help.ResolveVerbosity(v)
}

var _ pipeline.Registry = (*registry.Registry)(nil)
