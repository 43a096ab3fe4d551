// Package builtins is the command set bundled with the unilang binary:
// an embedded definition table and the routines it links to.
package builtins

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/footprint-tools/unilang/internal/command"
	"github.com/footprint-tools/unilang/internal/domain"
	"github.com/footprint-tools/unilang/internal/format"
	"github.com/footprint-tools/unilang/internal/loader"
)

//go:embed commands.yaml
var table []byte

// Error codes returned by the bundled routines.
const (
	CodeDivisionByZero   = "DIVISION_BY_ZERO"
	CodeUnknownConfigKey = "UNKNOWN_CONFIG_KEY"
	CodeConfigWrite      = "CONFIG_WRITE_FAILED"
	CodeHistoryDisabled  = "HISTORY_DISABLED"
	CodeHistoryQuery     = "HISTORY_QUERY_FAILED"
	CodeListFailed       = "LIST_FAILED"
	CodeAuthFailed       = "AUTH_FAILED"
)

// Deps are the services the routines read and write.
type Deps struct {
	Config  domain.ConfigProvider
	History domain.HistoryStore
	Layout  format.Layout
	Version string

	// Credentials maps users to tokens accepted by .auth.login.
	Credentials map[string]string

	Now func() time.Time
}

// Definitions decodes the embedded definition table.
func Definitions() ([]command.CommandDefinition, error) {
	defs, err := loader.Parse(table, loader.FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("builtin definitions: %w", err)
	}
	return defs, nil
}

// Routines returns the routine table keyed by routine link or full name.
func Routines(deps Deps) map[string]command.Routine {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Layout == (format.Layout{}) {
		deps.Layout = format.DefaultLayout
	}
	r := &routines{deps: deps}

	return map[string]command.Routine{
		".system.hello":   hello,
		"echo":            echo,
		".system.version": r.version,
		".math.add":       add,
		".math.divide":    divide,
		".math.sum":       sum,
		".files.list":     listFiles,
		".config.get":     r.configGet,
		".config.set":     r.configSet,
		".config.list":    r.configList,
		".history.list":   r.historyList,
		".history.clear":  r.historyClear,
		".auth.login":     r.login,
	}
}

type routines struct {
	deps Deps
}
