// Package pipeline runs instructions end to end: parse, verify against the
// registry, execute the bound routine and record the outcome.
package pipeline

import (
	"io"
	"time"

	"github.com/footprint-tools/unilang/internal/command"
	"github.com/footprint-tools/unilang/internal/dispatchers"
	"github.com/footprint-tools/unilang/internal/domain"
	"github.com/footprint-tools/unilang/internal/help"
	"github.com/footprint-tools/unilang/internal/log"
	"github.com/footprint-tools/unilang/internal/parser"
)

// Registry is what the pipeline needs from a command registry.
type Registry interface {
	dispatchers.CommandSource
	dispatchers.RoutineSource
}

// Pipeline owns the parser, analyzer and interpreter for one registry.
type Pipeline struct {
	registry    Registry
	parser      *parser.Parser
	analyzer    *dispatchers.Analyzer
	interpreter *dispatchers.Interpreter
	history     domain.HistoryStore
	logger      domain.Logger
	sessionID   string
	stdout      io.Writer
	now         func() time.Time
}

// Option configures a Pipeline.
type Option func(*pipelineConfig)

type pipelineConfig struct {
	parserOpts parser.Options
	help       *help.Generator
	history    domain.HistoryStore
	logger     domain.Logger
	sessionID  string
	stdout     io.Writer
}

// WithParserOptions sets parser strictness and the instruction delimiter.
func WithParserOptions(opts parser.Options) Option {
	return func(c *pipelineConfig) { c.parserOpts = opts }
}

// WithHelp sets the generator used for help requests.
func WithHelp(g *help.Generator) Option {
	return func(c *pipelineConfig) { c.help = g }
}

// WithHistory records every processed instruction in s.
func WithHistory(s domain.HistoryStore) Option {
	return func(c *pipelineConfig) { c.history = s }
}

func WithLogger(l domain.Logger) Option {
	return func(c *pipelineConfig) { c.logger = l }
}

// WithSessionID tags history entries and routine contexts.
func WithSessionID(id string) Option {
	return func(c *pipelineConfig) { c.sessionID = id }
}

// WithStdout is handed to routines that stream output.
func WithStdout(w io.Writer) Option {
	return func(c *pipelineConfig) { c.stdout = w }
}

// New creates a pipeline over reg.
func New(reg Registry, opts ...Option) *Pipeline {
	var cfg pipelineConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := log.OrNop(cfg.logger)
	stdout := cfg.stdout
	if stdout == nil {
		stdout = io.Discard
	}

	return &Pipeline{
		registry:    reg,
		parser:      parser.New(cfg.parserOpts),
		analyzer:    dispatchers.NewAnalyzer(reg, cfg.help),
		interpreter: dispatchers.NewInterpreter(reg, logger),
		history:     cfg.history,
		logger:      logger,
		sessionID:   cfg.sessionID,
		stdout:      stdout,
		now:         time.Now,
	}
}

// SessionID returns the session the pipeline records under.
func (p *Pipeline) SessionID() string {
	return p.sessionID
}

func (p *Pipeline) context() *command.Context {
	return &command.Context{
		Stdout:    p.stdout,
		Logger:    p.logger,
		SessionID: p.sessionID,
	}
}
