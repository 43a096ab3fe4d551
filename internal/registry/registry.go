// Package registry maps command names to definitions and routines.
//
// A dynamic registry is populated at runtime through Register and is safe
// for concurrent registration and lookup. A static registry is built once
// from a definition table and rejects further registration.
package registry

import (
	"sort"
	"strings"
	"sync"

	"github.com/footprint-tools/unilang/internal/command"
	"github.com/footprint-tools/unilang/internal/domain"
	"github.com/footprint-tools/unilang/internal/log"
	"github.com/footprint-tools/unilang/internal/usage"
)

// Registry owns command definitions and their routines.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]*command.CommandDefinition
	aliases  map[string]string
	routines map[string]command.Routine
	static   bool
	logger   domain.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration events.
func WithLogger(l domain.Logger) Option {
	return func(r *Registry) {
		r.logger = log.OrNop(l)
	}
}

// New creates an empty dynamic registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		commands: make(map[string]*command.CommandDefinition),
		aliases:  make(map[string]string),
		routines: make(map[string]command.Routine),
		logger:   log.NopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewStatic builds an immutable registry from a definition table.
// Routines are looked up by each definition's RoutineLink, falling back to
// its full name. Definitions without a routine stay metadata-only.
func NewStatic(table []command.CommandDefinition, routines map[string]command.Routine, opts ...Option) (*Registry, error) {
	r := New(opts...)
	for _, def := range table {
		routine := routines[def.RoutineLink]
		if routine == nil {
			routine = routines[def.FullName()]
		}
		if err := r.add(def, routine); err != nil {
			return nil, err
		}
	}
	r.static = true
	r.logger.Debug("registry: static table loaded with %d commands", len(r.commands))
	return r, nil
}

// IsStatic reports whether the registry rejects registration.
func (r *Registry) IsStatic() bool {
	return r.static
}

// Register adds a metadata-only command.
func (r *Registry) Register(def command.CommandDefinition) error {
	return r.RegisterWithRoutine(def, nil)
}

// RegisterWithRoutine adds a command and binds its routine. The name is
// validated before anything is stored, so a rejected definition leaves the
// registry unchanged.
func (r *Registry) RegisterWithRoutine(def command.CommandDefinition, routine command.Routine) error {
	if r.static {
		return usage.InvalidDefinition(def.FullName(), "registry is static and cannot be modified")
	}
	return r.add(def, routine)
}

func (r *Registry) add(def command.CommandDefinition, routine command.Routine) error {
	name := def.FullName()

	if err := command.ValidateName(def.Name); err != nil {
		return usage.InvalidCommandName(def.Name, err.Error())
	}
	if def.Namespace != "" && def.Namespace != command.Separator {
		if err := command.ValidateName(def.Namespace); err != nil {
			return usage.InvalidCommandName(def.Namespace, "namespace "+err.Error())
		}
	}
	for _, alias := range def.Aliases {
		if err := command.ValidateName(alias); err != nil {
			return usage.InvalidCommandName(alias, "alias "+err.Error())
		}
	}
	if err := def.Validate(); err != nil {
		return usage.InvalidDefinition(name, err.Error())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken(name) {
		return usage.CommandAlreadyExists(name)
	}
	for _, alias := range def.Aliases {
		if alias == name || r.taken(alias) {
			return usage.CommandAlreadyExists(alias)
		}
	}

	stored := def.Clone()
	r.commands[name] = &stored
	for _, alias := range def.Aliases {
		r.aliases[alias] = name
	}
	if routine != nil {
		r.routines[name] = routine
	}

	r.logger.Debug("registry: registered %s (routine=%t)", name, routine != nil)
	return nil
}

func (r *Registry) taken(name string) bool {
	if _, ok := r.commands[name]; ok {
		return true
	}
	_, ok := r.aliases[name]
	return ok
}

// Resolve returns the canonical name for a command name or alias.
func (r *Registry) Resolve(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolve(name)
}

func (r *Registry) resolve(name string) (string, bool) {
	if _, ok := r.commands[name]; ok {
		return name, true
	}
	canonical, ok := r.aliases[name]
	return canonical, ok
}

// Command looks up a definition by full name or alias. Each call returns
// a fresh copy, so callers cannot change what later lookups see.
func (r *Registry) Command(name string) (*command.CommandDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	canonical, ok := r.resolve(name)
	if !ok {
		return nil, false
	}
	def := r.commands[canonical].Clone()
	return &def, true
}

// Routine returns the routine bound to a command name or alias.
func (r *Registry) Routine(name string) (command.Routine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	canonical, ok := r.resolve(name)
	if !ok {
		return nil, false
	}
	routine, ok := r.routines[canonical]
	return routine, ok
}

// Commands returns all definitions sorted by full name.
func (r *Registry) Commands() []*command.CommandDefinition {
	return r.WithPrefix("")
}

// WithPrefix returns copies of the definitions whose full name equals
// prefix or lives under it as a namespace, sorted by full name. An empty
// prefix or a bare separator matches everything.
func (r *Registry) WithPrefix(prefix string) []*command.CommandDefinition {
	prefix = strings.TrimSuffix(prefix, command.Separator)

	r.mu.RLock()
	out := make([]*command.CommandDefinition, 0, len(r.commands))
	for name, def := range r.commands {
		if prefix == "" || name == prefix || strings.HasPrefix(name, prefix+command.Separator) {
			c := def.Clone()
			out = append(out, &c)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].FullName() < out[j].FullName()
	})
	return out
}

// Names returns every command name and alias, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.commands)+len(r.aliases))
	for name := range r.commands {
		names = append(names, name)
	}
	for alias := range r.aliases {
		names = append(names, alias)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Len returns the number of registered commands, not counting aliases.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}
