// Package loader reads command definition tables from YAML or JSON.
//
// A table is either a list of commands or a mapping with a "commands" key
// holding that list. Kinds use the textual grammar understood by
// command.ParseKind and validation rules the "name:value" form understood
// by command.ParseRule.
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/footprint-tools/unilang/internal/command"
	"github.com/footprint-tools/unilang/internal/registry"
	"github.com/footprint-tools/unilang/internal/usage"
)

// Format selects the decoder for a definition table.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatOf picks the format from a file extension. Anything other than
// .json is read as YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// LoadFile reads the definition table at path.
func LoadFile(path string) ([]command.CommandDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definitions: %w", err)
	}
	defs, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// Parse decodes a definition table.
func Parse(data []byte, format Format) ([]command.CommandDefinition, error) {
	var (
		entries []commandEntry
		err     error
	)
	switch format {
	case FormatJSON:
		entries, err = decodeJSON(data)
	default:
		entries, err = decodeYAML(data)
	}
	if err != nil {
		return nil, err
	}

	defs := make([]command.CommandDefinition, 0, len(entries))
	for i, e := range entries {
		def, err := e.definition()
		if err != nil {
			name := e.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i+1)
			}
			return nil, usage.InvalidDefinition(name, err.Error())
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func decodeYAML(data []byte) ([]commandEntry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse definitions: %w", err)
	}
	if root.Kind == 0 {
		return nil, nil
	}

	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	var entries []commandEntry
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&entries); err != nil {
			return nil, fmt.Errorf("decode definitions: %w", err)
		}
	case yaml.MappingNode:
		var payload struct {
			Commands []commandEntry `yaml:"commands"`
		}
		if err := node.Decode(&payload); err != nil {
			return nil, fmt.Errorf("decode definitions: %w", err)
		}
		entries = payload.Commands
	default:
		return nil, fmt.Errorf("line %d: definitions must be a list or a mapping with 'commands'", node.Line)
	}
	return entries, nil
}

func decodeJSON(data []byte) ([]commandEntry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var entries []commandEntry
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("decode definitions: %w", err)
		}
	case '{':
		var payload struct {
			Commands []commandEntry `json:"commands"`
		}
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return nil, fmt.Errorf("decode definitions: %w", err)
		}
		entries = payload.Commands
	default:
		return nil, fmt.Errorf("definitions must be a JSON array or an object with 'commands'")
	}
	return entries, nil
}

func (e commandEntry) definition() (command.CommandDefinition, error) {
	b := command.New(strings.TrimSpace(e.Name)).
		Namespace(strings.TrimSpace(e.Namespace)).
		Description(e.Description).
		Hint(e.Hint).
		Version(e.Version).
		Tags(e.Tags...).
		Aliases(e.Aliases...).
		Permissions(e.Permissions...).
		Examples(e.Examples...).
		HTTPMethod(e.HTTPMethodHint).
		Category(e.Category).
		Priority(e.Priority)

	if e.Status != "" {
		b.Status(command.Status(strings.ToLower(e.Status)))
	}
	if e.DeprecationMessage != "" {
		b.Deprecated(e.DeprecationMessage)
	}
	if e.Idempotent {
		b.Idempotent()
	}
	if e.Hidden {
		b.Hidden()
	}
	if e.AutoHelp {
		b.AutoHelp()
	}
	if e.RoutineLink != nil {
		b.RoutineLink(*e.RoutineLink)
	}

	for _, a := range e.Arguments {
		arg, err := a.argument()
		if err != nil {
			return command.CommandDefinition{}, err
		}
		b.Arguments(arg)
	}
	return b.Build(), nil
}

func (a argumentEntry) argument() (command.ArgumentDefinition, error) {
	kindText := a.Kind
	if strings.TrimSpace(kindText) == "" {
		kindText = command.TypeString.String()
	}
	kind, err := command.ParseKind(kindText)
	if err != nil {
		return command.ArgumentDefinition{}, fmt.Errorf("argument '%s': %w", a.Name, err)
	}

	ab := command.Arg(strings.TrimSpace(a.Name), kind).
		Description(a.Description).
		Hint(a.Hint).
		Aliases(a.Aliases...).
		Tags(a.Tags...)

	if a.Optional {
		ab.Optional()
	}
	if a.Default.Set {
		ab.Default(a.Default.Value)
	}
	if a.Multiple {
		ab.Multiple()
	}
	if a.Interactive {
		ab.Interactive()
	}
	if a.Sensitive {
		ab.Sensitive()
	}

	rules := make([]command.ValidationRule, 0, len(a.ValidationRules))
	for _, text := range a.ValidationRules {
		rule, err := command.ParseRule(text)
		if err != nil {
			return command.ArgumentDefinition{}, fmt.Errorf("argument '%s': %w", a.Name, err)
		}
		rules = append(rules, rule)
	}
	if len(rules) > 0 {
		ab.Rules(rules...)
	}
	return ab.Build(), nil
}

// NewRegistry builds a static registry from definition tables, attaching
// routines by routine link or full name.
func NewRegistry(defs []command.CommandDefinition, routines map[string]command.Routine, opts ...registry.Option) (*registry.Registry, error) {
	return registry.NewStatic(defs, routines, opts...)
}

// LoadRegistry reads every file in order and builds one static registry.
// Commands claimed by more than one file are reported together.
func LoadRegistry(paths []string, routines map[string]command.Routine, opts ...registry.Option) (*registry.Registry, error) {
	modules := make([]Module, len(paths))
	for i, p := range paths {
		modules[i] = Module{Name: filepath.Base(p), Path: p}
	}
	agg, err := Aggregate(modules, ConflictFail)
	if err != nil {
		return nil, err
	}
	return NewRegistry(agg.Definitions, routines, opts...)
}
