package loader

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// commandEntry is the on-disk shape of one command definition. YAML and
// JSON use the same field names.
type commandEntry struct {
	Name               string          `yaml:"name" json:"name"`
	Namespace          string          `yaml:"namespace" json:"namespace"`
	Description        string          `yaml:"description" json:"description"`
	Hint               string          `yaml:"hint" json:"hint"`
	Arguments          []argumentEntry `yaml:"arguments" json:"arguments"`
	RoutineLink        *string         `yaml:"routine_link" json:"routine_link"`
	Status             string          `yaml:"status" json:"status"`
	Version            string          `yaml:"version" json:"version"`
	Tags               []string        `yaml:"tags" json:"tags"`
	Aliases            []string        `yaml:"aliases" json:"aliases"`
	Permissions        []string        `yaml:"permissions" json:"permissions"`
	Idempotent         bool            `yaml:"idempotent" json:"idempotent"`
	DeprecationMessage string          `yaml:"deprecation_message" json:"deprecation_message"`
	HTTPMethodHint     string          `yaml:"http_method_hint" json:"http_method_hint"`
	Examples           []string        `yaml:"examples" json:"examples"`
	Category           string          `yaml:"category" json:"category"`
	Priority           int             `yaml:"priority" json:"priority"`
	Hidden             bool            `yaml:"hidden" json:"hidden"`
	AutoHelp           bool            `yaml:"auto_help_enabled" json:"auto_help_enabled"`
}

type argumentEntry struct {
	Name            string    `yaml:"name" json:"name"`
	Description     string    `yaml:"description" json:"description"`
	Hint            string    `yaml:"hint" json:"hint"`
	Kind            string    `yaml:"kind" json:"kind"`
	Optional        bool      `yaml:"optional" json:"optional"`
	Multiple        bool      `yaml:"multiple" json:"multiple"`
	Default         rawScalar `yaml:"default_value" json:"default_value"`
	ValidationRules []string  `yaml:"validation_rules" json:"validation_rules"`
	Aliases         []string  `yaml:"aliases" json:"aliases"`
	Tags            []string  `yaml:"tags" json:"tags"`
	Interactive     bool      `yaml:"interactive" json:"interactive"`
	Sensitive       bool      `yaml:"sensitive" json:"sensitive"`
}

// rawScalar keeps a scalar's text whatever its type, so that
// "default_value: 5" and "default_value: \"5\"" load the same. Null leaves
// it unset.
type rawScalar struct {
	Value string
	Set   bool
}

func (s *rawScalar) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: default_value must be a scalar", n.Line)
	}
	if n.Tag == "!!null" {
		return nil
	}
	s.Value, s.Set = n.Value, true
	return nil
}

func (s *rawScalar) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		s.Value, s.Set = str, true
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v.(type) {
	case map[string]any, []any:
		return fmt.Errorf("default_value must be a scalar")
	}
	s.Value, s.Set = string(data), true
	return nil
}
