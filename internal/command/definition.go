package command

import (
	"fmt"
	"slices"
	"strings"
)

// Separator prefixes every command name and joins path segments.
const Separator = "."

// Status describes the lifecycle stage of a command.
type Status string

const (
	StatusStable       Status = "stable"
	StatusExperimental Status = "experimental"
	StatusDeprecated   Status = "deprecated"
	StatusInternal     Status = "internal"
)

// Attributes controls how an argument is bound.
type Attributes struct {
	Optional bool
	// Multiple collects every remaining positional value, or every named
	// occurrence, into a list.
	Multiple bool
	// Default is coerced against the argument kind when an optional
	// argument is not supplied.
	Default    string
	HasDefault bool
	// Sensitive values are masked when prompted for and never logged.
	Sensitive bool
	// Interactive arguments are prompted for by front-ends that can.
	Interactive bool
}

// ArgumentDefinition describes one declared argument of a command.
type ArgumentDefinition struct {
	Name            string
	Kind            Kind
	Hint            string
	Description     string
	Attributes      Attributes
	ValidationRules []ValidationRule
	Aliases         []string
	Tags            []string
}

// Clone returns a deep copy that shares no slices with a.
func (a ArgumentDefinition) Clone() ArgumentDefinition {
	c := a
	c.Kind = a.Kind.Clone()
	c.ValidationRules = slices.Clone(a.ValidationRules)
	c.Aliases = slices.Clone(a.Aliases)
	c.Tags = slices.Clone(a.Tags)
	return c
}

// Required reports whether the argument must be supplied.
func (a ArgumentDefinition) Required() bool {
	return !a.Attributes.Optional
}

// Matches reports whether name is the argument's name or one of its aliases.
func (a ArgumentDefinition) Matches(name string) bool {
	if a.Name == name {
		return true
	}
	for _, alias := range a.Aliases {
		if alias == name {
			return true
		}
	}
	return false
}

// CommandDefinition is the immutable schema of a registered command.
type CommandDefinition struct {
	Name        string
	Namespace   string
	Description string
	Hint        string
	Arguments   []ArgumentDefinition

	// RoutineLink names the routine a definition table expects to be
	// attached to this command.
	RoutineLink string

	Status             Status
	Version            string
	Tags               []string
	Aliases            []string
	Permissions        []string
	Idempotent         bool
	DeprecationMessage string
	HTTPMethodHint     string
	Examples           []string
	Category           string
	Priority           int
	Hidden             bool
	AutoHelp           bool
}

// FullName returns the namespace-qualified name, e.g. ".math.add".
func (d CommandDefinition) FullName() string {
	if d.Namespace == "" || d.Namespace == Separator {
		return d.Name
	}
	return d.Namespace + d.Name
}

// Clone returns a deep copy that shares no slices with d.
func (d CommandDefinition) Clone() CommandDefinition {
	c := d
	if d.Arguments != nil {
		c.Arguments = make([]ArgumentDefinition, len(d.Arguments))
		for i, a := range d.Arguments {
			c.Arguments[i] = a.Clone()
		}
	}
	c.Tags = slices.Clone(d.Tags)
	c.Aliases = slices.Clone(d.Aliases)
	c.Permissions = slices.Clone(d.Permissions)
	c.Examples = slices.Clone(d.Examples)
	return c
}

// Argument returns the declared argument matching name or one of its aliases.
func (d CommandDefinition) Argument(name string) (ArgumentDefinition, bool) {
	for _, a := range d.Arguments {
		if a.Matches(name) {
			return a, true
		}
	}
	return ArgumentDefinition{}, false
}

// Validate checks argument kinds, defaults and duplicate argument names or aliases.
func (d CommandDefinition) Validate() error {
	seen := make(map[string]string)
	for _, a := range d.Arguments {
		if a.Name == "" {
			return fmt.Errorf("argument with empty name")
		}
		if err := a.Kind.Validate(); err != nil {
			return fmt.Errorf("argument '%s': %w", a.Name, err)
		}
		for _, n := range append([]string{a.Name}, a.Aliases...) {
			if owner, dup := seen[n]; dup {
				return fmt.Errorf("argument name '%s' used by both '%s' and '%s'", n, owner, a.Name)
			}
			seen[n] = a.Name
		}
		if a.Attributes.HasDefault {
			if _, err := Coerce(a.Attributes.Default, a.Kind); err != nil {
				return fmt.Errorf("argument '%s' default: %w", a.Name, err)
			}
		}
	}
	if d.Status != "" {
		switch d.Status {
		case StatusStable, StatusExperimental, StatusDeprecated, StatusInternal:
		default:
			return fmt.Errorf("unknown status %q", d.Status)
		}
	}
	return nil
}

// ValidateName checks that name starts with the separator and that no
// path segment is empty or contains whitespace.
func ValidateName(name string) error {
	if !strings.HasPrefix(name, Separator) {
		return fmt.Errorf("must start with '%s'", Separator)
	}
	if name == Separator {
		return fmt.Errorf("must name a command after '%s'", Separator)
	}
	for _, seg := range strings.Split(strings.TrimPrefix(name, Separator), Separator) {
		if seg == "" {
			return fmt.Errorf("contains an empty path segment")
		}
		if strings.ContainsAny(seg, " \t\r\n") {
			return fmt.Errorf("segment '%s' contains whitespace", seg)
		}
	}
	return nil
}

// JoinPath turns parsed path segments into a command name.
func JoinPath(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	return Separator + strings.Join(segments, Separator)
}
