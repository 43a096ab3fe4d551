package usage

import "fmt"

// InvalidCommandName is returned when a definition is registered under a
// name that does not start with the namespace separator or is otherwise malformed.
func InvalidCommandName(name, reason string) *Error {
	return &Error{
		Kind:    ErrRegistry,
		Code:    CodeInvalidCommandName,
		Message: fmt.Sprintf("unilang: invalid command name '%s': %s", name, reason),
	}
}

// CommandAlreadyExists is returned when a name or alias is registered twice.
func CommandAlreadyExists(name string) *Error {
	return &Error{
		Kind:    ErrRegistry,
		Code:    CodeCommandAlreadyExists,
		Message: fmt.Sprintf("unilang: command '%s' is already registered", name),
	}
}

// InvalidDefinition is returned when a definition is structurally invalid
// (bad kind, bad validation rule, duplicate argument names).
func InvalidDefinition(name, reason string) *Error {
	return &Error{
		Kind:    ErrRegistry,
		Code:    CodeInvalidDefinition,
		Message: fmt.Sprintf("unilang: invalid definition for '%s': %s", name, reason),
	}
}

// DefinitionConflict is returned when definition files claim the same
// command names. report lists one conflict per line.
func DefinitionConflict(report string) *Error {
	return &Error{
		Kind:    ErrRegistry,
		Code:    CodeCommandAlreadyExists,
		Message: "unilang: command conflicts across definition files:\n" + report,
	}
}
