package usage

import "fmt"

// MissingArgument is returned when a required argument is not provided.
func MissingArgument(arg string) *Error {
	return &Error{
		Kind:     ErrSemantic,
		Code:     CodeMissingArgument,
		Argument: arg,
		Message:  fmt.Sprintf("unilang: missing required argument '%s'", arg),
	}
}

// InteractiveRequired is returned when a required interactive argument is
// absent. REPL front-ends catch it and prompt for the value. The message
// never contains a value, since interactive arguments are usually secrets.
func InteractiveRequired(arg string) *Error {
	return &Error{
		Kind:     ErrSemantic,
		Code:     CodeInteractiveRequired,
		Argument: arg,
		Message:  fmt.Sprintf("unilang: argument '%s' must be provided interactively", arg),
	}
}

// TooManyArguments is returned when raw values remain after every declared
// argument has been bound.
func TooManyArguments(command string, extra []string) *Error {
	return &Error{
		Kind:    ErrSemantic,
		Code:    CodeTooManyArguments,
		Message: fmt.Sprintf("unilang: too many arguments for '%s' (unexpected: %s)", command, quoteJoin(extra)),
	}
}
