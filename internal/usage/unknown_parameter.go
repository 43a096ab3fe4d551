package usage

import "fmt"

// UnknownParameter is returned when a named argument does not match any
// declared argument name or alias.
func UnknownParameter(command string, names []string, suggestion string) *Error {
	var msg string
	switch {
	case len(names) == 1 && suggestion != "":
		msg = fmt.Sprintf("unilang: unknown parameter '%s' for '%s'. Did you mean '%s'?", names[0], command, suggestion)
	case len(names) == 1:
		msg = fmt.Sprintf("unilang: unknown parameter '%s' for '%s'. Use '%s ?' to see valid parameters.", names[0], command, command)
	default:
		msg = fmt.Sprintf("unilang: unknown parameters %s for '%s'. Use '%s ?' to see valid parameters.", quoteJoin(names), command, command)
	}

	e := &Error{
		Kind:    ErrSemantic,
		Code:    CodeUnknownParameter,
		Message: msg,
	}
	if len(names) == 1 {
		e.Argument = names[0]
	}
	if suggestion != "" {
		e.Suggestions = []string{suggestion}
	}
	return e
}
