package usage

import (
	"fmt"
	"strings"
)

// CommandNotFound is returned when a command path does not resolve in the registry.
func CommandNotFound(command string, suggestions ...string) *Error {
	msg := fmt.Sprintf("unilang: '%s' is not a known command. See '. ?' for a list.", command)
	if len(suggestions) > 0 {
		msg += "\n\nThe most similar commands are:\n\t" + strings.Join(suggestions, "\n\t")
	}
	return &Error{
		Kind:        ErrSemantic,
		Code:        CodeCommandNotFound,
		Message:     msg,
		Suggestions: suggestions,
	}
}
