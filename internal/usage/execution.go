package usage

import (
	"fmt"
	"strings"
)

// StaticCommandNoRoutine is returned when a verified command has no routine
// bound to it, e.g. a metadata-only entry from a static table.
func StaticCommandNoRoutine(command string) *Error {
	return &Error{
		Kind:    ErrExecution,
		Code:    CodeStaticCommandNoRoutine,
		Message: fmt.Sprintf("unilang: command '%s' has no routine bound to it", command),
	}
}

// ExecutionFailed wraps an error returned by a routine that did not carry
// its own code.
func ExecutionFailed(command string, err error) *Error {
	return &Error{
		Kind:    ErrExecution,
		Code:    CodeCommandExecutionFailed,
		Message: fmt.Sprintf("unilang: '%s' failed: %v", command, err),
	}
}

// Internal is returned when a routine panics.
func Internal(command string, recovered any) *Error {
	return &Error{
		Kind:    ErrExecution,
		Code:    CodeInternalError,
		Message: fmt.Sprintf("unilang: internal error while running '%s': %v", command, recovered),
	}
}

func quoteJoin(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + s + "'"
	}
	return strings.Join(quoted, ", ")
}
