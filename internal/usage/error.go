package usage

import "errors"

// ErrorKind groups error codes by the pipeline stage that produced them.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrParse
	ErrSemantic
	ErrExecution
	ErrRegistry
	ErrHelp
)

func (k ErrorKind) String() string {
	switch k {
	case ErrParse:
		return "parse"
	case ErrSemantic:
		return "semantic"
	case ErrExecution:
		return "execution"
	case ErrRegistry:
		return "registry"
	case ErrHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Stable error codes. Downstream callers match on these strings, so they
// must not be renamed.
const (
	CodeCommandNotFound        = "COMMAND_NOT_FOUND"
	CodeMissingArgument        = "MISSING_ARGUMENT"
	CodeInvalidArgumentType    = "INVALID_ARGUMENT_TYPE"
	CodeTooManyArguments       = "TOO_MANY_ARGUMENTS"
	CodeHelpRequested          = "HELP_REQUESTED"
	CodeStaticCommandNoRoutine = "STATIC_COMMAND_NO_ROUTINE"
	CodeInteractiveRequired    = "UNILANG_ARGUMENT_INTERACTIVE_REQUIRED"
	CodeValidationRuleFailed   = "VALIDATION_RULE_FAILED"
	CodeUnknownParameter       = "UNKNOWN_PARAMETER"
	CodeParseError             = "PARSE_ERROR"
	CodeInvalidCommandName     = "INVALID_COMMAND_NAME"
	CodeCommandAlreadyExists   = "COMMAND_ALREADY_EXISTS"
	CodeInvalidDefinition      = "INVALID_DEFINITION"
	CodeCommandExecutionFailed = "COMMAND_EXECUTION_FAILED"
	CodeInternalError          = "INTERNAL_ERROR"
)

// Exit codes:
//
//	Exit 0: Help output
//	  - Help requested
//
//	Exit 1: Environment/system errors
//	  - Unknown errors
//	  - Execution errors
//	  - Registry errors
//
//	Exit 2: User input errors
//	  - Parse errors
//	  - Semantic errors
var exitCodes = map[ErrorKind]int{
	ErrUnknown:   1,
	ErrParse:     2,
	ErrSemantic:  2,
	ErrExecution: 1,
	ErrRegistry:  1,
	ErrHelp:      0,
}

// Error represents a framework error with a stable code and a category.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string

	// Argument names the offending argument, when there is one.
	Argument string

	// Suggestions holds "did you mean" candidates for unknown names.
	Suggestions []string

	ExitCode int // computed from Kind if zero
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// ErrorCode returns the stable code of the error.
func (e *Error) ErrorCode() string {
	return e.Code
}

// GetExitCode returns the appropriate exit code for this error.
// If ExitCode is explicitly set, it is returned; otherwise, the code is derived from Kind.
func (e *Error) GetExitCode() int {
	if e.ExitCode != 0 {
		return e.ExitCode
	}
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return 1
}

// Is reports whether target is a *Error carrying the same code.
// This lets callers write errors.Is(err, &usage.Error{Code: usage.CodeMissingArgument}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// coded is satisfied by any error that carries a stable code, including
// the ErrorData values returned by command routines.
type coded interface {
	ErrorCode() string
}

// CodeOf returns the stable code carried anywhere in err's chain,
// or the empty string when none is present.
func CodeOf(err error) string {
	var c coded
	if errors.As(err, &c) {
		return c.ErrorCode()
	}
	return ""
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var ue *Error
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// IsHelp reports whether err is a help request rather than a failure.
func IsHelp(err error) bool {
	return CodeOf(err) == CodeHelpRequested
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
