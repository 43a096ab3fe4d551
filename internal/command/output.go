package command

import "fmt"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// OutputData is the successful result of a routine.
type OutputData struct {
	Content string
	Format  string
}

// Text returns plain-text output.
func Text(content string) OutputData {
	return OutputData{Content: content, Format: FormatText}
}

// ErrorData is a routine failure with a stable code. It is returned as an
// error and surfaced to callers unchanged.
type ErrorData struct {
	Code    string
	Message string
}

// NewError returns an ErrorData with a formatted message.
func NewError(code, format string, args ...any) *ErrorData {
	return &ErrorData{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *ErrorData) Error() string {
	return e.Message
}

// ErrorCode returns the stable code of the error.
func (e *ErrorData) ErrorCode() string {
	return e.Code
}
