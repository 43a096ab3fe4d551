package usage

import "fmt"

// Parse is returned for malformed input that could not be tokenized into
// an instruction. Offset is the byte offset of the problem in the input,
// or -1 when unknown.
func Parse(offset int, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	if offset >= 0 {
		msg = fmt.Sprintf("unilang: parse error at %d: %s", offset, msg)
	} else {
		msg = "unilang: parse error: " + msg
	}
	return &Error{
		Kind:    ErrParse,
		Code:    CodeParseError,
		Message: msg,
	}
}
