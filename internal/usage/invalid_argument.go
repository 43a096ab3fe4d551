package usage

import "fmt"

// InvalidArgumentType is returned when a raw value cannot be coerced to the
// declared kind of its argument.
func InvalidArgumentType(arg, kind, reason string) *Error {
	return &Error{
		Kind:     ErrSemantic,
		Code:     CodeInvalidArgumentType,
		Argument: arg,
		Message:  fmt.Sprintf("unilang: invalid value for argument '%s': expected %s: %s", arg, kind, reason),
	}
}

// ValidationFailed is returned when a coerced value violates one of the
// argument's validation rules.
func ValidationFailed(arg, rule, detail string) *Error {
	return &Error{
		Kind:     ErrSemantic,
		Code:     CodeValidationRuleFailed,
		Argument: arg,
		Message:  fmt.Sprintf("unilang: argument '%s' failed validation '%s': %s", arg, rule, detail),
	}
}
