package usage

// HelpRequested carries rendered help text in place of execution.
// The message is the help text itself so front-ends can print it as-is.
func HelpRequested(text string) *Error {
	return &Error{
		Kind:    ErrHelp,
		Code:    CodeHelpRequested,
		Message: text,
	}
}
