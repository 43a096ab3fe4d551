package command

import (
	"io"

	"github.com/footprint-tools/unilang/internal/domain"
)

// Routine is the callback bound to a command name.
type Routine func(cmd *VerifiedCommand, ctx *Context) (OutputData, error)

// Context is handed to every routine invocation.
type Context struct {
	Stdout    io.Writer
	Logger    domain.Logger
	SessionID string
}
