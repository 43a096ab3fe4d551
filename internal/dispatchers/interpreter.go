package dispatchers

import (
	"fmt"

	"github.com/footprint-tools/unilang/internal/command"
	"github.com/footprint-tools/unilang/internal/domain"
	"github.com/footprint-tools/unilang/internal/log"
	"github.com/footprint-tools/unilang/internal/usage"
)

// RoutineSource resolves the routine bound to a command name.
type RoutineSource interface {
	Routine(name string) (command.Routine, bool)
}

// Result is the outcome of one verified command.
type Result struct {
	Command *command.VerifiedCommand
	Output  command.OutputData
	Err     error
}

// Interpreter runs verified commands through their routines.
type Interpreter struct {
	routines RoutineSource
	logger   domain.Logger
}

// NewInterpreter creates an interpreter. A nil logger discards output.
func NewInterpreter(routines RoutineSource, logger domain.Logger) *Interpreter {
	return &Interpreter{routines: routines, logger: log.OrNop(logger)}
}

// Execute invokes the routine bound to cmd. Errors carrying a stable code
// are returned unchanged; any other error is wrapped as an execution
// failure. A panicking routine is reported as an internal error.
func (i *Interpreter) Execute(cmd *command.VerifiedCommand, ctx *command.Context) (out command.OutputData, err error) {
	name := cmd.Name()

	routine, ok := i.routines.Routine(name)
	if !ok || routine == nil {
		return command.OutputData{}, usage.StaticCommandNoRoutine(name)
	}
	// The caller's context is left as it was.
	var local command.Context
	if ctx != nil {
		local = *ctx
	}
	if local.Logger == nil {
		local.Logger = i.logger
	}
	ctx = &local

	defer func() {
		if r := recover(); r != nil {
			i.logger.Error("dispatch: routine %s panicked: %v", name, r)
			out = command.OutputData{}
			err = usage.Internal(name, r)
		}
	}()

	out, err = routine(cmd, ctx)
	if err != nil {
		if usage.CodeOf(err) != "" {
			return command.OutputData{}, err
		}
		return command.OutputData{}, usage.ExecutionFailed(name, err)
	}
	if out.Format == "" {
		out.Format = command.FormatText
	}
	return out, nil
}

// Run executes every command independently and reports one result each,
// in input order.
func (i *Interpreter) Run(cmds []*command.VerifiedCommand, ctx *command.Context) []Result {
	results := make([]Result, 0, len(cmds))
	for _, cmd := range cmds {
		out, err := i.Execute(cmd, ctx)
		if err != nil {
			i.logger.Debug("dispatch: %s failed: %s", cmd.Name(), describe(err))
		}
		results = append(results, Result{Command: cmd, Output: out, Err: err})
	}
	return results
}

func describe(err error) string {
	if code := usage.CodeOf(err); code != "" {
		return fmt.Sprintf("%s (%s)", code, err)
	}
	return err.Error()
}
