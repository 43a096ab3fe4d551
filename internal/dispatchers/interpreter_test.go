package dispatchers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/unilang/internal/command"
	"github.com/footprint-tools/unilang/internal/registry"
	"github.com/footprint-tools/unilang/internal/usage"
)

func interpreterRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()

	add := command.New(".add").
		Namespace(".math").
		Arg(command.Arg("a", command.Scalar(command.TypeInteger))).
		Arg(command.Arg("b", command.Scalar(command.TypeInteger))).
		Build()
	require.NoError(t, r.RegisterWithRoutine(add, func(cmd *command.VerifiedCommand, _ *command.Context) (command.OutputData, error) {
		return command.OutputData{Content: "sum"}, nil
	}))

	coded := command.New(".coded").Build()
	require.NoError(t, r.RegisterWithRoutine(coded, func(*command.VerifiedCommand, *command.Context) (command.OutputData, error) {
		return command.OutputData{}, command.NewError("DIVISION_BY_ZERO", "cannot divide by zero")
	}))

	plain := command.New(".plain").Build()
	require.NoError(t, r.RegisterWithRoutine(plain, func(*command.VerifiedCommand, *command.Context) (command.OutputData, error) {
		return command.OutputData{}, errors.New("disk on fire")
	}))

	boom := command.New(".boom").Build()
	require.NoError(t, r.RegisterWithRoutine(boom, func(*command.VerifiedCommand, *command.Context) (command.OutputData, error) {
		panic("unexpected")
	}))

	require.NoError(t, r.Register(command.New(".meta").Build()))
	return r
}

func verified(t *testing.T, r *registry.Registry, name string) *command.VerifiedCommand {
	t.Helper()
	def, ok := r.Command(name)
	require.True(t, ok)
	return &command.VerifiedCommand{Definition: def, Arguments: map[string]command.Value{}}
}

func TestExecute(t *testing.T) {
	r := interpreterRegistry(t)
	in := NewInterpreter(r, nil)

	tests := []struct {
		name     string
		command  string
		wantCode string
		wantMsg  string
	}{
		{"success", ".math.add", "", ""},
		{"routine error kept verbatim", ".coded", "DIVISION_BY_ZERO", "cannot divide by zero"},
		{"plain error wrapped", ".plain", usage.CodeCommandExecutionFailed, "disk on fire"},
		{"panic recovered", ".boom", usage.CodeInternalError, "unexpected"},
		{"metadata only", ".meta", usage.CodeStaticCommandNoRoutine, ".meta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := in.Execute(verified(t, r, tt.command), &command.Context{})
			if tt.wantCode == "" {
				require.NoError(t, err)
				require.Equal(t, "sum", out.Content)
				require.Equal(t, command.FormatText, out.Format)
				return
			}
			require.Error(t, err)
			require.Equal(t, tt.wantCode, usage.CodeOf(err))
			require.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestRunContinuesAfterFailure(t *testing.T) {
	r := interpreterRegistry(t)
	in := NewInterpreter(r, nil)

	cmds := []*command.VerifiedCommand{
		verified(t, r, ".boom"),
		verified(t, r, ".math.add"),
		verified(t, r, ".meta"),
		verified(t, r, ".math.add"),
	}

	results := in.Run(cmds, nil)
	require.Len(t, results, 4)
	require.Equal(t, usage.CodeInternalError, usage.CodeOf(results[0].Err))
	require.NoError(t, results[1].Err)
	require.Equal(t, usage.CodeStaticCommandNoRoutine, usage.CodeOf(results[2].Err))
	require.NoError(t, results[3].Err)

	for i, res := range results {
		require.Same(t, cmds[i], res.Command)
	}
}

func TestExecuteLeavesCallerContext(t *testing.T) {
	r := registry.New()
	var seen *command.Context
	require.NoError(t, r.RegisterWithRoutine(command.New(".ctx").Build(), func(_ *command.VerifiedCommand, ctx *command.Context) (command.OutputData, error) {
		seen = ctx
		return command.Text("ok"), nil
	}))

	in := NewInterpreter(r, nil)
	caller := &command.Context{SessionID: "s1"}

	_, err := in.Execute(verified(t, r, ".ctx"), caller)
	require.NoError(t, err)

	require.Nil(t, caller.Logger)
	require.NotNil(t, seen.Logger)
	require.Equal(t, "s1", seen.SessionID)
	require.NotSame(t, caller, seen)

	_, err = in.Execute(verified(t, r, ".ctx"), nil)
	require.NoError(t, err)
	require.NotNil(t, seen.Logger)
}
