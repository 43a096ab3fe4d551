package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/unilang/internal/app"
	"github.com/footprint-tools/unilang/internal/config"
	"github.com/footprint-tools/unilang/internal/help"
	"github.com/footprint-tools/unilang/internal/paths"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv(paths.EnvConfigFile, "")
	t.Setenv(help.EnvVerbosity, "")
	t.Setenv("NO_COLOR", "1")
	return home
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Run(context.Background(), args, Env{
		In:     strings.NewReader(stdin),
		Out:    &out,
		ErrOut: &errOut,
		Config: config.NewProvider(),
	})
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func TestRun_Instruction(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantOut    string
		wantErrOut string
	}{
		{
			name:     "positional arguments",
			args:     []string{".math.add", "20", "22"},
			wantCode: 0,
			wantOut:  "42\n",
		},
		{
			name:     "named argument",
			args:     []string{".system.hello", "name::Ada"},
			wantCode: 0,
			wantOut:  "Hello, Ada!\n",
		},
		{
			name:     "negative number is not a flag",
			args:     []string{".math.add", "-5", "3"},
			wantCode: 0,
			wantOut:  "-2\n",
		},
		{
			name:       "unknown command",
			args:       []string{".nope"},
			wantCode:   2,
			wantErrOut: "COMMAND_NOT_FOUND",
		},
		{
			name:       "missing argument",
			args:       []string{".math.add", "1"},
			wantCode:   2,
			wantErrOut: "MISSING_ARGUMENT",
		},
		{
			name:       "routine error",
			args:       []string{".math.divide", "1", "0"},
			wantCode:   1,
			wantErrOut: "DIVISION_BY_ZERO",
		},
		{
			name:     "help operator",
			args:     []string{".math.add", "?"},
			wantCode: 0,
			wantOut:  ".math.add",
		},
		{
			name:     "no arguments lists commands",
			wantCode: 0,
			wantOut:  "COMMANDS",
		},
		{
			name:       "unknown flag",
			args:       []string{"--bogus"},
			wantCode:   2,
			wantErrOut: "unknown flag",
		},
		{
			name:       "bad verbosity",
			args:       []string{"-V", "loud", ".math.add", "?"},
			wantCode:   1,
			wantErrOut: "unknown help verbosity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupHome(t)

			res := run(t, "", tt.args...)
			require.Equal(t, tt.wantCode, res.code, "stderr: %s", res.stderr)
			require.Contains(t, res.stdout, tt.wantOut)
			require.Contains(t, res.stderr, tt.wantErrOut)
		})
	}
}

func TestRun_Version(t *testing.T) {
	setupHome(t)

	res := run(t, "", "--version")
	require.Equal(t, 0, res.code)
	require.Contains(t, res.stdout, "unilang version dev")
}

func TestRun_VerbosityFlag(t *testing.T) {
	setupHome(t)

	minimal := run(t, "", "-V", "0", ".math.add", "?")
	full := run(t, "", "--verbosity", "comprehensive", ".math.add", "?")

	require.Equal(t, 0, minimal.code)
	require.Equal(t, 0, full.code)
	require.Greater(t, len(full.stdout), len(minimal.stdout))
}

func TestRun_Definitions(t *testing.T) {
	home := setupHome(t)
	extra := filepath.Join(home, "extra.yaml")
	require.NoError(t, os.WriteFile(extra, []byte("- name: .ping\n  namespace: .net\n  description: Ping a host\n"), 0600))

	res := run(t, "", "--definitions", extra, ".net.ping")
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "STATIC_COMMAND_NO_ROUTINE")

	res = run(t, "", "--definitions", filepath.Join(home, "missing.yaml"), ".math.add", "1", "2")
	require.Equal(t, 1, res.code)
	require.NotEmpty(t, res.stderr)
}

func TestRun_DefinitionConflicts(t *testing.T) {
	home := setupHome(t)
	extra := filepath.Join(home, "extra.yaml")
	require.NoError(t, os.WriteFile(extra, []byte("- name: .add\n  namespace: .math\n  description: shadow\n"), 0600))

	res := run(t, "", "--definitions", extra, ".math.add", "1", "2")
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, ".math.add defined in builtins, extra.yaml")

	res = run(t, "", "--definitions", extra, "--on-conflict", "first", ".math.add", "1", "2")
	require.Equal(t, 0, res.code)
	require.Equal(t, "3\n", res.stdout)

	res = run(t, "", "--definitions", "net="+extra, ".net.math.add", "?")
	require.Equal(t, 0, res.code)
	require.Contains(t, res.stdout, "shadow")

	res = run(t, "", "--on-conflict", "merge", ".math.add", "1", "2")
	require.Equal(t, 2, res.code)
}

func TestRun_Truncation(t *testing.T) {
	home := setupHome(t)
	dir := filepath.Join(home, "list")
	require.NoError(t, os.Mkdir(dir, 0700))
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0600))
	}

	tests := []struct {
		name       string
		args       []string
		wantOut    string
		wantErrOut string
	}{
		{name: "head", args: []string{"--head", "2", ".files.list", dir}, wantOut: "a\nb\n", wantErrOut: "3 lines omitted"},
		{name: "tail", args: []string{"--tail", "1", ".files.list", dir}, wantOut: "e\n", wantErrOut: "4 lines omitted"},
		{name: "head and tail", args: []string{"--head", "1", "--tail", "1", ".files.list", dir}, wantOut: "a\ne\n", wantErrOut: "3 lines omitted"},
		{name: "width", args: []string{"--width", "8", ".system.echo", "hello", "wonderful", "world"}, wantOut: "hello w→\n"},
		{name: "no limits", args: []string{".files.list", dir}, wantOut: "a\nb\nc\nd\ne\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, "", tt.args...)
			require.Equal(t, 0, res.code, res.stderr)
			require.Equal(t, tt.wantOut, res.stdout)
			if tt.wantErrOut == "" {
				require.Empty(t, res.stderr)
			} else {
				require.Contains(t, res.stderr, tt.wantErrOut)
			}
		})
	}
}

func TestRun_Commands(t *testing.T) {
	setupHome(t)

	res := run(t, "", "commands", ".math")
	require.Equal(t, 0, res.code)
	require.Contains(t, res.stdout, ".math.add")
	require.NotContains(t, res.stdout, ".system.hello")

	res = run(t, "", "commands")
	require.Contains(t, res.stdout, ".system.hello")
	require.NotContains(t, res.stdout, ".system.greet", "hidden commands are not listed")
}

func TestRun_History(t *testing.T) {
	setupHome(t)

	require.Equal(t, 0, run(t, "", ".system.hello").code)
	require.Equal(t, 2, run(t, "", ".math.add", "1").code)

	res := run(t, "", "history")
	require.Equal(t, 0, res.code)
	require.Contains(t, res.stdout, ".system.hello")
	require.Contains(t, res.stdout, "MISSING_ARGUMENT")

	res = run(t, "", "history", "--limit", "1")
	require.Equal(t, 1, strings.Count(strings.TrimSpace(res.stdout), "\n")+1)

	res = run(t, "", "history", "--clear")
	require.Equal(t, 0, res.code)
	require.Equal(t, "cleared 2 entries\n", res.stdout)

	res = run(t, "", "history")
	require.Equal(t, "no history\n", res.stdout)
}

func TestRun_NoHistory(t *testing.T) {
	setupHome(t)

	require.Equal(t, 0, run(t, "", "--no-history", ".system.hello").code)

	res := run(t, "", "history")
	require.Equal(t, "no history\n", res.stdout)

	res = run(t, "", "--no-history", "history")
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "history is disabled")
}

func TestRun_Repl(t *testing.T) {
	setupHome(t)
	t.Setenv(app.EnvCredentials, "ada:correct-horse")

	res := run(t, ".math.add 1 2\n.auth.login ada\ncorrect-horse\nexit\n", "repl")
	require.Equal(t, 0, res.code, "stderr: %s", res.stderr)
	require.Contains(t, res.stdout, "3\n")
	require.Contains(t, res.stdout, "logged in as ada")
	require.Contains(t, res.stderr, "token")
}

func TestRun_Completion(t *testing.T) {
	setupHome(t)

	tests := []struct {
		shell string
		want  string
	}{
		{shell: "bash", want: "bash completion"},
		{shell: "zsh", want: "#compdef unilang"},
		{shell: "fish", want: "fish completion"},
		{shell: "powershell", want: "powershell completion"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			res := run(t, "", "completion", tt.shell)
			require.Equal(t, 0, res.code)
			require.Contains(t, res.stdout, tt.want)
		})
	}

	res := run(t, "", "completion", "tcsh")
	require.Equal(t, 1, res.code)
}

func TestCommandNames(t *testing.T) {
	setupHome(t)

	r := &runner{env: Env{In: strings.NewReader(""), Out: &bytes.Buffer{}, ErrOut: &bytes.Buffer{}, Config: config.NewProvider()}}
	names := r.commandNames(".math.")

	require.Equal(t, []string{".math.add", ".math.divide", ".math.sum"}, names)
	require.NotContains(t, r.commandNames(".system."), ".system.greet")
	require.Contains(t, r.commandNames(".ec"), ".echo")
}

func TestExitCode(t *testing.T) {
	require.Equal(t, 0, exitCode(nil))
	require.Equal(t, 1, exitCode(errHistoryDisabled))
}
