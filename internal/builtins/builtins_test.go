package builtins

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/unilang/internal/domain"
	"github.com/footprint-tools/unilang/internal/format"
	"github.com/footprint-tools/unilang/internal/loader"
	"github.com/footprint-tools/unilang/internal/parser"
	"github.com/footprint-tools/unilang/internal/pipeline"
	"github.com/footprint-tools/unilang/internal/testutil"
	"github.com/footprint-tools/unilang/internal/usage"
)

type memConfig map[string]string

func (c memConfig) Get(key string) (string, bool) {
	v, ok := c[key]
	return v, ok
}

func (c memConfig) GetAll() (map[string]string, error) {
	out := make(map[string]string, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out, nil
}

func (c memConfig) Set(key, value string) error {
	c[key] = value
	return nil
}

func (c memConfig) Unset(key string) error {
	delete(c, key)
	return nil
}

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newPipeline(t *testing.T, deps Deps, opts ...pipeline.Option) *pipeline.Pipeline {
	t.Helper()
	if deps.Config == nil {
		deps.Config = memConfig{}
	}
	if deps.Now == nil {
		deps.Now = func() time.Time { return fixedNow }
	}

	defs, err := Definitions()
	require.NoError(t, err)
	reg, err := loader.NewRegistry(defs, Routines(deps))
	require.NoError(t, err)
	return pipeline.New(reg, opts...)
}

func TestDefinitions(t *testing.T) {
	defs, err := Definitions()
	require.NoError(t, err)

	reg, err := loader.NewRegistry(defs, Routines(Deps{}))
	require.NoError(t, err)
	require.True(t, reg.IsStatic())

	for _, def := range defs {
		t.Run(def.FullName(), func(t *testing.T) {
			_, hasRoutine := reg.Routine(def.FullName())
			require.Equal(t, def.FullName() != ".deploy.release", hasRoutine)
		})
	}

	canonical, ok := reg.Resolve(".echo")
	require.True(t, ok)
	require.Equal(t, ".system.echo", canonical)
}

func TestRoutines(t *testing.T) {
	p := newPipeline(t, Deps{
		Version:     "1.2.3",
		Credentials: map[string]string{"ada": "correct-horse"},
	})

	tests := []struct {
		name     string
		input    string
		want     string
		wantCode string
	}{
		{name: "hello default", input: ".system.hello", want: "Hello, World!"},
		{name: "hello named", input: ".system.hello name::Ada", want: "Hello, Ada!"},
		{name: "deprecated greet", input: ".system.greet Bob", want: "Hello, Bob!"},
		{name: "echo words", input: ".system.echo hello big world", want: "hello big world"},
		{name: "echo alias", input: `.echo "a b" c`, want: "a b c"},
		{name: "echo nothing", input: ".echo", want: ""},
		{name: "version", input: ".system.version", want: "unilang 1.2.3"},
		{name: "add positional", input: ".math.add 2 3", want: "5"},
		{name: "add named", input: ".math.add b::-4 a::10", want: "6"},
		{name: "add bad type", input: ".math.add two 3", wantCode: usage.CodeInvalidArgumentType},
		{name: "divide", input: ".math.divide 7 2", want: "3.5"},
		{name: "divide by alias", input: ".math.divide x::9 y::3", want: "3"},
		{name: "divide by zero", input: ".math.divide 1 0", wantCode: CodeDivisionByZero},
		{name: "sum", input: ".math.sum 1,2,3.5", want: "6.5"},
		{name: "deploy has no routine", input: ".deploy.release v1.0.0", wantCode: usage.CodeStaticCommandNoRoutine},
		{name: "deploy bad version", input: ".deploy.release 1.0", wantCode: usage.CodeValidationRuleFailed},
		{name: "login needs token", input: ".auth.login ada", wantCode: usage.CodeInteractiveRequired},
		{name: "login short token", input: ".auth.login ada token::short", wantCode: usage.CodeValidationRuleFailed},
		{name: "login wrong token", input: ".auth.login ada token::wrong-horse", wantCode: CodeAuthFailed},
		{name: "login ok", input: ".auth.login ada token::correct-horse", want: "logged in as ada"},
		{name: "unknown command", input: ".math.ad 1 2", wantCode: usage.CodeCommandNotFound},
		{name: "namespace listing", input: ".math", wantCode: usage.CodeHelpRequested},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := p.ProcessCommand(tt.input)
			if tt.wantCode != "" {
				require.Equal(t, tt.wantCode, res.ErrorCode(), "err: %v", res.Err)
				return
			}
			require.NoError(t, res.Err)
			require.Equal(t, tt.want, res.Content())
		})
	}
}

func TestFilesList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.log", ".hidden"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0700))

	p := newPipeline(t, Deps{})
	quoted := parser.Quote(dir)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"default", ".files.list " + quoted, "a.log\nb.txt\nsub/"},
		{"all", ".files.list " + quoted + " all::true", ".hidden\na.log\nb.txt\nsub/"},
		{"pattern", ".files.list " + quoted + " pattern::txt$", "b.txt"},
		{"no match", ".files.list " + quoted + " pattern::^zzz", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := p.ProcessCommand(tt.input)
			require.NoError(t, res.Err)
			require.Equal(t, tt.want, res.Content())
		})
	}

	res := p.ProcessCommand(".files.list " + parser.Quote(filepath.Join(dir, "missing")))
	require.Equal(t, usage.CodeInvalidArgumentType, res.ErrorCode())
}

func TestConfigCommands(t *testing.T) {
	cfg := memConfig{"theme": "mono", "definitions": ""}
	p := newPipeline(t, Deps{Config: cfg})

	res := p.ProcessCommand(".config.get theme")
	require.NoError(t, res.Err)
	require.Equal(t, "mono", res.Content())

	res = p.ProcessCommand(".config.set log_level debug")
	require.NoError(t, res.Err)
	require.Equal(t, "log_level=debug", res.Content())
	require.Equal(t, "debug", cfg["log_level"])

	res = p.ProcessCommand(".config.list")
	require.NoError(t, res.Err)
	require.Equal(t, "log_level=debug\ntheme=mono", res.Content())

	res = p.ProcessCommand(".config.set them contrast")
	require.Equal(t, CodeUnknownConfigKey, res.ErrorCode())
	require.Contains(t, res.Err.Error(), "did you mean 'theme'?")

	res = p.ProcessCommand(".config.get nope_nope_nope")
	require.Equal(t, CodeUnknownConfigKey, res.ErrorCode())
}

func TestHistoryCommands(t *testing.T) {
	store := testutil.NewTestStore(t)
	p := newPipeline(t, Deps{History: store}, pipeline.WithHistory(store), pipeline.WithSessionID("s-1"))

	require.NoError(t, p.ProcessCommand(".math.add 1 2").Err)
	require.Error(t, p.ProcessCommand(".math.divide 1 0").Err)

	res := p.ProcessCommand(".history.list")
	require.NoError(t, res.Err)
	lines := strings.Split(res.Content(), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], ".math.divide 1 0")
	require.Contains(t, lines[0], "[DIVISION_BY_ZERO]")
	require.Contains(t, lines[1], ".math.add 1 2")

	res = p.ProcessCommand(".history.list status::failed")
	require.NoError(t, res.Err)
	require.NotContains(t, res.Content(), ".math.add")

	res = p.ProcessCommand(".history.list limit::0")
	require.Equal(t, usage.CodeValidationRuleFailed, res.ErrorCode())

	res = p.ProcessCommand(".history.clear session::other")
	require.NoError(t, res.Err)
	require.Equal(t, "cleared 0 entries", res.Content())

	res = p.ProcessCommand(".history.clear")
	require.NoError(t, res.Err)
	require.True(t, strings.HasPrefix(res.Content(), "cleared "))

	n, err := store.Count()
	require.NoError(t, err)
	require.Equal(t, int64(1), n, "only the clear itself is recorded afterwards")
}

func TestHistoryDisabled(t *testing.T) {
	p := newPipeline(t, Deps{})

	for _, input := range []string{".history.list", ".history.clear"} {
		t.Run(input, func(t *testing.T) {
			require.Equal(t, CodeHistoryDisabled, p.ProcessCommand(input).ErrorCode())
		})
	}
}

func TestRenderHistory(t *testing.T) {
	require.Equal(t, "no history", RenderHistory(nil, format.DefaultLayout, fixedNow))

	entries := []domain.HistoryEntry{
		{
			ID:        7,
			Input:     ".auth.login ada token::***",
			Status:    domain.StatusFailed,
			ErrorCode: CodeAuthFailed,
			Duration:  1500 * time.Microsecond,
			Timestamp: fixedNow.Add(-2 * time.Hour),
		},
	}
	out := RenderHistory(entries, format.DefaultLayout, fixedNow)
	require.Contains(t, out, "   7  ")
	require.Contains(t, out, "2h ago")
	require.Contains(t, out, "1.5ms")
	require.Contains(t, out, "failed")
	require.True(t, strings.HasSuffix(out, ".auth.login ada token::***  [AUTH_FAILED]"))
}
