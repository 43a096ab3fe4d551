package help

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/unilang/internal/command"
	"github.com/footprint-tools/unilang/internal/registry"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	defs := []command.CommandDefinition{
		command.New(".add").Namespace(".math").
			Description("Adds two integers").
			Version("1.2.0").
			Tags("math").
			Aliases(".plus").
			Examples(".math.add a::1 b::2").
			Arg(command.Arg("a", command.Scalar(command.TypeInteger)).Rules(command.Min(0))).
			Arg(command.Arg("b", command.Scalar(command.TypeInteger)).Default("0").Description("second operand")).
			Build(),
		command.New(".sub").Namespace(".math").Description("Subtracts").Build(),
		command.New(".ping").Description("Replies pong").Build(),
		command.New(".secret").Description("Not listed").Hidden().Build(),
		command.New(".old").Description("Legacy").Deprecated("use .ping").Build(),
	}
	for _, d := range defs {
		require.NoError(t, r.Register(d))
	}
	return r
}

func TestRenderMonotonic(t *testing.T) {
	g := NewGenerator(testRegistry(t))

	for _, name := range []string{".math.add", ".ping"} {
		t.Run(name, func(t *testing.T) {
			prev := ""
			for v := Minimal; v <= Comprehensive; v++ {
				text, ok := g.CommandAt(name, v)
				require.True(t, ok)
				require.Greater(t, len(text), len(prev), "level %s", v)
				require.True(t, strings.HasPrefix(text, prev), "level %s must extend the level below", v)
				prev = text
			}
		})
	}
}

func TestRenderLevels(t *testing.T) {
	g := NewGenerator(testRegistry(t))

	minimal, _ := g.CommandAt(".math.add", Minimal)
	require.Equal(t, ".math.add - Adds two integers\n", minimal)

	basic, _ := g.CommandAt(".math.add", Basic)
	require.Contains(t, basic, "ARGUMENTS")
	require.Contains(t, basic, "Integer (optional)")

	standard, _ := g.CommandAt(".math.add", Standard)
	require.Contains(t, standard, ".math.add a::<Integer> [b::<Integer>]")
	require.Contains(t, standard, ".math.add a::1 b::2")

	detailed, _ := g.CommandAt(".math.add", Detailed)
	require.Contains(t, detailed, "1.2.0")
	require.Contains(t, detailed, ".plus")
	require.Contains(t, detailed, "min:0")

	full, _ := g.CommandAt(".math.add", Comprehensive)
	require.Contains(t, full, "ARGUMENT DETAILS")
	require.Contains(t, full, "second operand")

	_, ok := g.Command(".nope")
	require.False(t, ok)
}

func TestRenderClampsVerbosity(t *testing.T) {
	g := NewGenerator(testRegistry(t), WithVerbosity(Verbosity(9)))
	require.Equal(t, Comprehensive, g.Verbosity())

	def, _ := testRegistry(t).Command(".ping")
	require.Equal(t, g.Render(def, Comprehensive), g.Render(def, Verbosity(42)))
}

func TestList(t *testing.T) {
	g := NewGenerator(testRegistry(t))

	all := g.List("")
	require.Contains(t, all, ".math.add")
	require.Contains(t, all, ".ping")
	require.NotContains(t, all, ".secret")
	require.Contains(t, all, "(deprecated)")
	require.Less(t, strings.Index(all, "general"), strings.Index(all, "math\n"))

	math := g.List(".math")
	require.Contains(t, math, "COMMANDS UNDER .math")
	require.Contains(t, math, ".math.sub")
	require.NotContains(t, math, ".ping")

	empty := NewGenerator(registry.New()).List("")
	require.Contains(t, empty, "no commands registered")
}

func TestParseVerbosity(t *testing.T) {
	tests := []struct {
		input string
		want  Verbosity
		err   bool
	}{
		{"0", Minimal, false},
		{"3", Detailed, false},
		{"7", Comprehensive, false},
		{"basic", Basic, false},
		{" Comprehensive ", Comprehensive, false},
		{"-1", Standard, true},
		{"loud", Standard, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVerbosity(tt.input)
			if tt.err {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestResolveVerbosity(t *testing.T) {
	t.Setenv(EnvVerbosity, "")
	require.Equal(t, Standard, ResolveVerbosity(""))
	require.Equal(t, Basic, ResolveVerbosity("1"))
	require.Equal(t, Standard, ResolveVerbosity("garbage"))

	t.Setenv(EnvVerbosity, "4")
	require.Equal(t, Comprehensive, ResolveVerbosity("1"))

	t.Setenv(EnvVerbosity, "nonsense")
	require.Equal(t, Basic, ResolveVerbosity("1"))
}
