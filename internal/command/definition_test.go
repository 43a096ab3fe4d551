package command

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{".greet", true},
		{".math.add", true},
		{"greet", false},
		{".", false},
		{"..x", false},
		{".a.", false},
		{".a b", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if tt.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestFullName(t *testing.T) {
	require.Equal(t, ".math.add", New(".add").Namespace(".math").Build().FullName())
	require.Equal(t, ".add", New(".add").Build().FullName())
	require.Equal(t, ".add", New(".add").Namespace(".").Build().FullName())
}

func TestDefinitionValidate(t *testing.T) {
	ok := New(".x").
		Arg(Arg("a", Scalar(TypeInteger)).Aliases("n")).
		Arg(Arg("b", Scalar(TypeInteger)).Default("3")).
		Build()
	require.NoError(t, ok.Validate())

	dup := New(".x").
		Arg(Arg("a", Scalar(TypeString))).
		Arg(Arg("b", Scalar(TypeString)).Aliases("a")).
		Build()
	require.Error(t, dup.Validate())

	badDefault := New(".x").Arg(Arg("n", Scalar(TypeInteger)).Default("many")).Build()
	require.Error(t, badDefault.Validate())

	badKind := New(".x").Arguments(ArgumentDefinition{Name: "l", Kind: Kind{Type: TypeList}}).Build()
	require.Error(t, badKind.Validate())

	badStatus := New(".x").Status("retired").Build()
	require.Error(t, badStatus.Validate())
}

func TestBuilderCopies(t *testing.T) {
	b := New(".x").Tags("a")
	first := b.Build()
	b.Tags("b")
	require.Equal(t, []string{"a"}, first.Tags)
	require.Equal(t, []string{"a", "b"}, b.Build().Tags)
}

func TestArgumentMatches(t *testing.T) {
	def := New(".x").Arg(Arg("name", Scalar(TypeString)).Aliases("n")).Build()
	a, ok := def.Argument("n")
	require.True(t, ok)
	require.Equal(t, "name", a.Name)
	require.True(t, a.Required())

	_, ok = def.Argument("missing")
	require.False(t, ok)
}

func TestVerifiedAccessors(t *testing.T) {
	def := New(".x").Build()
	cmd := &VerifiedCommand{
		Definition: &def,
		Arguments: map[string]Value{
			"n":    IntegerValue(4),
			"f":    FloatValue(1.5),
			"ok":   BooleanValue(true),
			"s":    StringValue("hi"),
			"list": ListValue(StringValue("a"), StringValue("b")),
		},
	}

	require.Equal(t, ".x", cmd.Name())
	require.Equal(t, int64(4), cmd.Int("n", 0))
	require.Equal(t, int64(9), cmd.Int("s", 9))
	require.Equal(t, 4.0, cmd.Float("n", 0))
	require.Equal(t, 1.5, cmd.Float("f", 0))
	require.True(t, cmd.Bool("ok", false))
	require.Equal(t, "hi", cmd.String("s", ""))
	require.Equal(t, "fallback", cmd.String("missing", "fallback"))
	require.Len(t, cmd.List("list"), 2)
	require.Len(t, cmd.List("s"), 1)
	require.Nil(t, cmd.List("missing"))
	require.Nil(t, cmd.Time("s"))
	require.False(t, cmd.Has("missing"))
}
