package command

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRule(t *testing.T) {
	tests := []struct {
		input string
		want  ValidationRule
	}{
		{"min:1", Min(1)},
		{"max:2.5", Max(2.5)},
		{"minlength:3", MinLength(3)},
		{"max_length:8", MaxLength(8)},
		{"pattern:^[a-z]+:[0-9]$", MatchPattern("^[a-z]+:[0-9]$")},
		{"MinItems:2", MinItems(2)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRule(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"min", "min:x", "minlength:-1", "pattern:([", "between:1"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := ParseRule(bad)
			require.Error(t, err)
		})
	}
}

func TestRuleCheck(t *testing.T) {
	tests := []struct {
		name  string
		rule  ValidationRule
		value Value
		ok    bool
	}{
		{"min passes", Min(1), IntegerValue(1), true},
		{"min fails", Min(1), IntegerValue(0), false},
		{"max float", Max(1.5), FloatValue(1.6), false},
		{"min on string", Min(1), StringValue("x"), false},
		{"minlength counts characters", MinLength(4), StringValue("café"), true},
		{"maxlength", MaxLength(2), StringValue("abc"), false},
		{"pattern", MatchPattern("^[a-z]+$"), StringValue("abc"), true},
		{"pattern fails", MatchPattern("^[a-z]+$"), StringValue("ab1"), false},
		{"min elementwise", Min(0), ListValue(IntegerValue(1), IntegerValue(-1)), false},
		{"pattern elementwise", MatchPattern("^x"), ListValue(StringValue("xa"), StringValue("xb")), true},
		{"minitems", MinItems(2), ListValue(StringValue("a")), false},
		{"minitems map", MinItems(1), MapValue(map[string]Value{"a": IntegerValue(1)}), true},
		{"maxlength list", MaxLength(1), ListValue(IntegerValue(1), IntegerValue(2)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Check(tt.value)
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestRuleString(t *testing.T) {
	for _, r := range []ValidationRule{Min(1), Max(2.5), MinLength(3), MatchPattern("^a$"), MinItems(1)} {
		got, err := ParseRule(r.String())
		require.NoError(t, err)
		require.Equal(t, r, got)
	}
}
