package command

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCoerceScalars(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind Kind
		want Value
	}{
		{"string", "hello", Scalar(TypeString), StringValue("hello")},
		{"integer", "42", Scalar(TypeInteger), IntegerValue(42)},
		{"negative integer", "-7", Scalar(TypeInteger), IntegerValue(-7)},
		{"float", "2.5", Scalar(TypeFloat), FloatValue(2.5)},
		{"bool true", "true", Scalar(TypeBoolean), BooleanValue(true)},
		{"bool yes", "YES", Scalar(TypeBoolean), BooleanValue(true)},
		{"bool zero", "0", Scalar(TypeBoolean), BooleanValue(false)},
		{"enum", "green", EnumOf("red", "green"), TextValue(TypeEnum, "green")},
		{"path", "does/not/matter", Scalar(TypePath), TextValue(TypePath, "does/not/matter")},
		{"url", "https://example.com/x", Scalar(TypeURL), TextValue(TypeURL, "https://example.com/x")},
		{"pattern", "^a+$", Scalar(TypePattern), TextValue(TypePattern, "^a+$")},
		{"json", `[1,2]`, Scalar(TypeJSONString), TextValue(TypeJSONString, `[1,2]`)},
		{"unicode string", "café naïve résumé", Scalar(TypeString), StringValue("café naïve résumé")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.raw, tt.kind)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind Kind
	}{
		{"integer", "abc", Scalar(TypeInteger)},
		{"float", "1.2.3", Scalar(TypeFloat)},
		{"bool", "maybe", Scalar(TypeBoolean)},
		{"enum", "purple", EnumOf("red", "green")},
		{"url", "not a url", Scalar(TypeURL)},
		{"datetime", "2024-13-01", Scalar(TypeDateTime)},
		{"pattern", "([", Scalar(TypePattern)},
		{"json", "{", Scalar(TypeJSONString)},
		{"object", "[1]", Scalar(TypeObject)},
		{"file", filepath.Join(t.TempDir(), "missing"), Scalar(TypeFile)},
		{"list item", "1,x", ListOf(Scalar(TypeInteger), 0)},
		{"map entry", "a1", MapOf(Scalar(TypeString), Scalar(TypeInteger), 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Coerce(tt.raw, tt.kind)
			var ce *CoercionError
			require.ErrorAs(t, err, &ce)
		})
	}
}

func TestCoerceList(t *testing.T) {
	got, err := Coerce("a,b,c", ListOf(Scalar(TypeString), 0))
	require.NoError(t, err)
	want := ListValue(StringValue("a"), StringValue("b"), StringValue("c"))
	require.Empty(t, cmp.Diff(want, got))

	got, err = Coerce("1;2", ListOf(Scalar(TypeInteger), ';'))
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(ListValue(IntegerValue(1), IntegerValue(2)), got))

	got, err = Coerce("", ListOf(Scalar(TypeInteger), 0))
	require.NoError(t, err)
	items, ok := got.List()
	require.True(t, ok)
	require.Empty(t, items)
}

func TestCoerceMap(t *testing.T) {
	got, err := Coerce("a:1,b:2", MapOf(Scalar(TypeString), Scalar(TypeInteger), 0, ':'))
	require.NoError(t, err)
	want := MapValue(map[string]Value{"a": IntegerValue(1), "b": IntegerValue(2)})
	require.Empty(t, cmp.Diff(want, got))

	got, err = Coerce("x=on;y=off", MapOf(Scalar(TypeString), EnumOf("on", "off"), ';', '='))
	require.NoError(t, err)
	m, ok := got.Map()
	require.True(t, ok)
	require.Len(t, m, 2)
	require.Equal(t, "off", m["y"].String())

	// Values may contain the key/value delimiter after the first one.
	got, err = Coerce("url:http://x", MapOf(Scalar(TypeString), Scalar(TypeString), 0, 0))
	require.NoError(t, err)
	m, _ = got.Map()
	require.Equal(t, "http://x", m["url"].String())

	_, err = Coerce("a:1,a:2", MapOf(Scalar(TypeString), Scalar(TypeInteger), 0, ':'))
	var ce *CoercionError
	require.ErrorAs(t, err, &ce)
	require.Contains(t, ce.Reason, `duplicate map key "a"`)
}

func TestCoerceFilesystem(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	v, err := Coerce(file, Scalar(TypeFile))
	require.NoError(t, err)
	require.Equal(t, TypeFile, v.Type)

	_, err = Coerce(dir, Scalar(TypeFile))
	require.Error(t, err)

	v, err = Coerce(dir, Scalar(TypeDirectory))
	require.NoError(t, err)
	require.Equal(t, dir, v.String())

	_, err = Coerce(file, Scalar(TypeDirectory))
	require.Error(t, err)
}

func TestCoerceDateTimeAndObject(t *testing.T) {
	v, err := Coerce("2024-05-01T10:00:00Z", Scalar(TypeDateTime))
	require.NoError(t, err)
	ts, ok := v.Time()
	require.True(t, ok)
	require.True(t, ts.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))

	v, err = Coerce(`{"a":1,"b":"x"}`, Scalar(TypeObject))
	require.NoError(t, err)
	obj, ok := v.Object()
	require.True(t, ok)
	require.Equal(t, float64(1), obj["a"])
	require.Equal(t, `{"a":1,"b":"x"}`, v.String())
}

func TestValueInterface(t *testing.T) {
	v := ListValue(IntegerValue(1), MapValue(map[string]Value{"k": BooleanValue(true)}))
	want := []any{int64(1), map[string]any{"k": true}}
	require.Empty(t, cmp.Diff(want, v.Interface()))
}
