package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/unilang/internal/command"
	"github.com/footprint-tools/unilang/internal/usage"
)

const yamlTable = `
- name: .complex
  namespace: .test
  description: Command with complex types and attributes
  hint: Complex command hint
  status: stable
  version: 1.0.0
  tags: [test, complex]
  aliases: [.test.comp]
  permissions: [public]
  idempotent: false
  routine_link: complex_routine
  arguments:
    - name: doc
      kind: JsonString
    - name: obj
      kind: Object
    - name: words
      kind: String
      multiple: true
    - name: score
      kind: Integer
      validation_rules: ["min:10", "max:100"]
    - name: greeting
      kind: String
      optional: true
      default_value: default_string
    - name: retries
      kind: Integer
      default_value: 3
    - name: weights
      kind: Map(String,Float,;,=)
      optional: true
- name: .plain
  description: No arguments
`

func TestParseYAML(t *testing.T) {
	defs, err := Parse([]byte(yamlTable), FormatYAML)
	require.NoError(t, err)
	require.Len(t, defs, 2)

	def := defs[0]
	require.Equal(t, ".test.complex", def.FullName())
	require.Equal(t, "Complex command hint", def.Hint)
	require.Equal(t, command.StatusStable, def.Status)
	require.Equal(t, "1.0.0", def.Version)
	require.Equal(t, []string{"test", "complex"}, def.Tags)
	require.Equal(t, []string{".test.comp"}, def.Aliases)
	require.Equal(t, "complex_routine", def.RoutineLink)
	require.Len(t, def.Arguments, 7)

	byName := make(map[string]command.ArgumentDefinition)
	for _, a := range def.Arguments {
		byName[a.Name] = a
	}

	require.Equal(t, command.TypeJSONString, byName["doc"].Kind.Type)
	require.Equal(t, command.TypeObject, byName["obj"].Kind.Type)
	require.True(t, byName["words"].Attributes.Multiple)
	require.Equal(t, []command.ValidationRule{command.Min(10), command.Max(100)}, byName["score"].ValidationRules)
	require.Equal(t, "default_string", byName["greeting"].Attributes.Default)
	require.True(t, byName["greeting"].Attributes.Optional)
	require.Equal(t, "3", byName["retries"].Attributes.Default)
	require.True(t, byName["retries"].Attributes.Optional)
	require.Equal(t, command.MapOf(command.Scalar(command.TypeString), command.Scalar(command.TypeFloat), ';', '='), byName["weights"].Kind)

	require.Equal(t, ".plain", defs[1].FullName())
	require.Equal(t, command.StatusStable, defs[1].Status)
}

func TestParseCommandsMapping(t *testing.T) {
	yamlDoc := `
commands:
  - name: .one
  - name: .two
    arguments:
      - name: x
`
	defs, err := Parse([]byte(yamlDoc), FormatYAML)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	require.Equal(t, command.TypeString, defs[1].Arguments[0].Kind.Type, "kind defaults to String")

	jsonDoc := `{"commands": [{"name": ".one"}, {"name": ".two"}]}`
	defs, err = Parse([]byte(jsonDoc), FormatJSON)
	require.NoError(t, err)
	require.Len(t, defs, 2)
}

func TestParseJSON(t *testing.T) {
	jsonDoc := `[
		{
			"name": ".hello",
			"namespace": ".system",
			"description": "Says hello from JSON",
			"routine_link": "hello_routine",
			"status": "experimental",
			"aliases": [".hi"],
			"idempotent": true,
			"arguments": [
				{"name": "count", "kind": "Integer", "default_value": 2},
				{"name": "loud", "kind": "Boolean", "default_value": false},
				{"name": "tags", "kind": "List(String,|)", "optional": true, "default_value": null}
			]
		}
	]`

	defs, err := Parse([]byte(jsonDoc), FormatJSON)
	require.NoError(t, err)
	require.Len(t, defs, 1)

	def := defs[0]
	require.Equal(t, ".system.hello", def.FullName())
	require.Equal(t, command.StatusExperimental, def.Status)
	require.True(t, def.Idempotent)
	require.Equal(t, "2", def.Arguments[0].Attributes.Default)
	require.Equal(t, "false", def.Arguments[1].Attributes.Default)
	require.False(t, def.Arguments[2].Attributes.HasDefault)
	require.Equal(t, command.ListOf(command.Scalar(command.TypeString), '|'), def.Arguments[2].Kind)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		format   Format
		wantCode string
	}{
		{"bad kind", "- name: .x\n  arguments:\n    - name: a\n      kind: Tuple", FormatYAML, usage.CodeInvalidDefinition},
		{"bad rule", "- name: .x\n  arguments:\n    - name: a\n      validation_rules: [\"between:1\"]", FormatYAML, usage.CodeInvalidDefinition},
		{"scalar root", "just text", FormatYAML, ""},
		{"broken yaml", "- name: [", FormatYAML, ""},
		{"broken json", "[{", FormatJSON, ""},
		{"object default", `[{"name": ".x", "arguments": [{"name": "a", "default_value": {"k": 1}}]}]`, FormatJSON, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			require.Error(t, err)
			if tt.wantCode != "" {
				require.Equal(t, tt.wantCode, usage.CodeOf(err))
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	defs, err := Parse(nil, FormatYAML)
	require.NoError(t, err)
	require.Empty(t, defs)

	defs, err = Parse([]byte("  "), FormatJSON)
	require.NoError(t, err)
	require.Empty(t, defs)
}

func TestFormatOf(t *testing.T) {
	require.Equal(t, FormatJSON, FormatOf("defs.JSON"))
	require.Equal(t, FormatYAML, FormatOf("defs.yaml"))
	require.Equal(t, FormatYAML, FormatOf("defs.yml"))
	require.Equal(t, FormatYAML, FormatOf("defs"))
}

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "math.yaml")
	jsonPath := filepath.Join(dir, "system.json")

	require.NoError(t, os.WriteFile(yamlPath, []byte(`
- name: .add
  namespace: .math
  routine_link: add
  arguments:
    - name: a
      kind: Integer
    - name: b
      kind: Integer
`), 0600))
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"name": ".version", "namespace": ".system"}]`), 0600))

	add := func(cmd *command.VerifiedCommand, _ *command.Context) (command.OutputData, error) {
		return command.Text("ok"), nil
	}

	reg, err := LoadRegistry([]string{yamlPath, jsonPath}, map[string]command.Routine{"add": add})
	require.NoError(t, err)
	require.True(t, reg.IsStatic())
	require.Equal(t, 2, reg.Len())

	_, ok := reg.Routine(".math.add")
	require.True(t, ok)
	_, ok = reg.Routine(".system.version")
	require.False(t, ok)
}

func TestLoadRegistryRejectsNamesWithoutSeparator(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- name: hello\n"), 0600))

	_, err := LoadRegistry([]string{path}, nil)
	require.Equal(t, usage.CodeInvalidCommandName, usage.CodeOf(err))
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}
