package dispatchers

import (
	"github.com/footprint-tools/unilang/internal/command"
	"github.com/footprint-tools/unilang/internal/parser"
	"github.com/footprint-tools/unilang/internal/usage"
)

// bind assigns raw values to declared arguments in declaration order. A
// named value (by name or alias) wins; otherwise the next positional is
// taken. Values are then coerced and validated.
func bind(def *command.CommandDefinition, in parser.Instruction) (map[string]command.Value, error) {
	name := def.FullName()
	args := make(map[string]command.Value, len(def.Arguments))
	usedNamed := make(map[string]bool, len(in.Named))
	pos := 0
	keys := in.NamedKeys()

	for _, arg := range def.Arguments {
		var raws []string
		for _, key := range keys {
			if arg.Matches(key) {
				raws = append(raws, in.Named[key]...)
				usedNamed[key] = true
			}
		}

		if len(raws) == 0 {
			switch {
			case arg.Attributes.Multiple && pos < len(in.Positional):
				raws = in.Positional[pos:]
				pos = len(in.Positional)
			case pos < len(in.Positional):
				raws = []string{in.Positional[pos]}
				pos++
			}
		}

		if len(raws) == 0 {
			v, ok, err := unbound(arg)
			if err != nil {
				return nil, err
			}
			if ok {
				args[arg.Name] = v
			}
			continue
		}

		v, err := coerceArgument(arg, raws)
		if err != nil {
			return nil, err
		}
		if err := validate(arg, v); err != nil {
			return nil, err
		}
		args[arg.Name] = v
	}

	if pos < len(in.Positional) {
		return nil, usage.TooManyArguments(name, in.Positional[pos:])
	}

	var unknown []string
	for _, key := range keys {
		if !usedNamed[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		suggestion := ""
		if len(unknown) == 1 {
			if found := FindSimilar(unknown[0], argumentNames(def), 1, paramSuggestDistance); len(found) > 0 {
				suggestion = found[0]
			}
		}
		return nil, usage.UnknownParameter(name, unknown, suggestion)
	}

	return args, nil
}

// unbound handles an argument that received no value. ok is false when
// the argument is simply omitted.
func unbound(arg command.ArgumentDefinition) (v command.Value, ok bool, err error) {
	if arg.Attributes.Optional {
		if !arg.Attributes.HasDefault {
			return command.Value{}, false, nil
		}
		v, err := command.Coerce(arg.Attributes.Default, arg.Kind)
		if err != nil {
			return command.Value{}, false, usage.InvalidArgumentType(arg.Name, arg.Kind.String(), reason(err))
		}
		return v, true, nil
	}
	if arg.Attributes.Interactive {
		return command.Value{}, false, usage.InteractiveRequired(arg.Name)
	}
	return command.Value{}, false, usage.MissingArgument(arg.Name)
}

// coerceArgument turns one or more raw values into a typed value. Several
// values, or a Multiple argument, produce a list; for a List kind each raw
// value is split and the pieces are concatenated.
func coerceArgument(arg command.ArgumentDefinition, raws []string) (command.Value, error) {
	coerce := func(raw string) (command.Value, error) {
		v, err := command.Coerce(raw, arg.Kind)
		if err != nil {
			return command.Value{}, usage.InvalidArgumentType(arg.Name, arg.Kind.String(), reason(err))
		}
		return v, nil
	}

	if len(raws) == 1 && !arg.Attributes.Multiple {
		return coerce(raws[0])
	}

	items := make([]command.Value, 0, len(raws))
	for _, raw := range raws {
		v, err := coerce(raw)
		if err != nil {
			return command.Value{}, err
		}
		if list, ok := v.List(); ok && arg.Kind.Type == command.TypeList {
			items = append(items, list...)
			continue
		}
		items = append(items, v)
	}
	return command.ListValue(items...), nil
}

func validate(arg command.ArgumentDefinition, v command.Value) error {
	for _, rule := range arg.ValidationRules {
		if err := rule.Check(v); err != nil {
			return usage.ValidationFailed(arg.Name, rule.String(), err.Error())
		}
	}
	return nil
}

func reason(err error) string {
	if ce, ok := err.(*command.CoercionError); ok {
		return ce.Reason
	}
	return err.Error()
}

func argumentNames(def *command.CommandDefinition) []string {
	var names []string
	for _, a := range def.Arguments {
		names = append(names, a.Name)
		names = append(names, a.Aliases...)
	}
	return names
}
