package parser

import (
	"strings"

	"github.com/footprint-tools/unilang/internal/usage"
)

// ParseFromArgv parses OS-provided arguments without re-tokenizing them.
//
// The first argument is the command path unless it is itself named. Tokens
// following a key::value token are space-joined into that value until the
// next key::value token or a final "?", so
//
//	[".run", "command::ls", "-la"]
//
// yields command = "ls -la" without shell quoting. Tokens are otherwise
// kept verbatim; quotes are not interpreted.
func (p *Parser) ParseFromArgv(argv []string) (Instruction, error) {
	in := Instruction{Source: strings.Join(argv, " ")}
	if len(argv) == 0 {
		return in, nil
	}

	last := len(argv) - 1
	isHelp := func(i int) bool { return i == last && argv[i] == HelpOperator }

	i := 0
	if _, _, ok := argvNamed(argv, 0); !ok && !isHelp(0) {
		path, err := splitPath(argv[0], -1)
		if err != nil {
			return Instruction{}, err
		}
		in.Path = path
		i = 1
	}

	for i < len(argv) {
		if isHelp(i) {
			in.HelpRequested = true
			break
		}
		if argv[i] == HelpOperator {
			return Instruction{}, usage.Parse(-1, "help operator '%s' must be the last argument", HelpOperator)
		}

		key, consumed, ok := argvNamed(argv, i)
		if !ok {
			if err := in.addPositional(argv[i], p.opts, -1); err != nil {
				return Instruction{}, err
			}
			i++
			continue
		}
		if key == "" {
			return Instruction{}, usage.Parse(-1, "named argument '%s' is missing a name", argv[i])
		}

		parts := make([]string, 0, 2)
		if first := argvValue(argv, i, consumed); first != "" {
			parts = append(parts, first)
		}
		i += consumed
		for i < len(argv) && !isHelp(i) {
			if _, _, next := argvNamed(argv, i); next {
				break
			}
			parts = append(parts, argv[i])
			i++
		}
		if len(parts) == 0 {
			return Instruction{}, usage.Parse(-1, "named argument '%s' is missing a value", key)
		}

		if err := in.addNamed(key, strings.Join(parts, " "), p.opts, -1); err != nil {
			return Instruction{}, err
		}
	}
	return in, nil
}

// argvNamed recognises "key::value", "key::" and the spaced "key" "::"
// form at argv[i]. consumed counts the tokens holding key and separator.
func argvNamed(argv []string, i int) (key string, consumed int, ok bool) {
	if k, _, found := strings.Cut(argv[i], NamedSeparator); found {
		return k, 1, true
	}
	if i+1 < len(argv) && argv[i+1] == NamedSeparator {
		return argv[i], 2, true
	}
	return "", 0, false
}

// argvValue returns the inline part of a named token, if any.
func argvValue(argv []string, i, consumed int) string {
	if consumed == 2 {
		return ""
	}
	_, v, _ := strings.Cut(argv[i], NamedSeparator)
	return v
}
