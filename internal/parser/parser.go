// Package parser turns command-line style text or argv into instructions:
// a command path, named key::value arguments, positional arguments and a
// help marker.
package parser

import (
	"sort"
	"strings"

	"github.com/footprint-tools/unilang/internal/usage"
)

const (
	// NamedSeparator splits a named argument into key and value.
	NamedSeparator = "::"
	// HelpOperator requests help instead of execution when it is the last token.
	HelpOperator = "?"
	// DefaultInstructionDelimiter separates instructions in ParseMultiple.
	DefaultInstructionDelimiter = ";;"
)

// Instruction is one parsed, not yet verified, command invocation.
type Instruction struct {
	// Path holds the command path segments, e.g. [math add] for ".math.add".
	Path []string
	// Named maps an argument name to its values in order of appearance.
	Named map[string][]string
	// NamedOrder lists named argument keys in first-seen order. Keys of
	// Named missing from it still count; see NamedKeys.
	NamedOrder []string
	Positional []string

	HelpRequested bool

	// Source is the text the instruction was parsed from.
	Source string
}

// IsEmpty reports whether the instruction carries nothing at all.
func (in Instruction) IsEmpty() bool {
	return len(in.Path) == 0 && len(in.Named) == 0 && len(in.Positional) == 0 && !in.HelpRequested
}

// NamedKeys returns every key of Named exactly once: the keys listed in
// NamedOrder first, in that order, then any others sorted.
func (in Instruction) NamedKeys() []string {
	keys := make([]string, 0, len(in.Named))
	seen := make(map[string]bool, len(in.Named))
	for _, key := range in.NamedOrder {
		if _, ok := in.Named[key]; ok && !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	rest := len(keys)
	for key := range in.Named {
		if !seen[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys[rest:])
	return keys
}

func (in *Instruction) addNamed(key, value string, opts Options, offset int) error {
	if in.Named == nil {
		in.Named = make(map[string][]string)
	}
	if _, seen := in.Named[key]; seen {
		if opts.ErrorOnDuplicateNamed {
			return usage.Parse(offset, "duplicate named argument '%s'", key)
		}
	} else {
		in.NamedOrder = append(in.NamedOrder, key)
	}
	in.Named[key] = append(in.Named[key], value)
	return nil
}

func (in *Instruction) addPositional(value string, opts Options, offset int) error {
	if opts.ErrorOnPositionalAfterNamed && len(in.Named) > 0 {
		return usage.Parse(offset, "positional argument '%s' after named arguments", value)
	}
	in.Positional = append(in.Positional, value)
	return nil
}

// Options control parser strictness.
type Options struct {
	ErrorOnDuplicateNamed       bool
	ErrorOnPositionalAfterNamed bool
	// InstructionDelimiter separates instructions; empty selects ";;".
	InstructionDelimiter string
}

func (o Options) delimiter() string {
	if o.InstructionDelimiter == "" {
		return DefaultInstructionDelimiter
	}
	return o.InstructionDelimiter
}

// Parser parses instructions with a fixed set of options.
type Parser struct {
	opts Options
}

// New creates a parser.
func New(opts Options) *Parser {
	return &Parser{opts: opts}
}

// Parse parses a single instruction. Empty input yields an empty
// instruction, not an error.
func (p *Parser) Parse(input string) (Instruction, error) {
	tokens, err := tokenize(input, p.opts.delimiter())
	if err != nil {
		return Instruction{}, err
	}
	for _, t := range tokens {
		if t.delimiter {
			return Instruction{}, usage.Parse(t.offset, "unexpected instruction delimiter '%s'", t.text)
		}
	}
	return p.build(tokens, strings.TrimSpace(input))
}

// ParseMultiple parses instructions separated by the instruction
// delimiter. Empty segments, including a leading or trailing delimiter,
// are errors. Blank input yields no instructions.
func (p *Parser) ParseMultiple(input string) ([]Instruction, error) {
	tokens, err := tokenize(input, p.opts.delimiter())
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	var (
		out   []Instruction
		start = 0
	)
	segment := func(end, delimAt int) error {
		if start == end {
			return usage.Parse(delimAt, "empty instruction before or after '%s'", p.opts.delimiter())
		}
		seg := tokens[start:end]
		from := seg[0].offset
		to := len(input)
		if delimAt >= 0 {
			to = delimAt
		}
		in, err := p.build(seg, strings.TrimSpace(input[from:to]))
		if err != nil {
			return err
		}
		out = append(out, in)
		return nil
	}

	for i, t := range tokens {
		if !t.delimiter {
			continue
		}
		if err := segment(i, t.offset); err != nil {
			return nil, err
		}
		start = i + 1
	}
	if start == len(tokens) {
		return nil, usage.Parse(len(input), "trailing instruction delimiter '%s'", p.opts.delimiter())
	}
	if err := segment(len(tokens), -1); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Parser) build(tokens []token, source string) (Instruction, error) {
	in := Instruction{Source: source}
	if len(tokens) == 0 {
		return in, nil
	}

	i := 0
	if first := tokens[0]; !first.quoted && first.sep < 0 && !first.is(HelpOperator) {
		path, err := splitPath(first.text, first.offset)
		if err != nil {
			return Instruction{}, err
		}
		in.Path = path
		i = 1
	}

	for i < len(tokens) {
		t := tokens[i]

		if t.is(HelpOperator) {
			if i != len(tokens)-1 {
				return Instruction{}, usage.Parse(t.offset, "help operator '%s' must be the last token", HelpOperator)
			}
			in.HelpRequested = true
			i++
			continue
		}

		key, value, consumed, err := namedAt(tokens, i)
		if err != nil {
			return Instruction{}, err
		}
		if consumed > 0 {
			if err := in.addNamed(key, value, p.opts, t.offset); err != nil {
				return Instruction{}, err
			}
			i += consumed
			continue
		}

		if err := in.addPositional(t.text, p.opts, t.offset); err != nil {
			return Instruction{}, err
		}
		i++
	}
	return in, nil
}

// startsNamed reports whether tokens[i] is the key of a spaced "key :: value".
func startsNamed(tokens []token, i int) bool {
	return i+1 < len(tokens) && !tokens[i].quoted && tokens[i].sep < 0 &&
		!tokens[i+1].quoted && tokens[i+1].sep == 0
}

// namedAt recognises key::value, key:: value, key :: value and key ::value
// starting at tokens[i]. consumed is zero when tokens[i] is not named.
func namedAt(tokens []token, i int) (key, value string, consumed int, err error) {
	t := tokens[i]

	switch {
	case t.sep > 0:
		key = t.text[:t.sep]
		value = t.text[t.sep+len(NamedSeparator):]
		consumed = 1
		if value != "" || t.quotedValue {
			return key, value, consumed, nil
		}

	case t.sep == 0:
		return "", "", 0, usage.Parse(t.offset, "named argument is missing a name before '%s'", NamedSeparator)

	case startsNamed(tokens, i):
		key = t.text
		next := tokens[i+1]
		value = next.text[len(NamedSeparator):]
		consumed = 2
		if value != "" || next.quotedValue {
			return key, value, consumed, nil
		}

	default:
		return "", "", 0, nil
	}

	// The value is the following token.
	j := i + consumed
	if j >= len(tokens) || tokens[j].is(HelpOperator) || tokens[j].sep >= 0 {
		return "", "", 0, usage.Parse(t.offset, "named argument '%s' is missing a value", key)
	}
	return key, tokens[j].text, consumed + 1, nil
}

// splitPath splits a command word on the separator. A single leading
// separator is optional; "." alone is the empty path.
func splitPath(word string, offset int) ([]string, error) {
	trimmed := strings.TrimPrefix(word, ".")
	if trimmed == "" {
		return nil, nil
	}
	segments := strings.Split(trimmed, ".")
	for _, seg := range segments {
		if seg == "" {
			return nil, usage.Parse(offset, "command path '%s' has an empty segment", word)
		}
	}
	return segments, nil
}

var defaultParser = New(Options{})

// Parse parses a single instruction with default options.
func Parse(input string) (Instruction, error) {
	return defaultParser.Parse(input)
}

// ParseMultiple parses ";;" separated instructions with default options.
func ParseMultiple(input string) ([]Instruction, error) {
	return defaultParser.ParseMultiple(input)
}

// ParseFromArgv parses OS-provided arguments with default options.
func ParseFromArgv(argv []string) (Instruction, error) {
	return defaultParser.ParseFromArgv(argv)
}
