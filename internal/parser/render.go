package parser

import (
	"strings"
	"unicode"
)

// Quote returns s in a form the tokenizer reads back as a single plain
// value. Values that need no quoting are returned unchanged.
func Quote(s string) string {
	if !needsQuote(s) {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func needsQuote(s string) bool {
	if s == "" || s == HelpOperator || s == "??" {
		return true
	}
	if strings.Contains(s, NamedSeparator) || strings.Contains(s, DefaultInstructionDelimiter) {
		return true
	}
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '"' || r == '\''
	}) >= 0
}

// String renders the instruction in canonical form: the path, then named
// arguments in first-seen order, then positionals, then the help operator.
// Parsing the result yields an equivalent instruction.
func (in Instruction) String() string {
	var parts []string
	if len(in.Path) > 0 {
		parts = append(parts, "."+strings.Join(in.Path, "."))
	}
	for _, key := range in.NamedKeys() {
		for _, v := range in.Named[key] {
			parts = append(parts, key+NamedSeparator+Quote(v))
		}
	}
	for _, v := range in.Positional {
		if len(in.Path) == 0 && len(parts) == 0 {
			// An unquoted first word would be read as the path.
			parts = append(parts, forceQuote(v))
			continue
		}
		parts = append(parts, Quote(v))
	}
	if in.HelpRequested {
		parts = append(parts, HelpOperator)
	}
	return strings.Join(parts, " ")
}

func forceQuote(s string) string {
	q := Quote(s)
	if q == s {
		return `"` + s + `"`
	}
	return q
}
