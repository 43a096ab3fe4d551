package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/footprint-tools/unilang/internal/usage"
)

// token is one whitespace-separated word after quote removal.
type token struct {
	text   string
	offset int // byte offset of the first character in the input
	quoted bool

	// sep is the index in text of the first "::" outside quotes, or -1.
	sep int
	// quotedValue is set when a quoted section starts after sep, so that
	// key::"" carries an explicit empty value.
	quotedValue bool

	delimiter bool // instruction delimiter ";;"
}

func (t token) is(s string) bool {
	return !t.quoted && t.text == s
}

// tokenize splits input into tokens. Quotes (" or ') group characters,
// including whitespace, and backslash escapes the next character inside
// quotes. Scanning advances rune by rune so multi-byte characters are never
// split.
func tokenize(input, delimiter string) ([]token, error) {
	var (
		tokens []token
		buf    strings.Builder
		cur    = token{sep: -1}
		inTok  bool
		quote  rune
		qStart int
	)

	flush := func() {
		if inTok {
			cur.text = buf.String()
			tokens = append(tokens, cur)
		}
		buf.Reset()
		cur = token{sep: -1}
		inTok = false
	}

	for i := 0; i < len(input); {
		r, size := utf8.DecodeRuneInString(input[i:])
		if r == utf8.RuneError && size == 1 {
			return nil, usage.Parse(i, "invalid UTF-8 sequence")
		}

		if quote != 0 {
			switch {
			case r == '\\':
				next, nsize := utf8.DecodeRuneInString(input[i+size:])
				if nsize == 0 {
					return nil, usage.Parse(i, "unterminated escape sequence")
				}
				buf.WriteRune(unescape(next))
				i += size + nsize
				continue
			case r == quote:
				quote = 0
			default:
				buf.WriteRune(r)
			}
			i += size
			continue
		}

		switch {
		case delimiter != "" && strings.HasPrefix(input[i:], delimiter):
			flush()
			tokens = append(tokens, token{text: delimiter, offset: i, sep: -1, delimiter: true})
			i += len(delimiter)
			continue

		case unicode.IsSpace(r):
			flush()

		case r == '"' || r == '\'':
			if !inTok {
				cur.offset = i
				inTok = true
			}
			cur.quoted = true
			if cur.sep >= 0 {
				cur.quotedValue = true
			}
			quote = r
			qStart = i

		case r == ':' && cur.sep < 0 && strings.HasPrefix(input[i:], "::"):
			if !inTok {
				cur.offset = i
				inTok = true
			}
			cur.sep = buf.Len()
			buf.WriteString("::")
			i += 2
			continue

		default:
			if !inTok {
				cur.offset = i
				inTok = true
			}
			buf.WriteRune(r)
		}
		i += size
	}

	if quote != 0 {
		return nil, usage.Parse(qStart, "unterminated quoted string")
	}
	flush()
	return tokens, nil
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return r
	}
}
