package command

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

var typesByName = func() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		m[strings.ToLower(name)] = t
	}
	return m
}()

// ParseKind parses the textual kind grammar:
//
//	String | Integer | Float | Boolean | Path | File | Directory | Url |
//	DateTime | Pattern | JsonString | Object
//	Enum(a,b,c)
//	List(Kind) | List(Kind,d)
//	Map(Kind,Kind) | Map(Kind,Kind,e,k)
//
// Names are matched case-insensitively. Delimiters are single characters.
func ParseKind(s string) (Kind, error) {
	k, err := parseKind(strings.TrimSpace(s), 0)
	if err != nil {
		return Kind{}, fmt.Errorf("invalid kind %q: %w", s, err)
	}
	return k, nil
}

func parseKind(s string, depth int) (Kind, error) {
	if depth > maxKindDepth {
		return Kind{}, fmt.Errorf("nesting exceeds %d levels", maxKindDepth)
	}
	if s == "" {
		return Kind{}, fmt.Errorf("empty kind")
	}

	name, params, hasParams := s, "", false
	if open := strings.IndexByte(s, '('); open >= 0 {
		if !strings.HasSuffix(s, ")") {
			return Kind{}, fmt.Errorf("missing closing parenthesis")
		}
		name = strings.TrimSpace(s[:open])
		params = s[open+1 : len(s)-1]
		hasParams = true
	}

	t, ok := typesByName[strings.ToLower(name)]
	if !ok {
		return Kind{}, fmt.Errorf("unknown kind name %q", name)
	}

	switch t {
	case TypeEnum:
		if !hasParams {
			return Kind{}, fmt.Errorf("enum requires choices")
		}
		var choices []string
		for _, c := range splitTopLevel(params) {
			c = strings.TrimSpace(c)
			if c == "" {
				return Kind{}, fmt.Errorf("empty enum choice")
			}
			choices = append(choices, c)
		}
		return EnumOf(choices...), nil

	case TypeList:
		if !hasParams {
			return Kind{}, fmt.Errorf("list requires an item kind")
		}
		itemText, rest, hasDelim := cutTopLevel(params)
		item, err := parseKind(strings.TrimSpace(itemText), depth+1)
		if err != nil {
			return Kind{}, err
		}
		var delim rune
		if hasDelim {
			if delim, err = singleRune(rest); err != nil {
				return Kind{}, fmt.Errorf("list delimiter: %w", err)
			}
		}
		return ListOf(item, delim), nil

	case TypeMap:
		if !hasParams {
			return Kind{}, fmt.Errorf("map requires key and value kinds")
		}
		keyText, rest, _ := cutTopLevel(params)
		valueText, delims, hasDelims := cutTopLevel(rest)
		key, err := parseKind(strings.TrimSpace(keyText), depth+1)
		if err != nil {
			return Kind{}, err
		}
		value, err := parseKind(strings.TrimSpace(valueText), depth+1)
		if err != nil {
			return Kind{}, err
		}
		if hasDelims && delims == "" {
			return Kind{}, fmt.Errorf("map delimiter: expected a single character after ','")
		}
		entry, kv, err := parseMapDelimiters(delims)
		if err != nil {
			return Kind{}, err
		}
		k := MapOf(key, value, entry, kv)
		if err := k.validate(depth); err != nil {
			return Kind{}, err
		}
		return k, nil

	default:
		if hasParams {
			return Kind{}, fmt.Errorf("%s takes no parameters", t)
		}
		return Scalar(t), nil
	}
}

// parseMapDelimiters accepts "", "e" or "e,k". The entry delimiter may
// itself be a comma, so the first rune is always taken literally.
func parseMapDelimiters(s string) (rune, rune, error) {
	if s == "" {
		return 0, 0, nil
	}
	entry, size := utf8.DecodeRuneInString(s)
	rest := s[size:]
	if rest == "" {
		return entry, 0, nil
	}
	if rest[0] != ',' {
		return 0, 0, fmt.Errorf("map delimiters must be single characters, got %q", s)
	}
	kv, err := singleRune(rest[1:])
	if err != nil {
		return 0, 0, fmt.Errorf("map key/value delimiter: %w", err)
	}
	return entry, kv, nil
}

func singleRune(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("expected a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// cutTopLevel splits s at the first comma outside parentheses. found is
// false when there is no such comma.
func cutTopLevel(s string) (before, after string, found bool) {
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				return s[:i], s[i+1:], true
			}
		}
	}
	return s, "", false
}

func splitTopLevel(s string) []string {
	var parts []string
	for {
		head, rest, found := cutTopLevel(s)
		parts = append(parts, head)
		if !found {
			return parts
		}
		s = rest
	}
}
