package command

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// RuleType identifies a validation rule.
type RuleType int

const (
	RuleMin RuleType = iota
	RuleMax
	RuleMinLength
	RuleMaxLength
	RulePattern
	RuleMinItems
)

var ruleNames = map[RuleType]string{
	RuleMin:       "min",
	RuleMax:       "max",
	RuleMinLength: "minlength",
	RuleMaxLength: "maxlength",
	RulePattern:   "pattern",
	RuleMinItems:  "minitems",
}

func (r RuleType) String() string {
	return ruleNames[r]
}

// ValidationRule constrains a coerced value. Bound is used by min/max,
// Length by the length and item rules, Pattern by pattern.
type ValidationRule struct {
	Type    RuleType
	Bound   float64
	Length  int
	Pattern string
}

func Min(n float64) ValidationRule { return ValidationRule{Type: RuleMin, Bound: n} }
func Max(n float64) ValidationRule { return ValidationRule{Type: RuleMax, Bound: n} }
func MinLength(n int) ValidationRule { return ValidationRule{Type: RuleMinLength, Length: n} }
func MaxLength(n int) ValidationRule { return ValidationRule{Type: RuleMaxLength, Length: n} }
func MatchPattern(p string) ValidationRule { return ValidationRule{Type: RulePattern, Pattern: p} }
func MinItems(n int) ValidationRule { return ValidationRule{Type: RuleMinItems, Length: n} }

// ParseRule parses "name:argument" rule text, e.g. "min:1" or "pattern:^[a-z]+$".
// Names are case-insensitive and "min_length" style spellings are accepted.
func ParseRule(s string) (ValidationRule, error) {
	name, arg, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return ValidationRule{}, fmt.Errorf("invalid validation rule %q: expected name:value", s)
	}
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "")

	switch name {
	case "min", "max":
		n, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return ValidationRule{}, fmt.Errorf("invalid validation rule %q: bound is not a number", s)
		}
		if name == "min" {
			return Min(n), nil
		}
		return Max(n), nil

	case "minlength", "maxlength", "minitems":
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || n < 0 {
			return ValidationRule{}, fmt.Errorf("invalid validation rule %q: length must be a non-negative integer", s)
		}
		switch name {
		case "minlength":
			return MinLength(n), nil
		case "maxlength":
			return MaxLength(n), nil
		default:
			return MinItems(n), nil
		}

	case "pattern":
		if _, err := regexp.Compile(arg); err != nil {
			return ValidationRule{}, fmt.Errorf("invalid validation rule %q: %w", s, err)
		}
		return MatchPattern(arg), nil
	}

	return ValidationRule{}, fmt.Errorf("unknown validation rule %q", name)
}

// String renders the rule in ParseRule syntax.
func (r ValidationRule) String() string {
	switch r.Type {
	case RuleMin, RuleMax:
		return r.Type.String() + ":" + strconv.FormatFloat(r.Bound, 'g', -1, 64)
	case RulePattern:
		return r.Type.String() + ":" + r.Pattern
	default:
		return r.Type.String() + ":" + strconv.Itoa(r.Length)
	}
}

// Check returns a description of the violation, or nil when v satisfies
// the rule. Min, max and pattern apply to each element of a list.
func (r ValidationRule) Check(v Value) error {
	if items, ok := v.List(); ok {
		switch r.Type {
		case RuleMin, RuleMax, RulePattern:
			for i, item := range items {
				if err := r.Check(item); err != nil {
					return fmt.Errorf("item %d: %w", i, err)
				}
			}
			return nil
		}
	}

	switch r.Type {
	case RuleMin:
		n, ok := v.Number()
		if !ok {
			return fmt.Errorf("%s applies to numbers only", r)
		}
		if n < r.Bound {
			return fmt.Errorf("%s is less than %s", v, strconv.FormatFloat(r.Bound, 'g', -1, 64))
		}

	case RuleMax:
		n, ok := v.Number()
		if !ok {
			return fmt.Errorf("%s applies to numbers only", r)
		}
		if n > r.Bound {
			return fmt.Errorf("%s is greater than %s", v, strconv.FormatFloat(r.Bound, 'g', -1, 64))
		}

	case RuleMinLength, RuleMaxLength:
		n, ok := length(v)
		if !ok {
			return fmt.Errorf("%s applies to strings and lists only", r)
		}
		if r.Type == RuleMinLength && n < r.Length {
			return fmt.Errorf("length %d is shorter than %d", n, r.Length)
		}
		if r.Type == RuleMaxLength && n > r.Length {
			return fmt.Errorf("length %d is longer than %d", n, r.Length)
		}

	case RulePattern:
		s, ok := v.Text()
		if !ok {
			return fmt.Errorf("%s applies to strings only", r)
		}
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern: %w", err)
		}
		if !re.MatchString(s) {
			return fmt.Errorf("%q does not match %s", s, r.Pattern)
		}

	case RuleMinItems:
		n := -1
		if items, ok := v.List(); ok {
			n = len(items)
		} else if m, ok := v.Map(); ok {
			n = len(m)
		}
		if n < 0 {
			return fmt.Errorf("%s applies to lists and maps only", r)
		}
		if n < r.Length {
			return fmt.Errorf("%d items, at least %d required", n, r.Length)
		}
	}
	return nil
}

// length counts characters for strings and elements for lists.
func length(v Value) (int, bool) {
	if s, ok := v.Text(); ok {
		return utf8.RuneCountInString(s), true
	}
	if items, ok := v.List(); ok {
		return len(items), true
	}
	return 0, false
}
