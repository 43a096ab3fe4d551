package command

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CoercionError describes why a raw string does not fit a kind.
type CoercionError struct {
	Kind   Kind
	Input  string
	Reason string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot use %q as %s: %s", e.Input, e.Kind, e.Reason)
}

func coercionError(k Kind, input, format string, args ...any) error {
	return &CoercionError{Kind: k, Input: input, Reason: fmt.Sprintf(format, args...)}
}

// Coerce converts raw into a Value of kind k. File and Directory check the
// filesystem; every other kind is purely syntactic.
func Coerce(raw string, k Kind) (Value, error) {
	switch k.Type {
	case TypeString:
		return StringValue(raw), nil

	case TypeInteger:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return Value{}, coercionError(k, raw, "not an integer")
		}
		return IntegerValue(n), nil

	case TypeFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return Value{}, coercionError(k, raw, "not a number")
		}
		return FloatValue(f), nil

	case TypeBoolean:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "1", "yes":
			return BooleanValue(true), nil
		case "false", "0", "no":
			return BooleanValue(false), nil
		}
		return Value{}, coercionError(k, raw, "expected true/false, 1/0 or yes/no")

	case TypePath:
		if raw == "" {
			return Value{}, coercionError(k, raw, "path is empty")
		}
		return TextValue(TypePath, raw), nil

	case TypeFile:
		info, err := os.Stat(raw)
		if err != nil {
			return Value{}, coercionError(k, raw, "file does not exist")
		}
		if info.IsDir() {
			return Value{}, coercionError(k, raw, "is a directory, not a file")
		}
		return TextValue(TypeFile, raw), nil

	case TypeDirectory:
		info, err := os.Stat(raw)
		if err != nil {
			return Value{}, coercionError(k, raw, "directory does not exist")
		}
		if !info.IsDir() {
			return Value{}, coercionError(k, raw, "is not a directory")
		}
		return TextValue(TypeDirectory, raw), nil

	case TypeEnum:
		for _, c := range k.Choices {
			if raw == c {
				return TextValue(TypeEnum, raw), nil
			}
		}
		return Value{}, coercionError(k, raw, "must be one of [%s]", strings.Join(k.Choices, ", "))

	case TypeURL:
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || (u.Host == "" && u.Opaque == "") {
			return Value{}, coercionError(k, raw, "not an absolute URL")
		}
		return TextValue(TypeURL, raw), nil

	case TypeDateTime:
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
		if err != nil {
			return Value{}, coercionError(k, raw, "expected an RFC 3339 timestamp")
		}
		return DateTimeValue(t), nil

	case TypePattern:
		if _, err := regexp.Compile(raw); err != nil {
			return Value{}, coercionError(k, raw, "invalid regular expression: %v", err)
		}
		return TextValue(TypePattern, raw), nil

	case TypeJSONString:
		if !json.Valid([]byte(raw)) {
			return Value{}, coercionError(k, raw, "invalid JSON")
		}
		return TextValue(TypeJSONString, raw), nil

	case TypeObject:
		var obj map[string]any
		if err := json.Unmarshal([]byte(raw), &obj); err != nil || obj == nil {
			return Value{}, coercionError(k, raw, "expected a JSON object")
		}
		return ObjectValue(obj), nil

	case TypeList:
		return coerceList(raw, k)

	case TypeMap:
		return coerceMap(raw, k)
	}

	return Value{}, coercionError(k, raw, "unsupported kind")
}

func coerceList(raw string, k Kind) (Value, error) {
	if k.Item == nil {
		return Value{}, coercionError(k, raw, "list has no item kind")
	}
	if raw == "" {
		return ListValue(), nil
	}

	parts := strings.Split(raw, string(k.listDelimiter()))
	items := make([]Value, 0, len(parts))
	for _, part := range parts {
		item, err := Coerce(part, *k.Item)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	return ListValue(items...), nil
}

// coerceMap keys are validated against the key kind but stored as written.
// A key given twice is an error.
func coerceMap(raw string, k Kind) (Value, error) {
	if k.Key == nil || k.Item == nil {
		return Value{}, coercionError(k, raw, "map has no key or value kind")
	}
	if raw == "" {
		return MapValue(nil), nil
	}

	kv := string(k.kvDelimiter())
	entries := strings.Split(raw, string(k.entryDelimiter()))
	m := make(map[string]Value, len(entries))
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, kv)
		if !ok {
			return Value{}, coercionError(k, raw, "invalid map entry %q, expected key%svalue", entry, kv)
		}
		if _, err := Coerce(key, *k.Key); err != nil {
			return Value{}, err
		}
		if _, dup := m[key]; dup {
			return Value{}, coercionError(k, raw, "duplicate map key %q", key)
		}
		v, err := Coerce(value, *k.Item)
		if err != nil {
			return Value{}, err
		}
		m[key] = v
	}
	return MapValue(m), nil
}
