package command

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Value is a typed argument value produced by coercing a raw string
// against a Kind. V holds the Go representation:
//
//	String, Path, File, Directory, Enum, Url, Pattern, JsonString: string
//	Integer: int64
//	Float: float64
//	Boolean: bool
//	DateTime: time.Time
//	List: []Value
//	Map: map[string]Value
//	Object: map[string]any
type Value struct {
	Type Type
	V    any
}

func StringValue(s string) Value { return Value{Type: TypeString, V: s} }

func IntegerValue(n int64) Value { return Value{Type: TypeInteger, V: n} }

func FloatValue(f float64) Value { return Value{Type: TypeFloat, V: f} }

func BooleanValue(b bool) Value { return Value{Type: TypeBoolean, V: b} }

func DateTimeValue(t time.Time) Value { return Value{Type: TypeDateTime, V: t} }

func ListValue(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{Type: TypeList, V: items}
}

func MapValue(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return Value{Type: TypeMap, V: m}
}

func ObjectValue(m map[string]any) Value { return Value{Type: TypeObject, V: m} }

// TextValue builds a value of a string-backed type (Path, Enum, Url...).
func TextValue(t Type, s string) Value { return Value{Type: t, V: s} }

// Text returns the string form of string-backed values.
func (v Value) Text() (string, bool) {
	s, ok := v.V.(string)
	return s, ok
}

func (v Value) Integer() (int64, bool) {
	n, ok := v.V.(int64)
	return n, ok
}

func (v Value) Float() (float64, bool) {
	f, ok := v.V.(float64)
	return f, ok
}

func (v Value) Boolean() (bool, bool) {
	b, ok := v.V.(bool)
	return b, ok
}

func (v Value) Time() (time.Time, bool) {
	t, ok := v.V.(time.Time)
	return t, ok
}

func (v Value) List() ([]Value, bool) {
	l, ok := v.V.([]Value)
	return l, ok
}

func (v Value) Map() (map[string]Value, bool) {
	m, ok := v.V.(map[string]Value)
	return m, ok
}

func (v Value) Object() (map[string]any, bool) {
	m, ok := v.V.(map[string]any)
	return m, ok
}

// Number returns integer and float values as float64.
func (v Value) Number() (float64, bool) {
	switch n := v.V.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Interface converts the value to plain Go values, recursively, suitable
// for JSON encoding.
func (v Value) Interface() any {
	switch x := v.V.(type) {
	case []Value:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = item.Interface()
		}
		return out
	case map[string]Value:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = item.Interface()
		}
		return out
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return x
	}
}

// String renders the value for display. Lists are comma-joined and maps
// are rendered as sorted key:value pairs.
func (v Value) String() string {
	switch x := v.V.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case []Value:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = item.String()
		}
		return strings.Join(parts, ",")
	case map[string]Value:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ":" + x[k].String()
		}
		return strings.Join(parts, ",")
	case map[string]any:
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(data)
	default:
		return fmt.Sprint(x)
	}
}
