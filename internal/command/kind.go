package command

import (
	"fmt"
	"slices"
	"strings"
)

// Type is the base type of an argument kind.
type Type int

const (
	TypeString Type = iota
	TypeInteger
	TypeFloat
	TypeBoolean
	TypePath
	TypeFile
	TypeDirectory
	TypeEnum
	TypeURL
	TypeDateTime
	TypePattern
	TypeList
	TypeMap
	TypeJSONString
	TypeObject
)

var typeNames = map[Type]string{
	TypeString:     "String",
	TypeInteger:    "Integer",
	TypeFloat:      "Float",
	TypeBoolean:    "Boolean",
	TypePath:       "Path",
	TypeFile:       "File",
	TypeDirectory:  "Directory",
	TypeEnum:       "Enum",
	TypeURL:        "Url",
	TypeDateTime:   "DateTime",
	TypePattern:    "Pattern",
	TypeList:       "List",
	TypeMap:        "Map",
	TypeJSONString: "JsonString",
	TypeObject:     "Object",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

const (
	DefaultListDelimiter  = ','
	DefaultEntryDelimiter = ','
	DefaultKVDelimiter    = ':'
)

// maxKindDepth bounds List/Map nesting. Kinds are built from pointers, so a
// hand-built cycle would otherwise recurse forever.
const maxKindDepth = 16

// Kind is the declared type of an argument. List and Map are the only
// composite kinds; Item holds the list item kind or the map value kind.
type Kind struct {
	Type    Type
	Choices []string // Enum
	Item    *Kind    // List, Map
	Key     *Kind    // Map

	// Delimiter splits list items or map entries. Zero means the default.
	Delimiter rune
	// KVDelimiter splits a map entry into key and value. Zero means the default.
	KVDelimiter rune
}

// Clone returns a deep copy that shares no pointers or slices with k.
func (k Kind) Clone() Kind {
	c := k
	c.Choices = slices.Clone(k.Choices)
	if k.Item != nil {
		item := k.Item.Clone()
		c.Item = &item
	}
	if k.Key != nil {
		key := k.Key.Clone()
		c.Key = &key
	}
	return c
}

// Scalar returns a kind with no parameters.
func Scalar(t Type) Kind {
	return Kind{Type: t}
}

// EnumOf returns an Enum kind accepting exactly the given choices.
func EnumOf(choices ...string) Kind {
	return Kind{Type: TypeEnum, Choices: choices}
}

// ListOf returns a List kind. A zero delimiter selects ','.
func ListOf(item Kind, delimiter rune) Kind {
	return Kind{Type: TypeList, Item: &item, Delimiter: delimiter}
}

// MapOf returns a Map kind. Zero delimiters select ',' for entries and ':'
// between key and value.
func MapOf(key, value Kind, entry, kv rune) Kind {
	return Kind{Type: TypeMap, Key: &key, Item: &value, Delimiter: entry, KVDelimiter: kv}
}

func (k Kind) IsComposite() bool {
	return k.Type == TypeList || k.Type == TypeMap
}

func (k Kind) listDelimiter() rune {
	if k.Delimiter == 0 {
		return DefaultListDelimiter
	}
	return k.Delimiter
}

func (k Kind) entryDelimiter() rune {
	if k.Delimiter == 0 {
		return DefaultEntryDelimiter
	}
	return k.Delimiter
}

func (k Kind) kvDelimiter() rune {
	if k.KVDelimiter == 0 {
		return DefaultKVDelimiter
	}
	return k.KVDelimiter
}

// Validate reports structural problems: composites without inner kinds,
// enums without choices, map keys that are themselves composite, and nesting
// deep enough to indicate a cycle.
func (k Kind) Validate() error {
	return k.validate(0)
}

func (k Kind) validate(depth int) error {
	if depth > maxKindDepth {
		return fmt.Errorf("kind nesting exceeds %d levels", maxKindDepth)
	}
	if _, ok := typeNames[k.Type]; !ok {
		return fmt.Errorf("unknown kind %d", int(k.Type))
	}

	switch k.Type {
	case TypeEnum:
		if len(k.Choices) == 0 {
			return fmt.Errorf("enum requires at least one choice")
		}
	case TypeList:
		if k.Item == nil {
			return fmt.Errorf("list requires an item kind")
		}
		if err := k.Item.validate(depth + 1); err != nil {
			return fmt.Errorf("list item: %w", err)
		}
	case TypeMap:
		if k.Key == nil || k.Item == nil {
			return fmt.Errorf("map requires key and value kinds")
		}
		if k.Key.IsComposite() {
			return fmt.Errorf("map key must be a scalar kind, got %s", k.Key.Type)
		}
		if err := k.Key.validate(depth + 1); err != nil {
			return fmt.Errorf("map key: %w", err)
		}
		if err := k.Item.validate(depth + 1); err != nil {
			return fmt.Errorf("map value: %w", err)
		}
		if k.entryDelimiter() == k.kvDelimiter() {
			return fmt.Errorf("map entry and key/value delimiters must differ")
		}
	}
	return nil
}

// String renders the kind in the same textual grammar ParseKind accepts.
func (k Kind) String() string {
	var b strings.Builder
	k.write(&b, 0)
	return b.String()
}

func (k Kind) write(b *strings.Builder, depth int) {
	b.WriteString(k.Type.String())
	if depth > maxKindDepth {
		return
	}

	switch k.Type {
	case TypeEnum:
		b.WriteByte('(')
		b.WriteString(strings.Join(k.Choices, ","))
		b.WriteByte(')')
	case TypeList:
		if k.Item == nil {
			return
		}
		b.WriteByte('(')
		k.Item.write(b, depth+1)
		if k.Delimiter != 0 {
			b.WriteByte(',')
			b.WriteRune(k.Delimiter)
		}
		b.WriteByte(')')
	case TypeMap:
		if k.Key == nil || k.Item == nil {
			return
		}
		b.WriteByte('(')
		k.Key.write(b, depth+1)
		b.WriteByte(',')
		k.Item.write(b, depth+1)
		if k.Delimiter != 0 || k.KVDelimiter != 0 {
			b.WriteByte(',')
			b.WriteRune(k.entryDelimiter())
			b.WriteByte(',')
			b.WriteRune(k.kvDelimiter())
		}
		b.WriteByte(')')
	}
}
