package command

import "time"

// VerifiedCommand is a parsed instruction bound and coerced against a
// definition, ready to execute.
type VerifiedCommand struct {
	Definition *CommandDefinition
	Arguments  map[string]Value
}

// Name returns the full name of the verified command.
func (c *VerifiedCommand) Name() string {
	return c.Definition.FullName()
}

// Get returns the value bound to an argument.
func (c *VerifiedCommand) Get(name string) (Value, bool) {
	v, ok := c.Arguments[name]
	return v, ok
}

// Has returns true if the argument was bound, either supplied or defaulted.
func (c *VerifiedCommand) Has(name string) bool {
	_, ok := c.Arguments[name]
	return ok
}

// String returns the display form of an argument, or defaultVal if not bound.
func (c *VerifiedCommand) String(name, defaultVal string) string {
	v, ok := c.Arguments[name]
	if !ok {
		return defaultVal
	}
	return v.String()
}

// Int returns an integer argument, or defaultVal if not bound or not an integer.
func (c *VerifiedCommand) Int(name string, defaultVal int64) int64 {
	if n, ok := c.Arguments[name].Integer(); ok {
		return n
	}
	return defaultVal
}

// Float returns a numeric argument as float64, or defaultVal if not bound or not numeric.
func (c *VerifiedCommand) Float(name string, defaultVal float64) float64 {
	if f, ok := c.Arguments[name].Number(); ok {
		return f
	}
	return defaultVal
}

// Bool returns a boolean argument, or defaultVal if not bound.
func (c *VerifiedCommand) Bool(name string, defaultVal bool) bool {
	if b, ok := c.Arguments[name].Boolean(); ok {
		return b
	}
	return defaultVal
}

// Time returns a DateTime argument, or nil if not bound.
func (c *VerifiedCommand) Time(name string) *time.Time {
	if t, ok := c.Arguments[name].Time(); ok {
		return &t
	}
	return nil
}

// List returns a list argument. A scalar argument is returned as a
// single-element list.
func (c *VerifiedCommand) List(name string) []Value {
	v, ok := c.Arguments[name]
	if !ok {
		return nil
	}
	if items, ok := v.List(); ok {
		return items
	}
	return []Value{v}
}
