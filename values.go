package mtlximport

import (
	"fmt"
	"strconv"
)

// ValueKind represents the kind of a node parameter value.
type ValueKind string

const (
	// ValueString indicates a string or filename value.
	ValueString ValueKind = "string"
	// ValueFloat indicates a float value.
	ValueFloat ValueKind = "float"
	// ValueInt indicates an integer value.
	ValueInt ValueKind = "integer"
	// ValueColor indicates an RGB color value.
	ValueColor ValueKind = "color3"
)

// Value is a parameter value set on a node.
type Value struct {
	Kind  ValueKind `json:"kind" yaml:"kind"`                      // Value kind
	Str   string    `json:"str,omitempty" yaml:"str,omitempty"`    // String value
	Num   float64   `json:"num,omitempty" yaml:"num,omitempty"`    // Float value
	Int   int       `json:"int,omitempty" yaml:"int,omitempty"`    // Integer value
	Color Color     `json:"color,omitzero" yaml:"color,omitempty"` // Color value
}

// StringValue creates a string Value.
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// FloatValue creates a float Value.
func FloatValue(v float64) Value { return Value{Kind: ValueFloat, Num: v} }

// IntValue creates an integer Value.
func IntValue(v int) Value { return Value{Kind: ValueInt, Int: v} }

// ColorValue creates a color Value.
func ColorValue(c Color) Value { return Value{Kind: ValueColor, Color: c} }

// String renders the value in MaterialX attribute form.
func (v Value) String() string {
	switch v.Kind {
	case ValueFloat:
		return formatFloat(v.Num)
	case ValueInt:
		return strconv.Itoa(v.Int)
	case ValueColor:
		return v.Color.String()
	default:
		return v.Str
	}
}

// parseValue parses a MaterialX attribute string of the given type.
func parseValue(typ, raw string) (Value, error) {
	switch typ {
	case "float":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: float value %q", ErrParse, raw)
		}
		return FloatValue(f), nil
	case "integer", "boolean":
		i, err := strconv.Atoi(raw)
		if err != nil {
			return Value{}, fmt.Errorf("%w: integer value %q", ErrParse, raw)
		}
		return IntValue(i), nil
	case "color3":
		c, err := ParseColor(raw)
		if err != nil {
			return Value{}, err
		}
		return ColorValue(c), nil
	default:
		return StringValue(raw), nil
	}
}
