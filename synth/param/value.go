// Package param provides validated stage parameters: a small tagged-union
// value type and range-checked scalar parameters.
package param

import (
	"fmt"
	"strconv"
)

// Kind discriminates the payload of a Value.
type Kind int

const (
	// KindFloat holds a float64 payload.
	KindFloat Kind = iota
	// KindString holds a string payload.
	KindString
	// KindBool holds a bool payload.
	KindBool
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a tagged union of float64, string, and bool. It is the only
// payload type carried across a stage's public parameter interface.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
}

// Float wraps a float64 as a Value.
func Float(v float64) Value {
	return Value{kind: KindFloat, num: v}
}

// String wraps a string as a Value.
func String(v string) Value {
	return Value{kind: KindString, str: v}
}

// Bool wraps a bool as a Value.
func Bool(v bool) Value {
	return Value{kind: KindBool, b: v}
}

// Kind returns the union discriminator.
func (v Value) Kind() Kind {
	return v.kind
}

// AsFloat returns the float payload. The error identifies a type mismatch.
func (v Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, &TypeError{Want: KindFloat, Got: v.kind}
	}
	return v.num, nil
}

// AsString returns the string payload. The error identifies a type mismatch.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", &TypeError{Want: KindString, Got: v.kind}
	}
	return v.str, nil
}

// AsBool returns the bool payload. The error identifies a type mismatch.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, &TypeError{Want: KindBool, Got: v.kind}
	}
	return v.b, nil
}

// GoString renders the payload for diagnostics.
func (v Value) GoString() string {
	switch v.kind {
	case KindFloat:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.str)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return "param.Value{}"
	}
}
