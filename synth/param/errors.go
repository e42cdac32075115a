package param

import (
	"errors"
	"fmt"
)

// ErrUnknownParameter marks a lookup for a parameter name a stage does not
// expose. Callers wrap it with the offending name.
var ErrUnknownParameter = errors.New("unknown parameter")

// RangeError reports an assignment outside a parameter's [Min, Max] range.
// The stored value is unchanged when this error is returned.
type RangeError struct {
	Name  string
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("parameter %q: value %g out of range [%g, %g]", e.Name, e.Value, e.Min, e.Max)
}

// TypeError reports a Value accessed as the wrong kind.
type TypeError struct {
	Name string
	Want Kind
	Got  Kind
}

func (e *TypeError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("parameter value is %s, not %s", e.Got, e.Want)
	}
	return fmt.Sprintf("parameter %q is %s, not %s", e.Name, e.Got, e.Want)
}
