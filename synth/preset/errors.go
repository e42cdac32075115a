package preset

import "fmt"

// MalformedConnectionError reports a connection entry missing its source or
// destination.
type MalformedConnectionError struct {
	Index       int
	Source      string
	Destination string
}

func (e *MalformedConnectionError) Error() string {
	switch {
	case e.Source == "" && e.Destination == "":
		return fmt.Sprintf("connection %d: missing source and destination", e.Index)
	case e.Source == "":
		return fmt.Sprintf("connection %d: missing source", e.Index)
	default:
		return fmt.Sprintf("connection %d: missing destination", e.Index)
	}
}

// ParseError wraps a decoding failure of one of the wire formats. The
// underlying error is opaque to callers beyond Unwrap.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s preset: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
