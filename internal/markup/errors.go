package markup

import "fmt"

// ParseError describes a markup decoding failure with the position of
// the offending input.
type ParseError struct {
	Msg  string
	Line int
	Col  int
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("markup: %s at line %d, column %d", e.Msg, e.Line, e.Col)
}

// Unwrap returns the underlying decoder error, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}
