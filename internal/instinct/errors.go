package instinct

import (
	"errors"
	"fmt"
)

// ErrParse is matched by every *ParseError.
var ErrParse = errors.New("instinct parse error")

// ParseError reports a frontmatter value that could not be coerced.
type ParseError struct {
	Line  int
	Key   string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: invalid value %q: %v", e.Line, e.Key, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports ErrParse so callers can match without errors.As.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
