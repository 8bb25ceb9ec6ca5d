package scoring

import (
	"errors"
	"fmt"
)

var ErrInvalidArrow = errors.New("invalid arrow character")

// DecodeError reports the first character of a scoring string that is not a
// digit, 'M' or 'T'.
type DecodeError struct {
	Input    string
	Position int
	Char     rune
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode scoring string %q: invalid arrow %q at position %d", e.Input, e.Char, e.Position)
}

func (e *DecodeError) Unwrap() error {
	return ErrInvalidArrow
}
