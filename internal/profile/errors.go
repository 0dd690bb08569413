package profile

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput matches EmptyInputError.
	ErrEmptyInput = errors.New("empty input")
	// ErrMalformedQuoting matches MalformedQuotingError.
	ErrMalformedQuoting = errors.New("malformed quoting")
	// ErrInvalidConfiguration matches InvalidConfigurationError.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// EmptyInputError indicates the document has no header row.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string { return "empty input: no header row" }

func (e *EmptyInputError) Is(target error) bool { return target == ErrEmptyInput }

// MalformedQuotingError indicates a quoted field was still open at end of input.
type MalformedQuotingError struct {
	// Line is the 1-based line on which the unterminated field opened.
	Line int
}

func (e *MalformedQuotingError) Error() string {
	return fmt.Sprintf("malformed quoting: unterminated quoted field starting on line %d", e.Line)
}

func (e *MalformedQuotingError) Is(target error) bool { return target == ErrMalformedQuoting }

// InvalidConfigurationError rejects a Config before any analysis runs.
type InvalidConfigurationError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

func (e *InvalidConfigurationError) Is(target error) bool { return target == ErrInvalidConfiguration }
