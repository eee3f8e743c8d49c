package domain

import (
	"errors"
	"fmt"
	"strings"
)

// LineDelimiter separates the lines of a multi-line console message.
const LineDelimiter = "\n"

const (
	// DefaultAutocompleteMessage is used when a node has no autocomplete message.
	DefaultAutocompleteMessage = "no match found"
	// DefaultErrorMessage is used when a node has no error message.
	DefaultErrorMessage = "could not parse previous command"
)

// ErrEmptyLine is returned when a line contains no tokens.
var ErrEmptyLine = errors.New("empty command line")

// Lines joins message lines with LineDelimiter.
func Lines(lines ...string) string {
	return strings.Join(lines, LineDelimiter)
}

// PreconditionError is raised by CheckCanRun when the application state
// forbids running a node. Message is meant for direct display.
type PreconditionError struct {
	Message string
	Token   string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

// Preconditionf builds a PreconditionError with a formatted message.
func Preconditionf(format string, args ...any) *PreconditionError {
	return &PreconditionError{Message: fmt.Sprintf(format, args...)}
}

// UnresolvedTokenError is raised when a token matches neither the registry
// nor a default fallback of an intermediate node.
type UnresolvedTokenError struct {
	// Message is the node's default error text.
	Message string
	// Token is the transformed token that failed to resolve.
	Token string
	// Position is the index of the token in the full command.
	Position int
	// Suggestion is the closest registered token, if any was close enough.
	Suggestion string
}

func (e *UnresolvedTokenError) Error() string {
	return e.Message
}

// IsPrecondition reports whether err is (or wraps) a PreconditionError.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// IsUnresolved reports whether err is (or wraps) an UnresolvedTokenError.
func IsUnresolved(err error) bool {
	var ue *UnresolvedTokenError
	return errors.As(err, &ue)
}

// ErrorKind classifies err as "precondition", "unresolved" or "error".
func ErrorKind(err error) string {
	switch {
	case IsPrecondition(err):
		return "precondition"
	case IsUnresolved(err):
		return "unresolved"
	}
	return "error"
}
