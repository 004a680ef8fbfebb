package latex

import (
	"errors"
	"fmt"
)

var (
	// ErrUnbalancedDelimiter is returned when a group is opened but the text ends before it is closed.
	ErrUnbalancedDelimiter = errors.New("unbalanced delimiter")

	// ErrNoGroup is returned when there is no opening delimiter at or after the start position.
	ErrNoGroup = errors.New("no delimited group")

	// ErrNoMatchingEnd is returned when an environment has no \end carrying the same name.
	ErrNoMatchingEnd = errors.New("no matching end")

	// ErrMalformedLabel is returned for aux file lines which are not well-formed \newlabel definitions.
	ErrMalformedLabel = errors.New("malformed label")

	// ErrUnknownCommand is returned by formatters when a command has no registered handling.
	ErrUnknownCommand = errors.New("unknown command")
)

// SyntaxError describes where in the source a parsing error happened.
type SyntaxError struct {
	Op     string // operation that failed, eg. "match group"
	Offset int    // byte offset in the scanned text
	Name   string // command or environment name, if any
	Err    error  // one of the sentinel errors
}

func (e *SyntaxError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %s at offset %d: %v", e.Op, e.Name, e.Offset, e.Err)
	}

	return fmt.Sprintf("%s at offset %d: %v", e.Op, e.Offset, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// UnknownCommandError is returned when a command name can not be resolved to any handling.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("%v %s", ErrUnknownCommand, e.Name)
}

func (e *UnknownCommandError) Unwrap() error {
	return ErrUnknownCommand
}
