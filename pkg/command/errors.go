package command

import (
	"errors"
	"fmt"
)

// ErrInvalidDefinition marks construction-time validation failures.
var ErrInvalidDefinition = errors.New("command: invalid definition")

// DefinitionError describes why a Definition was rejected.
type DefinitionError struct {
	Name   string // command name as given, may be empty
	Field  string // yaml field name of the offending option
	Reason string
}

func (e *DefinitionError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid command definition: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid command definition %q: %s: %s", e.Name, e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidDefinition) hold.
func (e *DefinitionError) Is(target error) bool {
	return target == ErrInvalidDefinition
}

// ErrorKind classifies failures returned from Run.
type ErrorKind string

const (
	// KindInvalidArgument means the caller supplied unusable arguments.
	KindInvalidArgument ErrorKind = "Invalid Argument"
	// KindCommandFailure means the body failed while performing its work.
	KindCommandFailure ErrorKind = "Command Failure"
	// KindNotImplemented means the command was registered without a Run.
	// It is a programming error and must never be retried.
	KindNotImplemented ErrorKind = "Not Implemented"
)

// Error is a classified failure raised by a command.
type Error struct {
	Kind    ErrorKind
	Command string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Command, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Command, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) ErrorKind {
	var cmdErr *Error
	if errors.As(err, &cmdErr) {
		return cmdErr.Kind
	}
	return ""
}

// IsImplementationError reports whether err comes from an unimplemented Run.
func IsImplementationError(err error) bool {
	return KindOf(err) == KindNotImplemented
}

func notImplemented(name string) error {
	return &Error{
		Kind:    KindNotImplemented,
		Command: name,
		Err:     fmt.Errorf("the %s command has no Run method", name),
	}
}
