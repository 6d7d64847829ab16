// If you are AI: This file defines the failure kinds the hardened serializer can report.

package jsvar

import (
	"fmt"

	"scriptvar/internal/core/value"
)

// Sentinel errors, shared with the value producers.
var (
	ErrCyclicStructure  = value.ErrCyclicStructure
	ErrUnsupportedValue = value.ErrUnsupportedValue
)

// ErrorKind classifies a serializer failure.
type ErrorKind int

// Error kinds
const (
	KindCyclicStructure ErrorKind = iota + 1
	KindUnsupportedValue
)

// String returns the name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindCyclicStructure:
		return "cyclic_structure"
	case KindUnsupportedValue:
		return "unsupported_value"
	default:
		return "unknown"
	}
}

// Error reports where in the input the serializer gave up.
// Path uses $ for the root, [i] for sequence elements and .key for members.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

// Error implements error.
func (e *Error) Error() string {
	return fmt.Sprintf("serialize %s: %v", e.Path, e.Err)
}

// Unwrap returns the sentinel so errors.Is works.
func (e *Error) Unwrap() error {
	return e.Err
}

// newError builds an Error for the value at the current position.
func newError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// prependPath adds a path segment while unwinding out of a container.
func prependPath(err error, segment string) error {
	if e, ok := err.(*Error); ok {
		e.Path = segment + e.Path
	}
	return err
}
