package reduce

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInvalidArgument is returned when Reduce is called with a nil action.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidConstructor is returned when a composite state type does not
	// have exactly one constructor taking one or more parameters.
	ErrInvalidConstructor = errors.New("invalid constructor")

	// ErrInvalidConstructorArgument is returned when a constructor parameter
	// does not match one of the state type's exported fields.
	ErrInvalidConstructorArgument = errors.New("invalid constructor argument")

	// ErrTypeMismatch is returned when a reducer receives a value of a type it
	// was not bound to.
	ErrTypeMismatch = errors.New("type mismatch")
)

// ShapeError describes a composite state type that cannot be decomposed.
// It is only ever returned by NewStructural; a reducer is never built when
// its state shape is invalid.
//
// Use errors.Is with ErrInvalidConstructor or ErrInvalidConstructorArgument
// to check the kind, or errors.As to reach the offending type and parameter.
type ShapeError struct {
	// Kind is ErrInvalidConstructor or ErrInvalidConstructorArgument.
	Kind error

	// Type is the composite state type.
	Type reflect.Type

	// Param is the offending constructor parameter, empty for
	// ErrInvalidConstructor.
	Param string

	// Reason optionally narrows down why Param was rejected.
	Reason string
}

func (e *ShapeError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("%s: state type %s must have a single constructor with one or more parameters", e.Kind, e.Type)
	}
	msg := fmt.Sprintf("%s: constructor for state type %s has parameter %q that does not match one of its exported fields", e.Kind, e.Type, e.Param)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

func (e *ShapeError) Unwrap() error { return e.Kind }

func typeMismatch(want reflect.Type, got any) error {
	return fmt.Errorf("%w: want %s, got %T", ErrTypeMismatch, want, got)
}
