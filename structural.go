package reduce

import (
	"fmt"
	"reflect"
	"strings"
)

// Structural reduces a composite state by reducing each of its fields
// independently.
//
// Every constructor parameter of the state type is bound to a field reducer,
// which defaults to Identity. For an action with no handler registered on
// the Structural itself, every field reducer runs against the action. When
// no field changes, the original state is returned as is; otherwise the
// constructor is called once with every field's next value to build a new
// state. Field changes are detected with Equal, not identity.
//
// Handlers registered with On, Register or Scan act on the whole state and
// take precedence over field decomposition.
//
// Like Registry, Structural is safe for concurrent use after configuration.
// Do not call SetFieldReducer after calling Reduce.
type Structural[S any] struct {
	*Registry[S]

	ctor   Constructor[S]
	fields []*fieldReducer[S]
}

// fieldReducer binds one field of S to the reducer for that field's value.
type fieldReducer[S any] struct {
	field Field[S]

	// inner is nil while the field is bound to the identity reducer.
	inner Reducer[any]
}

// apply reduces the field's current value and reports whether it changed.
func (f *fieldReducer[S]) apply(state S, action any) (changed bool, next any, err error) {
	current := f.field.Get(state)
	if f.inner == nil {
		return false, current, nil
	}
	next, err = f.inner.Reduce(current, action)
	if err != nil {
		return false, nil, err
	}
	return !Equal(current, next), next, nil
}

// NewStructural validates shape and returns a Structural reducer for S.
//
// shape must describe exactly one constructor taking one or more
// parameters, otherwise ErrInvalidConstructor is returned. Every parameter
// must match a field by name, ignoring case, whose type is assignable to
// the parameter's type, otherwise ErrInvalidConstructorArgument is
// returned. Both are returned as a *ShapeError.
//
// Example:
//
//	s, err := reduce.NewStructural(reduce.StructShape[Profile]())
//	if err != nil {
//	    return err
//	}
//	err = reduce.SetFieldReducer(s, "Name", names)
func NewStructural[S any](shape Shape[S], opts ...Option) (*Structural[S], error) {
	stateType := reflect.TypeFor[S]()
	if shape == nil {
		return nil, &ShapeError{Kind: ErrInvalidConstructor, Type: stateType}
	}

	ctors := shape.Constructors()
	if len(ctors) != 1 || len(ctors[0].Params) == 0 || ctors[0].New == nil {
		return nil, &ShapeError{Kind: ErrInvalidConstructor, Type: stateType}
	}
	ctor := ctors[0]

	available := shape.Fields()
	fields := make([]*fieldReducer[S], 0, len(ctor.Params))
	for _, p := range ctor.Params {
		f, ok := matchField(available, p.Name)
		if !ok || f.Get == nil {
			return nil, &ShapeError{Kind: ErrInvalidConstructorArgument, Type: stateType, Param: p.Name}
		}
		if f.Type != nil && p.Type != nil && !f.Type.AssignableTo(p.Type) {
			return nil, &ShapeError{
				Kind:   ErrInvalidConstructorArgument,
				Type:   stateType,
				Param:  p.Name,
				Reason: fmt.Sprintf("field %s of type %s is not assignable to %s", f.Name, f.Type, p.Type),
			}
		}
		fields = append(fields, &fieldReducer[S]{field: f})
	}

	s := &Structural[S]{
		Registry: New[S](opts...),
		ctor:     ctor,
		fields:   fields,
	}
	s.Fallback(nil)
	return s, nil
}

// Fallback replaces field decomposition as the behavior for actions without
// a whole-state handler. Field reducers no longer run while a fallback is
// set. A nil reducer restores decomposition.
func (s *Structural[S]) Fallback(f Reducer[S]) {
	if f == nil {
		f = ReducerFunc[S](s.decompose)
	}
	s.Registry.Fallback(f)
}

// SetFieldReducer binds the named field of s to inner, replacing its
// current reducer. The name is matched ignoring case. A nil inner restores
// the identity reducer.
//
// Naming a field s has no reducer for does nothing. A reducer whose value
// type is not the field's type is rejected with ErrTypeMismatch.
//
// This is a package-level function (not a method) due to Go generics limitations:
// methods cannot have type parameters independent of the receiver.
//
// Example:
//
//	names := reduce.New[string]()
//	reduce.On(names, func(name string, a Rename) string { return a.Name })
//	if err := reduce.SetFieldReducer(s, "Name", names); err != nil {
//	    return err
//	}
func SetFieldReducer[S, F any](s *Structural[S], field string, inner Reducer[F]) error {
	f := s.lookup(field)
	if f == nil {
		return nil
	}

	if want := reflect.TypeFor[F](); f.field.Type != nil && f.field.Type != want {
		return fmt.Errorf("%w: field %s is %s, reducer is for %s", ErrTypeMismatch, f.field.Name, f.field.Type, want)
	}

	if inner == nil {
		f.inner = nil
		return nil
	}
	f.inner = ReducerFunc[any](func(value, action any) (any, error) {
		v, ok := value.(F)
		if !ok && value != nil {
			return nil, typeMismatch(reflect.TypeFor[F](), value)
		}
		next, err := inner.Reduce(v, action)
		if err != nil {
			return nil, err
		}
		return next, nil
	})
	return nil
}

// Fields returns the names of the fields s decomposes its state into, in
// constructor order.
func (s *Structural[S]) Fields() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.field.Name
	}
	return names
}

// decompose is the default behavior of a Structural reducer.
func (s *Structural[S]) decompose(state S, action any) (S, error) {
	args := make([]any, len(s.fields))
	var changed []string
	for i, f := range s.fields {
		c, next, err := f.apply(state, action)
		if err != nil {
			var zero S
			return zero, fmt.Errorf("reduce field %s: %w", f.field.Name, err)
		}
		args[i] = next
		if c {
			changed = append(changed, f.field.Name)
			s.callOnFieldChange(f.field.Name, action)
		}
	}

	if len(changed) == 0 {
		return state, nil
	}

	next := s.ctor.New(args)
	s.callOnRebuild(changed, action)
	return next, nil
}

func (s *Structural[S]) lookup(name string) *fieldReducer[S] {
	for _, f := range s.fields {
		if f.field.Name == name {
			return f
		}
	}
	for _, f := range s.fields {
		if strings.EqualFold(f.field.Name, name) {
			return f
		}
	}
	return nil
}

func (s *Structural[S]) callOnFieldChange(field string, action any) {
	for _, fn := range s.hooks.onFieldChange {
		fn(field, action)
	}
}

func (s *Structural[S]) callOnRebuild(changed []string, action any) {
	for _, fn := range s.hooks.onRebuild {
		fn(changed, action)
	}
}

// matchField finds the field for a constructor parameter, preferring an
// exact name match over a case-insensitive one.
func matchField[S any](fields []Field[S], name string) (Field[S], bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	for _, f := range fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Field[S]{}, false
}
