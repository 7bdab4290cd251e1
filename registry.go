package reduce

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Registrar accepts handlers keyed by action type. Both *Registry and
// *Structural implement it, so On works with either.
type Registrar[S any] interface {
	Register(actionType reflect.Type, h Reducer[S])
}

// Registry dispatches actions to reducers based on the action's runtime type.
//
// Usage:
//  1. Create a registry with New
//  2. Register handlers with On, Register or Scan
//  3. Reduce states with Reduce
//
// Actions with no registered handler are passed to the registry's default
// behavior, which returns the state unchanged unless replaced with Fallback.
//
// The zero value is an empty registry with the identity default, but it
// takes no options; use New to attach hooks.
//
// Registry is safe for concurrent use after configuration. Do not call On,
// Register, Scan or Fallback after calling Reduce.
type Registry[S any] struct {
	handlers map[reflect.Type]Reducer[S]
	fallback Reducer[S]
	hooks    hooks
}

// New creates a Registry with the given options.
//
// Example:
//
//	r := reduce.New[Profile](
//	    reduce.WithOnDefault(func(action any) {
//	        log.Printf("unhandled action %T", action)
//	    }),
//	)
func New[S any](opts ...Option) *Registry[S] {
	r := &Registry[S]{
		handlers: make(map[reflect.Type]Reducer[S]),
		fallback: Identity[S](),
	}
	for _, opt := range opts {
		opt(&r.hooks)
	}
	return r
}

// Register adds a reducer for an action type. A later registration for the
// same type replaces the earlier one.
//
// Prefer On, which derives the key from the handler's signature.
func (r *Registry[S]) Register(actionType reflect.Type, h Reducer[S]) {
	if actionType == nil || h == nil {
		return
	}
	if r.handlers == nil {
		r.handlers = make(map[reflect.Type]Reducer[S])
	}
	r.handlers[actionType] = h
}

// On registers a typed handler for actions of type A, replacing any handler
// previously registered or scanned for A.
//
// This is a package-level function (not a method) due to Go generics limitations:
// methods cannot have type parameters independent of the receiver.
//
// Example:
//
//	reduce.On(r, func(p Profile, a Rename) Profile {
//	    p.Name = a.Name
//	    return p
//	})
func On[S, A any](r Registrar[S], fn Handler[S, A]) {
	r.Register(reflect.TypeFor[A](), Adapt(fn))
}

// Scan registers every handler it can find on the given sources.
//
// A source is either a function or a value whose exported methods are
// inspected. Each function of the form func(S, A) S, where A is a concrete
// type, is registered as the handler for A. Everything else is ignored.
//
// Sources are scanned in order and methods in lexical order; when two
// candidates handle the same action type the later one wins.
//
// Example:
//
//	type names struct{}
//
//	func (names) OnRename(name string, a Rename) string { return a.Name }
//
//	r := reduce.New[string]().Scan(names{})
func (r *Registry[S]) Scan(sources ...any) *Registry[S] {
	stateType := reflect.TypeFor[S]()
	for _, src := range sources {
		for _, fn := range candidates(src) {
			actionType, ok := handlerActionType(fn.Type(), stateType)
			if !ok {
				continue
			}
			r.Register(actionType, methodAdapter[S]{fn: fn, actionType: actionType})
		}
	}
	return r
}

// Fallback replaces the default behavior used for actions without a
// registered handler. A nil reducer restores the identity default.
func (r *Registry[S]) Fallback(f Reducer[S]) {
	if f == nil {
		f = Identity[S]()
	}
	r.fallback = f
}

// Handles reports whether a handler is registered for actionType.
func (r *Registry[S]) Handles(actionType reflect.Type) bool {
	_, ok := r.handlers[actionType]
	return ok
}

// ActionTypes returns the action types with a registered handler, sorted by
// name. Useful for verifying at startup that every expected action is wired.
func (r *Registry[S]) ActionTypes() []reflect.Type {
	types := make([]reflect.Type, 0, len(r.handlers))
	for t := range r.handlers {
		types = append(types, t)
	}
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
	return types
}

// Reduce computes the next state for action.
//
// The processing flow:
//  1. Reject a nil action, or a nil pointer, map, slice, func or chan
//     action, with ErrInvalidArgument
//  2. Look up the handler registered for the action's runtime type
//  3. Call the handler, or the default behavior when none is registered
//
// Reduce never modifies the registry. An error aborts only this call.
func (r *Registry[S]) Reduce(state S, action any) (S, error) {
	if isNilAction(action) {
		err := fmt.Errorf("%w: action must not be nil", ErrInvalidArgument)
		r.callOnError(action, err)
		var zero S
		return zero, err
	}

	h, found := r.handlers[reflect.TypeOf(action)]
	if found {
		r.callOnDispatch(action)
	} else {
		r.callOnDefault(action)
		h = r.fallback
		if h == nil {
			h = Identity[S]()
		}
	}

	next, err := h.Reduce(state, action)
	if err != nil {
		r.callOnError(action, err)
		var zero S
		return zero, err
	}
	return next, nil
}

func (r *Registry[S]) callOnDispatch(action any) {
	for _, fn := range r.hooks.onDispatch {
		fn(action)
	}
}

func (r *Registry[S]) callOnDefault(action any) {
	for _, fn := range r.hooks.onDefault {
		fn(action)
	}
}

func (r *Registry[S]) callOnError(action any, err error) {
	for _, fn := range r.hooks.onError {
		fn(action, err)
	}
}

// isNilAction reports whether action is nil or a typed nil.
func isNilAction(action any) bool {
	if action == nil {
		return true
	}
	v := reflect.ValueOf(action)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}

// candidates lists the functions a source offers to Scan.
func candidates(src any) []reflect.Value {
	v := reflect.ValueOf(src)
	if !v.IsValid() {
		return nil
	}
	if v.Kind() == reflect.Func {
		if v.IsNil() {
			return nil
		}
		return []reflect.Value{v}
	}
	fns := make([]reflect.Value, 0, v.NumMethod())
	for i := range v.NumMethod() {
		fns = append(fns, v.Method(i))
	}
	return fns
}

// handlerActionType returns A when fn is func(S, A) S.
func handlerActionType(fn, stateType reflect.Type) (reflect.Type, bool) {
	if fn.NumIn() != 2 || fn.NumOut() != 1 || fn.IsVariadic() {
		return nil, false
	}
	if fn.In(0) != stateType || fn.Out(0) != stateType {
		return nil, false
	}
	actionType := fn.In(1)
	if actionType.Kind() == reflect.Interface {
		return nil, false
	}
	return actionType, true
}
