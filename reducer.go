package reduce

import "reflect"

// Reducer computes the next state from the current state and an action.
//
// Implementations must be pure: they never mutate state or action, and
// return either the state they were given or a new value.
//
// Example:
//
//	type counter struct{}
//
//	func (counter) Reduce(n int, action any) (int, error) {
//	    if _, ok := action.(Increment); ok {
//	        return n + 1, nil
//	    }
//	    return n, nil
//	}
type Reducer[S any] interface {
	Reduce(state S, action any) (S, error)
}

// ReducerFunc is a function adapter for Reducer. Use for simple reducers
// that don't need a struct:
//
//	r.Fallback(reduce.ReducerFunc[State](func(s State, action any) (State, error) {
//	    return s, nil
//	}))
type ReducerFunc[S any] func(state S, action any) (S, error)

// Reduce implements the Reducer interface.
func (f ReducerFunc[S]) Reduce(state S, action any) (S, error) {
	return f(state, action)
}

// Identity returns a Reducer that always returns the state it was given.
func Identity[S any]() Reducer[S] {
	return identity[S]{}
}

type identity[S any] struct{}

func (identity[S]) Reduce(state S, _ any) (S, error) { return state, nil }

// Handler is a pure, strongly typed reducer for a single action type.
//
// Example:
//
//	func rename(p Profile, a Rename) Profile {
//	    p.Name = a.Name
//	    return p
//	}
type Handler[S, A any] func(state S, action A) S

// Adapt wraps a typed handler in a Reducer that accepts untyped actions.
//
// The returned Reducer expects to be dispatched only actions of type A, but
// still rejects anything else with ErrTypeMismatch.
func Adapt[S, A any](fn Handler[S, A]) Reducer[S] {
	return adapter[S, A]{fn: fn}
}

// adapter binds one handler to one action type.
type adapter[S, A any] struct {
	fn Handler[S, A]
}

func (h adapter[S, A]) Reduce(state S, action any) (S, error) {
	a, ok := action.(A)
	if !ok {
		var zero S
		return zero, typeMismatch(reflect.TypeFor[A](), action)
	}
	return h.fn(state, a), nil
}

// methodAdapter binds a handler discovered by Scan, which can only be
// invoked through reflection.
type methodAdapter[S any] struct {
	fn         reflect.Value
	actionType reflect.Type
}

func (h methodAdapter[S]) Reduce(state S, action any) (S, error) {
	if reflect.TypeOf(action) != h.actionType {
		var zero S
		return zero, typeMismatch(h.actionType, action)
	}
	out := h.fn.Call([]reflect.Value{reflect.ValueOf(&state).Elem(), reflect.ValueOf(action)})
	next, _ := out[0].Interface().(S)
	return next, nil
}
