package reduce

import "fmt"

// Fold reduces state with each action in turn, replaying an action log into
// the state it produces.
//
// Fold stops at the first failing action and returns the state reached
// before it, together with the error wrapped with the action's position.
//
// Example:
//
//	final, err := reduce.Fold(r, Profile{}, Rename{Name: "ada"}, Birthday{})
func Fold[S any](r Reducer[S], state S, actions ...any) (S, error) {
	for i, action := range actions {
		next, err := r.Reduce(state, action)
		if err != nil {
			return state, fmt.Errorf("action %d (%T): %w", i, action, err)
		}
		state = next
	}
	return state, nil
}
