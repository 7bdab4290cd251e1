// Package reduce computes new immutable states from a current state and an
// action, by dispatching on the action's runtime type to pure, strongly
// typed handlers.
//
// # Quick Start
//
// Define a state and the actions that change it:
//
//	type Profile struct {
//	    Name   string
//	    Age    int
//	    Active bool
//	}
//
//	type Rename struct{ Name string }
//	type Birthday struct{}
//
// Create a registry and register one handler per action type:
//
//	r := reduce.New[Profile]()
//
//	reduce.On(r, func(p Profile, a Rename) Profile {
//	    p.Name = a.Name
//	    return p
//	})
//	reduce.On(r, func(p Profile, _ Birthday) Profile {
//	    p.Age++
//	    return p
//	})
//
//	next, err := r.Reduce(current, Rename{Name: "ada"})
//
// Actions without a handler leave the state unchanged. A nil action is a
// usage error and fails with ErrInvalidArgument.
//
// # Design Philosophy
//
// The package separates three concerns:
//
//   - Handlers: pure functions func(S, A) S for one action type
//   - Registry: matches an action's type to its handler
//   - Structural: splits a composite state into fields with their own registries
//
// Handlers never see actions of the wrong type, never mutate their input
// and are trivial to test on their own.
//
// # Registering Handlers
//
// On registers a typed handler and is the preferred form. Register takes an
// explicit action type and an untyped Reducer. Scan discovers handlers on
// functions or on the exported methods of a value:
//
//	type names struct{}
//
//	func (names) OnRename(name string, a Rename) string { return a.Name }
//	func (names) OnReset(name string, _ Reset) string   { return "" }
//
//	r := reduce.New[string]().Scan(names{})
//
// Registrations for the same action type replace each other, so an On
// after a Scan overrides the scanned handler.
//
// # Structural Reducers
//
// A Structural reducer decomposes a composite state into its fields, binds
// each field to its own reducer and rebuilds the state only when a field
// actually changed:
//
//	s, err := reduce.NewStructural(reduce.StructShape[Profile]())
//	if err != nil {
//	    return err
//	}
//	_ = reduce.SetFieldReducer(s, "Name", reduce.New[string]().Scan(names{}))
//
// Unchanged fields are detected with Equal, so a handler returning an equal
// copy is still a no-op, and a no-op returns the very value it was given.
//
// The Shape given to NewStructural lists the state type's constructor and
// fields. StructShape derives them from a struct with reflection; a
// hand-written Shape needs none. NewStructural rejects a shape without
// exactly one constructor taking parameters (ErrInvalidConstructor), and a
// parameter with no field of the same name (ErrInvalidConstructorArgument).
// Both are returned as a *ShapeError.
//
// # Decoding Actions
//
// A Decoder turns JSON envelopes into typed actions so recorded action
// logs can be replayed with Fold:
//
//	d := reduce.NewDecoder()
//	reduce.RegisterAction[Rename](d, "rename")
//
//	action, err := d.Decode([]byte(`{"type": "rename", "payload": {"Name": "ada"}}`))
//
// Envelopes without a type key can be recognized with composable
// discriminators (HasFields, FieldEquals, And, Or, Not) and
// RegisterActionWhen.
//
// # Hooks
//
// The package never logs. Hooks provide observability without coupling to
// a specific logging or metrics system:
//
//	r := reduce.New[Profile](
//	    reduce.WithOnDefault(func(action any) {
//	        logger.Debug("unhandled action", "action", fmt.Sprintf("%T", action))
//	    }),
//	    reduce.WithOnError(func(action any, err error) {
//	        metrics.Incr("reduce.error")
//	    }),
//	)
//
// Package reducezap wires every hook to a zap logger.
//
// # Thread Safety
//
// Registry and Structural are safe for concurrent use after configuration
// is complete. Do not call On, Register, Scan, Fallback or SetFieldReducer
// after calling Reduce.
package reduce
