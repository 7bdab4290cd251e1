package reduce

// OnDispatchFunc is called just before a registered handler runs.
type OnDispatchFunc func(action any)

// OnDefaultFunc is called when no handler is registered for the action's
// type and the default behavior runs instead.
type OnDefaultFunc func(action any)

// OnFieldChangeFunc is called when a Structural reducer detects that a
// field's value changed.
type OnFieldChangeFunc func(field string, action any)

// OnRebuildFunc is called after a Structural reducer rebuilt its state.
// changed lists the fields that changed, in constructor order.
type OnRebuildFunc func(changed []string, action any)

// OnErrorFunc is called when a Reduce call fails.
type OnErrorFunc func(action any, err error)

// hooks holds all configured hook functions.
type hooks struct {
	onDispatch    []OnDispatchFunc
	onDefault     []OnDefaultFunc
	onFieldChange []OnFieldChangeFunc
	onRebuild     []OnRebuildFunc
	onError       []OnErrorFunc
}

// Option configures hook behavior.
type Option func(*hooks)

// WithOnDispatch adds a hook called just before a registered handler runs.
// Multiple hooks are called in order.
//
// Example:
//
//	reduce.WithOnDispatch(func(action any) {
//	    metrics.Incr("reduce.dispatch", fmt.Sprintf("action:%T", action))
//	})
func WithOnDispatch(fn OnDispatchFunc) Option {
	return func(h *hooks) {
		h.onDispatch = append(h.onDispatch, fn)
	}
}

// WithOnDefault adds a hook called when no handler matches the action.
// Multiple hooks are called in order.
//
// Example:
//
//	reduce.WithOnDefault(func(action any) {
//	    logger.Debug("unhandled action", "action", fmt.Sprintf("%T", action))
//	})
func WithOnDefault(fn OnDefaultFunc) Option {
	return func(h *hooks) {
		h.onDefault = append(h.onDefault, fn)
	}
}

// WithOnFieldChange adds a hook called for every field a Structural reducer
// sees change. Ignored by a plain Registry.
func WithOnFieldChange(fn OnFieldChangeFunc) Option {
	return func(h *hooks) {
		h.onFieldChange = append(h.onFieldChange, fn)
	}
}

// WithOnRebuild adds a hook called after a Structural reducer constructs a
// new state. Ignored by a plain Registry.
//
// Example:
//
//	reduce.WithOnRebuild(func(changed []string, action any) {
//	    logger.Debug("state rebuilt", "fields", changed)
//	})
func WithOnRebuild(fn OnRebuildFunc) Option {
	return func(h *hooks) {
		h.onRebuild = append(h.onRebuild, fn)
	}
}

// WithOnError adds a hook called when Reduce returns an error.
// Multiple hooks are called in order.
func WithOnError(fn OnErrorFunc) Option {
	return func(h *hooks) {
		h.onError = append(h.onError, fn)
	}
}
