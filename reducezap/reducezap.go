// Package reducezap logs reductions with zap.
//
// The reduce package never logs on its own; Options wires every reduce hook
// to a *zap.Logger instead:
//
//	r := reduce.New[Profile](reducezap.Options(logger)...)
package reducezap

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/bjaus/reduce"
)

// Action returns a field naming the action's type.
func Action(action any) zap.Field {
	return zap.String("action", fmt.Sprintf("%T", action))
}

// Field returns a field naming a state field.
func Field(name string) zap.Field {
	return zap.String("field", name)
}

// Options returns reduce options that log to logger. Routine steps are
// logged at debug level and failures at warn level. A nil logger logs
// nothing.
func Options(logger *zap.Logger) []reduce.Option {
	if logger == nil {
		logger = zap.NewNop()
	}
	return []reduce.Option{
		reduce.WithOnDispatch(func(action any) {
			logger.Debug("dispatching action", Action(action))
		}),
		reduce.WithOnDefault(func(action any) {
			logger.Debug("no handler for action", Action(action))
		}),
		reduce.WithOnFieldChange(func(field string, action any) {
			logger.Debug("field changed", Action(action), Field(field))
		}),
		reduce.WithOnRebuild(func(changed []string, action any) {
			logger.Debug("state rebuilt", Action(action), zap.Strings("fields", changed))
		}),
		reduce.WithOnError(func(action any, err error) {
			logger.Warn("reduce failed", Action(action), zap.Error(err))
		}),
	}
}
