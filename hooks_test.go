package reduce

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/suite"
)

type HooksSuite struct {
	suite.Suite
}

func TestHooksSuite(t *testing.T) {
	suite.Run(t, new(HooksSuite))
}

func (s *HooksSuite) TestOnDispatchCalledForMatchedHandler() {
	var order []string

	r := New[int](
		WithOnDispatch(func(action any) { order = append(order, "first") }),
		WithOnDispatch(func(action any) { order = append(order, "second") }),
		WithOnDefault(func(action any) { order = append(order, "default") }),
	)
	On(r, func(n int, _ testAction1) int {
		order = append(order, "handler")
		return n
	})

	_, err := r.Reduce(0, testAction1{})

	s.NoError(err)
	s.Assert().Equal([]string{"first", "second", "handler"}, order)
}

func (s *HooksSuite) TestOnDefaultCalledWithoutHandler() {
	var seen []any

	r := New[int](WithOnDefault(func(action any) { seen = append(seen, action) }))

	_, err := r.Reduce(0, testAction2{})

	s.NoError(err)
	s.Assert().Equal([]any{testAction2{}}, seen)
}

func (s *HooksSuite) TestOnErrorCalledOnFailure() {
	wantErr := errors.New("boom")
	var errs []error

	r := New[int](WithOnError(func(action any, err error) { errs = append(errs, err) }))
	r.Register(reflect.TypeFor[testAction1](), ReducerFunc[int](func(int, any) (int, error) {
		return 0, wantErr
	}))

	_, err := r.Reduce(0, testAction1{})
	s.Error(err)
	_, err = r.Reduce(0, nil)
	s.Error(err)

	s.Require().Len(errs, 2)
	s.Assert().ErrorIs(errs[0], wantErr)
	s.Assert().ErrorIs(errs[1], ErrInvalidArgument)
}

func (s *HooksSuite) TestStructuralHooksIgnoredByRegistry() {
	called := false

	r := New[int](
		WithOnFieldChange(func(string, any) { called = true }),
		WithOnRebuild(func([]string, any) { called = true }),
	)
	On(r, func(n int, _ testAction1) int { return n + 1 })

	_, err := r.Reduce(0, testAction1{})

	s.NoError(err)
	s.Assert().False(called)
}
