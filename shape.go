package reduce

import "reflect"

// Shape describes how a composite state type is read and rebuilt.
//
// A Structural reducer asks its Shape once, at construction, for the
// type's constructors and exported fields. StructShape derives both from a
// struct type with reflection; implement Shape directly to describe a type
// by hand without reflection:
//
//	type pointShape struct{}
//
//	func (pointShape) Constructors() []reduce.Constructor[Point] {
//	    return []reduce.Constructor[Point]{{
//	        Params: []reduce.Param{reduce.ParamOf[int]("x"), reduce.ParamOf[int]("y")},
//	        New: func(args []any) Point {
//	            return Point{X: args[0].(int), Y: args[1].(int)}
//	        },
//	    }}
//	}
//
//	func (pointShape) Fields() []reduce.Field[Point] {
//	    return []reduce.Field[Point]{
//	        reduce.FieldOf("X", func(p Point) int { return p.X }),
//	        reduce.FieldOf("Y", func(p Point) int { return p.Y }),
//	    }
//	}
type Shape[S any] interface {
	// Constructors returns every way to build S. A decomposable type has
	// exactly one, taking one or more parameters.
	Constructors() []Constructor[S]

	// Fields returns the readable fields of S.
	Fields() []Field[S]
}

// Param is a named constructor parameter.
type Param struct {
	Name string
	Type reflect.Type
}

// ParamOf returns a Param of type T.
func ParamOf[T any](name string) Param {
	return Param{Name: name, Type: reflect.TypeFor[T]()}
}

// Constructor builds an S from one argument per parameter, in order.
type Constructor[S any] struct {
	Params []Param

	// New is called with len(Params) arguments. Each argument is assignable
	// to the matching parameter's type, or nil for its zero value.
	New func(args []any) S
}

// Field reads one value out of an S.
type Field[S any] struct {
	Name string
	Type reflect.Type
	Get  func(state S) any
}

// FieldOf returns a Field of type F read by get.
func FieldOf[S, F any](name string, get func(state S) F) Field[S] {
	return Field[S]{
		Name: name,
		Type: reflect.TypeFor[F](),
		Get:  func(state S) any { return get(state) },
	}
}

// ShapeOption configures StructShape.
type ShapeOption func(*shapeOptions)

type shapeOptions struct {
	ctors []ctorFunc
}

type ctorFunc struct {
	fn     reflect.Value
	params []string
}

// WithConstructor declares fn as a constructor for the struct, with params
// naming its parameters in order. fn must be a func taking len(params)
// arguments and returning the struct type; anything else is not counted as
// a constructor.
//
// Declaring constructors replaces the struct literal default. Declaring
// more than one makes the shape ambiguous, which NewStructural rejects.
//
// Example:
//
//	reduce.StructShape[Profile](
//	    reduce.WithConstructor(NewProfile, "name", "age", "active"),
//	)
func WithConstructor(fn any, params ...string) ShapeOption {
	return func(o *shapeOptions) {
		o.ctors = append(o.ctors, ctorFunc{fn: reflect.ValueOf(fn), params: params})
	}
}

// StructShape returns a reflection-backed Shape for the struct type S.
//
// Its fields are the exported fields of S. Unless WithConstructor is given,
// its single constructor is the struct literal, taking every field in
// declaration order; structs with unexported fields have no literal
// constructor since they could not be rebuilt from their exported fields.
// Non-struct types have neither fields nor constructors.
func StructShape[S any](opts ...ShapeOption) Shape[S] {
	var o shapeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return structShape[S]{typ: reflect.TypeFor[S](), ctors: o.ctors}
}

type structShape[S any] struct {
	typ   reflect.Type
	ctors []ctorFunc
}

func (s structShape[S]) Fields() []Field[S] {
	if s.typ.Kind() != reflect.Struct {
		return nil
	}
	var fields []Field[S]
	for i := range s.typ.NumField() {
		sf := s.typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		fields = append(fields, Field[S]{
			Name: sf.Name,
			Type: sf.Type,
			Get: func(state S) any {
				return reflect.ValueOf(state).Field(i).Interface()
			},
		})
	}
	return fields
}

func (s structShape[S]) Constructors() []Constructor[S] {
	if len(s.ctors) == 0 {
		if ctor, ok := literalConstructor[S](s.typ); ok {
			return []Constructor[S]{ctor}
		}
		return nil
	}

	ctors := make([]Constructor[S], 0, len(s.ctors))
	for _, c := range s.ctors {
		if ctor, ok := funcConstructor[S](c, s.typ); ok {
			ctors = append(ctors, ctor)
		}
	}
	return ctors
}

// literalConstructor builds a struct by setting each field in turn.
func literalConstructor[S any](t reflect.Type) (Constructor[S], bool) {
	if t.Kind() != reflect.Struct {
		return Constructor[S]{}, false
	}

	params := make([]Param, 0, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			return Constructor[S]{}, false
		}
		params = append(params, Param{Name: sf.Name, Type: sf.Type})
	}

	return Constructor[S]{
		Params: params,
		New: func(args []any) S {
			v := reflect.New(t).Elem()
			for i, arg := range args {
				if arg != nil {
					v.Field(i).Set(reflect.ValueOf(arg))
				}
			}
			state, _ := v.Interface().(S)
			return state
		},
	}, true
}

// funcConstructor wraps a declared constructor function.
func funcConstructor[S any](c ctorFunc, t reflect.Type) (Constructor[S], bool) {
	if !c.fn.IsValid() || c.fn.Kind() != reflect.Func || c.fn.IsNil() {
		return Constructor[S]{}, false
	}
	ft := c.fn.Type()
	if ft.IsVariadic() || ft.NumIn() != len(c.params) || ft.NumOut() != 1 || ft.Out(0) != t {
		return Constructor[S]{}, false
	}

	params := make([]Param, len(c.params))
	for i, name := range c.params {
		params[i] = Param{Name: name, Type: ft.In(i)}
	}

	return Constructor[S]{
		Params: params,
		New: func(args []any) S {
			in := make([]reflect.Value, len(args))
			for i, arg := range args {
				if arg == nil {
					in[i] = reflect.Zero(ft.In(i))
					continue
				}
				in[i] = reflect.ValueOf(arg)
			}
			state, _ := c.fn.Call(in)[0].Interface().(S)
			return state
		},
	}, true
}
