package reduce

import (
	"math"
	"math/cmplx"
	"reflect"
)

var boolType = reflect.TypeFor[bool]()

// Equal reports whether a and b hold the same value.
//
// Values of different dynamic types are never equal. A type that declares
// an Equal method taking its own type and returning bool (time.Time, for
// example) is compared with that method. Everything else falls back to
// reflect.DeepEqual, so two distinct instances with identical contents are
// equal. Floating-point and complex NaNs are equal to each other.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if m, ok := ta.MethodByName("Equal"); ok && isEqualMethod(m.Type, ta) && !isNilPointer(va) && !isNilPointer(vb) {
		return m.Func.Call([]reflect.Value{va, vb})[0].Bool()
	}

	switch va.Kind() {
	case reflect.Float32, reflect.Float64:
		x, y := va.Float(), vb.Float()
		return x == y || (math.IsNaN(x) && math.IsNaN(y))
	case reflect.Complex64, reflect.Complex128:
		x, y := va.Complex(), vb.Complex()
		return x == y || (cmplx.IsNaN(x) && cmplx.IsNaN(y))
	}

	return reflect.DeepEqual(a, b)
}

// isEqualMethod reports whether fn is the method expression func(T, T) bool.
func isEqualMethod(fn, t reflect.Type) bool {
	return fn.NumIn() == 2 &&
		fn.In(1) == t &&
		fn.NumOut() == 1 &&
		fn.Out(0) == boolType
}

func isNilPointer(v reflect.Value) bool {
	return v.Kind() == reflect.Pointer && v.IsNil()
}
