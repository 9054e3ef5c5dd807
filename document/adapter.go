package document

import "fmt"

// FromAny converts a Go value into a typed Value.
//
// This exists as an adapter layer for user input: the engine itself only ever
// pattern-matches over the Value union.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case *Object:
		return ObjectValue(x), nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case float64:
		return Float(x), nil
	case float32:
		return Float(float64(x)), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Int(int64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		if x > uint64(1)<<63-1 {
			// Avoid silently truncating large values.
			return Value{}, fmt.Errorf("uint64 out of range: %d", x)
		}
		return Int(int64(x)), nil
	case map[string]any:
		obj, err := ObjectFromAny(x)
		if err != nil {
			return Value{}, err
		}
		return ObjectValue(obj), nil
	case []Value:
		return Array(x...), nil
	case []any:
		arr := make([]Value, len(x))
		for i := range x {
			vv, err := FromAny(x[i])
			if err != nil {
				return Value{}, err
			}
			arr[i] = vv
		}
		return Array(arr...), nil
	case []string:
		arr := make([]Value, len(x))
		for i := range x {
			arr[i] = String(x[i])
		}
		return Array(arr...), nil
	case []int:
		arr := make([]Value, len(x))
		for i := range x {
			arr[i] = Int(int64(x[i]))
		}
		return Array(arr...), nil
	case []float64:
		arr := make([]Value, len(x))
		for i := range x {
			arr[i] = Float(x[i])
		}
		return Array(arr...), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", v)
	}
}

// ObjectFromAny converts a map[string]any into a typed Object.
//
// Go map iteration order is random, so key order is not meaningful for
// objects built through this adapter. Use ObjectFromJSON or build the Object
// directly when order matters.
func ObjectFromAny(m map[string]any) (*Object, error) {
	obj := NewObject()
	for k, v := range m {
		vv, err := FromAny(v)
		if err != nil {
			return nil, err
		}
		obj.Set(k, vv)
	}
	return obj, nil
}

// MustObject is ObjectFromAny that panics on unsupported value types.
// Intended for literals in tests and examples.
func MustObject(m map[string]any) *Object {
	obj, err := ObjectFromAny(m)
	if err != nil {
		panic(err)
	}
	return obj
}

// ToAny converts a Value back to plain Go types (map[string]any, []any,
// scalars). Useful at output boundaries that speak encoding-agnostic Go.
func ToAny(v Value) any {
	switch v.Kind {
	case KindBool:
		return v.B
	case KindInt:
		return v.I64
	case KindFloat:
		return v.F64
	case KindString:
		return v.S
	case KindArray:
		arr := make([]any, len(v.A))
		for i := range v.A {
			arr[i] = ToAny(v.A[i])
		}
		return arr
	case KindObject:
		m := make(map[string]any, v.O.Len())
		for k, ev := range v.O.All() {
			m[k] = ToAny(ev)
		}
		return m
	default:
		return nil
	}
}
