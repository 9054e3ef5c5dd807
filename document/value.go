package document

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindNull represents a null value.
	KindNull
	// KindBool represents a boolean value.
	KindBool
	// KindInt represents an integer value.
	KindInt
	// KindFloat represents a float value.
	KindFloat
	// KindString represents a string value.
	KindString
	// KindArray represents an array value.
	KindArray
	// KindObject represents a nested object value.
	KindObject
)

// Value is the dynamically-shaped tree every document's content and every
// predicate is expressed in.
//
// The representation is designed to make matching fast and predictable:
// no reflection and no fmt-based stringification.
type Value struct {
	Kind Kind
	I64  int64
	F64  float64
	S    string
	B    bool
	A    []Value
	O    *Object
}

// Null returns a null Value.
func Null() Value { return Value{Kind: KindNull} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{Kind: KindBool, B: v} }

// Int returns an int64 Value.
func Int(v int64) Value { return Value{Kind: KindInt, I64: v} }

// Float returns a float64 Value.
func Float(v float64) Value { return Value{Kind: KindFloat, F64: v} }

// String returns a string Value.
func String(v string) Value { return Value{Kind: KindString, S: v} }

// Array returns an array Value.
func Array(v ...Value) Value { return Value{Kind: KindArray, A: v} }

// ObjectValue returns an object Value.
func ObjectValue(o *Object) Value { return Value{Kind: KindObject, O: o} }

// IsNull reports whether the value is null (or invalid).
func (v Value) IsNull() bool { return v.Kind == KindNull || v.Kind == KindInvalid }

// IsNumber reports whether the value is an int or a float.
func (v Value) IsNumber() bool { return v.Kind == KindInt || v.Kind == KindFloat }

// AsBool returns the boolean value if Kind is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.B, true
}

// AsInt64 returns the int64 value if Kind is KindInt.
func (v Value) AsInt64() (int64, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	return v.I64, true
}

// AsFloat64 returns the numeric value as a float64 for KindInt and KindFloat.
func (v Value) AsFloat64() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.I64), true
	case KindFloat:
		return v.F64, true
	default:
		return 0, false
	}
}

// AsString returns the string value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.S, true
}

// AsArray returns the array value if Kind is KindArray.
func (v Value) AsArray() ([]Value, bool) {
	if v.Kind != KindArray {
		return nil, false
	}
	return v.A, true
}

// AsObject returns the object value if Kind is KindObject.
func (v Value) AsObject() (*Object, bool) {
	if v.Kind != KindObject {
		return nil, false
	}
	return v.O, true
}

// Key returns a stable string representation for use as an index posting key.
//
// Numeric kinds are canonicalized so Int(1) and Float(1.0) share a key; the
// query layer treats them as equal, so the index must as well. It must remain
// stable across versions for any persisted usage.
func (v Value) Key() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.B {
			return "b:1"
		}
		return "b:0"
	case KindInt:
		return "n:" + strconv.FormatInt(v.I64, 10)
	case KindFloat:
		if f := v.F64; f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			return "n:" + strconv.FormatInt(int64(f), 10)
		}
		return "n:" + strconv.FormatFloat(v.F64, 'g', -1, 64)
	case KindString:
		return "s:" + v.S
	case KindArray:
		parts := make([]string, len(v.A))
		for i := range v.A {
			parts[i] = v.A[i].Key()
		}
		return "a:" + strings.Join(parts, "\x1f")
	case KindObject:
		keys := v.O.Keys()
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			ev, _ := v.O.Get(k)
			parts[i] = k + "=" + ev.Key()
		}
		return "o:" + strings.Join(parts, "\x1f")
	default:
		return "invalid"
	}
}

// Equal compares two values structurally.
//
// Ints and floats compare numerically across kinds. Object comparison ignores
// insertion order. Null equals null.
func Equal(a, b Value) bool {
	if a.IsNull() && b.IsNull() {
		return true
	}
	if a.IsNull() || b.IsNull() {
		return false
	}

	if a.IsNumber() && b.IsNumber() {
		if a.Kind == KindInt && b.Kind == KindInt {
			return a.I64 == b.I64
		}
		af, _ := a.AsFloat64()
		bf, _ := b.AsFloat64()
		return af == bf
	}

	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case KindBool:
		return a.B == b.B
	case KindString:
		return a.S == b.S
	case KindArray:
		if len(a.A) != len(b.A) {
			return false
		}
		for i := range a.A {
			if !Equal(a.A[i], b.A[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return a.O.Equal(b.O)
	default:
		return false
	}
}

// Compare orders two values: numbers numerically, strings lexicographically,
// booleans false before true. Every other pairing is incomparable and
// compares as equal — this mirrors the store's documented ordering fallback,
// which makes $gt/$lt false and $gte/$lte true for mismatched types.
func Compare(a, b Value) int {
	if a.IsNumber() && b.IsNumber() {
		if a.Kind == KindInt && b.Kind == KindInt {
			switch {
			case a.I64 < b.I64:
				return -1
			case a.I64 > b.I64:
				return 1
			default:
				return 0
			}
		}
		af, _ := a.AsFloat64()
		bf, _ := b.AsFloat64()
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	if a.Kind == KindString && b.Kind == KindString {
		return strings.Compare(a.S, b.S)
	}
	if a.Kind == KindBool && b.Kind == KindBool {
		switch {
		case !a.B && b.B:
			return -1
		case a.B && !b.B:
			return 1
		default:
			return 0
		}
	}
	return 0
}

// Clone creates a deep copy of the value, including nested arrays and objects.
func (v Value) Clone() Value {
	switch v.Kind {
	case KindArray:
		if len(v.A) == 0 {
			return v
		}
		a := make([]Value, len(v.A))
		for i := range v.A {
			a[i] = v.A[i].Clone()
		}
		return Value{Kind: KindArray, A: a}
	case KindObject:
		return Value{Kind: KindObject, O: v.O.Clone()}
	default:
		// Scalars are copied by value semantics.
		return v
	}
}
