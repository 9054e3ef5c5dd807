package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{name: "null equals null", a: Null(), b: Null(), want: true},
		{name: "null vs value", a: Null(), b: Int(1), want: false},
		{name: "int equals int", a: Int(5), b: Int(5), want: true},
		{name: "int equals float", a: Int(1), b: Float(1.0), want: true},
		{name: "float mismatch", a: Float(1.5), b: Int(1), want: false},
		{name: "string match", a: String("a"), b: String("a"), want: true},
		{name: "string vs int", a: String("1"), b: Int(1), want: false},
		{name: "bool", a: Bool(true), b: Bool(true), want: true},
		{name: "array elementwise", a: Array(Int(1), String("x")), b: Array(Int(1), String("x")), want: true},
		{name: "array length mismatch", a: Array(Int(1)), b: Array(Int(1), Int(2)), want: false},
		{
			name: "object ignores insertion order",
			a:    ObjectValue(NewObject().Set("a", Int(1)).Set("b", Int(2))),
			b:    ObjectValue(NewObject().Set("b", Int(2)).Set("a", Int(1))),
			want: true,
		},
		{
			name: "object value mismatch",
			a:    ObjectValue(NewObject().Set("a", Int(1))),
			b:    ObjectValue(NewObject().Set("a", Int(2))),
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want int
	}{
		{name: "int less", a: Int(1), b: Int(2), want: -1},
		{name: "int greater", a: Int(3), b: Int(2), want: 1},
		{name: "int float mixed", a: Int(2), b: Float(2.5), want: -1},
		{name: "strings lexicographic", a: String("apple"), b: String("banana"), want: -1},
		{name: "bools", a: Bool(false), b: Bool(true), want: -1},
		// Mismatched types are incomparable and compare as equal.
		{name: "string vs int incomparable", a: String("10"), b: Int(2), want: 0},
		{name: "null incomparable", a: Null(), b: Int(2), want: 0},
		{name: "array incomparable", a: Array(Int(1)), b: Array(Int(1)), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
		})
	}
}

func TestValueKeyNumericCanonicalization(t *testing.T) {
	assert.Equal(t, Int(1).Key(), Float(1.0).Key())
	assert.NotEqual(t, Int(1).Key(), Float(1.5).Key())
	assert.NotEqual(t, String("1").Key(), Int(1).Key())
	assert.NotEqual(t, Bool(true).Key(), Int(1).Key())
}

func TestJSONRoundTripPreservesOrder(t *testing.T) {
	in := []byte(`{"z":1,"a":{"nested":[1,2.5,"x",null,true]},"m":"v"}`)

	obj, err := ObjectFromJSON(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, obj.Keys())

	out, err := obj.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, string(in), string(out))

	// Byte-identical key order on re-encode.
	again, err := ObjectFromJSON(out)
	require.NoError(t, err)
	assert.Equal(t, obj.Keys(), again.Keys())
}

func TestJSONNumberKinds(t *testing.T) {
	obj, err := ObjectFromJSON([]byte(`{"i":42,"f":4.5,"e":1e3,"big":9223372036854775807}`))
	require.NoError(t, err)

	i, _ := obj.Get("i")
	assert.Equal(t, KindInt, i.Kind)
	f, _ := obj.Get("f")
	assert.Equal(t, KindFloat, f.Kind)
	e, _ := obj.Get("e")
	assert.Equal(t, KindFloat, e.Kind)
	big, _ := obj.Get("big")
	assert.Equal(t, Int(9223372036854775807), big)
}

func TestObjectFromJSONRejectsNonObject(t *testing.T) {
	_, err := ObjectFromJSON([]byte(`[1,2,3]`))
	require.ErrorIs(t, err, ErrNotObject)
}

func TestResolve(t *testing.T) {
	obj := MustObject(map[string]any{
		"user": map[string]any{
			"profile": map[string]any{"age": 30},
			"name":    "ann",
		},
		"tags": []string{"a", "b"},
	})

	assert.Equal(t, Int(30), Resolve(obj, "user.profile.age"))
	assert.Equal(t, String("ann"), Resolve(obj, "user.name"))
	assert.True(t, Resolve(obj, "user.missing").IsNull())
	assert.True(t, Resolve(obj, "user.name.deeper").IsNull())
	assert.True(t, Resolve(obj, "absent").IsNull())

	_, ok := ResolveOK(obj, "user.missing")
	assert.False(t, ok)
	_, ok = ResolveOK(obj, "user.name")
	assert.True(t, ok)
}

func TestFromAnyUnsupported(t *testing.T) {
	_, err := FromAny(struct{}{})
	require.Error(t, err)
}

func TestCloneIsDeep(t *testing.T) {
	obj := MustObject(map[string]any{"nested": map[string]any{"k": 1}})
	clone := obj.Clone()

	nested, _ := clone.Get("nested")
	nested.O.Set("k", Int(99))

	orig := Resolve(obj, "nested.k")
	assert.Equal(t, Int(1), orig)
}
