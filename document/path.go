package document

import "strings"

// Resolve descends obj along a dot-separated field path ("a.b.c") key by key.
//
// A missing key or a non-object intermediate yields null. Callers that need
// to distinguish "absent" from an explicit null can use ResolveOK.
func Resolve(obj *Object, path string) Value {
	v, _ := ResolveOK(obj, path)
	return v
}

// ResolveOK is Resolve with an explicit presence flag.
func ResolveOK(obj *Object, path string) (Value, bool) {
	cur := obj
	keys := strings.Split(path, ".")
	for i, key := range keys {
		v, ok := cur.Get(key)
		if !ok {
			return Null(), false
		}
		if i == len(keys)-1 {
			return v, true
		}
		next, ok := v.AsObject()
		if !ok {
			return Null(), false
		}
		cur = next
	}
	return Null(), false
}
