package document

import "iter"

// Object is a string→Value mapping with unique keys and stable insertion
// order. It is the shape of every document's content and every predicate.
//
// The zero value is not usable; construct with NewObject.
type Object struct {
	keys []string
	m    map[string]Value
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{m: make(map[string]Value)}
}

// Set stores a value under key. Setting an existing key keeps its original
// position; a new key is appended.
func (o *Object) Set(key string, v Value) *Object {
	if _, ok := o.m[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.m[key] = v
	return o
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	v, ok := o.m[key]
	return v, ok
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	if o == nil {
		return false
	}
	if _, ok := o.m[key]; !ok {
		return false
	}
	delete(o.m, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// All iterates entries in insertion order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if o == nil {
			return
		}
		for _, k := range o.keys {
			if !yield(k, o.m[k]) {
				return
			}
		}
	}
}

// Clone creates a deep copy of the object.
//
// This is the safe default to prevent shared mutable aliasing: every read
// reconstructs a fresh tree, every write stores its own copy.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	clone := &Object{
		keys: make([]string, len(o.keys)),
		m:    make(map[string]Value, len(o.m)),
	}
	copy(clone.keys, o.keys)
	for k, v := range o.m {
		clone.m[k] = v.Clone()
	}
	return clone
}

// Equal compares two objects structurally, ignoring insertion order.
func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	if o == nil || other == nil {
		return o.Len() == other.Len()
	}
	for k, v := range o.m {
		ov, ok := other.m[k]
		if !ok || !Equal(v, ov) {
			return false
		}
	}
	return true
}
