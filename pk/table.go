// Package pk maps external document ids to dense internal uint32 ids.
//
// Index posting lists are roaring bitmaps over uint32, so every indexed
// document id is interned here once and shared by all indexes.
package pk

// Table is the bidirectional id mapping. It is not safe for concurrent use;
// docgo is a single-writer embedded library.
type Table struct {
	ids  map[string]uint32
	rev  []string
	free []uint32
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{ids: make(map[string]uint32)}
}

// Intern returns the internal id for an external id, assigning one if needed.
// Freed slots are reused before the table grows.
func (t *Table) Intern(id string) uint32 {
	if local, ok := t.ids[id]; ok {
		return local
	}
	var local uint32
	if n := len(t.free); n > 0 {
		local = t.free[n-1]
		t.free = t.free[:n-1]
		t.rev[local] = id
	} else {
		local = uint32(len(t.rev))
		t.rev = append(t.rev, id)
	}
	t.ids[id] = local
	return local
}

// Lookup returns the internal id for an external id.
func (t *Table) Lookup(id string) (uint32, bool) {
	local, ok := t.ids[id]
	return local, ok
}

// External returns the external id for an internal id.
func (t *Table) External(local uint32) (string, bool) {
	if int(local) >= len(t.rev) || t.rev[local] == "" {
		return "", false
	}
	return t.rev[local], true
}

// Release frees the mapping for an external id so its slot can be reused.
// Callers must first evict the internal id from every bitmap that holds it.
func (t *Table) Release(id string) {
	local, ok := t.ids[id]
	if !ok {
		return
	}
	delete(t.ids, id)
	t.rev[local] = ""
	t.free = append(t.free, local)
}

// Reset drops every mapping.
func (t *Table) Reset() {
	t.ids = make(map[string]uint32)
	t.rev = t.rev[:0]
	t.free = t.free[:0]
}

// Len returns the number of live mappings.
func (t *Table) Len() int {
	return len(t.ids)
}
