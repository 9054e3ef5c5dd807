package pk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableInternLookup(t *testing.T) {
	tbl := NewTable()

	a := tbl.Intern("doc-a")
	b := tbl.Intern("doc-b")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, tbl.Intern("doc-a"))

	local, ok := tbl.Lookup("doc-b")
	assert.True(t, ok)
	assert.Equal(t, b, local)

	ext, ok := tbl.External(a)
	assert.True(t, ok)
	assert.Equal(t, "doc-a", ext)

	_, ok = tbl.Lookup("missing")
	assert.False(t, ok)
	assert.Equal(t, 2, tbl.Len())
}

func TestTableReleaseReusesSlots(t *testing.T) {
	tbl := NewTable()
	a := tbl.Intern("doc-a")
	tbl.Intern("doc-b")

	tbl.Release("doc-a")
	_, ok := tbl.Lookup("doc-a")
	assert.False(t, ok)
	_, ok = tbl.External(a)
	assert.False(t, ok)

	c := tbl.Intern("doc-c")
	assert.Equal(t, a, c) // freed slot reused
	assert.Equal(t, 2, tbl.Len())

	tbl.Release("missing") // no-op
	assert.Equal(t, 2, tbl.Len())
}

func TestTableReset(t *testing.T) {
	tbl := NewTable()
	tbl.Intern("doc-a")
	tbl.Reset()
	assert.Equal(t, 0, tbl.Len())
	_, ok := tbl.Lookup("doc-a")
	assert.False(t, ok)
}
