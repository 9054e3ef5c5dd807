package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/docgo/document"
)

func docs(t *testing.T, contents ...string) []*document.Document {
	t.Helper()
	out := make([]*document.Document, len(contents))
	for i, c := range contents {
		doc, err := document.New(obj(t, c), "")
		require.NoError(t, err)
		out[i] = doc
	}
	return out
}

func ages(ds []*document.Document) []int64 {
	out := make([]int64, len(ds))
	for i, d := range ds {
		v, _ := d.Resolve("age").AsInt64()
		out[i] = v
	}
	return out
}

func TestFilterPreservesOrder(t *testing.T) {
	ds := docs(t, `{"age": 25}`, `{"age": 30}`, `{"age": 35}`)
	got := Filter(ds, obj(t, `{"age": {"$gte": 30}}`))
	assert.Equal(t, []int64{30, 35}, ages(got))
}

func TestSort(t *testing.T) {
	ds := docs(t, `{"age": 30}`, `{"age": 25}`, `{"age": 35}`)

	asc := Sort(ds, []SortField{{Path: "age"}})
	assert.Equal(t, []int64{25, 30, 35}, ages(asc))

	desc := Sort(ds, []SortField{{Path: "age", Desc: true}})
	assert.Equal(t, []int64{35, 30, 25}, ages(desc))

	// Input order untouched.
	assert.Equal(t, []int64{30, 25, 35}, ages(ds))
}

func TestSortMissingFieldSortsFirst(t *testing.T) {
	ds := docs(t, `{"age": 30}`, `{"name": "noage"}`, `{"age": 25}`)

	asc := Sort(ds, []SortField{{Path: "age"}})
	assert.True(t, asc[0].Resolve("age").IsNull())
	assert.Equal(t, []int64{0, 25, 30}, ages(asc))

	desc := Sort(ds, []SortField{{Path: "age", Desc: true}})
	assert.True(t, desc[0].Resolve("age").IsNull())
	assert.Equal(t, []int64{0, 30, 25}, ages(desc))
}

func TestSortMultiKey(t *testing.T) {
	ds := docs(t,
		`{"city": "NYC", "age": 30}`,
		`{"city": "SF", "age": 25}`,
		`{"city": "NYC", "age": 25}`,
	)
	got := Sort(ds, []SortField{{Path: "city"}, {Path: "age", Desc: true}})
	assert.Equal(t, "NYC", str(got[0], "city"))
	assert.Equal(t, []int64{30, 25, 25}, ages(got))
}

func str(d *document.Document, path string) string {
	s, _ := d.Resolve(path).AsString()
	return s
}

func TestSkipLimit(t *testing.T) {
	ds := docs(t, `{"age": 1}`, `{"age": 2}`, `{"age": 3}`)

	assert.Equal(t, []int64{2, 3}, ages(Skip(ds, 1)))
	assert.Empty(t, Skip(ds, 5))
	assert.Equal(t, ds, Skip(ds, 0))

	assert.Equal(t, []int64{1, 2}, ages(Limit(ds, 2)))
	assert.Equal(t, ds, Limit(ds, 10))
	assert.Empty(t, Limit(ds, 0))
}

func TestProject(t *testing.T) {
	ds := docs(t, `{"name": "ann", "profile": {"age": 30}, "nil": null}`)

	full := Project(ds, nil)
	require.Len(t, full, 1)
	assert.Equal(t, []string{"name", "profile", "nil"}, full[0].Keys())

	partial := Project(ds, []string{"name", "profile.age", "missing", "nil"})
	require.Len(t, partial, 1)
	// Dotted paths stay literal keys; absent and null paths are omitted.
	assert.Equal(t, []string{"name", "profile.age"}, partial[0].Keys())
	v, _ := partial[0].Get("profile.age")
	assert.Equal(t, document.Int(30), v)
}
