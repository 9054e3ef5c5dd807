package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/docgo/document"
)

func doc(t *testing.T, id string, content map[string]any) *document.Document {
	t.Helper()
	d, err := document.New(document.MustObject(content), id)
	require.NoError(t, err)
	return d
}

func TestManagerAddFindEqual(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.CreateIndex("city", false))

	require.NoError(t, m.AddDocument(doc(t, "a", map[string]any{"city": "NYC"})))
	require.NoError(t, m.AddDocument(doc(t, "b", map[string]any{"city": "SF"})))
	require.NoError(t, m.AddDocument(doc(t, "c", map[string]any{"city": "NYC"})))

	assert.Equal(t, []string{"a", "c"}, m.FindEqual("city", document.String("NYC")))
	assert.Equal(t, []string{"b"}, m.FindEqual("city", document.String("SF")))
	assert.Empty(t, m.FindEqual("city", document.String("LA")))
	assert.Empty(t, m.FindEqual("unindexed", document.String("NYC")))
}

func TestIndexEvictsOldValueOnReAdd(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.CreateIndex("city", false))

	require.NoError(t, m.AddDocument(doc(t, "a", map[string]any{"city": "NYC"})))
	require.NoError(t, m.AddDocument(doc(t, "a", map[string]any{"city": "SF"})))

	// Bijective partition: the id lives under exactly one value.
	assert.Empty(t, m.FindEqual("city", document.String("NYC")))
	assert.Equal(t, []string{"a"}, m.FindEqual("city", document.String("SF")))

	stats := m.Stats()["city"]
	assert.Equal(t, 1, stats.Documents)
	assert.Equal(t, 1, stats.DistinctValues)
}

func TestAbsentAndNullFieldsAreUnindexed(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.CreateIndex("email", false))

	require.NoError(t, m.AddDocument(doc(t, "a", map[string]any{"name": "no email"})))
	require.NoError(t, m.AddDocument(doc(t, "b", map[string]any{"email": nil})))

	assert.Equal(t, 0, m.Stats()["email"].Documents)
	assert.Empty(t, m.FindEqual("email", document.Null()))
}

func TestUniqueViolationLeavesNoPartialState(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.CreateIndex("email", true))
	require.NoError(t, m.CreateIndex("name", false))

	require.NoError(t, m.AddDocument(doc(t, "a", map[string]any{"email": "a@x.com", "name": "ann"})))

	err := m.AddDocument(doc(t, "b", map[string]any{"email": "a@x.com", "name": "bob"}))
	var uv *ErrUniqueViolation
	require.ErrorAs(t, err, &uv)
	assert.Equal(t, "email", uv.Path)

	// Neither index saw the rejected document.
	assert.Equal(t, []string{"a"}, m.FindEqual("email", document.String("a@x.com")))
	assert.Empty(t, m.FindEqual("name", document.String("bob")))
	assert.Equal(t, 1, m.Stats()["name"].Documents)
}

func TestUniqueReAddSameDocumentSameValue(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.CreateIndex("email", true))

	d := doc(t, "a", map[string]any{"email": "a@x.com"})
	require.NoError(t, m.AddDocument(d))
	require.NoError(t, m.AddDocument(d)) // same doc, same value: not a violation
	assert.Equal(t, []string{"a"}, m.FindEqual("email", document.String("a@x.com")))
}

func TestCompositeValuesAreUnindexable(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.CreateIndex("tags", false))

	// Arrays cannot serve as index keys; the document stays unindexed.
	require.NoError(t, m.AddDocument(doc(t, "a", map[string]any{"tags": []string{"x", "y"}})))
	assert.Equal(t, 0, m.Stats()["tags"].Documents)

	// A scalar update becomes indexable again.
	require.NoError(t, m.AddDocument(doc(t, "a", map[string]any{"tags": "x"})))
	assert.Equal(t, []string{"a"}, m.FindEqual("tags", document.String("x")))

	// And back to composite evicts the scalar posting.
	require.NoError(t, m.AddDocument(doc(t, "a", map[string]any{"tags": []string{"x"}})))
	assert.Empty(t, m.FindEqual("tags", document.String("x")))
}

func TestRemoveDocument(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.CreateIndex("city", false))
	require.NoError(t, m.AddDocument(doc(t, "a", map[string]any{"city": "NYC"})))

	m.RemoveDocument("a")
	assert.Empty(t, m.FindEqual("city", document.String("NYC")))
	assert.Equal(t, 0, m.Stats()["city"].Documents)

	m.RemoveDocument("missing") // no-op
}

func TestFindRange(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.CreateIndex("age", false))
	require.NoError(t, m.AddDocument(doc(t, "a", map[string]any{"age": 25})))
	require.NoError(t, m.AddDocument(doc(t, "b", map[string]any{"age": 30})))
	require.NoError(t, m.AddDocument(doc(t, "c", map[string]any{"age": 35})))

	min := document.Int(26)
	max := document.Int(35)
	assert.Equal(t, []string{"b", "c"}, m.FindRange("age", &min, &max))
	assert.Equal(t, []string{"b", "c"}, m.FindRange("age", &min, nil))
	assert.Equal(t, []string{"a", "b"}, func() []string {
		hi := document.Int(30)
		return m.FindRange("age", nil, &hi)
	}())
	assert.Equal(t, []string{"a", "b", "c"}, m.FindRange("age", nil, nil))
	assert.Empty(t, m.FindRange("unindexed", nil, nil))
}

func TestFindEqualNumericCanonicalization(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.CreateIndex("age", false))
	require.NoError(t, m.AddDocument(doc(t, "a", map[string]any{"age": 25})))

	assert.Equal(t, []string{"a"}, m.FindEqual("age", document.Float(25.0)))
}

func TestRebuild(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.CreateIndex("city", false))
	require.NoError(t, m.AddDocument(doc(t, "stale", map[string]any{"city": "OLD"})))

	docs := []*document.Document{
		doc(t, "a", map[string]any{"city": "NYC"}),
		doc(t, "b", map[string]any{"city": "SF"}),
	}
	require.NoError(t, m.Rebuild(docs))

	assert.Empty(t, m.FindEqual("city", document.String("OLD")))
	assert.Equal(t, []string{"a"}, m.FindEqual("city", document.String("NYC")))
	assert.Equal(t, 2, m.Stats()["city"].Documents)
}

func TestCreateDropIndex(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.CreateIndex("city", false))

	err := m.CreateIndex("city", true)
	var exists *ErrIndexExists
	require.ErrorAs(t, err, &exists)

	assert.Equal(t, []string{"city"}, m.Paths())
	m.DropIndex("city")
	m.DropIndex("city") // no-op
	assert.False(t, m.Has("city"))
	assert.Empty(t, m.Paths())
}

func TestStats(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.CreateIndex("city", false))
	require.NoError(t, m.AddDocument(doc(t, "a", map[string]any{"city": "NYC"})))
	require.NoError(t, m.AddDocument(doc(t, "b", map[string]any{"city": "NYC"})))
	require.NoError(t, m.AddDocument(doc(t, "c", map[string]any{"city": "SF"})))

	s := m.Stats()["city"]
	assert.Equal(t, "city", s.Path)
	assert.False(t, s.Unique)
	assert.Equal(t, 3, s.Documents)
	assert.Equal(t, 2, s.DistinctValues)
	assert.InDelta(t, 1.5, s.AvgDocsPerValue, 1e-9)
}
