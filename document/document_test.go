package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeneratesID(t *testing.T) {
	doc, err := New(MustObject(map[string]any{"a": 1}), "")
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.False(t, doc.UpdatedAt.Before(doc.CreatedAt))

	other, err := New(MustObject(map[string]any{"a": 1}), "")
	require.NoError(t, err)
	assert.NotEqual(t, doc.ID, other.ID)
}

func TestNewKeepsCallerID(t *testing.T) {
	doc, err := New(NewObject(), "custom-id")
	require.NoError(t, err)
	assert.Equal(t, "custom-id", doc.ID)
}

func TestNewRejectsNilContent(t *testing.T) {
	_, err := New(nil, "")
	require.ErrorIs(t, err, ErrInvalidContent)
}

func TestMergeIsShallow(t *testing.T) {
	doc, err := New(MustObject(map[string]any{
		"name":    "ann",
		"address": map[string]any{"city": "NYC", "zip": "10001"},
	}), "")
	require.NoError(t, err)

	doc.Merge(MustObject(map[string]any{
		"address": map[string]any{"city": "SF"},
		"age":     30,
	}))

	// Nested objects are replaced wholesale, not deep-merged.
	assert.Equal(t, String("SF"), doc.Resolve("address.city"))
	assert.True(t, doc.Resolve("address.zip").IsNull())
	assert.Equal(t, Int(30), doc.Resolve("age"))
	assert.Equal(t, String("ann"), doc.Resolve("name"))
}

func TestMergeDottedKeyIsLiteral(t *testing.T) {
	doc, err := New(MustObject(map[string]any{"a": map[string]any{"b": 0}}), "")
	require.NoError(t, err)

	patch := NewObject().Set("a.b", Int(1))
	doc.Merge(patch)

	// Patches never descend into nested objects: "a.b" is a literal key.
	v, ok := doc.Content.Get("a.b")
	assert.True(t, ok)
	assert.Equal(t, Int(1), v)
	assert.Equal(t, Int(0), doc.Resolve("a.b")) // path resolution still finds a -> b
}

func TestEmptyMergeBumpsUpdatedAt(t *testing.T) {
	doc, err := New(NewObject(), "")
	require.NoError(t, err)

	before := doc.UpdatedAt
	time.Sleep(time.Millisecond)
	doc.Merge(NewObject())
	assert.True(t, doc.UpdatedAt.After(before))
}

func TestDocumentEqualIgnoresTimestamps(t *testing.T) {
	a, err := New(MustObject(map[string]any{"x": 1}), "same")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	b, err := New(MustObject(map[string]any{"x": 1}), "same")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))

	b.Content.Set("x", Int(2))
	assert.False(t, a.Equal(b))
}

func TestNewClonesContent(t *testing.T) {
	content := MustObject(map[string]any{"x": 1})
	doc, err := New(content, "")
	require.NoError(t, err)

	content.Set("x", Int(99))
	assert.Equal(t, Int(1), doc.Resolve("x"))
}
