// Package index maintains per-field secondary indexes: multimaps from field
// values to document id sets, with optional uniqueness enforcement.
//
// Posting lists are roaring bitmaps over interned internal ids (package pk),
// mirroring the layout of an inverted index rather than per-id slices.
package index

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/docgo/document"
	"github.com/hupe1980/docgo/pk"
)

// Index accelerates lookups on one dotted field path.
//
// Invariants: every indexed id maps to exactly one value key, and that key's
// posting bitmap contains the id (bijective partition). Unique indexes hold
// at most one id per value. Documents whose field resolves to null or is
// absent are not present at all — absent is unindexed, not indexed-as-null.
type Index struct {
	path   string
	unique bool
	table  *pk.Table

	postings map[string]*roaring.Bitmap   // value key -> internal ids
	values   map[string]document.Value    // value key -> representative value
	byID     map[uint32]document.Value    // internal id -> indexed value
}

func newIndex(path string, unique bool, table *pk.Table) *Index {
	return &Index{
		path:     path,
		unique:   unique,
		table:    table,
		postings: make(map[string]*roaring.Bitmap),
		values:   make(map[string]document.Value),
		byID:     make(map[uint32]document.Value),
	}
}

// Path returns the indexed field path.
func (ix *Index) Path() string { return ix.path }

// Unique reports whether the index enforces uniqueness.
func (ix *Index) Unique() bool { return ix.unique }

// Check reports whether Add would succeed for the document, without mutating
// anything.
func (ix *Index) Check(doc *document.Document) error {
	value := doc.Resolve(ix.path)
	if value.IsNull() {
		return nil
	}
	if isComposite(value) {
		return &ErrUnindexable{Path: ix.path, ID: doc.ID}
	}
	if !ix.unique {
		return nil
	}
	bm, ok := ix.postings[value.Key()]
	if !ok || bm.IsEmpty() {
		return nil
	}
	if local, ok := ix.table.Lookup(doc.ID); ok && bm.GetCardinality() == 1 && bm.Contains(local) {
		// Re-adding the same document under the same value.
		return nil
	}
	return &ErrUniqueViolation{Path: ix.path}
}

// Add indexes the document's field value. A document already indexed under a
// different value is evicted from its old posting first. Uniqueness is
// checked before any mutation: on ErrUniqueViolation the index is untouched.
// Composite (array/object) values report ErrUnindexable and leave the
// document unindexed.
func (ix *Index) Add(doc *document.Document) error {
	if err := ix.Check(doc); err != nil {
		if _, unindexable := err.(*ErrUnindexable); !unindexable {
			return err
		}
		ix.Remove(doc.ID)
		return err
	}

	value := doc.Resolve(ix.path)
	ix.Remove(doc.ID)
	if value.IsNull() {
		return nil
	}

	local := ix.table.Intern(doc.ID)
	key := value.Key()
	bm, ok := ix.postings[key]
	if !ok {
		bm = roaring.New()
		ix.postings[key] = bm
		ix.values[key] = value.Clone()
	}
	bm.Add(local)
	ix.byID[local] = value.Clone()
	return nil
}

// Remove evicts the document from the index. Unknown ids are a no-op.
func (ix *Index) Remove(id string) {
	local, ok := ix.table.Lookup(id)
	if !ok {
		return
	}
	old, ok := ix.byID[local]
	if !ok {
		return
	}
	key := old.Key()
	if bm, ok := ix.postings[key]; ok {
		bm.Remove(local)
		if bm.IsEmpty() {
			delete(ix.postings, key)
			delete(ix.values, key)
		}
	}
	delete(ix.byID, local)
}

// FindEqual returns the ids indexed under the given value, sorted.
func (ix *Index) FindEqual(value document.Value) []string {
	bm, ok := ix.postings[value.Key()]
	if !ok {
		return nil
	}
	return ix.externalIDs(bm)
}

// FindRange returns the ids whose indexed value lies within [min, max]
// (either bound may be nil). The value set is scanned linearly — the index
// is a hash multimap, not a tree; for small embedded datasets that beats
// maintaining an ordered structure. Bound comparisons follow the store's
// ordering fallback: values incomparable with a bound are not excluded by it.
func (ix *Index) FindRange(min, max *document.Value) []string {
	result := roaring.New()
	for key, value := range ix.values {
		if min != nil && document.Compare(value, *min) < 0 {
			continue
		}
		if max != nil && document.Compare(value, *max) > 0 {
			continue
		}
		result.Or(ix.postings[key])
	}
	return ix.externalIDs(result)
}

func (ix *Index) externalIDs(bm *roaring.Bitmap) []string {
	if bm == nil || bm.IsEmpty() {
		return nil
	}
	ids := make([]string, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		if ext, ok := ix.table.External(it.Next()); ok {
			ids = append(ids, ext)
		}
	}
	sort.Strings(ids)
	return ids
}

func (ix *Index) clear() {
	ix.postings = make(map[string]*roaring.Bitmap)
	ix.values = make(map[string]document.Value)
	ix.byID = make(map[uint32]document.Value)
}

// Stats describes one index.
type Stats struct {
	Path            string  `json:"field_path"`
	Unique          bool    `json:"unique"`
	Documents       int     `json:"document_count"`
	DistinctValues  int     `json:"distinct_value_count"`
	AvgDocsPerValue float64 `json:"avg_documents_per_value"`
}

// Stats returns document and value counts for the index.
func (ix *Index) Stats() Stats {
	s := Stats{
		Path:           ix.path,
		Unique:         ix.unique,
		Documents:      len(ix.byID),
		DistinctValues: len(ix.postings),
	}
	if s.DistinctValues > 0 {
		s.AvgDocsPerValue = float64(s.Documents) / float64(s.DistinctValues)
	}
	return s
}

func isComposite(v document.Value) bool {
	return v.Kind == document.KindArray || v.Kind == document.KindObject
}
