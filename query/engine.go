package query

import (
	"sort"

	"github.com/hupe1980/docgo/document"
)

// SortField names one sort key: a dotted field path and a direction.
type SortField struct {
	Path string
	Desc bool
}

// Filter returns the order-preserving subsequence of docs matching pred.
func Filter(docs []*document.Document, pred *document.Object) []*document.Document {
	var out []*document.Document
	for _, doc := range docs {
		if Matches(doc, pred) {
			out = append(out, doc)
		}
	}
	return out
}

// Sort orders docs by the given fields. Documents whose field is missing or
// null sort as negative infinity ascending and positive infinity descending:
// they come first either way. The sort is stable.
func Sort(docs []*document.Document, fields []SortField) []*document.Document {
	out := make([]*document.Document, len(docs))
	copy(out, docs)
	if len(fields) == 0 {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		for _, f := range fields {
			c := compareField(out[i], out[j], f)
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
	return out
}

func compareField(a, b *document.Document, f SortField) int {
	va := a.Resolve(f.Path)
	vb := b.Resolve(f.Path)

	aNull := va.IsNull()
	bNull := vb.IsNull()
	switch {
	case aNull && bNull:
		return 0
	case aNull:
		return -1
	case bNull:
		return 1
	}

	c := document.Compare(va, vb)
	if f.Desc {
		return -c
	}
	return c
}

// Skip drops the first n documents.
func Skip(docs []*document.Document, n int) []*document.Document {
	if n <= 0 {
		return docs
	}
	if n >= len(docs) {
		return nil
	}
	return docs[n:]
}

// Limit keeps at most the first n documents.
func Limit(docs []*document.Document, n int) []*document.Document {
	if n < 0 || n >= len(docs) {
		return docs
	}
	return docs[:n]
}

// Project maps each document to a partial object. An empty field list yields
// full content copies. A non-empty list yields objects whose keys are the
// literal dotted path strings, including only paths that resolve to a
// present, non-null value.
func Project(docs []*document.Document, fields []string) []*document.Object {
	out := make([]*document.Object, 0, len(docs))
	for _, doc := range docs {
		if len(fields) == 0 {
			out = append(out, doc.Content.Clone())
			continue
		}
		obj := document.NewObject()
		for _, path := range fields {
			v := doc.Resolve(path)
			if !v.IsNull() {
				obj.Set(path, v.Clone())
			}
		}
		out = append(out, obj)
	}
	return out
}
