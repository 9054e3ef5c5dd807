package docgo

import (
	"fmt"
	"time"

	"github.com/hupe1980/docgo/document"
	"github.com/hupe1980/docgo/query"
)

type findOptions struct {
	sort  []query.SortField
	skip  int
	limit int
}

// FindOption configures a find operation.
type FindOption func(*findOptions)

// WithSort appends a sort key. Keys are applied in the order given; documents
// missing the field sort first in both directions.
func WithSort(path string, descending bool) FindOption {
	return func(o *findOptions) {
		o.sort = append(o.sort, query.SortField{Path: path, Desc: descending})
	}
}

// WithSkip drops the first n results, after sorting.
func WithSkip(n int) FindOption {
	return func(o *findOptions) {
		o.skip = n
	}
}

// WithLimit caps the number of results, after skipping. A negative limit
// means unlimited.
func WithLimit(n int) FindOption {
	return func(o *findOptions) {
		o.limit = n
	}
}

func applyFindOptions(optFns []FindOption) findOptions {
	o := findOptions{limit: -1}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// Find returns every document matching pred, ordered by id unless sort keys
// are given. A nil or empty predicate matches everything. The returned
// documents are copies owned by the caller.
func (db *Database) Find(pred *document.Object, optFns ...FindOption) ([]*document.Document, error) {
	start := time.Now()
	docs, err := db.find(pred, optFns...)
	db.metrics.RecordFind(len(docs), time.Since(start), err)
	db.logger.LogFind(len(docs), err)
	return docs, err
}

func (db *Database) find(pred *document.Object, optFns ...FindOption) ([]*document.Document, error) {
	o := applyFindOptions(optFns)

	db.mu.RLock()
	docs, err := db.match(pred)
	db.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	docs = query.Sort(docs, o.sort)
	docs = query.Skip(docs, o.skip)
	docs = query.Limit(docs, o.limit)
	return docs, nil
}

// FindOne returns the first document matching pred, or ErrNotFound.
func (db *Database) FindOne(pred *document.Object, optFns ...FindOption) (*document.Document, error) {
	docs, err := db.Find(pred, append(optFns, WithLimit(1))...)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no document matches predicate", ErrNotFound)
	}
	return docs[0], nil
}

// FindProjected returns partial content objects for every match. Each result
// holds the literal dotted paths as keys, including only paths resolving to a
// present, non-null value. An empty field list yields full content copies.
func (db *Database) FindProjected(pred *document.Object, fields []string, optFns ...FindOption) ([]*document.Object, error) {
	docs, err := db.Find(pred, optFns...)
	if err != nil {
		return nil, err
	}
	return query.Project(docs, fields), nil
}

// Count returns the number of documents matching pred.
func (db *Database) Count(pred *document.Object) (int, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	docs, err := db.match(pred)
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

// Exists reports whether any document matches pred.
func (db *Database) Exists(pred *document.Object) (bool, error) {
	n, err := db.Count(pred)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Distinct returns the distinct non-null values at a dotted field path, in
// order of first appearance over the id-ordered document set. A non-nil
// predicate restricts the documents considered. Numeric values that compare
// equal count as one.
func (db *Database) Distinct(path string, pred *document.Object) ([]document.Value, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	docs, err := db.match(pred)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var values []document.Value
	for _, doc := range docs {
		v := doc.Resolve(path)
		if v.IsNull() {
			continue
		}
		key := v.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		values = append(values, v.Clone())
	}
	return values, nil
}
