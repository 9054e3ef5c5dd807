package index

import "fmt"

// ErrUniqueViolation indicates a duplicate value under a unique index.
//
// Add never mutates index state when it returns this error, so callers can
// reject the document write up front instead of rolling back afterwards.
type ErrUniqueViolation struct {
	Path string
}

func (e *ErrUniqueViolation) Error() string {
	return fmt.Sprintf("unique constraint violated for field %q", e.Path)
}

// ErrIndexExists indicates the field path is already indexed.
type ErrIndexExists struct {
	Path string
}

func (e *ErrIndexExists) Error() string {
	return fmt.Sprintf("index on field %q already exists", e.Path)
}

// ErrUnindexable indicates a document's field resolved to an array or object,
// which cannot serve as an index key. The document stays unindexed; full
// scans still find it.
type ErrUnindexable struct {
	Path string
	ID   string
}

func (e *ErrUnindexable) Error() string {
	return fmt.Sprintf("field %q of document %q resolves to a composite value and cannot be indexed", e.Path, e.ID)
}
