// Package document defines the value model of docgo: a closed tagged union
// for schemaless content, an insertion-ordered object type, dotted field-path
// resolution, and the Document record itself.
//
// All matching and indexing code pattern-matches over the Value union instead
// of relying on reflection or runtime type coercion.
package document
