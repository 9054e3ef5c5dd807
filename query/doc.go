// Package query evaluates predicates over a document's value tree.
//
// A predicate is an object whose keys are either logical operators ($and,
// $or, $not) or dotted field paths mapped to a literal or to an object of
// comparison operators. Unrecognized $-operators evaluate to false rather
// than raising: the engine fails closed on unknown syntax.
package query
