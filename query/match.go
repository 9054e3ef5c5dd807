package query

import (
	"regexp"
	"strings"

	"github.com/hupe1980/docgo/document"
)

// Matches reports whether a document's content satisfies the predicate.
func Matches(doc *document.Document, pred *document.Object) bool {
	return Match(doc.Content, pred)
}

// Match evaluates a predicate object against a content object.
//
// Clause keys are evaluated in predicate order. A logical operator key
// decides the whole clause as soon as it is reached; field keys accumulate
// with implicit AND.
func Match(content, pred *document.Object) bool {
	for key, val := range pred.All() {
		if strings.HasPrefix(key, "$") {
			switch key {
			case "$and":
				arr, ok := val.AsArray()
				if !ok {
					return false
				}
				// All of none is vacuously true.
				for _, cond := range arr {
					obj, ok := cond.AsObject()
					if !ok || !Match(content, obj) {
						return false
					}
				}
				return true
			case "$or":
				arr, ok := val.AsArray()
				if !ok {
					return false
				}
				for _, cond := range arr {
					obj, ok := cond.AsObject()
					if ok && Match(content, obj) {
						return true
					}
				}
				return false
			case "$not":
				obj, ok := val.AsObject()
				if !ok {
					return false
				}
				return !Match(content, obj)
			default:
				// Unknown operator fails the whole clause.
				return false
			}
		}
		if !matchField(content, key, val) {
			return false
		}
	}
	return true
}

func matchField(content *document.Object, path string, expected document.Value) bool {
	actual := document.Resolve(content, path)

	if ops, ok := expected.AsObject(); ok {
		// Operator object: every operator must hold.
		for op, operand := range ops.All() {
			if !applyOperator(actual, op, operand) {
				return false
			}
		}
		return true
	}

	// Literal equality, with array-contains semantics when the resolved
	// value is an array.
	if arr, ok := actual.AsArray(); ok {
		for _, item := range arr {
			if document.Equal(item, expected) {
				return true
			}
		}
		return false
	}
	return document.Equal(actual, expected)
}

func applyOperator(actual document.Value, op string, operand document.Value) bool {
	switch op {
	case "$eq":
		return document.Equal(actual, operand)
	case "$ne":
		return !document.Equal(actual, operand)
	case "$gt":
		return document.Compare(actual, operand) > 0
	case "$gte":
		return document.Compare(actual, operand) >= 0
	case "$lt":
		return document.Compare(actual, operand) < 0
	case "$lte":
		return document.Compare(actual, operand) <= 0
	case "$in":
		// The operand must be an array; a string operand does not fall back
		// to substring membership. Non-array operands fail closed.
		set, ok := operand.AsArray()
		if !ok {
			return false
		}
		if arr, ok := actual.AsArray(); ok {
			for _, item := range arr {
				if containsValue(set, item) {
					return true
				}
			}
			return false
		}
		return containsValue(set, actual)
	case "$nin":
		set, ok := operand.AsArray()
		if !ok {
			return false
		}
		if arr, ok := actual.AsArray(); ok {
			for _, item := range arr {
				if containsValue(set, item) {
					return false
				}
			}
			return true
		}
		return !containsValue(set, actual)
	case "$exists":
		if isTruthy(operand) {
			return !actual.IsNull()
		}
		return actual.IsNull()
	case "$regex":
		s, ok := actual.AsString()
		if !ok {
			return false
		}
		pattern, ok := operand.AsString()
		if !ok {
			return false
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false
		}
		// Substring pattern search, not a full-string match.
		return re.MatchString(s)
	default:
		return false
	}
}

func containsValue(set []document.Value, v document.Value) bool {
	for _, item := range set {
		if document.Equal(item, v) {
			return true
		}
	}
	return false
}

func isTruthy(v document.Value) bool {
	switch v.Kind {
	case document.KindBool:
		return v.B
	case document.KindInt:
		return v.I64 != 0
	case document.KindFloat:
		return v.F64 != 0
	case document.KindString:
		return v.S != ""
	case document.KindArray:
		return len(v.A) > 0
	case document.KindObject:
		return v.O.Len() > 0
	default:
		return false
	}
}
