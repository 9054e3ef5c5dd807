package query

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/docgo/document"
)

func obj(t *testing.T, src string) *document.Object {
	t.Helper()
	o, err := document.ObjectFromJSON([]byte(src))
	require.NoError(t, err)
	return o
}

func TestMatch(t *testing.T) {
	content := `{
		"name": "ann",
		"age": 30,
		"score": 4.5,
		"active": true,
		"city": "NYC",
		"interests": ["music", "art"],
		"profile": {"level": 3, "bio": "gopher at heart"}
	}`

	tests := []struct {
		name string
		pred string
		want bool
	}{
		{"literal equality", `{"name": "ann"}`, true},
		{"literal inequality", `{"name": "bob"}`, false},
		{"numeric literal", `{"age": 30}`, true},
		{"float int equality", `{"age": 30.0}`, true},
		{"nested path", `{"profile.level": 3}`, true},
		{"missing path", `{"profile.missing": 3}`, false},
		{"missing path equals null literal", `{"profile.missing": null}`, true},
		{"array contains literal", `{"interests": "music"}`, true},
		{"array contains miss", `{"interests": "sports"}`, false},

		{"eq operator", `{"age": {"$eq": 30}}`, true},
		{"ne operator", `{"age": {"$ne": 31}}`, true},
		{"gt true", `{"age": {"$gt": 25}}`, true},
		{"gt false on equal", `{"age": {"$gt": 30}}`, false},
		{"gte on equal", `{"age": {"$gte": 30}}`, true},
		{"lt", `{"age": {"$lt": 40}}`, true},
		{"lte", `{"age": {"$lte": 29}}`, false},
		{"range on same field", `{"age": {"$gte": 25, "$lt": 31}}`, true},
		{"range excludes", `{"age": {"$gte": 25, "$lt": 30}}`, false},
		{"string ordering", `{"name": {"$lt": "bob"}}`, true},

		// Incomparable pairs compare as equal: $gt/$lt false, $gte/$lte true.
		{"gt incomparable", `{"name": {"$gt": 5}}`, false},
		{"lt incomparable", `{"name": {"$lt": 5}}`, false},
		{"gte incomparable", `{"name": {"$gte": 5}}`, true},
		{"lte incomparable", `{"name": {"$lte": 5}}`, true},

		{"in scalar", `{"city": {"$in": ["NYC", "SF"]}}`, true},
		{"in scalar miss", `{"city": {"$in": ["LA", "SF"]}}`, false},
		{"in over array field", `{"interests": {"$in": ["art", "sports"]}}`, true},
		{"nin scalar", `{"city": {"$nin": ["LA", "SF"]}}`, true},
		{"nin over array field", `{"interests": {"$nin": ["art"]}}`, false},
		{"in non-array operand fails closed", `{"city": {"$in": "NYC"}}`, false},

		{"exists true", `{"city": {"$exists": true}}`, true},
		{"exists true on missing", `{"country": {"$exists": true}}`, false},
		{"exists false on missing", `{"country": {"$exists": false}}`, true},
		{"exists false on present", `{"city": {"$exists": false}}`, false},

		{"regex substring", `{"profile.bio": {"$regex": "gopher"}}`, true},
		{"regex pattern", `{"profile.bio": {"$regex": "g.pher"}}`, true},
		{"regex miss", `{"profile.bio": {"$regex": "^heart"}}`, false},
		{"regex non-string field", `{"age": {"$regex": "3"}}`, false},
		{"regex invalid pattern fails closed", `{"name": {"$regex": "("}}`, false},

		{"and", `{"$and": [{"city": "NYC"}, {"age": {"$gte": 18}}]}`, true},
		{"and short-circuits", `{"$and": [{"city": "LA"}, {"age": {"$gte": 18}}]}`, false},
		{"empty and is vacuously true", `{"$and": []}`, true},
		{"or", `{"$or": [{"city": "LA"}, {"age": {"$gte": 18}}]}`, true},
		{"or all miss", `{"$or": [{"city": "LA"}, {"age": {"$gt": 99}}]}`, false},
		{"empty or matches nothing", `{"$or": []}`, false},
		{"not", `{"$not": {"city": "LA"}}`, true},
		{"not negates match", `{"$not": {"city": "NYC"}}`, false},
		{"nested logic", `{"$or": [{"$and": [{"city": "NYC"}, {"active": true}]}, {"age": {"$lt": 0}}]}`, true},

		{"unknown logical operator fails closed", `{"$nor": [{"city": "NYC"}]}`, false},
		{"unknown comparison operator fails closed", `{"age": {"$mod": 2}}`, false},
		{"and with non-array operand fails closed", `{"$and": {"city": "NYC"}}`, false},
		{"not with non-object operand fails closed", `{"$not": 5}`, false},

		{"empty predicate matches everything", `{}`, true},
		{"multiple fields implicit and", `{"city": "NYC", "active": true}`, true},
		{"multiple fields one miss", `{"city": "NYC", "active": false}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(obj(t, content), obj(t, tt.pred))
			require.Equal(t, tt.want, got)
		})
	}
}

func TestMatchLiteralNestedObjectIsOperatorMap(t *testing.T) {
	// A nested object on a field key is an operator map; "b" is an unknown
	// operator, so the clause fails closed.
	content := obj(t, `{"a": {"b": 1}}`)
	require.False(t, Match(content, obj(t, `{"a": {"b": 1}}`)))
	require.True(t, Match(content, obj(t, `{"a.b": 1}`)))
}
