// Package docgo is an embedded, file-backed document store. Each document is
// a schemaless JSON-like object persisted as one unit file per id; queries
// use Mongo-style predicates, and in-memory secondary indexes accelerate
// equality lookups.
//
// Quick start:
//
//	db, err := docgo.Open("./data")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	id, err := db.Insert(document.MustObject(map[string]any{
//		"name": "Ann", "age": 30,
//	}))
//
//	docs, err := db.Find(document.MustObject(map[string]any{
//		"age": map[string]any{"$gte": 25},
//	}))
//
// The unit files are the single source of truth; indexes are rebuilt from
// them on Restore and can be recreated at any time with CreateIndex.
package docgo
