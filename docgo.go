package docgo

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/docgo/document"
	"github.com/hupe1980/docgo/index"
	"github.com/hupe1980/docgo/query"
	"github.com/hupe1980/docgo/storage"
)

// Database is an embedded document store backed by one unit file per
// document. Indexes live in memory and are rebuilt from storage on Open; the
// unit files are the single source of truth.
//
// A Database is safe for concurrent use. Writes are serialized.
type Database struct {
	mu      sync.RWMutex
	storage *storage.Storage
	indexes *index.Manager
	metrics MetricsCollector
	logger  *Logger
	newID   func() string
}

// Open opens (or creates) a database rooted at dir.
func Open(dir string, optFns ...Option) (*Database, error) {
	o := applyOptions(optFns)

	store, err := storage.New(dir,
		storage.WithCodec(o.codec),
		storage.WithLogger(o.logger.Logger),
	)
	if err != nil {
		return nil, err
	}

	newID := o.idGenerator
	if newID == nil {
		newID = document.NewID
	}

	return &Database{
		storage: store,
		indexes: index.NewManager(o.logger.Logger),
		metrics: o.metricsCollector,
		logger:  o.logger,
		newID:   newID,
	}, nil
}

// InsertOption configures a single insert.
type InsertOption func(*insertOptions)

type insertOptions struct {
	id string
}

// WithID supplies an explicit document id instead of a generated one.
func WithID(id string) InsertOption {
	return func(o *insertOptions) {
		o.id = id
	}
}

// Insert stores a new document and returns its id. The content is cloned;
// later mutation of the argument does not affect the stored document.
func (db *Database) Insert(content *document.Object, optFns ...InsertOption) (string, error) {
	start := time.Now()
	id, err := db.insert(content, optFns...)
	db.metrics.RecordInsert(time.Since(start), err)
	db.logger.LogInsert(id, err)
	return id, err
}

func (db *Database) insert(content *document.Object, optFns ...InsertOption) (string, error) {
	var o insertOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	return db.insertLocked(content, o.id)
}

// insertLocked runs the insert under an already-held write lock.
func (db *Database) insertLocked(content *document.Object, id string) (string, error) {
	if id == "" {
		id = db.newID()
	} else {
		existing, err := db.storage.Load(id)
		if err != nil {
			return "", err
		}
		if existing != nil {
			return "", fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
	}

	doc, err := document.New(content, id)
	if err != nil {
		return "", translateError(err)
	}

	if err := db.checkUnique(doc); err != nil {
		return "", err
	}
	if err := db.storage.Save(doc); err != nil {
		return "", err
	}
	if err := db.indexes.AddDocument(doc); err != nil {
		// Roll the unit back so nothing is left stored but unindexed.
		if _, delErr := db.storage.Delete(doc.ID); delErr != nil {
			db.logger.Error("rollback after index failure failed",
				"id", doc.ID, "error", delErr)
		}
		return "", translateError(err)
	}
	return doc.ID, nil
}

// checkUnique verifies unique indexes against their posting lists before any
// mutation. The Manager repeats the check internally; this pass exists so a
// violation is caught before the unit hits disk.
func (db *Database) checkUnique(doc *document.Document) error {
	for _, path := range db.indexes.Paths() {
		ix, ok := db.indexes.Index(path)
		if !ok || !ix.Unique() {
			continue
		}
		v := doc.Resolve(path)
		if v.IsNull() || v.Kind == document.KindArray || v.Kind == document.KindObject {
			continue
		}
		for _, id := range ix.FindEqual(v) {
			if id != doc.ID {
				return &ErrUniqueConstraintViolation{Field: path}
			}
		}
	}
	return nil
}

// InsertMany stores documents in order, returning the ids inserted so far.
// The first failure stops the batch; earlier inserts stay.
func (db *Database) InsertMany(contents []*document.Object) ([]string, error) {
	ids := make([]string, 0, len(contents))
	for _, content := range contents {
		id, err := db.Insert(content)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// FindByID returns the document with the given id, or ErrNotFound.
func (db *Database) FindByID(id string) (*document.Document, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	doc, err := db.storage.Load(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return doc, nil
}

// Update shallow-merges patch into every document matching pred and returns
// the number updated. Nested objects in the patch replace wholesale; the
// update timestamp is bumped even for an empty patch.
func (db *Database) Update(pred *document.Object, patch *document.Object) (int, error) {
	start := time.Now()
	n, err := db.update(pred, patch)
	db.metrics.RecordUpdate(time.Since(start), err)
	db.logger.LogUpdate(n, err)
	return n, err
}

func (db *Database) update(pred, patch *document.Object) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	docs, err := db.match(pred)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, doc := range docs {
		if err := db.applyPatch(doc, patch); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// UpdateByID shallow-merges patch into the document with the given id.
func (db *Database) UpdateByID(id string, patch *document.Object) error {
	start := time.Now()
	err := db.updateByID(id, patch)
	db.metrics.RecordUpdate(time.Since(start), err)
	db.logger.LogUpdate(1, err)
	return err
}

func (db *Database) updateByID(id string, patch *document.Object) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	doc, err := db.storage.Load(id)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return db.applyPatch(doc, patch)
}

// applyPatch persists and reindexes one merged document, restoring the
// previous unit if reindexing fails.
func (db *Database) applyPatch(doc *document.Document, patch *document.Object) error {
	merged := doc.Clone()
	merged.Merge(patch)

	if err := db.indexes.Check(merged); err != nil {
		return translateError(err)
	}
	if err := db.storage.Save(merged); err != nil {
		return err
	}
	if err := db.indexes.AddDocument(merged); err != nil {
		if saveErr := db.storage.Save(doc); saveErr != nil {
			db.logger.Error("rollback after index failure failed",
				"id", doc.ID, "error", saveErr)
		}
		return translateError(err)
	}
	return nil
}

// Upsert updates the first document matching pred, or inserts content as a
// new document when nothing matches. It returns the affected id and whether
// a document was created. The lock is held across match and insert, so two
// concurrent Upserts on the same predicate cannot both insert.
func (db *Database) Upsert(pred *document.Object, content *document.Object) (string, bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	docs, err := db.match(pred)
	if err != nil {
		return "", false, err
	}
	if len(docs) > 0 {
		doc := docs[0]
		return doc.ID, false, db.applyPatch(doc, content)
	}

	id, err := db.insertLocked(content, "")
	return id, true, err
}

// Delete removes every document matching pred and returns the number removed.
func (db *Database) Delete(pred *document.Object) (int, error) {
	start := time.Now()
	n, err := db.delete(pred)
	db.metrics.RecordDelete(time.Since(start), err)
	db.logger.LogDelete(n, err)
	return n, err
}

func (db *Database) delete(pred *document.Object) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	docs, err := db.match(pred)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, doc := range docs {
		removed, err := db.storage.Delete(doc.ID)
		if err != nil {
			return deleted, err
		}
		db.indexes.RemoveDocument(doc.ID)
		if removed {
			deleted++
		}
	}
	return deleted, nil
}

// DeleteByID removes the document with the given id, or returns ErrNotFound.
func (db *Database) DeleteByID(id string) error {
	start := time.Now()
	err := db.deleteByID(id)
	db.metrics.RecordDelete(time.Since(start), err)
	db.logger.LogDelete(1, err)
	return err
}

func (db *Database) deleteByID(id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	removed, err := db.storage.Delete(id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	db.indexes.RemoveDocument(id)
	return nil
}

// DeleteAll removes every document and returns the number removed. Index
// definitions survive; their contents are cleared.
func (db *Database) DeleteAll() (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	ids, err := db.storage.ListIDs()
	if err != nil {
		return 0, err
	}
	if err := db.storage.Clear(); err != nil {
		return 0, err
	}
	db.indexes.Clear()
	return len(ids), nil
}

// CreateIndex creates an index on a dotted field path and populates it from
// every stored document. A uniqueness conflict during population drops the
// index again, leaving the database as it was.
func (db *Database) CreateIndex(path string, unique bool) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.indexes.CreateIndex(path, unique); err != nil {
		return translateError(err)
	}

	ix, _ := db.indexes.Index(path)
	docs, err := db.storage.LoadAll()
	if err != nil {
		db.indexes.DropIndex(path)
		return err
	}
	for _, doc := range docs {
		if err := ix.Add(doc); err != nil {
			var unindexable *index.ErrUnindexable
			if errors.As(err, &unindexable) {
				db.logger.Warn("field value not indexable, document left unindexed",
					"field", path, "id", doc.ID)
				continue
			}
			db.indexes.DropIndex(path)
			return translateError(err)
		}
	}
	return nil
}

// DropIndex removes the index on the field path. Dropping an absent index is
// a no-op.
func (db *Database) DropIndex(path string) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.indexes.DropIndex(path)
}

// IndexInfo describes one index.
type IndexInfo struct {
	Field  string `json:"field"`
	Unique bool   `json:"unique"`
}

// Indexes returns the defined indexes in creation order.
func (db *Database) Indexes() []IndexInfo {
	db.mu.RLock()
	defer db.mu.RUnlock()

	paths := db.indexes.Paths()
	infos := make([]IndexInfo, 0, len(paths))
	for _, path := range paths {
		ix, _ := db.indexes.Index(path)
		infos = append(infos, IndexInfo{Field: path, Unique: ix.Unique()})
	}
	return infos
}

// DatabaseStats aggregates storage and index statistics.
type DatabaseStats struct {
	Documents int                    `json:"document_count"`
	Storage   storage.Stats          `json:"storage"`
	Indexes   map[string]index.Stats `json:"indexes"`
}

// Stats returns a snapshot of database statistics.
func (db *Database) Stats() (DatabaseStats, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	storageStats, err := db.storage.Stats()
	if err != nil {
		return DatabaseStats{}, err
	}
	return DatabaseStats{
		Documents: storageStats.Count,
		Storage:   storageStats,
		Indexes:   db.indexes.Stats(),
	}, nil
}

// match returns the id-ordered documents matching pred, using an index
// shortcut when pred is a single literal field condition on an indexed path.
// Candidates from an index are always re-verified against the predicate.
// Callers must hold db.mu.
func (db *Database) match(pred *document.Object) ([]*document.Document, error) {
	if path, value, ok := indexableCondition(pred); ok && db.indexes.Has(path) {
		ids := db.indexes.FindEqual(path, value)
		docs := make([]*document.Document, 0, len(ids))
		for _, id := range ids {
			doc, err := db.storage.Load(id)
			if err != nil {
				return nil, err
			}
			if doc != nil && query.Matches(doc, pred) {
				docs = append(docs, doc)
			}
		}
		return docs, nil
	}

	all, err := db.storage.LoadAll()
	if err != nil {
		return nil, err
	}
	return query.Filter(all, pred), nil
}

// indexableCondition reports whether pred is exactly one field key with a
// literal scalar value. Operator objects and array literals always take the
// scan path. So do null literals: null and absent values are never indexed,
// so only a full scan can find the documents they match.
func indexableCondition(pred *document.Object) (string, document.Value, bool) {
	if pred == nil || pred.Len() != 1 {
		return "", document.Value{}, false
	}
	for key, value := range pred.All() {
		if len(key) > 0 && key[0] == '$' {
			return "", document.Value{}, false
		}
		if value.IsNull() || value.Kind == document.KindObject || value.Kind == document.KindArray {
			return "", document.Value{}, false
		}
		return key, value, true
	}
	return "", document.Value{}, false
}
