package index

import (
	"log/slog"

	"github.com/hupe1980/docgo/document"
	"github.com/hupe1980/docgo/pk"
)

// Manager owns every index and keeps them consistent as one unit: a document
// mutation either lands in all indexes or, on a uniqueness conflict, in none.
type Manager struct {
	table   *pk.Table
	indexes map[string]*Index
	order   []string
	logger  *slog.Logger
}

// NewManager creates an empty Manager. A nil logger discards warnings.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		table:   pk.NewTable(),
		indexes: make(map[string]*Index),
		logger:  logger,
	}
}

// CreateIndex registers a new, empty index on the field path.
func (m *Manager) CreateIndex(path string, unique bool) error {
	if _, ok := m.indexes[path]; ok {
		return &ErrIndexExists{Path: path}
	}
	m.indexes[path] = newIndex(path, unique, m.table)
	m.order = append(m.order, path)
	return nil
}

// DropIndex removes the index on the field path. Absent paths are a no-op.
func (m *Manager) DropIndex(path string) {
	if _, ok := m.indexes[path]; !ok {
		return
	}
	delete(m.indexes, path)
	for i, p := range m.order {
		if p == path {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Has reports whether the field path is indexed.
func (m *Manager) Has(path string) bool {
	_, ok := m.indexes[path]
	return ok
}

// Index returns the index on the field path.
func (m *Manager) Index(path string) (*Index, bool) {
	ix, ok := m.indexes[path]
	return ix, ok
}

// Paths returns the indexed field paths in creation order.
func (m *Manager) Paths() []string {
	paths := make([]string, len(m.order))
	copy(paths, m.order)
	return paths
}

// Check reports whether AddDocument would succeed, without mutating anything.
// Unindexable fields are not an error here; they simply stay unindexed.
func (m *Manager) Check(doc *document.Document) error {
	for _, path := range m.order {
		if err := m.indexes[path].Check(doc); err != nil {
			if _, unindexable := err.(*ErrUnindexable); unindexable {
				continue
			}
			return err
		}
	}
	return nil
}

// AddDocument indexes the document in every index. The uniqueness check runs
// across all indexes before any of them is touched, so a violation leaves no
// partial state. Unindexable field values are logged and skipped.
func (m *Manager) AddDocument(doc *document.Document) error {
	if err := m.Check(doc); err != nil {
		return err
	}
	for _, path := range m.order {
		if err := m.indexes[path].Add(doc); err != nil {
			if _, unindexable := err.(*ErrUnindexable); unindexable {
				m.logger.Warn("field value not indexable, document left unindexed",
					"field", path, "id", doc.ID)
				continue
			}
			return err
		}
	}
	return nil
}

// RemoveDocument evicts the document from every index and releases its
// interned id.
func (m *Manager) RemoveDocument(id string) {
	for _, path := range m.order {
		m.indexes[path].Remove(id)
	}
	m.table.Release(id)
}

// FindEqual returns the ids indexed under the value on the field path. The
// result is empty when the path is unindexed or nothing matches.
func (m *Manager) FindEqual(path string, value document.Value) []string {
	ix, ok := m.indexes[path]
	if !ok {
		return nil
	}
	return ix.FindEqual(value)
}

// FindRange returns the ids whose indexed value lies within [min, max] on
// the field path.
func (m *Manager) FindRange(path string, min, max *document.Value) []string {
	ix, ok := m.indexes[path]
	if !ok {
		return nil
	}
	return ix.FindRange(min, max)
}

// Rebuild clears every index and replays AddDocument for each document.
// Used after restore or whenever full consistency must be re-established.
func (m *Manager) Rebuild(docs []*document.Document) error {
	m.Clear()
	for _, doc := range docs {
		if err := m.AddDocument(doc); err != nil {
			return err
		}
	}
	return nil
}

// Clear empties every index but keeps the index definitions.
func (m *Manager) Clear() {
	for _, ix := range m.indexes {
		ix.clear()
	}
	m.table.Reset()
}

// Stats returns per-index statistics keyed by field path.
func (m *Manager) Stats() map[string]Stats {
	out := make(map[string]Stats, len(m.indexes))
	for path, ix := range m.indexes {
		out[path] = ix.Stats()
	}
	return out
}
