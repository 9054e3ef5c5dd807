package document

import (
	"crypto/rand"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
)

// ErrInvalidContent is returned when document content is not an object.
var ErrInvalidContent = errors.New("document content must be an object")

// Document is an identified, timestamped unit of schemaless content.
//
// ID is immutable after creation. UpdatedAt is refreshed on every successful
// content mutation and is never earlier than CreatedAt.
type Document struct {
	ID        string
	Content   *Object
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewID generates a random unique document id.
func NewID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// New constructs a Document. An empty id is replaced with a generated one.
// The content object is cloned so the document owns its tree.
func New(content *Object, id string) (*Document, error) {
	if content == nil {
		return nil, ErrInvalidContent
	}
	if id == "" {
		id = NewID()
	}
	now := time.Now().UTC()
	return &Document{
		ID:        id,
		Content:   content.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Merge shallow-merges patch into the content: top-level keys overwrite or
// add, nested objects are replaced wholesale. UpdatedAt is bumped even for an
// empty patch — every update call touches the timestamp.
func (d *Document) Merge(patch *Object) {
	for k, v := range patch.All() {
		d.Content.Set(k, v.Clone())
	}
	d.UpdatedAt = time.Now().UTC()
}

// Resolve returns the value at a dotted field path within the content.
func (d *Document) Resolve(path string) Value {
	return Resolve(d.Content, path)
}

// Equal reports whether two documents have the same id and content.
// Timestamps are excluded from equality.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.ID == other.ID && d.Content.Equal(other.Content)
}

// Clone creates an independent copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	return &Document{
		ID:        d.ID,
		Content:   d.Content.Clone(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
