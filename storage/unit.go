package storage

import (
	"fmt"
	"time"

	"github.com/hupe1980/docgo/document"
)

// timeLayout is fixed-width so serialized timestamps sort lexicographically.
// Microsecond precision, always UTC.
const timeLayout = "2006-01-02T15:04:05.000000Z"

// unit is the persisted on-disk representation of exactly one document.
type unit struct {
	ID   string           `json:"_id"`
	Data *document.Object `json:"data"`
	Meta unitMeta         `json:"metadata"`
}

type unitMeta struct {
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func encodeUnit(doc *document.Document) unit {
	return unit{
		ID:   doc.ID,
		Data: doc.Content,
		Meta: unitMeta{
			CreatedAt: doc.CreatedAt.UTC().Format(timeLayout),
			UpdatedAt: doc.UpdatedAt.UTC().Format(timeLayout),
		},
	}
}

func (u unit) document() (*document.Document, error) {
	if u.ID == "" {
		return nil, fmt.Errorf("unit has no id")
	}
	content := u.Data
	if content == nil {
		content = document.NewObject()
	}
	createdAt, err := time.Parse(timeLayout, u.Meta.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(timeLayout, u.Meta.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &document.Document{
		ID:        u.ID,
		Content:   content,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
