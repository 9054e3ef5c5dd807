package docgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/docgo/document"
	"github.com/hupe1980/docgo/index"
	"github.com/hupe1980/docgo/storage"
)

var (
	// ErrNotFound is returned when no document matches the given id or
	// predicate.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidDocument is returned when document content is not an object.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrDuplicateID is returned by Insert when the caller-supplied id is
	// already taken.
	ErrDuplicateID = errors.New("duplicate document id")

	// ErrBackupNotFound is returned by Restore when the backup source does
	// not exist.
	ErrBackupNotFound = errors.New("backup not found")
)

// ErrUniqueConstraintViolation indicates a write would duplicate a value in a
// unique index.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrUniqueConstraintViolation struct {
	Field string
	cause error
}

func (e *ErrUniqueConstraintViolation) Error() string {
	return fmt.Sprintf("unique constraint violation on field %q", e.Field)
}

func (e *ErrUniqueConstraintViolation) Unwrap() error { return e.cause }

// ErrIndexAlreadyExists indicates an index on the field already exists.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrIndexAlreadyExists struct {
	Field string
	cause error
}

func (e *ErrIndexAlreadyExists) Error() string {
	return fmt.Sprintf("index on field %q already exists", e.Field)
}

func (e *ErrIndexAlreadyExists) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, document.ErrInvalidContent) {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if errors.Is(err, storage.ErrBackupNotFound) {
		return fmt.Errorf("%w: %w", ErrBackupNotFound, err)
	}

	var uv *index.ErrUniqueViolation
	if errors.As(err, &uv) {
		return &ErrUniqueConstraintViolation{Field: uv.Path, cause: err}
	}
	var ie *index.ErrIndexExists
	if errors.As(err, &ie) {
		return &ErrIndexAlreadyExists{Field: ie.Path, cause: err}
	}

	return err
}
