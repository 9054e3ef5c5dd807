// Package storage persists documents as one unit file per id inside a
// directory. Writes are atomic (temp file + rename); reads degrade
// gracefully: a malformed unit is logged and treated as absent instead of
// failing the caller.
package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hupe1980/docgo/codec"
	"github.com/hupe1980/docgo/document"
	"github.com/hupe1980/docgo/internal/fs"
)

// ErrBackupNotFound is returned by Restore when the source directory does
// not exist.
var ErrBackupNotFound = errors.New("backup directory not found")

type options struct {
	codec  codec.Codec
	fsys   fs.FileSystem
	logger *slog.Logger
}

// Option configures a Storage.
type Option func(*options)

// WithCodec sets the unit codec. If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithFileSystem sets the file system implementation. Used by tests to
// inject failures.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}

// WithLogger sets the logger for malformed-unit warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Storage is a durable mapping from document id to document. The directory
// is an explicit constructor parameter; there is no ambient location state.
type Storage struct {
	dir    string
	ext    string
	codec  codec.Codec
	fsys   fs.FileSystem
	logger *slog.Logger
}

// New creates a Storage rooted at dir, creating the directory if needed.
func New(dir string, optFns ...Option) (*Storage, error) {
	o := options{
		codec:  codec.Default,
		fsys:   fs.Default,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if err := o.fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &Storage{
		dir:    dir,
		ext:    "." + o.codec.Name(),
		codec:  o.codec,
		fsys:   o.fsys,
		logger: o.logger,
	}, nil
}

// Dir returns the storage directory.
func (s *Storage) Dir() string { return s.dir }

// Ext returns the unit file extension, including the leading dot.
func (s *Storage) Ext() string { return s.ext }

func (s *Storage) path(id string) string {
	return filepath.Join(s.dir, id+s.ext)
}

// Save overwrites the unit for doc.ID. The write is atomic: a crash cannot
// leave a half-written unit, though it can still leave indexes stale until
// the next rebuild.
func (s *Storage) Save(doc *document.Document) error {
	data, err := s.codec.Marshal(encodeUnit(doc))
	if err != nil {
		return fmt.Errorf("encode unit %s: %w", doc.ID, err)
	}
	return s.writeFile(s.path(doc.ID), data)
}

func (s *Storage) writeFile(path string, data []byte) error {
	tmp := path + ".tmp"
	f, err := s.fsys.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		s.fsys.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		s.fsys.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		s.fsys.Remove(tmp)
		return err
	}
	if err := s.fsys.Rename(tmp, path); err != nil {
		s.fsys.Remove(tmp)
		return err
	}
	return nil
}

// Load returns the document for id, or nil when no unit exists. A unit that
// exists but cannot be decoded is logged and reported as absent: missing
// documents are non-fatal holes, not database-wide failures.
func (s *Storage) Load(id string) (*document.Document, error) {
	data, err := s.readFile(s.path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var u unit
	if err := s.codec.Unmarshal(data, &u); err != nil {
		s.logger.Warn("skipping malformed unit", "id", id, "error", err)
		return nil, nil
	}
	doc, err := u.document()
	if err != nil {
		s.logger.Warn("skipping malformed unit", "id", id, "error", err)
		return nil, nil
	}
	return doc, nil
}

func (s *Storage) readFile(path string) ([]byte, error) {
	f, err := s.fsys.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Delete removes the unit for id, reporting whether one existed.
func (s *Storage) Delete(id string) (bool, error) {
	err := s.fsys.Remove(s.path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListIDs enumerates the ids of all persisted units, sorted.
func (s *Storage) ListIDs() ([]string, error) {
	entries, err := s.fsys.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, s.ext) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, s.ext))
	}
	sort.Strings(ids)
	return ids, nil
}

// LoadAll returns every decodable document, skipping malformed units.
func (s *Storage) LoadAll() ([]*document.Document, error) {
	ids, err := s.ListIDs()
	if err != nil {
		return nil, err
	}
	docs := make([]*document.Document, 0, len(ids))
	for _, id := range ids {
		doc, err := s.Load(id)
		if err != nil {
			return nil, err
		}
		if doc != nil {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// Clear removes every unit.
func (s *Storage) Clear() error {
	ids, err := s.ListIDs()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := s.Delete(id); err != nil {
			return err
		}
	}
	return nil
}

// Backup copies every current unit into target, creating it if absent. The
// layout is identical to the live store, byte for byte.
func (s *Storage) Backup(target string) error {
	if err := s.fsys.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}
	ids, err := s.ListIDs()
	if err != nil {
		return err
	}
	for _, id := range ids {
		data, err := s.readFile(s.path(id))
		if err != nil {
			return fmt.Errorf("read unit %s: %w", id, err)
		}
		if err := s.writeFile(filepath.Join(target, id+s.ext), data); err != nil {
			return fmt.Errorf("write backup unit %s: %w", id, err)
		}
	}
	return nil
}

// Restore clears current storage and copies every unit from source in.
func (s *Storage) Restore(source string) error {
	if _, err := s.fsys.Stat(source); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrBackupNotFound, source)
		}
		return err
	}
	if err := s.Clear(); err != nil {
		return err
	}
	entries, err := s.fsys.ReadDir(source)
	if err != nil {
		return err
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, s.ext) {
			continue
		}
		data, err := s.readFile(filepath.Join(source, name))
		if err != nil {
			return fmt.Errorf("read backup unit %s: %w", name, err)
		}
		if err := s.writeFile(filepath.Join(s.dir, name), data); err != nil {
			return fmt.Errorf("restore unit %s: %w", name, err)
		}
	}
	return nil
}

// ExportUnit returns the unit file name and raw encoded bytes for id, for
// copying into an external store without re-encoding.
func (s *Storage) ExportUnit(id string) (string, []byte, error) {
	data, err := s.readFile(s.path(id))
	if err != nil {
		return "", nil, err
	}
	return id + s.ext, data, nil
}

// ImportUnit writes raw unit bytes under the given file name. The name must
// be a bare file name carrying the codec extension of this storage.
func (s *Storage) ImportUnit(name string, data []byte) error {
	if name != filepath.Base(name) || !strings.HasSuffix(name, s.ext) {
		return fmt.Errorf("invalid unit name: %s", name)
	}
	return s.writeFile(filepath.Join(s.dir, name), data)
}

// Stats describes the persisted unit set.
type Stats struct {
	Count          int    `json:"document_count"`
	TotalSizeBytes int64  `json:"total_size_bytes"`
	Location       string `json:"location"`
}

// Stats returns unit count, total size, and the absolute storage location.
func (s *Storage) Stats() (Stats, error) {
	ids, err := s.ListIDs()
	if err != nil {
		return Stats{}, err
	}
	var total int64
	for _, id := range ids {
		info, err := s.fsys.Stat(s.path(id))
		if err != nil {
			continue
		}
		total += info.Size()
	}
	location, err := filepath.Abs(s.dir)
	if err != nil {
		location = s.dir
	}
	return Stats{Count: len(ids), TotalSizeBytes: total, Location: location}, nil
}
