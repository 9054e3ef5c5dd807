package docgo

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/docgo/blobstore"
)

// Backup copies every unit file into the target directory. The backup has
// the same layout as the live database directory and can be opened directly.
func (db *Database) Backup(target string) error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	ids, err := db.storage.ListIDs()
	if err != nil {
		return err
	}
	err = db.storage.Backup(target)
	db.logger.LogBackup(target, len(ids), err)
	return err
}

// Restore replaces the database contents with the units from the source
// directory and rebuilds every index. Returns ErrBackupNotFound when the
// source does not exist.
func (db *Database) Restore(source string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.storage.Restore(source); err != nil {
		err = translateError(err)
		db.logger.LogRestore(source, 0, err)
		return err
	}
	n, err := db.rebuildIndexes()
	db.logger.LogRestore(source, n, err)
	return err
}

// rebuildIndexes replays every stored document through the index manager.
// Callers must hold db.mu.
func (db *Database) rebuildIndexes() (int, error) {
	docs, err := db.storage.LoadAll()
	if err != nil {
		return 0, err
	}
	if err := db.indexes.Rebuild(docs); err != nil {
		return len(docs), translateError(err)
	}
	return len(docs), nil
}

type transferOptions struct {
	concurrency int
	bytesPerSec int
}

// TransferOption configures a remote backup or restore.
type TransferOption func(*transferOptions)

// WithConcurrency sets the number of parallel object transfers.
func WithConcurrency(n int) TransferOption {
	return func(o *transferOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithRateLimit caps transfer throughput in bytes per second. Zero means
// unlimited.
func WithRateLimit(bytesPerSec int) TransferOption {
	return func(o *transferOptions) {
		o.bytesPerSec = bytesPerSec
	}
}

func applyTransferOptions(optFns []TransferOption) transferOptions {
	o := transferOptions{concurrency: 4}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// BackupTo uploads every unit file to the object store, fanning out across
// parallel uploads. Object names are the unit file names, so a store prefix
// should be baked into the Store itself.
func (db *Database) BackupTo(ctx context.Context, store blobstore.Store, optFns ...TransferOption) error {
	o := applyTransferOptions(optFns)

	db.mu.RLock()
	defer db.mu.RUnlock()

	ids, err := db.storage.ListIDs()
	if err != nil {
		return err
	}

	var limiter *rate.Limiter
	if o.bytesPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(o.bytesPerSec), o.bytesPerSec)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for _, id := range ids {
		g.Go(func() error {
			name, data, err := db.storage.ExportUnit(id)
			if err != nil {
				return fmt.Errorf("export unit %s: %w", id, err)
			}
			if limiter != nil {
				n := len(data)
				if n > limiter.Burst() {
					n = limiter.Burst()
				}
				if err := limiter.WaitN(ctx, n); err != nil {
					return err
				}
			}
			if err := store.Put(ctx, name, data); err != nil {
				return fmt.Errorf("upload unit %s: %w", id, err)
			}
			return nil
		})
	}

	err = g.Wait()
	db.logger.LogBackup("blobstore", len(ids), err)
	return err
}

// RestoreFrom replaces the database contents with the units found in the
// object store and rebuilds every index. Objects whose name does not carry
// the configured codec extension are ignored.
func (db *Database) RestoreFrom(ctx context.Context, store blobstore.Store, optFns ...TransferOption) error {
	o := applyTransferOptions(optFns)

	db.mu.Lock()
	defer db.mu.Unlock()

	names, err := store.List(ctx, "")
	if err != nil {
		return err
	}

	units := names[:0]
	for _, name := range names {
		if strings.HasSuffix(name, db.storage.Ext()) {
			units = append(units, name)
		}
	}
	if len(units) == 0 {
		err := fmt.Errorf("%w: object store holds no units", ErrBackupNotFound)
		db.logger.LogRestore("blobstore", 0, err)
		return err
	}

	if err := db.storage.Clear(); err != nil {
		return err
	}

	var limiter *rate.Limiter
	if o.bytesPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(o.bytesPerSec), o.bytesPerSec)
	}

	type unit struct {
		name string
		data []byte
	}
	downloaded := make([]unit, len(units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, name := range units {
		g.Go(func() error {
			data, err := store.Get(gctx, name)
			if err != nil {
				return fmt.Errorf("download unit %s: %w", name, err)
			}
			if limiter != nil {
				n := len(data)
				if n > limiter.Burst() {
					n = limiter.Burst()
				}
				if err := limiter.WaitN(gctx, n); err != nil {
					return err
				}
			}
			downloaded[i] = unit{name: name, data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		db.logger.LogRestore("blobstore", 0, err)
		return err
	}

	for _, u := range downloaded {
		if err := db.storage.ImportUnit(u.name, u.data); err != nil {
			db.logger.LogRestore("blobstore", 0, err)
			return err
		}
	}

	n, err := db.rebuildIndexes()
	db.logger.LogRestore("blobstore", n, err)
	return err
}
