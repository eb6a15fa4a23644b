package lunavdb

import (
	"context"
	"fmt"

	"github.com/hupe1980/lunavdb/blobstore"
)

// Save dumps db and writes the result to store under name.
func (db *DB) Save(ctx context.Context, store blobstore.Store, name string) error {
	data, err := db.Dump()
	if err != nil {
		return err
	}
	if err := store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("save %q: %w", name, err)
	}
	db.opts.logger.InfoContext(ctx, "index saved", "name", name, "bytes", len(data))
	return nil
}

// Open reads name from store and loads it as by Load.
// A missing blob satisfies errors.Is(err, blobstore.ErrNotFound).
func Open(ctx context.Context, store blobstore.Store, name string, opts ...Option) (*DB, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", name, err)
	}
	return Load(data, opts...)
}
