package lunavdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/lunavdb/compress"
	"github.com/hupe1980/lunavdb/internal/conv"
	"github.com/hupe1980/lunavdb/internal/identity"
	"github.com/hupe1980/lunavdb/internal/kdtree"
	"github.com/hupe1980/lunavdb/persistence"
)

// Item is an identifier and its embedding.
type Item struct {
	ID        string
	Embedding []float32
}

// Result is a search hit.
type Result struct {
	ID string
	// Distance is the squared Euclidean distance to the query.
	Distance float32
}

// DB is an exact nearest-neighbor index over fixed-dimension embeddings.
//
// A DB is not safe for concurrent use; callers must serialize access.
type DB struct {
	tree *kdtree.Tree
	ids  *identity.Map
	opts options
}

// New creates a DB and indexes items, as if by Index.
func New(items []Item, opts ...Option) (*DB, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	db, err := newDB(o)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		db.Index(items)
	}
	return db, nil
}

func newDB(o options) (*DB, error) {
	if o.dimension <= 0 {
		return nil, &ErrInvalidDimension{Dimension: o.dimension}
	}
	if o.bucketSize <= 0 {
		return nil, &ErrInvalidBucketSize{BucketSize: o.bucketSize}
	}

	tree, err := kdtree.New(o.dimension, o.bucketSize)
	if err != nil {
		return nil, translateError(err)
	}

	return &DB{
		tree: tree,
		ids:  identity.New(0),
		opts: o,
	}, nil
}

// Dimension returns the embedding length D.
func (db *DB) Dimension() int { return db.tree.Dimension() }

// BucketSize returns the leaf bucket capacity of the tree.
func (db *DB) BucketSize() int { return db.tree.BucketSize() }

// normalize copies v into a new slice of length D, padding with zeros or
// truncating as needed.
func (db *DB) normalize(v []float32) []float32 {
	out := make([]float32, db.tree.Dimension())
	copy(out, v)
	return out
}

// Index replaces the contents of db with items. When several items share a
// key the last one wins. Embeddings are normalized to D.
func (db *DB) Index(items []Item) {
	start := time.Now()

	db.tree.Reset()
	db.ids.Reset()

	last := make(map[uint64]int, len(items))
	for i, it := range items {
		last[identity.Hash(it.ID)] = i
	}

	for i, it := range items {
		key := identity.Hash(it.ID)
		if last[key] != i {
			continue
		}
		vec := db.normalize(it.Embedding)
		if err := db.tree.Insert(vec, key); err != nil {
			// normalize guarantees the dimension.
			panic(err)
		}
		db.ids.Put(key, it.ID, vec)
	}

	db.opts.metricsCollector.RecordIndex(len(items), time.Since(start))
	db.opts.logger.LogIndex(context.Background(), len(items), db.ids.Len())
}

// Add inserts one embedding under id.
//
// It fails with a *DuplicateIDError if the key of id is already indexed and
// leaves db unchanged.
func (db *DB) Add(id string, embedding []float32) (err error) {
	start := time.Now()
	key := identity.Hash(id)
	defer func() {
		db.opts.metricsCollector.RecordAdd(time.Since(start), err)
		db.opts.logger.LogAdd(context.Background(), id, key, err)
	}()

	if rec, ok := db.ids.Get(key); ok {
		return &DuplicateIDError{ID: id, Existing: rec.ID, Key: key}
	}

	vec := db.normalize(embedding)
	if err := db.tree.Insert(vec, key); err != nil {
		return translateError(err)
	}
	if err := db.ids.Insert(key, id, vec); err != nil {
		_ = db.tree.Remove(vec, key)
		return translateError(err)
	}
	return nil
}

// Contains reports whether id is indexed.
func (db *DB) Contains(id string) bool {
	_, _, ok := db.ids.Lookup(id)
	return ok
}

// Remove deletes every given identifier, or none of them.
//
// If any identifier is not indexed, Remove returns a *NotFoundError listing
// all missing identifiers and db is left unchanged. An identifier repeated
// within one call is removed once.
func (db *DB) Remove(ids ...string) (err error) {
	start := time.Now()
	var missing []string
	defer func() {
		db.opts.metricsCollector.RecordRemove(len(ids), time.Since(start), err)
		db.opts.logger.LogRemove(context.Background(), len(ids), len(missing), err)
	}()

	planned := roaring64.New()
	keys := make([]uint64, 0, len(ids))
	reported := make(map[string]struct{})
	for _, id := range ids {
		key, _, ok := db.ids.Lookup(id)
		if !ok {
			if _, dup := reported[id]; !dup {
				reported[id] = struct{}{}
				missing = append(missing, id)
			}
			continue
		}
		if planned.CheckedAdd(key) {
			keys = append(keys, key)
		}
	}
	if len(missing) > 0 {
		return &NotFoundError{IDs: missing}
	}

	for _, key := range keys {
		rec, err := db.ids.Remove(key)
		if err != nil {
			return translateError(err)
		}
		if err := db.tree.Remove(rec.Vector, key); err != nil {
			return translateError(err)
		}
	}
	return nil
}

// Search returns the k entries nearest to query by squared Euclidean
// distance, nearest first. Equal distances are ordered by key, so repeated
// queries against an unchanged index return identical results.
//
// The query is normalized to D like an embedding. k == 0 or an empty index
// yields an empty result; a negative k fails with ErrInvalidK.
func (db *DB) Search(query []float32, k int) (results []Result, err error) {
	start := time.Now()
	defer func() {
		db.opts.metricsCollector.RecordSearch(k, time.Since(start), err)
		db.opts.logger.LogSearch(context.Background(), k, len(results), err)
	}()

	if k < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}

	neighbors, err := db.tree.Nearest(db.normalize(query), k)
	if err != nil {
		return nil, translateError(err)
	}

	results = make([]Result, 0, len(neighbors))
	for _, n := range neighbors {
		rec, ok := db.ids.Get(n.Key)
		if !ok {
			return nil, fmt.Errorf("%w: key %016x has no id", ErrInconsistent, n.Key)
		}
		results = append(results, Result{ID: rec.ID, Distance: n.Distance})
	}
	return results, nil
}

// Size returns the number of indexed entries.
//
// It fails with a *ConsistencyError if the tree and the identity map
// disagree, which indicates a defect rather than a caller error.
func (db *DB) Size() (int, error) {
	treeSize, mapSize := db.tree.Len(), db.ids.Len()
	if treeSize != mapSize {
		db.opts.logger.LogInconsistent(context.Background(), treeSize, mapSize)
		return 0, &ConsistencyError{TreeSize: treeSize, MapSize: mapSize}
	}
	return mapSize, nil
}

// Clear removes all entries. The configuration is kept.
func (db *DB) Clear() {
	db.tree.Reset()
	db.ids.Reset()
}

// Dump serializes db. The result is compressed with the configured
// compressor and can be restored with Load. Equal indexes produce equal bytes.
func (db *DB) Dump() (blob []byte, err error) {
	start := time.Now()
	c := db.compressor()
	codec := c.Name()
	defer func() {
		db.opts.metricsCollector.RecordDump(len(blob), time.Since(start), err)
		db.opts.logger.LogDump(context.Background(), db.ids.Len(), len(blob), codec, err)
	}()

	n, err := db.Size()
	if err != nil {
		return nil, err
	}

	dim, err := conv.IntToUint32(db.Dimension())
	if err != nil {
		return nil, err
	}
	bucket, err := conv.IntToUint32(db.BucketSize())
	if err != nil {
		return nil, err
	}

	w, err := persistence.NewWriter(persistence.Header{
		Dimension:  dim,
		BucketSize: bucket,
		Count:      uint64(n),
	})
	if err != nil {
		return nil, err
	}

	var werr error
	db.ids.Range(func(key uint64, rec identity.Record) bool {
		werr = w.WriteEntry(persistence.Entry{Key: key, ID: rec.ID, Vector: rec.Vector})
		return werr == nil
	})
	if werr != nil {
		return nil, werr
	}

	payload, err := w.Finish()
	if err != nil {
		return nil, err
	}
	return persistence.Seal(payload, c)
}

// Compressor returns the compressor Dump uses.
func (db *DB) Compressor() compress.Compressor { return db.compressor() }

func (db *DB) compressor() compress.Compressor {
	if db.opts.compressor == nil {
		return compress.Default
	}
	return db.opts.compressor
}

// Load restores a DB from the output of Dump.
//
// The tree is rebuilt by reinsertion. The loaded DB takes its dimension and
// bucket size from data; WithDimension and WithBucketSize are ignored.
// Any decode failure is reported as a *CorruptDataError.
func Load(data []byte, opts ...Option) (db *DB, err error) {
	start := time.Now()
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	defer func() {
		o.metricsCollector.RecordLoad(len(data), time.Since(start), err)
		entries := 0
		if db != nil {
			entries = db.ids.Len()
		}
		o.logger.LogLoad(context.Background(), entries, len(data), err)
	}()

	db, err = load(data, o)
	if err != nil {
		return nil, corrupt(err)
	}
	return db, nil
}

var (
	errKeyMismatch  = errors.New("key does not match id")
	errDuplicateKey = errors.New("duplicate key")
)

func load(data []byte, o options) (*DB, error) {
	payload, codec, err := persistence.Unseal(data)
	if err != nil {
		return nil, err
	}
	if o.compressor == nil {
		// Unseal only succeeds for known names.
		o.compressor, _ = compress.ByName(codec)
	}
	r, err := persistence.NewReader(payload)
	if err != nil {
		return nil, err
	}

	h := r.Header()
	requestedDim, requestedBucket := o.dimension, o.bucketSize
	if o.dimension, err = conv.Uint32ToInt(h.Dimension); err != nil {
		return nil, err
	}
	if o.bucketSize, err = conv.Uint32ToInt(h.BucketSize); err != nil {
		return nil, err
	}
	if o.dimension != requestedDim || o.bucketSize != requestedBucket {
		o.logger.DebugContext(context.Background(), "stored configuration overrides options",
			"dimension", o.dimension,
			"bucket_size", o.bucketSize,
		)
	}

	db, err := newDB(o)
	if err != nil {
		return nil, err
	}

	seen := roaring64.New()
	for {
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if identity.Hash(e.ID) != e.Key {
			return nil, fmt.Errorf("%w: key %016x, id %q", errKeyMismatch, e.Key, e.ID)
		}
		if !seen.CheckedAdd(e.Key) {
			return nil, fmt.Errorf("%w: %016x", errDuplicateKey, e.Key)
		}
		if err := db.tree.Insert(e.Vector, e.Key); err != nil {
			return nil, err
		}
		if err := db.ids.Insert(e.Key, e.ID, e.Vector); err != nil {
			return nil, err
		}
	}
	return db, nil
}
