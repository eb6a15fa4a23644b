// Package lunavdb provides an embeddable exact nearest-neighbor index for Go.
//
// A DB maps string identifiers to fixed-length float32 embeddings and answers
// k-nearest-neighbor queries under squared Euclidean distance. Embeddings live
// in a bucketed k-d tree; a side map resolves tree keys back to identifiers.
//
// # Quick Start
//
//	db, _ := lunavdb.New([]lunavdb.Item{
//	    {ID: "1", Embedding: []float32{0.1, 0.2, 0.3}},
//	    {ID: "2", Embedding: []float32{0.4, 0.5, 0.6}},
//	}, lunavdb.WithDimension(3))
//
//	results, _ := db.Search([]float32{0.15, 0.25, 0.35}, 1)
//	fmt.Println(results[0].ID, results[0].Distance) // 1 0.0075
//
// # Dimension
//
// Every embedding is stored with exactly D values (WithDimension, default
// 1024). Shorter inputs are padded with zeros and longer inputs are truncated.
// Queries are normalized the same way. This is documented behavior, not an
// error.
//
// # Identifiers
//
// Each identifier is hashed to a 64-bit key with xxhash64. Add rejects an
// identifier whose key is already present; Index overwrites, last write wins.
// Remove is all-or-nothing: if any identifier is missing nothing is removed.
//
// # Persistence
//
// Dump produces a compressed, checksummed, self-describing blob and Load
// restores it by reinserting every entry:
//
//	data, _ := db.Dump()
//	db2, _ := lunavdb.Load(data)
//
// Save and Open do the same through a blobstore.Store (local disk, S3, MinIO).
//
// # Errors
//
// Errors match the sentinels ErrDuplicateID, ErrNotFound, ErrCorruptData,
// ErrInconsistent and ErrInvalidK with errors.Is; the typed errors
// (*DuplicateIDError, *NotFoundError, ...) carry details for errors.As.
//
// # Concurrency
//
// A DB is not safe for concurrent use. Guard it with a sync.RWMutex when it
// is shared; Search and Size only read.
package lunavdb
