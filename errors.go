package lunavdb

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/lunavdb/compress"
	"github.com/hupe1980/lunavdb/internal/identity"
	"github.com/hupe1980/lunavdb/internal/kdtree"
	"github.com/hupe1980/lunavdb/persistence"
)

var (
	// ErrDuplicateID is returned by Add when the identifier's key is already indexed.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrNotFound is returned by Remove when an identifier is not indexed.
	ErrNotFound = errors.New("not found")

	// ErrCorruptData is returned by Load when the bytes are not a valid dump.
	ErrCorruptData = errors.New("corrupt data")

	// ErrInconsistent signals that the tree and the identity map disagree.
	// It indicates a defect in this package, never a caller error.
	ErrInconsistent = errors.New("index inconsistent")

	// ErrInvalidK is returned when k is negative.
	ErrInvalidK = errors.New("k must not be negative")
)

// DuplicateIDError reports an Add whose key is already present.
//
// Existing is the identifier stored under the key. It differs from ID only
// when two identifiers hash to the same key.
type DuplicateIDError struct {
	ID       string
	Existing string
	Key      uint64
}

func (e *DuplicateIDError) Error() string {
	if e.Existing != e.ID {
		return fmt.Sprintf("duplicate id %q: key %016x already held by %q", e.ID, e.Key, e.Existing)
	}
	return fmt.Sprintf("duplicate id %q", e.ID)
}

func (e *DuplicateIDError) Is(target error) bool { return target == ErrDuplicateID }

// NotFoundError lists every identifier of a Remove call that was not indexed.
type NotFoundError struct {
	IDs []string
}

func (e *NotFoundError) Error() string {
	quoted := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		quoted[i] = fmt.Sprintf("%q", id)
	}
	return fmt.Sprintf("not found: %s", strings.Join(quoted, ", "))
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// CorruptDataError wraps a decode failure in Load.
//
// The original underlying error can be accessed via errors.Unwrap.
type CorruptDataError struct {
	cause error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt data: %v", e.cause)
}

func (e *CorruptDataError) Is(target error) bool { return target == ErrCorruptData }

func (e *CorruptDataError) Unwrap() error { return e.cause }

// ConsistencyError reports diverging tree and identity map sizes.
type ConsistencyError struct {
	TreeSize int
	MapSize  int
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("index inconsistent: tree holds %d entries, id map holds %d", e.TreeSize, e.MapSize)
}

func (e *ConsistencyError) Is(target error) bool { return target == ErrInconsistent }

// ErrInvalidDimension indicates an invalid configured dimension.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidDimension struct {
	Dimension int
	cause     error
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

func (e *ErrInvalidDimension) Unwrap() error { return e.cause }

// ErrInvalidBucketSize indicates an invalid configured bucket capacity.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidBucketSize struct {
	BucketSize int
	cause      error
}

func (e *ErrInvalidBucketSize) Error() string {
	return fmt.Sprintf("invalid bucket size: %d", e.BucketSize)
}

func (e *ErrInvalidBucketSize) Unwrap() error { return e.cause }

func corrupt(err error) error {
	var cd *CorruptDataError
	if errors.As(err, &cd) {
		return err
	}
	return &CorruptDataError{cause: err}
}

// translateError maps errors of the internal packages onto the public contract.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Decode failures of any layer.
	var cm *persistence.ChecksumMismatchError
	switch {
	case errors.As(err, &cm),
		errors.Is(err, persistence.ErrInvalidMagic),
		errors.Is(err, persistence.ErrInvalidVersion),
		errors.Is(err, persistence.ErrInvalidHeader),
		errors.Is(err, persistence.ErrTruncated),
		errors.Is(err, persistence.ErrTrailingData),
		errors.Is(err, persistence.ErrUnknownCodec),
		errors.Is(err, compress.ErrCorrupt):
		return corrupt(err)
	}

	// A tree or map that cannot find an entry the other one holds.
	if errors.Is(err, kdtree.ErrPointNotFound) || errors.Is(err, identity.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrInconsistent, err)
	}

	var dm *kdtree.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrInvalidDimension{Dimension: dm.Actual, cause: err}
	}

	return err
}
