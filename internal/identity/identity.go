// Package identity maps caller identifiers to the 64-bit keys used inside the index.
//
// Keys are xxhash64 digests of the identifier bytes. The digest is stable across
// processes and releases, which the persisted format depends on. Distinct
// identifiers may collide; the map keeps the identifier next to the key so
// callers can verify an exact match.
package identity

import (
	"errors"
	"slices"

	"github.com/cespare/xxhash/v2"
)

var (
	// ErrDuplicateKey is returned by Insert when the key is already present.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound is returned by Remove when the key is absent.
	ErrNotFound = errors.New("key not found")
)

// Hash returns the key for an identifier.
func Hash(id string) uint64 {
	return xxhash.Sum64String(id)
}

// Record is the map entry for one key.
//
// Vector references the embedding owned by the spatial tree; the map never
// copies or mutates it.
type Record struct {
	ID     string
	Vector []float32
}

// Map is a key to identifier lookup. It is not safe for concurrent use.
type Map struct {
	records map[uint64]Record
}

// New returns an empty map with room for capacity entries.
func New(capacity int) *Map {
	return &Map{records: make(map[uint64]Record, capacity)}
}

// Insert adds a mapping and fails with ErrDuplicateKey if key is present.
func (m *Map) Insert(key uint64, id string, vec []float32) error {
	if _, ok := m.records[key]; ok {
		return ErrDuplicateKey
	}
	m.records[key] = Record{ID: id, Vector: vec}
	return nil
}

// Put adds or overwrites a mapping.
func (m *Map) Put(key uint64, id string, vec []float32) {
	m.records[key] = Record{ID: id, Vector: vec}
}

// Remove deletes key and returns its record.
func (m *Map) Remove(key uint64) (Record, error) {
	rec, ok := m.records[key]
	if !ok {
		return Record{}, ErrNotFound
	}
	delete(m.records, key)
	return rec, nil
}

// Get returns the record for key.
func (m *Map) Get(key uint64) (Record, bool) {
	rec, ok := m.records[key]
	return rec, ok
}

// Lookup resolves id to its key and reports whether the stored identifier
// is exactly id. A hash collision with a different identifier yields false.
func (m *Map) Lookup(id string) (uint64, Record, bool) {
	key := Hash(id)
	rec, ok := m.records[key]
	if !ok || rec.ID != id {
		return key, Record{}, false
	}
	return key, rec, true
}

// Len returns the number of mappings.
func (m *Map) Len() int { return len(m.records) }

// Reset removes all mappings.
func (m *Map) Reset() {
	clear(m.records)
}

// Keys returns all keys in ascending order.
func (m *Map) Keys() []uint64 {
	keys := make([]uint64, 0, len(m.records))
	for k := range m.records {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Range calls fn for every mapping in ascending key order until fn returns false.
func (m *Map) Range(fn func(key uint64, rec Record) bool) {
	for _, k := range m.Keys() {
		if !fn(k, m.records[k]) {
			return
		}
	}
}
