// Package engine defines the key/value storage interface the header database
// is built on, so the on-disk backend can be chosen at runtime.
package engine

import "errors"

// ErrNotFound is returned by Snapshot.Get when the key does not exist.
var ErrNotFound = errors.New("engine: key not found")

// Engine is an opened key/value store.
type Engine interface {
	Transaction() (Transaction, error)
	Snapshot() (Snapshot, error)
	Close() error
}

// Transaction is an atomic batch of writes.  Nothing written through it is
// visible until Commit succeeds.
type Transaction interface {
	Put(key, value []byte) error
	Delete(key []byte) error
	Commit() error
	Discard()
}

// Snapshot is a consistent read-only view of the store.
type Snapshot interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	NewIterator(*Range) Iterator
	Releaser
}

type Releaser interface {
	Release()
}
