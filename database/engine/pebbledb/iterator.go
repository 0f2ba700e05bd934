package pebbledb

import (
	"github.com/cockroachdb/pebble"
	"github.com/sumcoin/sumspv/database/engine"
)

// Iterator adapts a pebble iterator to engine.Iterator.
type Iterator struct {
	*pebble.Iterator
	released bool
}

func (i *Iterator) Seek(key []byte) bool {
	return i.Iterator.SeekGE(key)
}

// Key returns nil once the iterator is exhausted.
func (i *Iterator) Key() []byte {
	if !i.Iterator.Valid() {
		return nil
	}
	return i.Iterator.Key()
}

func (i *Iterator) Value() []byte {
	if !i.Iterator.Valid() {
		return nil
	}
	return i.Iterator.Value()
}

func (i *Iterator) Release() {
	if !i.released {
		i.released = true
		i.Iterator.Close()
	}
}

func (i *Iterator) Error() error {
	if i.released {
		return engine.ErrIterReleased
	}
	return i.Iterator.Error()
}

// errIterator is an empty iterator that reports err.
type errIterator struct {
	err      error
	released bool
}

func (i *errIterator) First() bool        { return false }
func (i *errIterator) Last() bool         { return false }
func (i *errIterator) Seek(_ []byte) bool { return false }
func (i *errIterator) Next() bool         { return false }
func (i *errIterator) Prev() bool         { return false }
func (i *errIterator) Valid() bool        { return false }
func (i *errIterator) Key() []byte        { return nil }
func (i *errIterator) Value() []byte      { return nil }
func (i *errIterator) Release()           { i.released = true }

func (i *errIterator) Error() error {
	if i.released {
		return engine.ErrIterReleased
	}
	return i.err
}
