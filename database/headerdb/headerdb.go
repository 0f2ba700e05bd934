// Copyright (c) 2015-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package headerdb persists the blocks an SPV client has accepted so the
difficulty rules can read their history after a restart.

Two indexes are kept on top of a key/value engine:

	Key                     Value    Size      Description
	h| + hash               record   44 bytes  Block record, see below
	i| + height (BE)        hash     32 bytes  Hash of the block at height

A block record is the height, the parent hash, the timestamp and the compact
difficulty bits of the block.  Heights are big-endian in both places so the
height index iterates in height order.
*/
package headerdb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/sumcoin/sumspv/blockchain"
	"github.com/sumcoin/sumspv/database/engine"
	"github.com/sumcoin/sumspv/database/engine/leveldb"
	"github.com/sumcoin/sumspv/database/engine/pebbledb"
)

const (
	// blockRecordSize is the size of a serialized block record.
	blockRecordSize = 4 + chainhash.HashSize + 4 + 4

	// DefaultDBType is the backend used when none is named.
	DefaultDBType = "leveldb"
)

var (
	// byteOrder is the preferred byte order used for serializing numeric
	// fields for storage in the database.
	byteOrder = binary.BigEndian

	// hashIndexPrefix is the key prefix of the hash to block record index.
	hashIndexPrefix = []byte("h|")

	// heightIndexPrefix is the key prefix of the height to hash index.
	heightIndexPrefix = []byte("i|")
)

var (
	// ErrBlockNotFound is returned when a requested block is not stored.
	ErrBlockNotFound = errors.New("block not found")

	// ErrCorruptRecord is returned when a stored value can't be decoded.
	ErrCorruptRecord = errors.New("corrupt block record")

	// ErrUnknownDBType is returned by Open for unsupported backends.
	ErrUnknownDBType = errors.New("unknown database type")
)

// backends maps the supported database types to the function opening them.
var backends = map[string]func(dbPath string) (engine.Engine, error){
	"leveldb": func(dbPath string) (engine.Engine, error) {
		return leveldb.NewDB(dbPath, false)
	},
	"pebble": func(dbPath string) (engine.Engine, error) {
		return pebbledb.NewDB(dbPath, false, 0, 0)
	},
}

// SupportedDBTypes returns the sorted names of the supported backends.
func SupportedDBTypes() []string {
	types := make([]string, 0, len(backends))
	for dbType := range backends {
		types = append(types, dbType)
	}
	sort.Strings(types)
	return types
}

// Store is a persistent block store.  It implements blockchain.BlockLookup so
// it can be handed to a difficulty verifier directly.
//
// Store is safe for concurrent access.  Each read works on its own snapshot.
type Store struct {
	db engine.Engine
}

// Ensure Store implements the BlockLookup interface.
var _ blockchain.BlockLookup = (*Store)(nil)

// Open opens, creating it when missing, the store of type dbType at dbPath.
func Open(dbType, dbPath string) (*Store, error) {
	openDB, ok := backends[dbType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDBType, dbType)
	}
	db, err := openDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open %s database at %s: %w", dbType,
			dbPath, err)
	}
	log.Infof("Opened %s header database at %s", dbType, dbPath)
	return New(db), nil
}

// New returns a store on an already opened engine.  Closing the store closes
// the engine.
func New(db engine.Engine) *Store {
	return &Store{db: db}
}

// Close closes the underlying engine.
func (s *Store) Close() error {
	return s.db.Close()
}

// hashIndexKey returns the key of the record of the block with hash.
func hashIndexKey(hash *chainhash.Hash) []byte {
	key := make([]byte, len(hashIndexPrefix)+chainhash.HashSize)
	copy(key, hashIndexPrefix)
	copy(key[len(hashIndexPrefix):], hash[:])
	return key
}

// heightIndexKey returns the key of the height index entry for height.
func heightIndexKey(height uint32) []byte {
	key := make([]byte, len(heightIndexPrefix)+4)
	copy(key, heightIndexPrefix)
	byteOrder.PutUint32(key[len(heightIndexPrefix):], height)
	return key
}

// serializeBlock returns the record stored for block.
func serializeBlock(block *blockchain.Block) []byte {
	var record [blockRecordSize]byte
	byteOrder.PutUint32(record[0:4], block.Height)
	copy(record[4:36], block.PrevBlock[:])
	byteOrder.PutUint32(record[36:40], block.Timestamp)
	byteOrder.PutUint32(record[40:44], block.Bits)
	return record[:]
}

// deserializeBlock decodes the record of the block with hash.
func deserializeBlock(hash *chainhash.Hash, record []byte) (*blockchain.Block, error) {
	if len(record) != blockRecordSize {
		return nil, fmt.Errorf("%w: block %v has %d bytes, want %d",
			ErrCorruptRecord, hash, len(record), blockRecordSize)
	}
	block := &blockchain.Block{
		Height:    byteOrder.Uint32(record[0:4]),
		Hash:      *hash,
		Timestamp: byteOrder.Uint32(record[36:40]),
		Bits:      byteOrder.Uint32(record[40:44]),
	}
	copy(block.PrevBlock[:], record[4:36])
	return block, nil
}

// PutBlock stores block and points the height index at it.  Storing a block
// at a height that is already indexed replaces the index entry.
func (s *Store) PutBlock(block *blockchain.Block) error {
	tx, err := s.db.Transaction()
	if err != nil {
		return err
	}
	defer tx.Discard()

	err = tx.Put(hashIndexKey(&block.Hash), serializeBlock(block))
	if err != nil {
		return err
	}
	err = tx.Put(heightIndexKey(block.Height), block.Hash[:])
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	log.Tracef("Stored block %v", block)
	return nil
}

// fetchBlock reads the block with hash from snapshot.
func fetchBlock(snapshot engine.Snapshot, hash *chainhash.Hash) (*blockchain.Block, error) {
	record, err := snapshot.Get(hashIndexKey(hash))
	if errors.Is(err, engine.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrBlockNotFound, hash)
	}
	if err != nil {
		return nil, err
	}
	return deserializeBlock(hash, record)
}

// FetchBlock returns the block with hash.  ErrBlockNotFound is returned when
// it isn't stored.
func (s *Store) FetchBlock(hash *chainhash.Hash) (*blockchain.Block, error) {
	snapshot, err := s.db.Snapshot()
	if err != nil {
		return nil, err
	}
	defer snapshot.Release()

	return fetchBlock(snapshot, hash)
}

// LookupBlock returns the block with hash, or nil when it isn't stored or
// can't be read.  Read failures are logged.
func (s *Store) LookupBlock(hash *chainhash.Hash) *blockchain.Block {
	block, err := s.FetchBlock(hash)
	switch {
	case errors.Is(err, ErrBlockNotFound):
		return nil
	case err != nil:
		log.Errorf("Unable to read block %v: %v", hash, err)
		return nil
	}
	return block
}

// BlockByHeight returns the block the height index holds for height.
func (s *Store) BlockByHeight(height uint32) (*blockchain.Block, error) {
	snapshot, err := s.db.Snapshot()
	if err != nil {
		return nil, err
	}
	defer snapshot.Release()

	hashBytes, err := snapshot.Get(heightIndexKey(height))
	if errors.Is(err, engine.ErrNotFound) {
		return nil, fmt.Errorf("%w: no block at height %d",
			ErrBlockNotFound, height)
	}
	if err != nil {
		return nil, err
	}

	hash, err := chainhash.NewHash(hashBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: height %d: %v", ErrCorruptRecord,
			height, err)
	}
	return fetchBlock(snapshot, hash)
}

// Tip returns the stored block with the greatest height.  ErrBlockNotFound is
// returned when the store is empty.
func (s *Store) Tip() (*blockchain.Block, error) {
	snapshot, err := s.db.Snapshot()
	if err != nil {
		return nil, err
	}
	defer snapshot.Release()

	iter := snapshot.NewIterator(engine.BytesPrefix(heightIndexPrefix))
	defer iter.Release()

	if !iter.Last() {
		if err := iter.Error(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: empty store", ErrBlockNotFound)
	}

	hash, err := chainhash.NewHash(iter.Value())
	if err != nil {
		return nil, fmt.Errorf("%w: height index: %v", ErrCorruptRecord,
			err)
	}
	return fetchBlock(snapshot, hash)
}
