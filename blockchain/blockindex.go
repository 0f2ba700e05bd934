// Copyright (c) 2015-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// BlockIndex provides facilities for keeping track of an in-memory index of
// blocks by hash.  It implements BlockLookup.
//
// BlockIndex is safe for concurrent access.
type BlockIndex struct {
	sync.RWMutex
	index map[chainhash.Hash]*Block
}

// Ensure BlockIndex implements the BlockLookup interface.
var _ BlockLookup = (*BlockIndex)(nil)

// NewBlockIndex returns a new empty instance of a block index.
func NewBlockIndex() *BlockIndex {
	return &BlockIndex{
		index: make(map[chainhash.Hash]*Block),
	}
}

// HaveBlock returns whether or not the block index contains the provided hash.
//
// This function is safe for concurrent access.
func (bi *BlockIndex) HaveBlock(hash *chainhash.Hash) bool {
	bi.RLock()
	_, hasBlock := bi.index[*hash]
	bi.RUnlock()
	return hasBlock
}

// LookupBlock returns the block with the provided hash, or nil if there is no
// such block.
//
// This function is safe for concurrent access.
func (bi *BlockIndex) LookupBlock(hash *chainhash.Hash) *Block {
	bi.RLock()
	block := bi.index[*hash]
	bi.RUnlock()
	return block
}

// AddBlock adds the provided block to the block index.  Duplicate entries are
// not checked so it is up to caller to avoid adding them.
//
// This function is safe for concurrent access.
func (bi *BlockIndex) AddBlock(block *Block) {
	bi.Lock()
	bi.index[block.Hash] = block
	bi.Unlock()
}

// PutBlock adds the provided block to the block index.  It is AddBlock with an
// error return so the index can serve as a header store.
//
// This function is safe for concurrent access.
func (bi *BlockIndex) PutBlock(block *Block) error {
	bi.AddBlock(block)
	return nil
}

// Len returns the number of blocks in the index.
//
// This function is safe for concurrent access.
func (bi *BlockIndex) Len() int {
	bi.RLock()
	n := len(bi.index)
	bi.RUnlock()
	return n
}
