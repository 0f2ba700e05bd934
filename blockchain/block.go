// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// Block is the part of a block header the difficulty rules care about, along
// with the height of the block in the chain.  Blocks link backwards to their
// parent through PrevBlock.
type Block struct {
	// Height is the position of the block in the chain.  It is known once
	// the parent of the block is known.
	Height uint32

	// Hash is the identifier of the block.
	Hash chainhash.Hash

	// PrevBlock is the hash of the parent block.
	PrevBlock chainhash.Hash

	// Timestamp is the creation time the block declares, in seconds since
	// the unix epoch.
	Timestamp uint32

	// Bits is the difficulty target of the block in compact form.
	Bits uint32
}

// NewBlock returns a block for the passed header at the passed height.
func NewBlock(header *wire.BlockHeader, height uint32) *Block {
	return &Block{
		Height:    height,
		Hash:      header.BlockHash(),
		PrevBlock: header.PrevBlock,
		Timestamp: uint32(header.Timestamp.Unix()),
		Bits:      header.Bits,
	}
}

// String returns the block in human-readable form.
func (b *Block) String() string {
	return fmt.Sprintf("%v (height %d)", b.Hash, b.Height)
}

// BlockLookup provides access to previously seen blocks by hash.
//
// Implementations used with a DifficultyVerifier must hold at least the
// retarget interval's worth of contiguous ancestors of any block verified at a
// retarget boundary; when they don't, verification silently falls back to the
// insufficient history path.  Verifiers only read through the lookup, so an
// implementation shared between goroutines needs to be safe for concurrent
// reads.
type BlockLookup interface {
	// LookupBlock returns the block with the passed hash, or nil when it
	// is not known.
	LookupBlock(hash *chainhash.Hash) *Block
}

// BlockLookupFunc is an adapter to allow the use of ordinary functions as a
// BlockLookup.
type BlockLookupFunc func(hash *chainhash.Hash) *Block

// LookupBlock calls f(hash).
func (f BlockLookupFunc) LookupBlock(hash *chainhash.Hash) *Block {
	return f(hash)
}
