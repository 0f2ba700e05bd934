// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package netsync

import (
	"github.com/sumcoin/sumspv/blockchain"
	"github.com/sumcoin/sumspv/netparams"
)

// HeaderStore is where accepted blocks are kept.  Both blockchain.BlockIndex
// and headerdb.Store implement it.
type HeaderStore interface {
	blockchain.BlockLookup

	// PutBlock stores the passed block.
	PutBlock(block *blockchain.Block) error
}

// Config is a configuration struct used to initialize a new HeaderAcceptor.
type Config struct {
	// Profile selects the network whose rules headers are checked against.
	Profile *netparams.Profile

	// Store holds the accepted blocks.  It must contain at least one
	// interval of history, or a seeded checkpoint, for headers to connect.
	Store HeaderStore

	// RejectCacheSize is the number of rejected header hashes remembered.
	// Zero selects DefaultRejectCacheSize.
	RejectCacheSize uint
}
