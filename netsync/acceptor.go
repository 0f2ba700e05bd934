// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2017 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package netsync

import (
	"errors"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/wire"
	"github.com/decred/dcrd/lru"
	"github.com/sumcoin/sumspv/blockchain"
	"github.com/sumcoin/sumspv/chaincfg"
	"github.com/sumcoin/sumspv/netparams"
)

const (
	// DefaultRejectCacheSize is the number of rejected header hashes
	// remembered when the config doesn't say otherwise.
	DefaultRejectCacheSize = 1000
)

// HeaderAcceptor checks headers against the difficulty rules of a network
// and stores the ones that pass.
//
// HeaderAcceptor is safe for concurrent access.  Headers are processed one at
// a time.
type HeaderAcceptor struct {
	profile  *netparams.Profile
	store    HeaderStore
	rejected lru.Cache
	progress *headerProgressLogger

	// mtx serializes processing so a header is checked and stored against
	// the same view of the store.
	mtx sync.Mutex
}

// New returns a header acceptor for the passed config.
func New(cfg *Config) (*HeaderAcceptor, error) {
	if cfg.Profile == nil {
		return nil, errors.New("netsync: config has no network profile")
	}
	if cfg.Store == nil {
		return nil, errors.New("netsync: config has no header store")
	}

	cacheSize := cfg.RejectCacheSize
	if cacheSize == 0 {
		cacheSize = DefaultRejectCacheSize
	}
	return &HeaderAcceptor{
		profile:  cfg.Profile,
		store:    cfg.Store,
		rejected: lru.NewCache(cacheSize),
		progress: newHeaderProgressLogger("Accepted", log),
	}, nil
}

// SeedCheckpoint stores a checkpoint of the network as a trusted block so
// headers can be accepted from there on.  Checkpoints that are not part of
// the network's table are refused with ErrBadCheckpoint.
func (a *HeaderAcceptor) SeedCheckpoint(cp chaincfg.Checkpoint) error {
	expected, ok := a.profile.LookupCheckpoint(cp.Height)
	if !ok || expected != cp {
		str := fmt.Sprintf("checkpoint %v is not a %s checkpoint", cp,
			a.profile.Name)
		return blockchain.RuleError{
			ErrorCode:   blockchain.ErrBadCheckpoint,
			Description: str,
		}
	}

	a.mtx.Lock()
	defer a.mtx.Unlock()

	// A stored checkpoint block keeps the link to its parent.
	if a.store.LookupBlock(&cp.Hash) == nil {
		block := &blockchain.Block{
			Height:    cp.Height,
			Hash:      cp.Hash,
			Timestamp: cp.Timestamp,
			Bits:      cp.Bits,
		}
		if err := a.store.PutBlock(block); err != nil {
			return err
		}
	}

	// A checkpoint vouches for its hash, so forget any earlier rejection.
	a.rejected.Delete(cp.Hash)

	log.Infof("Seeded %s checkpoint %v", a.profile.Name, cp)
	return nil
}

// ProcessHeader checks the passed header and stores it when it is acceptable.
// The accepted block is returned.
//
// The header must extend a stored block.  The returned error is a
// blockchain.RuleError with one of these codes when the header is refused:
//
//   - ErrNilBlock when no header is passed
//   - ErrKnownInvalid when the header was refused before
//   - ErrDuplicateBlock when the header is already stored
//   - ErrMissingParent when its parent is not stored
//   - ErrUnexpectedDifficulty when its difficulty breaks the network rules
//
// Any other error comes from the verifier or the store.
func (a *HeaderAcceptor) ProcessHeader(header *wire.BlockHeader) (*blockchain.Block, error) {
	if header == nil {
		return nil, blockchain.RuleError{
			ErrorCode:   blockchain.ErrNilBlock,
			Description: "no header to process",
		}
	}
	hash := header.BlockHash()

	a.mtx.Lock()
	defer a.mtx.Unlock()

	if a.rejected.Contains(hash) {
		str := fmt.Sprintf("header %v was rejected before", hash)
		return nil, blockchain.RuleError{
			ErrorCode:   blockchain.ErrKnownInvalid,
			Description: str,
		}
	}
	if a.store.LookupBlock(&hash) != nil {
		str := fmt.Sprintf("already have header %v", hash)
		return nil, blockchain.RuleError{
			ErrorCode:   blockchain.ErrDuplicateBlock,
			Description: str,
		}
	}

	parent := a.store.LookupBlock(&header.PrevBlock)
	if parent == nil {
		str := fmt.Sprintf("header %v extends unknown block %v", hash,
			header.PrevBlock)
		return nil, blockchain.RuleError{
			ErrorCode:   blockchain.ErrMissingParent,
			Description: str,
		}
	}

	block := blockchain.NewBlock(header, parent.Height+1)
	ok, err := a.profile.VerifyDifficulty(block, a.store)
	if err != nil {
		return nil, err
	}
	if !ok {
		a.rejected.Add(hash)
		log.Debugf("Rejected header %v with bits %08x", block, block.Bits)

		str := fmt.Sprintf("header %v has unexpected difficulty bits "+
			"%08x", block, block.Bits)
		return nil, blockchain.RuleError{
			ErrorCode:   blockchain.ErrUnexpectedDifficulty,
			Description: str,
		}
	}

	if err := a.store.PutBlock(block); err != nil {
		return nil, err
	}
	log.Tracef("Accepted header %v", block)
	a.progress.LogBlockHeight(block)

	return block, nil
}
