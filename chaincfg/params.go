// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2018 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// These variables are the chain proof-of-work limit parameters for each default
// network.
var (
	// mainPowLimit is the highest proof of work value a block can have for
	// the main network.  It is the value 0x0ffff0 * 256^(0x1e-3).
	mainPowLimit = new(big.Int).Lsh(big.NewInt(0x0ffff0), 8*(0x1e-3))

	// testNetPowLimit is the highest proof of work value a block can have
	// for the test network.  It matches the main network limit.
	testNetPowLimit = new(big.Int).Lsh(big.NewInt(0x0ffff0), 8*(0x1e-3))
)

// DNSSeed identifies a DNS seed.
type DNSSeed struct {
	// Host defines the hostname of the seed.
	Host string

	// HasFiltering defines whether the seed supports filtering
	// by service flags (wire.ServiceFlag).
	HasFiltering bool
}

// String returns the hostname of the DNS seed in human-readable form.
func (d DNSSeed) String() string {
	return d.Host
}

// Params defines a network by its parameters.  These parameters are used by
// SPV clients to identify the network, find peers, and to decide whether the
// difficulty of a downloaded header follows the retarget rules.
//
// Params values are built once by their constructor and must be treated as
// read-only afterwards.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Net defines the magic bytes used to identify the network.
	Net wire.BitcoinNet

	// DefaultPort defines the default peer-to-peer port for the network.
	DefaultPort string

	// DNSSeeds defines a list of DNS seeds for the network that are used
	// as one method to discover peers.
	DNSSeeds []DNSSeed

	// Services defines the service bits advertised to peers.
	Services wire.ServiceFlag

	// PowLimit defines the highest allowed proof of work value for a block
	// as a uint256.
	PowLimit *big.Int

	// PowLimitBits defines the highest allowed proof of work value for a
	// block in compact form.
	PowLimitBits uint32

	// TargetTimespan is the desired amount of time that should elapse
	// between difficulty retargets.
	TargetTimespan time.Duration

	// RetargetInterval is the number of blocks between difficulty
	// retargets.
	RetargetInterval uint32

	// RetargetAdjustmentFactor is the adjustment factor used to limit
	// the minimum and maximum amount of adjustment that can occur between
	// difficulty retargets.
	RetargetAdjustmentFactor int64

	// Checkpoints ordered from oldest to newest.
	Checkpoints *CheckpointTable
}

// IsRetargetBoundary returns whether a block at the passed height is one where
// the difficulty is allowed to change.
func (p *Params) IsRetargetBoundary(height uint32) bool {
	return p.RetargetInterval != 0 && height%p.RetargetInterval == 0
}

// LookupCheckpoint returns the checkpoint compiled into the params for the
// passed height, if any.
func (p *Params) LookupCheckpoint(height uint32) (Checkpoint, bool) {
	if p.Checkpoints == nil {
		return Checkpoint{}, false
	}
	return p.Checkpoints.Lookup(height)
}

// SeedHosts returns the hostnames of the network's DNS seeds.
func (p *Params) SeedHosts() []string {
	hosts := make([]string, 0, len(p.DNSSeeds))
	for _, seed := range p.DNSSeeds {
		hosts = append(hosts, seed.Host)
	}
	return hosts
}

// newHashFromStr converts the passed big-endian hex string into a
// chainhash.Hash.  It only differs from the one available in chainhash in that
// it panics on an error since it will only (and must only) be called with
// hard-coded, and therefore known good, hashes.
func newHashFromStr(hexStr string) chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		// The only way this can panic is if there is an error in the
		// hard-coded hashes, so it will only ever potentially panic
		// while the params are being constructed.
		panic(err)
	}
	return *hash
}

// mustCheckpointTable builds a table from hard-coded checkpoints and panics
// when they are out of order.
func mustCheckpointTable(checkpoints ...Checkpoint) *CheckpointTable {
	table, err := NewCheckpointTable(checkpoints...)
	if err != nil {
		panic("invalid hard-coded checkpoints: " + err.Error())
	}
	return table
}
