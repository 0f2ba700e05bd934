// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2017 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"
	"time"

	"github.com/btcsuite/btcd/wire"
)

const (
	// MainNet represents the main network magic.
	MainNet wire.BitcoinNet = 0xd3b7c2fd

	// TestNet represents the test network magic.
	TestNet wire.BitcoinNet = 0xd1b4c7f6
)

// MainNetParams returns the network parameters for the main network.  Each
// call builds a new value, so callers never share mutable state.
func MainNetParams() *Params {
	return &Params{
		Name:        "mainnet",
		Net:         MainNet,
		DefaultPort: "3333",
		DNSSeeds: []DNSSeed{
			{"dnsseed.sumcoinpool.org", false},
			{"dnsseed.sumcoinwallet.org", false},
		},
		Services: 0,

		// Chain parameters
		PowLimit:                 new(big.Int).Set(mainPowLimit),
		PowLimitBits:             0x1e0ffff0,
		TargetTimespan:           time.Minute * 2016, // one block a minute
		RetargetInterval:         2016,
		RetargetAdjustmentFactor: 4, // 25% less, 400% more

		// Checkpoints ordered from oldest to newest.
		Checkpoints: mustCheckpointTable(
			Checkpoint{0, newHashFromStr("8f4af36aa0bdb9ae5a34d191bcbd80748569e4ef2e47587f0a3f5749dde17eea"), 1523718257, 0x1e0ffff0},
			Checkpoint{25333, newHashFromStr("50c468441ba3f9c52bb150d5f003f4e7681c5e81dbe95be6467a54da34366c56"), 1524886718, 0x1d0d342d},
			Checkpoint{50666, newHashFromStr("7d79eb15730d115dc3e0677654b7c7a7436b5d881a198d0407c085aa00616adc"), 1526493746, 0x1c1503e5},
			Checkpoint{75999, newHashFromStr("fd98ddb372b9248a5685d5e77131fc1f5e14074c727549917068e91ca5d65d67"), 1532015023, 0x1d00a675},
			Checkpoint{101332, newHashFromStr("628d0da596ca299bb354dbe717f1755a34c9b800b997b4eccfc8791a5e926726"), 1534137488, 0x1c145140},
			Checkpoint{126665, newHashFromStr("04676601e0ae731b8289fb91244ae4507e10d17aa8e6e8141579451de21241bd"), 1536007335, 0x1c0f65ab},
		),
	}
}
