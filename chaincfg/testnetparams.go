// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2017 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"
	"time"
)

// TestNetParams returns the network parameters for the test network.  The
// seeds are shared with the main network.
func TestNetParams() *Params {
	return &Params{
		Name:        "testnet",
		Net:         TestNet,
		DefaultPort: "13333",
		DNSSeeds: []DNSSeed{
			{"dnsseed.sumcoinpool.org", false},
			{"dnsseed.sumcoinwallet.org", false},
		},
		Services: 0,

		// Chain parameters
		PowLimit:                 new(big.Int).Set(testNetPowLimit),
		PowLimitBits:             0x1e0ffff0,
		TargetTimespan:           time.Minute * 2016, // one block a minute
		RetargetInterval:         2016,
		RetargetAdjustmentFactor: 4, // 25% less, 400% more

		// Checkpoints ordered from oldest to newest.
		Checkpoints: mustCheckpointTable(
			Checkpoint{0, newHashFromStr("e1309964e3ac20bd3bf8f7cdd9ccfc9b5a6a779b9975abc1c89c132db618048c"), 1523718091, 0x1e0ffff0},
		),
	}
}
