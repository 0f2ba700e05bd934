// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package netparams

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sumcoin/sumspv/blockchain"
	"github.com/sumcoin/sumspv/chaincfg"
)

// ErrUnknownNetwork describes an error where a profile was requested for a
// network name that is not supported.
var ErrUnknownNetwork = errors.New("unknown network")

// Profile couples the parameters of a network with the difficulty rules of
// that network.  Exactly one profile is selected when the process starts and
// it is passed to whatever needs it; a profile is never modified after it is
// built.
type Profile struct {
	*chaincfg.Params

	// Verifier decides whether the difficulty of a block follows the rules
	// of the network.
	Verifier blockchain.DifficultyVerifier
}

// VerifyDifficulty returns whether the difficulty target of block is
// acceptable on the network, reading prior blocks from lookup.
func (p *Profile) VerifyDifficulty(block *blockchain.Block, lookup blockchain.BlockLookup) (bool, error) {
	return p.Verifier.VerifyDifficulty(block, lookup)
}

// MainNet returns the profile for the main network.  Its difficulty is checked
// with the full retarget rule.
func MainNet() *Profile {
	params := chaincfg.MainNetParams()
	return &Profile{
		Params: params,
		Verifier: &blockchain.RetargetVerifier{
			Interval: params.RetargetInterval,
			Checker:  blockchain.NewRetargetRule(params),
		},
	}
}

// TestNet returns the profile for the test network.  Difficulty is not checked
// on the test network.
func TestNet() *Profile {
	return &Profile{
		Params:   chaincfg.TestNetParams(),
		Verifier: blockchain.AcceptAllVerifier{},
	}
}

// profiles maps the names of the supported networks to their constructors.
var profiles = map[string]func() *Profile{
	"mainnet": MainNet,
	"testnet": TestNet,
}

// ForName returns the profile for the network with the passed name.
// ErrUnknownNetwork is returned for unsupported names.
func ForName(name string) (*Profile, error) {
	newProfile, ok := profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNetwork, name)
	}
	return newProfile(), nil
}

// Names returns the sorted names of the supported networks.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
