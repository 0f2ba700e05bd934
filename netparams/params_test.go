// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package netparams

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sumcoin/sumspv/blockchain"
	"github.com/sumcoin/sumspv/chaincfg"
)

func TestForName(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"mainnet", "testnet"}, Names())

	for _, name := range Names() {
		profile, err := ForName(name)
		require.NoError(t, err)
		require.Equal(t, name, profile.Name)
		require.NotNil(t, profile.Verifier)
	}

	_, err := ForName("regtest")
	if !errors.Is(err, ErrUnknownNetwork) {
		t.Fatalf("unexpected error -- got %v, want %v", err,
			ErrUnknownNetwork)
	}
}

// TestProfileValues ensures each profile exposes the values of its network.
func TestProfileValues(t *testing.T) {
	t.Parallel()

	mainNet := MainNet()
	require.EqualValues(t, 0xd3b7c2fd, mainNet.Net)
	require.Equal(t, "3333", mainNet.DefaultPort)
	require.Equal(t, []string{"dnsseed.sumcoinpool.org",
		"dnsseed.sumcoinwallet.org"}, mainNet.SeedHosts())
	require.Zero(t, mainNet.Services)
	require.IsType(t, &blockchain.RetargetVerifier{}, mainNet.Verifier)

	testNet := TestNet()
	require.EqualValues(t, 0xd1b4c7f6, testNet.Net)
	require.Equal(t, "13333", testNet.DefaultPort)
	require.NotEmpty(t, testNet.DNSSeeds)
	require.IsType(t, blockchain.AcceptAllVerifier{}, testNet.Verifier)

	// Profiles for different networks never share a magic or a port.
	require.NotEqual(t, mainNet.Net, testNet.Net)
	require.NotEqual(t, mainNet.DefaultPort, testNet.DefaultPort)
}

// TestProfileCheckpointRoundTrip ensures the checkpoints read back from a
// profile are the ones it was built from.
func TestProfileCheckpointRoundTrip(t *testing.T) {
	t.Parallel()

	mainNet := MainNet()
	require.Equal(t, chaincfg.MainNetParams().Checkpoints.All(),
		mainNet.Checkpoints.All())

	for _, cp := range mainNet.Checkpoints.All() {
		got, ok := mainNet.LookupCheckpoint(cp.Height)
		require.True(t, ok)
		require.Equal(t, cp, got)
	}

	testNet := TestNet()
	require.Equal(t, chaincfg.TestNetParams().Checkpoints.All(),
		testNet.Checkpoints.All())
}

// TestProfileVerifyDifficulty runs both network variants over the same
// candidates.
func TestProfileVerifyDifficulty(t *testing.T) {
	t.Parallel()

	mainNet, testNet := MainNet(), TestNet()
	cp, ok := mainNet.Checkpoints.Latest()
	require.True(t, ok)

	parent := &blockchain.Block{
		Height:    cp.Height,
		Hash:      cp.Hash,
		Timestamp: cp.Timestamp,
		Bits:      cp.Bits,
	}
	index := blockchain.NewBlockIndex()
	index.AddBlock(parent)

	child := &blockchain.Block{
		Height:    cp.Height + 1,
		PrevBlock: cp.Hash,
		Timestamp: cp.Timestamp + 150,
		Bits:      cp.Bits,
	}
	child.Hash[0] = 0x01

	ok, err := mainNet.VerifyDifficulty(child, index)
	require.NoError(t, err)
	require.True(t, ok)

	// Changing the target off a retarget boundary fails on the main network
	// but is accepted on the test network.
	child.Bits = mainNet.PowLimitBits
	ok, err = mainNet.VerifyDifficulty(child, index)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = testNet.VerifyDifficulty(child, index)
	require.NoError(t, err)
	require.True(t, ok)

	// Malformed input is a caller error on the main network only.
	_, err = mainNet.VerifyDifficulty(nil, index)
	require.True(t, blockchain.IsErrorCode(err, blockchain.ErrNilBlock))

	ok, err = testNet.VerifyDifficulty(nil, nil)
	require.NoError(t, err)
	require.True(t, ok)
}
