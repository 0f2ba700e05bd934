// Copyright (c) 2015-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"sync"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

func TestBlockIndex(t *testing.T) {
	t.Parallel()

	chain := newTestChain(5)
	index := NewBlockIndex()
	require.Zero(t, index.Len())

	for _, block := range chain {
		require.False(t, index.HaveBlock(&block.Hash))
		require.NoError(t, index.PutBlock(block))
		require.True(t, index.HaveBlock(&block.Hash))
	}
	require.Equal(t, len(chain), index.Len())

	for _, block := range chain {
		require.Same(t, block, index.LookupBlock(&block.Hash))
	}
	require.Nil(t, index.LookupBlock(&chainhash.Hash{}))

	// Re-adding a block replaces it.
	index.AddBlock(chain[0])
	require.Equal(t, len(chain), index.Len())
}

// TestBlockIndexConcurrentReads verifies difficulty from several goroutines
// sharing one index.
func TestBlockIndexConcurrentReads(t *testing.T) {
	t.Parallel()

	chain := newTestChain(testInterval + 1)
	index := newTestIndex(chain...)
	checker := DifficultyCheckerFunc(func(block, previous *Block, anchor uint32) bool {
		return previous != nil && anchor == chain[0].Timestamp
	})
	verifier := &RetargetVerifier{Interval: testInterval, Checker: checker}

	var wg sync.WaitGroup
	results := make([]bool, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := verifier.VerifyDifficulty(chain[testInterval], index)
			results[i] = ok && err == nil
		}(i)
	}
	wg.Wait()

	for i, ok := range results {
		require.True(t, ok, "goroutine %d", i)
	}
}

func TestNewBlock(t *testing.T) {
	t.Parallel()

	prevHash := testBlockHash(7)
	header := wire.NewBlockHeader(1, &prevHash, &chainhash.Hash{}, 0x1e0ffff0, 42)
	header.Timestamp = time.Unix(1523718257, 0)

	block := NewBlock(header, 8)
	require.EqualValues(t, 8, block.Height)
	require.Equal(t, header.BlockHash(), block.Hash)
	require.Equal(t, prevHash, block.PrevBlock)
	require.EqualValues(t, 1523718257, block.Timestamp)
	require.EqualValues(t, 0x1e0ffff0, block.Bits)
	require.Contains(t, block.String(), "height 8")
}
