// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"
	"time"

	btcchain "github.com/btcsuite/btcd/blockchain"
	"github.com/stretchr/testify/require"
	"github.com/sumcoin/sumspv/chaincfg"
)

// bitcoinRetargetParams returns params with the bitcoin main network retarget
// settings so the rule can be checked against well known retargets.
func bitcoinRetargetParams() *chaincfg.Params {
	return &chaincfg.Params{
		Name:                     "retargettest",
		PowLimit:                 btcchain.CompactToBig(0x1d00ffff),
		PowLimitBits:             0x1d00ffff,
		TargetTimespan:           time.Hour * 24 * 14,
		RetargetInterval:         2016,
		RetargetAdjustmentFactor: 4,
	}
}

// retargetPair returns a boundary block at height and its parent.
func retargetPair(height, prevTimestamp, prevBits, bits uint32) (*Block, *Block) {
	previous := &Block{
		Height:    height - 1,
		Hash:      testBlockHash(height - 1),
		Timestamp: prevTimestamp,
		Bits:      prevBits,
	}
	block := &Block{
		Height:    height,
		Hash:      testBlockHash(height),
		PrevBlock: previous.Hash,
		Timestamp: prevTimestamp + 600,
		Bits:      bits,
	}
	return block, previous
}

// TestRetargetRuleBoundary checks retargets against the same vectors the
// reference client uses for its own difficulty tests.
func TestRetargetRuleBoundary(t *testing.T) {
	t.Parallel()

	rule := NewRetargetRule(bitcoinRetargetParams())

	tests := []struct {
		name          string
		height        uint32
		anchor        uint32
		prevTimestamp uint32
		prevBits      uint32
		bits          uint32
	}{{
		name:          "regular retarget",
		height:        32256,
		anchor:        1261130161,
		prevTimestamp: 1262152739,
		prevBits:      0x1d00ffff,
		bits:          0x1d00d86a,
	}, {
		name:          "capped at pow limit",
		height:        2016,
		anchor:        1231006505,
		prevTimestamp: 1233061996,
		prevBits:      0x1d00ffff,
		bits:          0x1d00ffff,
	}, {
		name:          "lower adjustment limit",
		height:        68544,
		anchor:        1279008237,
		prevTimestamp: 1279297671,
		prevBits:      0x1c05a3f4,
		bits:          0x1c0168fd,
	}, {
		name:          "upper adjustment limit",
		height:        48384,
		anchor:        1263163443,
		prevTimestamp: 1269211443,
		prevBits:      0x1c387f6f,
		bits:          0x1d00e1fd,
	}}

	for _, test := range tests {
		block, previous := retargetPair(test.height, test.prevTimestamp,
			test.prevBits, test.bits)
		require.True(t, rule.CheckDifficulty(block, previous, test.anchor),
			test.name)

		// Any other target must be rejected.
		block.Bits = test.bits - 1
		require.False(t, rule.CheckDifficulty(block, previous, test.anchor),
			"%s: off by one target accepted", test.name)
	}
}

// TestRetargetRuleNotBoundary ensures the target may not change between
// retarget boundaries.
func TestRetargetRuleNotBoundary(t *testing.T) {
	t.Parallel()

	rule := NewRetargetRule(bitcoinRetargetParams())

	block, previous := retargetPair(32257, 1262153339, 0x1d00d86a, 0x1d00d86a)
	require.True(t, rule.CheckDifficulty(block, previous, 0))

	// The anchor is irrelevant off a boundary.
	require.True(t, rule.CheckDifficulty(block, previous, 1261130161))

	block.Bits = 0x1d00ffff
	require.False(t, rule.CheckDifficulty(block, previous, 0))
}

// TestRetargetRuleLinkage ensures a block that doesn't extend the passed
// previous block is rejected regardless of its target.
func TestRetargetRuleLinkage(t *testing.T) {
	t.Parallel()

	rule := NewRetargetRule(bitcoinRetargetParams())

	block, previous := retargetPair(100, 1262153339, 0x1d00ffff, 0x1d00ffff)
	require.False(t, rule.CheckDifficulty(block, nil, 0), "nil previous")

	wrongHeight := *previous
	wrongHeight.Height = 98
	require.False(t, rule.CheckDifficulty(block, &wrongHeight, 0),
		"wrong height")

	wrongHash := *previous
	wrongHash.Hash = testBlockHash(12345)
	require.False(t, rule.CheckDifficulty(block, &wrongHash, 0),
		"wrong hash")
}

// TestRetargetRuleNoAnchor ensures a boundary block without an anchor is only
// accepted when its target is within one adjustment of its parent.
func TestRetargetRuleNoAnchor(t *testing.T) {
	t.Parallel()

	rule := NewRetargetRule(bitcoinRetargetParams())

	tests := []struct {
		name     string
		prevBits uint32
		bits     uint32
		want     bool
	}{
		{"unchanged", 0x1c05a3f4, 0x1c05a3f4, true},
		{"quarter", 0x1c05a3f4, 0x1c0168fd, true},
		{"below quarter", 0x1c05a3f4, 0x1c0168fc, false},
		{"four times", 0x1c387f6f, 0x1d00e1fd, true},
		{"above four times", 0x1c387f6f, 0x1d00e1fe, false},
		{"above pow limit", 0x1d00ffff, 0x1d01ffff, false},
		{"zero target", 0x1d00ffff, 0, false},
	}
	for _, test := range tests {
		block, previous := retargetPair(2016*20, 1262153339,
			test.prevBits, test.bits)
		got := rule.CheckDifficulty(block, previous, 0)
		require.Equal(t, test.want, got, test.name)
	}
}

// TestVerifyDifficultyRetargetRule runs the verifier and the retarget rule
// together over a synthetic chain.
func TestVerifyDifficultyRetargetRule(t *testing.T) {
	t.Parallel()

	params := bitcoinRetargetParams()
	verifier := &RetargetVerifier{
		Interval: params.RetargetInterval,
		Checker:  NewRetargetRule(params),
	}

	// Blocks every ten minutes keep the target unchanged at the first
	// boundary, apart from the one interval the window is short by.
	chain := newTestChain(testInterval + 2)
	index := newTestIndex(chain...)

	ok, err := verifier.VerifyDifficulty(chain[2017], index)
	require.NoError(t, err)
	require.True(t, ok)

	anchor := chain[0].Timestamp
	want := NewRetargetRule(params).nextRequiredBits(chain[2015], anchor)
	boundary := *chain[2016]
	boundary.Bits = want
	ok, err = verifier.VerifyDifficulty(&boundary, index)
	require.NoError(t, err)
	require.True(t, ok)

	boundary.Bits = testBits
	if want != testBits {
		ok, err = verifier.VerifyDifficulty(&boundary, index)
		require.NoError(t, err)
		require.False(t, ok)
	}
}

// replayRetargets applies one retarget per passed window timespan, in order,
// starting from bits and returns the resulting compact target.
func replayRetargets(rule *RetargetRule, bits uint32, timespans []int64) uint32 {
	previous := &Block{Timestamp: 2000000000, Bits: bits}
	for _, span := range timespans {
		anchor := uint32(int64(previous.Timestamp) - span)
		previous.Bits = rule.nextRequiredBits(previous, anchor)
	}
	return previous.Bits
}

// checkpointRetargetRange returns the hardest and the easiest target the rule
// can reach between two checkpoints given the time that elapsed between them.
// Windows that lie entirely between the checkpoints share the elapsed time,
// while a window that started before the first checkpoint may take up to the
// maximum timespan.
func checkpointRetargetRange(rule *RetargetRule, from, to chaincfg.Checkpoint) (uint32, uint32) {
	var boundaries int
	for height := (from.Height/rule.interval + 1) * rule.interval; height <= to.Height; height += rule.interval {
		boundaries++
	}

	hardest := replayRetargets(rule, from.Bits, make([]int64, boundaries))

	inner := boundaries
	var head []int64
	if from.Height%rule.interval != 0 {
		inner--
		head = []int64{rule.maxTimespan}
	}
	elapsed := int64(to.Timestamp) - int64(from.Timestamp)
	easiest := hardest
	for spread := 1; spread <= inner; spread++ {
		// Short windows first so the proof of work limit only applies
		// at the end.
		timespans := make([]int64, inner-spread, boundaries)
		timespans = append(timespans, head...)
		for i := 0; i < spread; i++ {
			timespans = append(timespans, elapsed/int64(spread))
		}
		bits := replayRetargets(rule, from.Bits, timespans)
		if btcchain.CompactToBig(bits).Cmp(btcchain.CompactToBig(easiest)) > 0 {
			easiest = bits
		}
	}
	return hardest, easiest
}

// TestRetargetRuleMainNetCheckpoints replays the main network checkpoints
// through the retarget rule.  The target recorded at each checkpoint must be
// reachable from the previous one in the time that elapsed between them, and
// must not be reachable with a two week timespan.
func TestRetargetRuleMainNetCheckpoints(t *testing.T) {
	t.Parallel()

	params := chaincfg.MainNetParams()
	rule := NewRetargetRule(params)

	twoWeeks := chaincfg.MainNetParams()
	twoWeeks.TargetTimespan = time.Hour * 24 * 14
	twoWeeksRule := NewRetargetRule(twoWeeks)

	checkpoints := params.Checkpoints.All()
	require.Len(t, checkpoints, 6)
	for i := 1; i < len(checkpoints); i++ {
		from, to := checkpoints[i-1], checkpoints[i]
		target := btcchain.CompactToBig(to.Bits)

		hardest, easiest := checkpointRetargetRange(rule, from, to)
		require.LessOrEqual(t, btcchain.CompactToBig(hardest).Cmp(target), 0,
			"%d -> %d: hardest %08x, checkpoint %08x", from.Height,
			to.Height, hardest, to.Bits)
		require.GreaterOrEqual(t, btcchain.CompactToBig(easiest).Cmp(target), 0,
			"%d -> %d: easiest %08x, checkpoint %08x", from.Height,
			to.Height, easiest, to.Bits)

		_, easiest = checkpointRetargetRange(twoWeeksRule, from, to)
		require.Negative(t, btcchain.CompactToBig(easiest).Cmp(target),
			"%d -> %d: easiest two week %08x, checkpoint %08x",
			from.Height, to.Height, easiest, to.Bits)
	}
}
