// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"
	"time"

	btcchain "github.com/btcsuite/btcd/blockchain"
	"github.com/sumcoin/sumspv/chaincfg"
)

// DifficultyChecker performs the numeric part of difficulty verification.  It
// compares the target of block against the target expected from previous and,
// on a retarget boundary, the time elapsed since anchorTimestamp.
//
// previous is nil when the parent of the block is not known.  anchorTimestamp
// is zero when the block is not on a retarget boundary or when not enough
// history was available to find the start of the retarget window.
type DifficultyChecker interface {
	CheckDifficulty(block, previous *Block, anchorTimestamp uint32) bool
}

// DifficultyCheckerFunc is an adapter to allow the use of ordinary functions as
// a DifficultyChecker.
type DifficultyCheckerFunc func(block, previous *Block, anchorTimestamp uint32) bool

// CheckDifficulty calls f(block, previous, anchorTimestamp).
func (f DifficultyCheckerFunc) CheckDifficulty(block, previous *Block, anchorTimestamp uint32) bool {
	return f(block, previous, anchorTimestamp)
}

// RetargetRule is a DifficultyChecker implementing the classic retarget rule:
// the target only changes every RetargetInterval blocks, by the ratio between
// the actual and the desired time the last window took, limited to the
// adjustment factor in either direction and to the proof of work limit.
type RetargetRule struct {
	interval         uint32
	targetTimespan   int64 // seconds
	minTimespan      int64 // seconds
	maxTimespan      int64 // seconds
	adjustmentFactor int64
	powLimit         *big.Int
}

// Ensure RetargetRule implements the DifficultyChecker interface.
var _ DifficultyChecker = (*RetargetRule)(nil)

// NewRetargetRule returns a RetargetRule for the passed network parameters.
func NewRetargetRule(params *chaincfg.Params) *RetargetRule {
	targetTimespan := int64(params.TargetTimespan / time.Second)
	adjustmentFactor := params.RetargetAdjustmentFactor
	return &RetargetRule{
		interval:         params.RetargetInterval,
		targetTimespan:   targetTimespan,
		minTimespan:      targetTimespan / adjustmentFactor,
		maxTimespan:      targetTimespan * adjustmentFactor,
		adjustmentFactor: adjustmentFactor,
		powLimit:         new(big.Int).Set(params.PowLimit),
	}
}

// CheckDifficulty returns whether the target of block follows the retarget
// rule given its parent and the timestamp at the start of the retarget window.
//
// A block whose parent is missing or doesn't link to it is rejected.  On a
// retarget boundary without an anchor the exact target can't be computed, so
// the block is accepted as long as its target is within one adjustment factor
// of the parent's target and below the proof of work limit.
func (r *RetargetRule) CheckDifficulty(block, previous *Block, anchorTimestamp uint32) bool {
	if previous == nil || block.PrevBlock != previous.Hash ||
		block.Height != previous.Height+1 {

		return false
	}

	// The target can't change outside of a retarget boundary.
	if block.Height%r.interval != 0 {
		return block.Bits == previous.Bits
	}

	if anchorTimestamp == 0 {
		return r.withinAdjustment(block.Bits, previous.Bits)
	}

	expected := r.nextRequiredBits(previous, anchorTimestamp)
	if block.Bits != expected {
		log.Debugf("Block %v has bits %08x, expected %08x", block,
			block.Bits, expected)
		return false
	}
	return true
}

// nextRequiredBits calculates the target a block at a retarget boundary must
// have given its parent and the timestamp of the block that started the
// retarget window.
func (r *RetargetRule) nextRequiredBits(previous *Block, anchorTimestamp uint32) uint32 {
	// Limit the amount of adjustment that can occur to the previous
	// difficulty.
	actualTimespan := int64(previous.Timestamp) - int64(anchorTimestamp)
	adjustedTimespan := actualTimespan
	if actualTimespan < r.minTimespan {
		adjustedTimespan = r.minTimespan
	} else if actualTimespan > r.maxTimespan {
		adjustedTimespan = r.maxTimespan
	}

	// Calculate new target difficulty as:
	//  currentDifficulty * (adjustedTimespan / targetTimespan)
	// The result uses integer division which means it will be slightly
	// rounded down.
	oldTarget := btcchain.CompactToBig(previous.Bits)
	newTarget := new(big.Int).Mul(oldTarget, big.NewInt(adjustedTimespan))
	newTarget.Div(newTarget, big.NewInt(r.targetTimespan))

	// Limit new value to the proof of work limit.
	if newTarget.Cmp(r.powLimit) > 0 {
		newTarget.Set(r.powLimit)
	}

	newTargetBits := btcchain.BigToCompact(newTarget)
	log.Debugf("Difficulty retarget at block height %d", previous.Height+1)
	log.Debugf("Old target %08x (%064x)", previous.Bits, oldTarget)
	log.Debugf("New target %08x (%064x)", newTargetBits,
		btcchain.CompactToBig(newTargetBits))
	log.Debugf("Actual timespan %v, adjusted timespan %v, target timespan %v",
		time.Duration(actualTimespan)*time.Second,
		time.Duration(adjustedTimespan)*time.Second,
		time.Duration(r.targetTimespan)*time.Second)

	return newTargetBits
}

// withinAdjustment returns whether the target encoded by bits is no more than
// one adjustment factor easier or harder than the target encoded by prevBits,
// and not easier than the proof of work limit.
func (r *RetargetRule) withinAdjustment(bits, prevBits uint32) bool {
	target := btcchain.CompactToBig(bits)
	if target.Sign() <= 0 || target.Cmp(r.powLimit) > 0 {
		return false
	}

	factor := big.NewInt(r.adjustmentFactor)
	prevTarget := btcchain.CompactToBig(prevBits)
	easiest := new(big.Int).Mul(prevTarget, factor)
	hardest := new(big.Int).Div(prevTarget, factor)
	return target.Cmp(easiest) <= 0 && target.Cmp(hardest) >= 0
}
