// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
)

// DifficultyVerifier decides whether the difficulty target declared by a block
// is acceptable under the retarget rules of a network.  Each supported network
// provides its own implementation.
//
// The returned error is only non-nil when the caller broke a precondition, for
// example by passing a nil block.  A block that simply fails the rules is
// reported by returning false.
type DifficultyVerifier interface {
	VerifyDifficulty(block *Block, lookup BlockLookup) (bool, error)
}

// AnchorStatus describes the outcome of the search for the block at the start
// of the current retarget window.
type AnchorStatus int

const (
	// AnchorFound indicates the block one full retarget interval back was
	// reached.
	AnchorFound AnchorStatus = iota

	// AnchorNotBoundary indicates the block is not on a retarget boundary,
	// so no search was done.
	AnchorNotBoundary

	// AnchorInsufficientHistory indicates the lookup ran out of blocks
	// before a full retarget interval was walked.
	AnchorInsufficientHistory
)

// Map of AnchorStatus values back to their names for pretty printing.
var anchorStatusStrings = map[AnchorStatus]string{
	AnchorFound:               "AnchorFound",
	AnchorNotBoundary:         "AnchorNotBoundary",
	AnchorInsufficientHistory: "AnchorInsufficientHistory",
}

// String returns the AnchorStatus as a human-readable name.
func (s AnchorStatus) String() string {
	if str := anchorStatusStrings[s]; str != "" {
		return str
	}
	return fmt.Sprintf("Unknown AnchorStatus (%d)", int(s))
}

// FindRetargetAnchor returns the block exactly interval links behind the passed
// block when the block sits on a retarget boundary.  The walk starts at the
// block itself, follows PrevBlock through the lookup, and never takes more
// than interval steps.  A zero interval has no boundaries.
//
// The returned block is nil unless the status is AnchorFound.
func FindRetargetAnchor(block *Block, lookup BlockLookup, interval uint32) (*Block, AnchorStatus) {
	if interval == 0 || block.Height%interval != 0 {
		return nil, AnchorNotBoundary
	}

	iterBlock := block
	for i := uint32(0); i < interval; i++ {
		iterBlock = lookup.LookupBlock(&iterBlock.PrevBlock)
		if iterBlock == nil {
			return nil, AnchorInsufficientHistory
		}
	}
	return iterBlock, AnchorFound
}

// RetargetVerifier is the DifficultyVerifier for networks that retarget the
// difficulty every Interval blocks.  It gathers the previous block and the
// timestamp at the start of the retarget window from the lookup and hands the
// numeric decision to Checker.
type RetargetVerifier struct {
	// Interval is the number of blocks between difficulty retargets.
	Interval uint32

	// Checker compares the target of the block against the one expected
	// from its parent and the retarget window.
	Checker DifficultyChecker
}

// Ensure RetargetVerifier implements the DifficultyVerifier interface.
var _ DifficultyVerifier = (*RetargetVerifier)(nil)

// VerifyDifficulty returns whether the target declared by block follows the
// retarget rules.
//
// The lookup must hold the Interval blocks before a block at a retarget
// boundary.  When it doesn't, or when the block is not on a boundary, the
// checker is called with a zero anchor timestamp.  A missing parent is passed
// to the checker as nil.
//
// This function is safe for concurrent access as long as the lookup is.
func (v *RetargetVerifier) VerifyDifficulty(block *Block, lookup BlockLookup) (bool, error) {
	if block == nil {
		return false, ruleError(ErrNilBlock, "unable to verify the "+
			"difficulty of a nil block")
	}
	if lookup == nil {
		return false, ruleError(ErrNilLookup, fmt.Sprintf("unable to "+
			"verify the difficulty of block %v without a block "+
			"lookup", block.Hash))
	}
	if v.Interval == 0 {
		return false, AssertError("retarget verifier has a zero interval")
	}
	if v.Checker == nil {
		return false, AssertError("retarget verifier has no difficulty " +
			"checker")
	}

	var anchorTimestamp uint32
	anchor, status := FindRetargetAnchor(block, lookup, v.Interval)
	switch status {
	case AnchorFound:
		anchorTimestamp = anchor.Timestamp

	case AnchorInsufficientHistory:
		log.Debugf("Unable to walk back %d blocks from retarget block %v, "+
			"verifying without an anchor", v.Interval, block)
	}

	previous := lookup.LookupBlock(&block.PrevBlock)
	if previous == nil {
		log.Debugf("Parent %v of block %v is not known", block.PrevBlock,
			block.Hash)
	}

	ok := v.Checker.CheckDifficulty(block, previous, anchorTimestamp)
	log.Tracef("Difficulty of block %v (bits %08x, %v, anchor %d): %v",
		block, block.Bits, status, anchorTimestamp, ok)
	return ok, nil
}

// AcceptAllVerifier is the DifficultyVerifier for networks whose difficulty is
// not checked.  It accepts every block, including nil ones.
type AcceptAllVerifier struct{}

// Ensure AcceptAllVerifier implements the DifficultyVerifier interface.
var _ DifficultyVerifier = AcceptAllVerifier{}

// VerifyDifficulty always returns true.
func (AcceptAllVerifier) VerifyDifficulty(*Block, BlockLookup) (bool, error) {
	return true, nil
}
