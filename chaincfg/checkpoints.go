// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"errors"
	"fmt"
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// ErrCheckpointOrder describes an error where a checkpoint table was built
// from checkpoints whose heights are not strictly increasing.
var ErrCheckpointOrder = errors.New("checkpoint heights not strictly increasing")

// Checkpoint identifies a known good point in the block chain.  Using
// checkpoints allows a client to start downloading headers from a trusted
// point instead of the genesis block and to reject peers that serve headers
// which conflict with a known checkpoint.
//
// Checkpoints after the first one should sit on a difficulty retarget
// boundary so that the difficulty of the block right after the checkpoint can
// be verified without any history older than the checkpoint.
type Checkpoint struct {
	Height    uint32
	Hash      chainhash.Hash
	Timestamp uint32
	Bits      uint32
}

// String returns the checkpoint in human-readable form.
func (c Checkpoint) String() string {
	return fmt.Sprintf("height %d, hash %v, time %d, bits %08x", c.Height,
		c.Hash, c.Timestamp, c.Bits)
}

// CheckpointTable is an immutable list of checkpoints ordered by height.
//
// The zero value is an empty table.  All methods are safe for concurrent
// access.
type CheckpointTable struct {
	checkpoints []Checkpoint
}

// NewCheckpointTable returns a table holding a copy of the passed checkpoints.
// ErrCheckpointOrder is returned when the heights are not strictly increasing.
func NewCheckpointTable(checkpoints ...Checkpoint) (*CheckpointTable, error) {
	for i := 1; i < len(checkpoints); i++ {
		if checkpoints[i].Height <= checkpoints[i-1].Height {
			return nil, fmt.Errorf("%w: %d follows %d", ErrCheckpointOrder,
				checkpoints[i].Height, checkpoints[i-1].Height)
		}
	}

	table := &CheckpointTable{
		checkpoints: make([]Checkpoint, len(checkpoints)),
	}
	copy(table.checkpoints, checkpoints)
	return table, nil
}

// Len returns the number of checkpoints in the table.
func (t *CheckpointTable) Len() int {
	return len(t.checkpoints)
}

// All returns a copy of the checkpoints ordered from oldest to newest.
func (t *CheckpointTable) All() []Checkpoint {
	checkpoints := make([]Checkpoint, len(t.checkpoints))
	copy(checkpoints, t.checkpoints)
	return checkpoints
}

// Lookup returns the checkpoint at the passed height.  The boolean is false
// when there is no checkpoint at that height.
func (t *CheckpointTable) Lookup(height uint32) (Checkpoint, bool) {
	i := sort.Search(len(t.checkpoints), func(i int) bool {
		return t.checkpoints[i].Height >= height
	})
	if i < len(t.checkpoints) && t.checkpoints[i].Height == height {
		return t.checkpoints[i], true
	}
	return Checkpoint{}, false
}

// Latest returns the most recent checkpoint.  The boolean is false when the
// table is empty.
func (t *CheckpointTable) Latest() (Checkpoint, bool) {
	if len(t.checkpoints) == 0 {
		return Checkpoint{}, false
	}
	return t.checkpoints[len(t.checkpoints)-1], true
}

// LatestBefore returns the most recent checkpoint with a timestamp strictly
// before the passed unix time.  Wallets use it to pick the point to start
// downloading headers from, given the creation time of their oldest key.
func (t *CheckpointTable) LatestBefore(timestamp uint32) (Checkpoint, bool) {
	for i := len(t.checkpoints) - 1; i >= 0; i-- {
		if t.checkpoints[i].Timestamp < timestamp {
			return t.checkpoints[i], true
		}
	}
	return Checkpoint{}, false
}

// OnRetargetBoundary returns whether every checkpoint after the first one sits
// on a multiple of the passed retarget interval.
func (t *CheckpointTable) OnRetargetBoundary(interval uint32) bool {
	if interval == 0 {
		return false
	}
	for i := 1; i < len(t.checkpoints); i++ {
		if t.checkpoints[i].Height%interval != 0 {
			return false
		}
	}
	return true
}
