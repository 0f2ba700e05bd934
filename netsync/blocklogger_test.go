// Copyright (c) 2015-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package netsync

import (
	"testing"
	"time"

	"github.com/btcsuite/btclog"
	"github.com/stretchr/testify/require"
	"github.com/sumcoin/sumspv/blockchain"
)

func TestHeaderProgressLogger(t *testing.T) {
	logger := newHeaderProgressLogger("Processed", btclog.Disabled)
	block := &blockchain.Block{Height: 126666, Timestamp: 1536007485}

	// Nothing is logged within the interval.
	require.False(t, logger.LogBlockHeight(block))
	require.False(t, logger.LogBlockHeight(block))
	require.EqualValues(t, 2, logger.receivedLogHeaders)

	logger.lastLogTime = time.Now().Add(-time.Minute)
	require.True(t, logger.LogBlockHeight(block))
	require.Zero(t, logger.receivedLogHeaders)
}
