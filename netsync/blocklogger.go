// Copyright (c) 2015-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package netsync

import (
	"sync"
	"time"

	"github.com/btcsuite/btclog"
	"github.com/sumcoin/sumspv/blockchain"
)

// headerProgressLogger provides periodic logging of accepted headers so a
// long header download shows progress without logging every header.
type headerProgressLogger struct {
	receivedLogHeaders int64
	lastLogTime        time.Time
	interval           time.Duration

	subsystemLogger btclog.Logger
	progressAction  string
	sync.Mutex
}

// newHeaderProgressLogger returns a new header progress logger.
// The progress message is templated as follows:
//
//	{progressAction} {numProcessed} {headers|header} in the last {timePeriod}
//	(height {lastBlockHeight}, {lastBlockTimeStamp})
func newHeaderProgressLogger(progressMessage string, logger btclog.Logger) *headerProgressLogger {
	return &headerProgressLogger{
		lastLogTime:     time.Now(),
		interval:        10 * time.Second,
		progressAction:  progressMessage,
		subsystemLogger: logger,
	}
}

// LogBlockHeight counts an accepted block and logs the running total at most
// once per interval.  It returns whether a message was logged.
func (b *headerProgressLogger) LogBlockHeight(block *blockchain.Block) bool {
	b.Lock()
	defer b.Unlock()

	b.receivedLogHeaders++

	now := time.Now()
	duration := now.Sub(b.lastLogTime)
	if duration < b.interval {
		return false
	}

	// Truncate the duration to 10s of milliseconds.
	tDuration := duration.Truncate(10 * time.Millisecond)

	headerStr := "headers"
	if b.receivedLogHeaders == 1 {
		headerStr = "header"
	}
	b.subsystemLogger.Infof("%s %d %s in the last %s (height %d, %s)",
		b.progressAction, b.receivedLogHeaders, headerStr, tDuration,
		block.Height, time.Unix(int64(block.Timestamp), 0).UTC())

	b.receivedLogHeaders = 0
	b.lastLogTime = now
	return true
}
