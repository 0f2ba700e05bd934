// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/wire"
	"github.com/davecgh/go-spew/spew"
	flags "github.com/jessevdk/go-flags"
	"github.com/sumcoin/sumspv/blockchain"
	"github.com/sumcoin/sumspv/chaincfg"
	"github.com/sumcoin/sumspv/database/headerdb"
	"github.com/sumcoin/sumspv/internal/log"
	"github.com/sumcoin/sumspv/netsync"
)

const headerDbNamePrefix = "headers"

var mainLog = log.MainLog

// showParams writes the summary of the network parameters followed by the
// checkpoint table in the format selected by cfg.
func showParams(w io.Writer, cfg *config) {
	params := cfg.profile.Params
	if cfg.Dump {
		spew.Fdump(w, params)
		return
	}

	fmt.Fprintf(w, "Network:          %s\n", params.Name)
	fmt.Fprintf(w, "Magic:            0x%08x\n", uint32(params.Net))
	fmt.Fprintf(w, "Default port:     %s\n", params.DefaultPort)
	fmt.Fprintf(w, "Services:         %v\n", params.Services)
	for _, seed := range params.DNSSeeds {
		fmt.Fprintf(w, "DNS seed:         %v\n", seed)
	}
	fmt.Fprintf(w, "Proof of work:    limit %08x, retarget every %d "+
		"blocks over %v\n", params.PowLimitBits, params.RetargetInterval,
		params.TargetTimespan)
	fmt.Fprintf(w, "Checkpoints:      %d\n", params.Checkpoints.Len())

	for _, cp := range params.Checkpoints.All() {
		showCheckpoint(w, cp, cfg.UseGoOutput)
	}
}

// showCheckpoint displays a checkpoint using an output format determined by
// useGoOutput.  The Go syntax output uses the format the chaincfg code
// expects for checkpoints added to the list.
func showCheckpoint(w io.Writer, cp chaincfg.Checkpoint, useGoOutput bool) {
	if useGoOutput {
		fmt.Fprintf(w, "Checkpoint{%d, newHashFromStr(\"%v\"), %d, 0x%08x},\n",
			cp.Height, cp.Hash, cp.Timestamp, cp.Bits)
		return
	}

	fmt.Fprintf(w, "Height: %d, Hash: %v, Time: %d, Bits: %08x\n",
		cp.Height, cp.Hash, cp.Timestamp, cp.Bits)
}

// startCheckpoint returns the checkpoint header checking starts at.  A zero
// since selects the latest checkpoint.
func startCheckpoint(params *chaincfg.Params, since uint32) (chaincfg.Checkpoint, error) {
	if since == 0 {
		cp, ok := params.Checkpoints.Latest()
		if !ok {
			return cp, fmt.Errorf("%s has no checkpoints", params.Name)
		}
		return cp, nil
	}

	cp, ok := params.Checkpoints.LatestBefore(since)
	if !ok {
		return cp, fmt.Errorf("%s has no checkpoint before time %d",
			params.Name, since)
	}
	return cp, nil
}

// checkStats counts the outcome of checking a file of headers.
type checkStats struct {
	accepted  uint64
	duplicate uint64
	rejected  uint64
}

// total returns the number of headers checked.
func (s checkStats) total() uint64 {
	return s.accepted + s.duplicate + s.rejected
}

// checkHeaders reads serialized headers from r and runs each one through
// acceptor.  Headers already stored and headers refused by a rule are counted;
// any other failure stops the check.
func checkHeaders(r io.Reader, acceptor *netsync.HeaderAcceptor) (checkStats, error) {
	var stats checkStats
	br := bufio.NewReader(r)
	for {
		var header wire.BlockHeader
		err := header.Deserialize(br)
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return stats, fmt.Errorf("failed to read header %d: %w",
				stats.total(), err)
		}

		_, err = acceptor.ProcessHeader(&header)
		var ruleErr blockchain.RuleError
		switch {
		case blockchain.IsErrorCode(err, blockchain.ErrDuplicateBlock):
			stats.duplicate++
			mainLog.Debugf("Skipped known header %v", header.BlockHash())
		case errors.As(err, &ruleErr):
			stats.rejected++
			mainLog.Warnf("Rejected header %v: %v", header.BlockHash(),
				ruleErr)
		case err != nil:
			return stats, err
		default:
			stats.accepted++
		}
	}
}

// runHeaderCheck checks the headers in the file named by cfg against the rules
// of the selected network, storing the accepted ones in the header database.
func runHeaderCheck(cfg *config) error {
	f, err := os.Open(cfg.Headers)
	if err != nil {
		return err
	}
	defer f.Close()

	dbPath := filepath.Join(cfg.DataDir, headerDbNamePrefix+"_"+cfg.DbType)
	store, err := headerdb.Open(cfg.DbType, dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	acceptor, err := netsync.New(&netsync.Config{
		Profile:         cfg.profile,
		Store:           store,
		RejectCacheSize: cfg.RejectCacheSize,
	})
	if err != nil {
		return err
	}

	cp, err := startCheckpoint(cfg.profile.Params, cfg.Since)
	if err != nil {
		return err
	}
	if err := acceptor.SeedCheckpoint(cp); err != nil {
		return err
	}

	stats, err := checkHeaders(f, acceptor)
	if err != nil {
		return err
	}
	mainLog.Infof("Checked %d %s: %d accepted, %d already known, "+
		"%d rejected", stats.total(),
		log.PickNoun(stats.total(), "header", "headers"),
		stats.accepted, stats.duplicate, stats.rejected)

	tip, err := store.Tip()
	if err != nil {
		return err
	}
	mainLog.Infof("Header database tip is %v", tip)
	return nil
}

// chainParamsMain is the real main function for chainparams.  It is necessary
// to work around the fact that deferred functions do not run when os.Exit()
// is called.
func chainParamsMain(args []string, w io.Writer) error {
	cfg, _, err := loadConfig(args)
	if err != nil {
		return err
	}

	if err := log.InitLogRotator(filepath.Join(cfg.LogDir, defaultLogFilename)); err != nil {
		return err
	}
	defer log.CloseLogRotator()

	showParams(w, cfg)
	if cfg.Headers == "" {
		return nil
	}
	return runHeaderCheck(cfg)
}

func main() {
	err := chainParamsMain(os.Args[1:], os.Stdout)
	var flagErr *flags.Error
	switch {
	case err == nil, errors.Is(err, errShowVersion),
		errors.Is(err, errShowSubsystems):
	case errors.As(err, &flagErr):
		// Already reported by the parser.
		if flagErr.Type != flags.ErrHelp {
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
