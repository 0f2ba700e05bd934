// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	flags "github.com/jessevdk/go-flags"
	"github.com/sumcoin/sumspv/database/headerdb"
	"github.com/sumcoin/sumspv/internal/log"
	"github.com/sumcoin/sumspv/internal/version"
	"github.com/sumcoin/sumspv/netparams"
)

const (
	defaultLogLevel    = "info"
	defaultLogFilename = "chainparams.log"
	defaultLogDirname  = "logs"
	defaultDataDirname = "data"
)

var (
	defaultHomeDir = btcutil.AppDataDir("sumspv", false)
	defaultDataDir = filepath.Join(defaultHomeDir, defaultDataDirname)
	defaultLogDir  = filepath.Join(defaultHomeDir, defaultLogDirname)
	knownDbTypes   = headerdb.SupportedDBTypes()
)

// config defines the configuration options for chainparams.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ShowVersion     bool   `short:"V" long:"version" description:"Display version information and exit"`
	DataDir         string `short:"b" long:"datadir" description:"Directory to store the header database"`
	LogDir          string `long:"logdir" description:"Directory to log output"`
	DbType          string `long:"dbtype" description:"Database backend to use for the header database"`
	TestNet         bool   `long:"testnet" description:"Use the test network"`
	DebugLevel      string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	UseGoOutput     bool   `short:"g" long:"gooutput" description:"Display the checkpoints using Go syntax that is ready to insert into the checkpoint list"`
	Dump            bool   `long:"dump" description:"Dump the full network parameters"`
	Headers         string `long:"headers" description:"File of serialized block headers to check against the network rules"`
	Since           uint32 `long:"since" description:"Start checking headers at the newest checkpoint older than this unix time (default: latest checkpoint)"`
	RejectCacheSize uint   `long:"rejectcache" description:"Number of rejected header hashes to remember"`

	profile *netparams.Profile
}

// errShowVersion and errShowSubsystems are returned by loadConfig when the
// requested output was printed and the program should exit.
var (
	errShowVersion    = errors.New("version requested")
	errShowSubsystems = errors.New("subsystems requested")
)

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir := filepath.Dir(defaultHomeDir)
		path = homeDir + path[1:]
	}
	return filepath.Clean(os.ExpandEnv(path))
}

// validDbType returns whether or not dbType is a supported database type.
func validDbType(dbType string) bool {
	for _, knownType := range knownDbTypes {
		if dbType == knownType {
			return true
		}
	}

	return false
}

// loadConfig initializes and parses the config using the passed command line
// arguments.
func loadConfig(args []string) (*config, []string, error) {
	// Default config.
	cfg := config{
		DataDir:         defaultDataDir,
		LogDir:          defaultLogDir,
		DbType:          headerdb.DefaultDBType,
		DebugLevel:      defaultLogLevel,
		RejectCacheSize: 1000,
	}

	// Parse command line options.
	parser := flags.NewParser(&cfg, flags.Default)
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		var e *flags.Error
		if !errors.As(err, &e) || e.Type != flags.ErrHelp {
			parser.WriteHelp(os.Stderr)
		}
		return nil, nil, err
	}

	if cfg.ShowVersion {
		fmt.Println("chainparams version", version.String())
		return nil, nil, errShowVersion
	}

	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", log.SupportedSubsystems())
		return nil, nil, errShowSubsystems
	}

	funcName := "loadConfig"
	networkName := "mainnet"
	if cfg.TestNet {
		networkName = "testnet"
	}
	cfg.profile, err = netparams.ForName(networkName)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", funcName, err)
	}

	// Validate database type.
	if !validDbType(cfg.DbType) {
		str := "%s: the specified database type [%v] is invalid -- " +
			"supported types %v"
		err := fmt.Errorf(str, funcName, cfg.DbType, knownDbTypes)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	// Parse, validate, and set debug log level(s).
	if err := log.ParseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		err := fmt.Errorf("%s: %w", funcName, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	// Append the network type to the data and log directories so they are
	// "namespaced" per network.  All data is specific to a network, so
	// namespacing the data directory means each individual piece of
	// serialized data does not have to worry about changing names per
	// network and such.
	cfg.DataDir = filepath.Join(cleanAndExpandPath(cfg.DataDir),
		cfg.profile.Name)
	cfg.LogDir = filepath.Join(cleanAndExpandPath(cfg.LogDir),
		cfg.profile.Name)
	if cfg.Headers != "" {
		cfg.Headers = cleanAndExpandPath(cfg.Headers)
	}

	return &cfg, remainingArgs, nil
}
