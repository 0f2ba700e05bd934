// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package log

import (
	"path/filepath"
	"testing"

	"github.com/btcsuite/btclog"
	"github.com/stretchr/testify/require"
)

func TestParseAndSetDebugLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
		want    map[string]btclog.Level
	}{{
		name:  "all subsystems",
		level: "debug",
		want: map[string]btclog.Level{
			"CHAN": btclog.LevelDebug,
			"HDDB": btclog.LevelDebug,
			"MAIN": btclog.LevelDebug,
			"SYNC": btclog.LevelDebug,
		},
	}, {
		name:  "pairs",
		level: "CHAN=trace,SYNC=warn",
		want: map[string]btclog.Level{
			"CHAN": btclog.LevelTrace,
			"SYNC": btclog.LevelWarn,
		},
	}, {
		name:    "bad level",
		level:   "loud",
		wantErr: true,
	}, {
		name:    "unknown subsystem",
		level:   "PEER=info",
		wantErr: true,
	}, {
		name:    "missing pair",
		level:   "CHAN=info,debug",
		wantErr: true,
	}, {
		name:    "bad pair level",
		level:   "HDDB=loud",
		wantErr: true,
	}}

	for _, test := range tests {
		SetLogLevels("info")
		err := ParseAndSetDebugLevels(test.level)
		if test.wantErr {
			require.Error(t, err, test.name)
			continue
		}
		require.NoError(t, err, test.name)
		for subsysID, level := range test.want {
			require.Equal(t, level, subsystemLoggers[subsysID].Level(),
				"%s: %s", test.name, subsysID)
		}
	}
	SetLogLevels("info")
}

func TestSupportedSubsystems(t *testing.T) {
	require.Equal(t, []string{"CHAN", "HDDB", "MAIN", "SYNC"},
		SupportedSubsystems())
	require.True(t, ValidLogLevel("critical"))
	require.False(t, ValidLogLevel("show"))
}

func TestInitLogRotator(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "chainparams.log")
	require.NoError(t, InitLogRotator(logFile))
	defer CloseLogRotator()

	_, err := logWriter{}.Write([]byte("line\n"))
	require.NoError(t, err)
	require.FileExists(t, logFile)
}

func TestPickNoun(t *testing.T) {
	require.Equal(t, "header", PickNoun(1, "header", "headers"))
	require.Equal(t, "headers", PickNoun(0, "header", "headers"))
}
