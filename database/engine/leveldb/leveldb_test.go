package leveldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sumcoin/sumspv/database/engine"
)

func TestSuiteLevelDB(t *testing.T) {
	engine.TestSuiteEngine(t, func() engine.Engine {
		dbPath := filepath.Join(t.TempDir(), "headers-leveldb")

		db, err := NewDB(dbPath, true)
		require.NoErrorf(t, err, "failed to create leveldb")
		return db
	})
}

// TestReopen ensures committed data survives a close and that create refuses
// an existing database.
func TestReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "headers-leveldb")

	db, err := NewDB(dbPath, true)
	require.NoError(t, err)
	tx, err := db.Transaction()
	require.NoError(t, err)
	require.NoError(t, tx.Put([]byte("i|0"), []byte("genesis")))
	require.NoError(t, tx.Commit())
	require.NoError(t, db.Close())

	_, err = NewDB(dbPath, true)
	require.Error(t, err)

	db, err = NewDB(dbPath, false)
	require.NoError(t, err)
	defer db.Close()

	snapshot, err := db.Snapshot()
	require.NoError(t, err)
	defer snapshot.Release()

	got, err := snapshot.Get([]byte("i|0"))
	require.NoError(t, err)
	require.Equal(t, []byte("genesis"), got)
}
