package engine

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// heightKey returns a key under prefix that sorts by height.
func heightKey(prefix string, height uint32) []byte {
	key := make([]byte, len(prefix)+4)
	copy(key, prefix)
	binary.BigEndian.PutUint32(key[len(prefix):], height)
	return key
}

// TestSuiteEngine runs the behavior every backend must share against engines
// returned by new.  Each call to new must return a fresh, empty engine.
func TestSuiteEngine(t *testing.T, new func() Engine) {
	t.Run("TransactionSnapshot", func(t *testing.T) {
		engine := new()
		defer engine.Close()

		tx, err := engine.Transaction()
		require.NoErrorf(t, err, "failed to create transaction")

		key := []byte("h|tip")
		value := []byte("header")
		require.NoErrorf(t, tx.Put(key, value), "failed to put")

		// Uncommitted writes are invisible.
		snapshot, err := engine.Snapshot()
		require.NoErrorf(t, err, "failed to create snapshot")

		has, err := snapshot.Has(key)
		require.NoError(t, err)
		require.False(t, has)

		got, err := snapshot.Get(key)
		require.Error(t, err)
		require.Nil(t, got)
		snapshot.Release()

		require.NoErrorf(t, tx.Commit(), "failed to commit transaction")

		snapshot, err = engine.Snapshot()
		require.NoErrorf(t, err, "failed to create snapshot")
		defer snapshot.Release()

		has, err = snapshot.Has(key)
		require.NoError(t, err)
		require.True(t, has)

		got, err = snapshot.Get(key)
		require.NoError(t, err)
		require.Equal(t, value, got)
	})

	t.Run("NotFound", func(t *testing.T) {
		engine := new()
		defer engine.Close()

		snapshot, err := engine.Snapshot()
		require.NoError(t, err)
		defer snapshot.Release()

		_, err = snapshot.Get([]byte("missing"))
		require.Truef(t, errors.Is(err, ErrNotFound), "got %v", err)
	})

	t.Run("Delete", func(t *testing.T) {
		engine := new()
		defer engine.Close()

		key := []byte("i|0")
		tx, err := engine.Transaction()
		require.NoError(t, err)
		require.NoError(t, tx.Put(key, []byte("genesis")))
		require.NoError(t, tx.Commit())

		tx, err = engine.Transaction()
		require.NoError(t, err)
		require.NoError(t, tx.Delete(key))
		require.NoError(t, tx.Commit())

		snapshot, err := engine.Snapshot()
		require.NoError(t, err)
		defer snapshot.Release()

		has, err := snapshot.Has(key)
		require.NoError(t, err)
		require.False(t, has)
	})

	t.Run("TransactionIterator", func(t *testing.T) {
		tests := []struct {
			name   string
			kvs    map[string]string
			ranges *Range
			want   [][2]string
		}{{
			name:   "before all keys",
			kvs:    map[string]string{"h1": "a", "h2": "b", "h3": "c"},
			ranges: &Range{Start: []byte("h0"), Limit: []byte("h1")},
		}, {
			name:   "first key",
			kvs:    map[string]string{"h1": "a", "h2": "b", "h3": "c"},
			ranges: &Range{Start: []byte("h0"), Limit: []byte("h2")},
			want:   [][2]string{{"h1", "a"}},
		}, {
			name:   "limit excluded",
			kvs:    map[string]string{"h1": "a", "h2": "b", "h3": "c"},
			ranges: &Range{Start: []byte("h1"), Limit: []byte("h3")},
			want:   [][2]string{{"h1", "a"}, {"h2", "b"}},
		}, {
			name:   "start between keys",
			kvs:    map[string]string{"h1": "a", "h2": "b", "h3": "c"},
			ranges: &Range{Start: []byte("h10"), Limit: []byte("h30")},
			want:   [][2]string{{"h2", "b"}, {"h3", "c"}},
		}, {
			name:   "empty range",
			kvs:    map[string]string{"h1": "a", "h2": "b", "h3": "c"},
			ranges: &Range{Start: []byte("h2"), Limit: []byte("h2")},
		}, {
			name: "prefix",
			kvs: map[string]string{"h|a": "1", "h|b": "2", "i|a": "3",
				"i|b": "4"},
			ranges: BytesPrefix([]byte("h|")),
			want:   [][2]string{{"h|a", "1"}, {"h|b", "2"}},
		}}

		for _, test := range tests {
			engine := new()

			tx, err := engine.Transaction()
			require.NoError(t, err, test.name)
			for k, v := range test.kvs {
				require.NoError(t, tx.Put([]byte(k), []byte(v)), test.name)
			}
			require.NoError(t, tx.Commit(), test.name)

			snapshot, err := engine.Snapshot()
			require.NoError(t, err, test.name)

			iter := snapshot.NewIterator(test.ranges)
			var got [][2]string
			for iter.Next() {
				got = append(got, [2]string{string(iter.Key()),
					string(iter.Value())})
			}
			require.NoError(t, iter.Error(), test.name)
			require.Equal(t, test.want, got, test.name)

			iter.Release()
			snapshot.Release()
			require.NoError(t, engine.Close(), test.name)
		}
	})

	t.Run("ReverseIterator", func(t *testing.T) {
		engine := new()
		defer engine.Close()

		tx, err := engine.Transaction()
		require.NoError(t, err)
		for _, height := range []uint32{0, 1, 255, 256, 70000} {
			require.NoError(t, tx.Put(heightKey("i|", height), []byte{1}))
		}
		require.NoError(t, tx.Put([]byte("j"), []byte{2}))
		require.NoError(t, tx.Commit())

		snapshot, err := engine.Snapshot()
		require.NoError(t, err)
		defer snapshot.Release()

		iter := snapshot.NewIterator(BytesPrefix([]byte("i|")))
		defer iter.Release()

		var got []uint32
		for ok := iter.Last(); ok; ok = iter.Prev() {
			got = append(got, binary.BigEndian.Uint32(iter.Key()[2:]))
		}
		require.NoError(t, iter.Error())
		require.Equal(t, []uint32{70000, 256, 255, 1, 0}, got)
	})

	t.Run("DbClose", func(t *testing.T) {
		engine := new()

		tx, err := engine.Transaction()
		require.NoError(t, err)
		tx.Discard()
		tx.Discard()
		require.Error(t, tx.Commit(), "commit after discard")

		snapshot, err := engine.Snapshot()
		require.NoError(t, err)

		iter := snapshot.NewIterator(&Range{})
		require.NoError(t, iter.Error())
		iter.Release()
		iter.Release()

		snapshot.Release()
		snapshot.Release()
		_, err = snapshot.Get([]byte("key"))
		require.Error(t, err, "get from released snapshot")

		require.NoError(t, engine.Close())
		require.Error(t, engine.Close(), "second close")

		_, err = engine.Transaction()
		require.Error(t, err, "transaction on closed engine")
		_, err = engine.Snapshot()
		require.Error(t, err, "snapshot on closed engine")
	})
}
