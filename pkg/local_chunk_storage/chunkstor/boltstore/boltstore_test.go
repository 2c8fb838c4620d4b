package boltstore

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/common"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/internal/storagetest"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
	"go.uber.org/zap/zaptest"
)

func TestGeneric(t *testing.T) {
	newBolt := func(t *testing.T) common.Storage {
		return New(
			WithPath(filepath.Join(t.TempDir(), "sub", "chunks.db")),
			WithNoSync(true),
			WithLogger(zaptest.NewLogger(t)))
	}

	storagetest.TestAll(t, newBolt)

	t.Run("info", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "chunks.db")
		storagetest.TestInfo(t, func(*testing.T) common.Storage {
			return New(WithPath(p))
		}, Type, p)
	})
}

func TestBolt_Written(t *testing.T) {
	b := New(WithPath(filepath.Join(t.TempDir(), "chunks.db")), WithNoSync(true))
	require.NoError(t, b.Open(false))
	require.NoError(t, b.Init())
	t.Cleanup(func() { require.NoError(t, b.Close()) })

	require.NoError(t, b.Put(1, make([]byte, 10)))
	require.NoError(t, b.Put(2, make([]byte, 5)))
	require.EqualValues(t, 15, b.Written())
}

func TestBolt_ReadOnlyMissingFile(t *testing.T) {
	b := New(WithPath(filepath.Join(t.TempDir(), "missing.db")))
	require.Error(t, b.Open(true))
	require.NoError(t, b.Close())
}

func TestBolt_ForeignData(t *testing.T) {
	p := filepath.Join(t.TempDir(), "chunks.db")

	b := New(WithPath(p), WithNoSync(true))
	require.NoError(t, b.Open(false))
	require.NoError(t, b.Init())
	require.NoError(t, b.Put(3, []byte{3}))

	require.NoError(t, b.db.Update(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(bucketName)
		if err := bkt.Put([]byte("short"), []byte{1}); err != nil {
			return err
		}
		_, err := bkt.CreateBucket(chunk.ID(4).Bytes())
		return err
	}))
	t.Cleanup(func() { require.NoError(t, b.Close()) })

	var ids []chunk.ID
	require.NoError(t, b.IterateIDs(func(id chunk.ID) error {
		ids = append(ids, id)
		return nil
	}))
	require.Equal(t, []chunk.ID{3}, ids)

	err := b.Iterate(func(chunk.ID, []byte) error { return nil }, nil)
	require.Error(t, err)
}

func TestBolt_IterateIDs(t *testing.T) {
	b := New(WithPath(filepath.Join(t.TempDir(), "chunks.db")), WithNoSync(true))
	require.NoError(t, b.Open(false))
	require.NoError(t, b.Init())
	t.Cleanup(func() { require.NoError(t, b.Close()) })

	for _, id := range []chunk.ID{9, 1, 5} {
		require.NoError(t, b.Put(id, make([]byte, 1<<10)))
	}

	var ids []chunk.ID
	require.NoError(t, b.IterateIDs(func(id chunk.ID) error {
		ids = append(ids, id)
		return nil
	}))
	require.Equal(t, []chunk.ID{1, 5, 9}, ids)

	errStop := errors.New("stop")
	ids = ids[:0]
	require.ErrorIs(t, b.IterateIDs(func(id chunk.ID) error {
		ids = append(ids, id)
		return errStop
	}), errStop)
	require.Equal(t, []chunk.ID{1}, ids)
}
