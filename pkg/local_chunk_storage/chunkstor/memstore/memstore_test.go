package memstore

import (
	"testing"

	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/common"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/internal/storagetest"
	"github.com/stretchr/testify/require"
)

func TestGeneric(t *testing.T) {
	storagetest.TestAll(t, func(*testing.T) common.Storage {
		return New()
	})

	t.Run("info", func(t *testing.T) {
		storagetest.TestInfo(t, func(*testing.T) common.Storage {
			return New()
		}, Type, "")
	})
}

func TestMemstore_IterateOrderAndMutation(t *testing.T) {
	s := New()
	require.NoError(t, s.Open(false))
	require.NoError(t, s.Init())

	for _, id := range []chunk.ID{5, -3, 1} {
		require.NoError(t, s.Put(id, []byte{byte(id)}))
	}

	var ids []chunk.ID
	require.NoError(t, s.Iterate(func(id chunk.ID, _ []byte) error {
		ids = append(ids, id)
		// Must not deadlock.
		return s.Delete(id)
	}, nil))
	require.Equal(t, []chunk.ID{-3, 1, 5}, ids)

	n, err := common.Count(s)
	require.NoError(t, err)
	require.Zero(t, n)
}
