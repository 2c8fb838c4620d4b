// Package storagetest contains the test suite every common.Storage
// implementation must pass.
package storagetest

import (
	"errors"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/common"
	"github.com/stretchr/testify/require"
)

// Constructor constructs storage component.
// Each call must create a component using different file-system path.
// The storage must NOT be opened.
type Constructor = func(t *testing.T) common.Storage

type chunkDesc struct {
	id   chunk.ID
	data []byte
}

// TestAll runs all storage tests.
func TestAll(t *testing.T, cons Constructor) {
	t.Run("get", func(t *testing.T) {
		TestGet(t, cons)
	})
	t.Run("put", func(t *testing.T) {
		TestPut(t, cons)
	})
	t.Run("delete", func(t *testing.T) {
		TestDelete(t, cons)
	})
	t.Run("exists", func(t *testing.T) {
		TestExists(t, cons)
	})
	t.Run("iterate", func(t *testing.T) {
		TestIterate(t, cons)
	})
	t.Run("control", func(t *testing.T) {
		TestControl(t, cons)
	})
	t.Run("concurrent", func(t *testing.T) {
		TestConcurrent(t, cons)
	})
	t.Run("copy", func(t *testing.T) {
		TestCopy(t, cons)
	})
}

// TestInfo checks storage type and path.
func TestInfo(t *testing.T, cons Constructor, expectedType string, expectedPath string) {
	s := cons(t)
	require.Equal(t, expectedType, s.Type())
	require.Equal(t, expectedPath, s.Path())
}

// RandomData returns random byte slice of the given size.
func RandomData(sz int) []byte {
	data := make([]byte, sz)
	for i := range data {
		data[i] = byte(rand.IntN(256))
	}
	return data
}

func openStorage(t *testing.T, cons Constructor) common.Storage {
	s := cons(t)
	require.NoError(t, s.Open(false))
	require.NoError(t, s.Init())
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func prepare(t *testing.T, count int, s common.Storage) []chunkDesc {
	chunks := make([]chunkDesc, count)

	for i := range chunks {
		chunks[i].id = chunk.ID(rand.Int64())
		chunks[i].data = RandomData(1 + rand.IntN(1024))

		require.NoError(t, s.Put(chunks[i].id, chunks[i].data))
	}

	return chunks
}

// TestGet checks that stored chunks can be read back.
func TestGet(t *testing.T, cons Constructor) {
	s := openStorage(t, cons)
	chunks := prepare(t, 10, s)

	for i := range chunks {
		data, err := s.Get(chunks[i].id)
		require.NoError(t, err)
		require.Equal(t, chunks[i].data, data)
	}

	t.Run("missing", func(t *testing.T) {
		_, err := s.Get(chunk.ID(rand.Int64()))
		require.ErrorIs(t, err, chunk.ErrChunkNotFound)
	})

	t.Run("result is not shared", func(t *testing.T) {
		data, err := s.Get(chunks[0].id)
		require.NoError(t, err)
		data[0]++

		data, err = s.Get(chunks[0].id)
		require.NoError(t, err)
		require.Equal(t, chunks[0].data, data)
	})

	t.Run("negative and extreme IDs", func(t *testing.T) {
		for _, id := range []chunk.ID{0, -1, 1 << 62, -(1 << 62)} {
			require.NoError(t, s.Put(id, []byte{byte(id)}))

			data, err := s.Get(id)
			require.NoError(t, err)
			require.Equal(t, []byte{byte(id)}, data)
		}
	})
}

// TestPut checks overwriting and input buffer ownership.
func TestPut(t *testing.T, cons Constructor) {
	s := openStorage(t, cons)

	const id = chunk.ID(42)

	data := []byte("first version")
	require.NoError(t, s.Put(id, data))

	// Storage must not retain the caller's buffer.
	data[0] = 'F'

	res, err := s.Get(id)
	require.NoError(t, err)
	require.Equal(t, []byte("first version"), res)

	require.NoError(t, s.Put(id, []byte("second")))

	res, err = s.Get(id)
	require.NoError(t, err)
	require.Equal(t, []byte("second"), res)

	n, err := common.Count(s)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

// TestDelete checks chunk removal.
func TestDelete(t *testing.T, cons Constructor) {
	s := openStorage(t, cons)
	chunks := prepare(t, 4, s)

	t.Run("delete non-existent", func(t *testing.T) {
		err := s.Delete(chunk.ID(rand.Int64()))
		require.ErrorIs(t, err, chunk.ErrChunkNotFound)
	})

	require.NoError(t, s.Delete(chunks[0].id))

	ok, err := s.Exists(chunks[0].id)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = s.Get(chunks[0].id)
	require.ErrorIs(t, err, chunk.ErrChunkNotFound)

	t.Run("delete twice", func(t *testing.T) {
		require.ErrorIs(t, s.Delete(chunks[0].id), chunk.ErrChunkNotFound)
	})

	for i := 1; i < len(chunks); i++ {
		data, err := s.Get(chunks[i].id)
		require.NoError(t, err)
		require.Equal(t, chunks[i].data, data)
	}
}

// TestExists checks chunk presence reports.
func TestExists(t *testing.T, cons Constructor) {
	s := openStorage(t, cons)
	chunks := prepare(t, 3, s)

	for i := range chunks {
		ok, err := s.Exists(chunks[i].id)
		require.NoError(t, err)
		require.True(t, ok)
	}

	ok, err := s.Exists(chunk.ID(rand.Int64()))
	require.NoError(t, err)
	require.False(t, ok)
}

// TestIterate checks that iteration visits every chunk exactly once.
func TestIterate(t *testing.T, cons Constructor) {
	s := openStorage(t, cons)
	chunks := prepare(t, 10, s)

	require.NoError(t, s.Delete(chunks[1].id))
	require.NoError(t, s.Delete(chunks[5].id))

	expected := make(map[chunk.ID][]byte)
	for i := range chunks {
		if i != 1 && i != 5 {
			expected[chunks[i].id] = chunks[i].data
		}
	}

	t.Run("all", func(t *testing.T) {
		seen := make(map[chunk.ID][]byte)
		err := s.Iterate(func(id chunk.ID, data []byte) error {
			_, ok := seen[id]
			require.False(t, ok, "chunk %s visited twice", id)
			seen[id] = data
			return nil
		}, nil)
		require.NoError(t, err)
		require.Equal(t, expected, seen)
	})

	t.Run("ids", func(t *testing.T) {
		seen := make(map[chunk.ID]struct{})
		err := s.IterateIDs(func(id chunk.ID) error {
			seen[id] = struct{}{}
			return nil
		})
		require.NoError(t, err)
		require.Len(t, seen, len(expected))
		for id := range expected {
			require.Contains(t, seen, id)
		}
	})

	t.Run("handler error", func(t *testing.T) {
		errStop := errors.New("stop")
		var calls int
		err := s.Iterate(func(chunk.ID, []byte) error {
			calls++
			return errStop
		}, nil)
		require.ErrorIs(t, err, errStop)
		require.Equal(t, 1, calls)
	})

	t.Run("empty", func(t *testing.T) {
		s := openStorage(t, cons)
		n, err := common.Count(s)
		require.NoError(t, err)
		require.Zero(t, n)
	})
}

// TestControl checks correctness of a read-only mode.
func TestControl(t *testing.T, cons Constructor) {
	s := cons(t)
	require.NoError(t, s.Open(false))
	require.NoError(t, s.Init())

	chunks := prepare(t, 10, s)
	require.NoError(t, s.Close())

	require.NoError(t, s.Open(true))
	require.NoError(t, s.Init())
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	for i := range chunks {
		data, err := s.Get(chunks[i].id)
		require.NoError(t, err)
		require.Equal(t, chunks[i].data, data)
	}

	t.Run("put fails", func(t *testing.T) {
		err := s.Put(chunk.ID(rand.Int64()), []byte{1})
		require.ErrorIs(t, err, common.ErrReadOnly)
	})
	t.Run("delete fails", func(t *testing.T) {
		err := s.Delete(chunks[0].id)
		require.ErrorIs(t, err, common.ErrReadOnly)
	})
}

// TestConcurrent checks that concurrent writers of the same chunk leave
// one of the written versions, never a mix.
func TestConcurrent(t *testing.T, cons Constructor) {
	s := openStorage(t, cons)

	const (
		id      = chunk.ID(100500)
		writers = 4
	)

	versions := make([][]byte, writers)
	for i := range versions {
		versions[i] = RandomData(4096)
	}

	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Some writers may lose a race for temporary resources,
			// but none may corrupt the stored value.
			_ = s.Put(id, versions[i])
		}()
	}
	wg.Wait()

	data, err := s.Get(id)
	require.NoError(t, err)
	require.Contains(t, versions, data)
}

// TestCopy checks common.Copy between two storages of the same kind.
func TestCopy(t *testing.T, cons Constructor) {
	src := cons(t)
	require.NoError(t, src.Open(false))
	require.NoError(t, src.Init())
	chunks := prepare(t, 5, src)
	require.NoError(t, src.Close())

	dst := cons(t)
	require.NoError(t, dst.Open(false))
	require.NoError(t, dst.Init())
	require.NoError(t, dst.Put(chunks[0].id, chunks[0].data))
	require.NoError(t, dst.Close())

	var copied, skipped int
	err := common.Copy(dst, src, func(_ chunk.ID, n int) {
		if n == 0 {
			skipped++
		} else {
			copied++
		}
	})
	require.NoError(t, err)
	require.Equal(t, 4, copied)
	require.Equal(t, 1, skipped)

	require.NoError(t, dst.Open(true))
	require.NoError(t, dst.Init())
	t.Cleanup(func() { require.NoError(t, dst.Close()) })

	for i := range chunks {
		data, err := dst.Get(chunks[i].id)
		require.NoError(t, err)
		require.Equal(t, chunks[i].data, data)
	}
}
