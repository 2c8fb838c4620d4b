package engine

import (
	"fmt"

	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/common"
	"go.uber.org/zap"
)

// ReadChunk reads the chunk from the first shard holding it, shards are
// tried in HRW order. See chunk.Store for buffer semantics.
//
// Returns chunk.ErrChunkNotFound if no shard holds the chunk. If some shard
// failed, its error is returned instead.
func (e *StorageEngine) ReadChunk(id chunk.ID, buf []byte) (int, error) {
	var n int
	err := e.get(id, func(sh shardWrapper) error {
		var err error
		n, err = sh.ReadChunk(id, buf)
		return err
	})
	return n, err
}

// Get returns full chunk data.
func (e *StorageEngine) Get(id chunk.ID) ([]byte, error) {
	var data []byte
	err := e.get(id, func(sh shardWrapper) error {
		var err error
		data, err = sh.Get(id)
		return err
	})
	return data, err
}

func (e *StorageEngine) get(id chunk.ID, f func(shardWrapper) error) error {
	e.locks.RLock(id)
	defer e.locks.RUnlock(id)

	var outErr error
	for _, sh := range e.sortedShards(id) {
		err := f(sh)
		if err == nil {
			return nil
		}
		if common.IsNotFound(err) {
			continue
		}

		e.reportShardError(sh, "could not get chunk from shard", err, zap.Stringer("chunk", id))
		if outErr == nil {
			outErr = err
		}
	}

	if outErr != nil {
		return outErr
	}
	return fmt.Errorf("read chunk %s: %w", id, chunk.ErrChunkNotFound)
}

// Exists checks whether any shard holds the chunk.
func (e *StorageEngine) Exists(id chunk.ID) (bool, error) {
	e.locks.RLock(id)
	defer e.locks.RUnlock(id)

	var outErr error
	for _, sh := range e.sortedShards(id) {
		ok, err := sh.Exists(id)
		if err != nil {
			e.reportShardError(sh, "could not check chunk existence", err, zap.Stringer("chunk", id))
			if outErr == nil {
				outErr = err
			}
			continue
		}
		if ok {
			return true, nil
		}
	}

	return false, outErr
}
