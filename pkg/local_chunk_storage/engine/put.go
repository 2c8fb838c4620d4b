package engine

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/common"
	"go.uber.org/zap"
)

var errPutShard = errors.New("could not put chunk to any shard")

// WriteChunk saves the chunk in local storage.
//
// If some shard already holds the chunk it is overwritten there, so the
// engine never keeps two versions of the same chunk. Otherwise shards are
// tried in HRW order: a shard that is full (common.ErrNoSpace) or read-only
// (common.ErrReadOnly) is skipped in favor of the next one.
//
// Returns len(data) on success and 0 with an error otherwise. If every shard
// rejected the chunk, returned error wraps the last shard error.
func (e *StorageEngine) WriteChunk(id chunk.ID, data []byte) (int, error) {
	if len(data) == 0 {
		return 0, chunk.ErrEmptyChunk
	}

	e.locks.Lock(id)
	defer e.locks.Unlock(id)

	shards := e.sortedShards(id)
	if len(shards) == 0 {
		return 0, errNoShards
	}

	for _, sh := range shards {
		ok, err := sh.Exists(id)
		if err != nil {
			e.reportShardError(sh, "could not check chunk existence", err, zap.Stringer("chunk", id))
			continue
		}
		if ok {
			n, err := sh.WriteChunk(id, data)
			if err != nil {
				return 0, fmt.Errorf("overwrite chunk %s in shard %s: %w", id, sh.ID(), err)
			}
			return n, nil
		}
	}

	var lastErr error
	for i, sh := range shards {
		n, err := sh.WriteChunk(id, data)
		if err == nil {
			if i > 0 {
				e.log.Debug("chunk is put to the fallback shard",
					zap.Stringer("chunk", id),
					zap.Stringer("shard_id", sh.ID()),
					zap.Int("position", i))
			}
			return n, nil
		}

		lastErr = err
		if errors.Is(err, common.ErrNoSpace) || errors.Is(err, common.ErrReadOnly) {
			e.log.Debug("shard rejected chunk, trying next one",
				zap.Stringer("chunk", id),
				zap.Stringer("shard_id", sh.ID()),
				zap.Error(err))
			continue
		}

		e.reportShardError(sh, "could not put chunk to shard", err, zap.Stringer("chunk", id))
	}

	return 0, fmt.Errorf("%w: %w", errPutShard, lastErr)
}
