package engine

import (
	"fmt"

	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor"
)

// List passes identifiers of all stored chunks to the handler, shard by
// shard in the order they were added. Handler error stops listing and is
// returned as is.
func (e *StorageEngine) List(handler func(chunkstor.ID, chunk.ID) error) error {
	e.mtx.RLock()
	shards := make([]shardWrapper, len(e.shards))
	copy(shards, e.shards)
	e.mtx.RUnlock()

	for _, sh := range shards {
		shardID := sh.ID()
		err := sh.IterateIDs(func(id chunk.ID) error {
			return handler(shardID, id)
		})
		if err != nil {
			return fmt.Errorf("list shard %s: %w", shardID, err)
		}
	}

	return nil
}
