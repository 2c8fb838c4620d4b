package engine

import (
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/common"
)

// ShardInfo groups the information about engine's shard.
type ShardInfo struct {
	chunkstor.Info

	// ErrorCount is the number of unexpected shard errors since start.
	ErrorCount uint32
}

// ShardInfos returns information about all shards in the order they were
// added.
func (e *StorageEngine) ShardInfos() []ShardInfo {
	e.mtx.RLock()
	defer e.mtx.RUnlock()

	res := make([]ShardInfo, len(e.shards))
	for i := range e.shards {
		res[i] = ShardInfo{
			Info:       e.shards[i].Info(),
			ErrorCount: e.shards[i].errorCount.Load(),
		}
	}
	return res
}

// ChunkCount returns the number of chunks stored in every shard.
func (e *StorageEngine) ChunkCount() (map[chunkstor.ID]int, error) {
	e.mtx.RLock()
	defer e.mtx.RUnlock()

	res := make(map[chunkstor.ID]int, len(e.shards))
	for i := range e.shards {
		n, err := common.Count(e.shards[i].Storage())
		if err != nil {
			return nil, err
		}
		res[e.shards[i].ID()] = n
	}
	return res, nil
}
