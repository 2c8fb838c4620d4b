package engine

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/common"
)

// Delete removes the chunk from every shard holding it.
//
// Returns chunk.ErrChunkNotFound if no shard holds the chunk.
func (e *StorageEngine) Delete(id chunk.ID) error {
	e.locks.Lock(id)
	defer e.locks.Unlock(id)

	var (
		found bool
		errs  []error
	)
	for _, sh := range e.sortedShards(id) {
		err := sh.Delete(id)
		switch {
		case err == nil:
			found = true
		case common.IsNotFound(err):
		default:
			errs = append(errs, fmt.Errorf("shard %s: %w", sh.ID(), err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if !found {
		return fmt.Errorf("delete chunk %s: %w", id, chunk.ErrChunkNotFound)
	}
	return nil
}
