package chunkstor

import (
	"bytes"
	"fmt"
	"time"

	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/common"
	storagelog "github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/internal/log"
)

const (
	opGet    = "GET"
	opPut    = "PUT"
	opDelete = "DELETE"
)

// WriteChunk persists data under id replacing previous chunk contents.
// Either the whole data is stored and len(data) is returned or nothing
// changes and 0 is returned with an error.
//
// Returns chunk.ErrEmptyChunk for empty data, common.ErrReadOnly if
// ChunkStor is read-only and common.ErrNoSpace if the device is full.
func (s *ChunkStor) WriteChunk(id chunk.ID, data []byte) (int, error) {
	if len(data) == 0 {
		return 0, chunk.ErrEmptyChunk
	}
	if s.readOnly {
		return 0, common.ErrReadOnly
	}

	start := time.Now()
	defer func() { s.metrics.AddWriteDuration(s.id.String(), time.Since(start)) }()

	stored := s.compression.Compress(data)

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	err := s.storage.Put(id, stored)
	if err != nil {
		s.metrics.IncErrors(s.id.String(), opPut)
		if s.cache != nil {
			// Storage state is unknown after a failure.
			s.cache.Remove(id)
		}
		return 0, fmt.Errorf("write chunk %s: %w", id, err)
	}

	if s.cache != nil {
		s.cache.Add(id, bytes.Clone(data))
	}

	storagelog.Write(s.log,
		storagelog.OpField(opPut),
		storagelog.ChunkField(id),
		storagelog.StorageTypeField(s.storage.Type()))

	s.metrics.AddWriteBytes(s.id.String(), len(data))

	return len(data), nil
}

// Delete removes chunk from the storage.
//
// Returns chunk.ErrChunkNotFound if the chunk is missing.
func (s *ChunkStor) Delete(id chunk.ID) error {
	if s.readOnly {
		return common.ErrReadOnly
	}

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	if s.cache != nil {
		s.cache.Remove(id)
	}

	err := s.storage.Delete(id)
	if err != nil {
		if !common.IsNotFound(err) {
			s.metrics.IncErrors(s.id.String(), opDelete)
		}
		return fmt.Errorf("delete chunk %s: %w", id, err)
	}

	storagelog.Write(s.log,
		storagelog.OpField(opDelete),
		storagelog.ChunkField(id),
		storagelog.StorageTypeField(s.storage.Type()))

	return nil
}
