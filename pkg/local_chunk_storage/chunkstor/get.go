package chunkstor

import (
	"bytes"
	"fmt"
	"time"

	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/common"
)

// ReadChunk copies the chunk into buf and returns the number of bytes
// copied. If buf is shorter than the chunk, only its prefix is copied.
//
// Returns chunk.ErrChunkNotFound if the chunk is missing.
func (s *ChunkStor) ReadChunk(id chunk.ID, buf []byte) (int, error) {
	data, err := s.get(id)
	if err != nil {
		return 0, err
	}
	return copy(buf, data), nil
}

// Get returns full chunk data. The result is owned by the caller.
//
// Returns chunk.ErrChunkNotFound if the chunk is missing.
func (s *ChunkStor) Get(id chunk.ID) ([]byte, error) {
	data, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(data), nil
}

// get returns decoded chunk data which may be shared with the cache.
func (s *ChunkStor) get(id chunk.ID) ([]byte, error) {
	start := time.Now()
	defer func() { s.metrics.AddReadDuration(s.id.String(), time.Since(start)) }()

	s.locks.RLock(id)
	defer s.locks.RUnlock(id)

	if s.cache != nil {
		if data, ok := s.cache.Get(id); ok {
			s.metrics.IncCacheHits(s.id.String())
			s.metrics.AddReadBytes(s.id.String(), len(data))
			return data, nil
		}
		s.metrics.IncCacheMisses(s.id.String())
	}

	stored, err := s.storage.Get(id)
	if err != nil {
		if !common.IsNotFound(err) {
			s.metrics.IncErrors(s.id.String(), opGet)
		}
		return nil, fmt.Errorf("read chunk %s: %w", id, err)
	}

	data, err := s.compression.Decompress(stored)
	if err != nil {
		s.metrics.IncErrors(s.id.String(), opGet)
		return nil, fmt.Errorf("decompress chunk %s: %w", id, err)
	}

	if s.cache != nil {
		// Sub-storages return private copies, so data can be cached as is.
		s.cache.Add(id, data)
	}

	s.metrics.AddReadBytes(s.id.String(), len(data))

	return data, nil
}

// Exists checks whether chunk is stored.
func (s *ChunkStor) Exists(id chunk.ID) (bool, error) {
	s.locks.RLock(id)
	defer s.locks.RUnlock(id)

	if s.cache != nil && s.cache.Contains(id) {
		return true, nil
	}

	ok, err := s.storage.Exists(id)
	if err != nil {
		return false, fmt.Errorf("check chunk %s presence: %w", id, err)
	}
	return ok, nil
}
