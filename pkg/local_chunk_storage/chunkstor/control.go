package chunkstor

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"go.uber.org/zap"
)

// Open opens sub-storage. Read-only ChunkStor rejects modifications.
func (s *ChunkStor) Open(readOnly bool) error {
	s.log.Debug("opening chunk storage",
		zap.String("type", s.storage.Type()),
		zap.String("path", s.storage.Path()),
		zap.Bool("read-only", readOnly),
	)

	err := s.storage.Open(readOnly)
	if err != nil {
		return fmt.Errorf("open %s sub-storage: %w", s.storage.Type(), err)
	}

	s.readOnly = readOnly
	return nil
}

// Init initializes sub-storage, compression and cache.
func (s *ChunkStor) Init() error {
	err := s.compression.Init()
	if err != nil {
		return fmt.Errorf("init compression: %w", err)
	}

	err = s.storage.Init()
	if err != nil {
		return fmt.Errorf("init %s sub-storage: %w", s.storage.Type(), err)
	}

	if s.cacheSize > 0 {
		s.cache, err = lru.New[chunk.ID, []byte](s.cacheSize)
		if err != nil {
			return fmt.Errorf("create cache: %w", err)
		}
	}

	return nil
}

// Close releases all ChunkStor resources.
func (s *ChunkStor) Close() error {
	s.log.Debug("closing chunk storage")

	if s.cache != nil {
		s.cache.Purge()
	}

	return errors.Join(
		s.storage.Close(),
		s.compression.Close(),
	)
}
