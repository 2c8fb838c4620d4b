package chunkstor

import "github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/common"

// Info groups the information about ChunkStor.
type Info struct {
	ID          ID
	Type        string
	Path        string
	ReadOnly    bool
	Compression bool
	CacheSize   int
}

// Info returns information about the ChunkStor.
func (s *ChunkStor) Info() Info {
	return Info{
		ID:          s.id,
		Type:        s.storage.Type(),
		Path:        s.storage.Path(),
		ReadOnly:    s.readOnly,
		Compression: s.compression.Enabled,
		CacheSize:   s.cacheSize,
	}
}

// Storage returns underlying sub-storage.
func (s *ChunkStor) Storage() common.Storage {
	return s.storage
}
