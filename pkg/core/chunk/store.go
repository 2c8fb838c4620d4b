package chunk

import "errors"

// ErrChunkNotFound is returned when requested chunk is missing in storage.
var ErrChunkNotFound = errors.New("chunk not found")

// ErrEmptyChunk is returned on attempt to store zero-length chunk.
var ErrEmptyChunk = errors.New("empty chunk")

// Store is a chunk-addressed storage.
//
// ReadChunk reads at most len(buf) bytes of the chunk into buf and returns
// the number of bytes read. If the chunk is larger than buf, its prefix
// is returned. Missing chunk leads to ErrChunkNotFound.
//
// WriteChunk persists data under the given identifier and returns the
// number of bytes accepted. Implementations either persist the whole data
// or nothing; on error the returned count is zero. Concurrent writes of the
// same identifier are serialized, last writer wins.
type Store interface {
	ReadChunk(id ID, buf []byte) (int, error)
	WriteChunk(id ID, data []byte) (int, error)
}
