package chunkstor

import (
	"fmt"

	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
)

// Iterate passes every stored chunk to the handler in the sub-storage order.
// Chunks that can not be read or decoded are reported to errHandler if it is
// set, otherwise iteration stops with an error.
//
// Handler must not call modifying methods of the same ChunkStor.
func (s *ChunkStor) Iterate(handler func(chunk.ID, []byte) error, errHandler func(chunk.ID, error) error) error {
	return s.storage.Iterate(func(id chunk.ID, stored []byte) error {
		data, err := s.compression.Decompress(stored)
		if err != nil {
			err = fmt.Errorf("decompress chunk %s: %w", id, err)
			if errHandler != nil {
				return errHandler(id, err)
			}
			return err
		}
		return handler(id, data)
	}, errHandler)
}

// IterateIDs passes identifiers of all stored chunks to the handler.
func (s *ChunkStor) IterateIDs(handler func(chunk.ID) error) error {
	return s.storage.IterateIDs(handler)
}
