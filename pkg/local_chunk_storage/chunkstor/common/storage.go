package common

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"go.uber.org/zap"
)

// Storage represents key-value chunk storage.
// It is used as a building block for a ChunkStor.
//
// Storage keeps chunk data as is, encoding (e.g. compression) is applied by
// the caller. Get and Delete return chunk.ErrChunkNotFound if the chunk is
// missing. Modifying operations return ErrReadOnly if the storage was opened
// in read-only mode.
type Storage interface {
	Open(readOnly bool) error
	Init() error
	Close() error

	Type() string
	Path() string
	SetLogger(*zap.Logger)

	Get(chunk.ID) ([]byte, error)
	Exists(chunk.ID) (bool, error)
	Put(chunk.ID, []byte) error
	Delete(chunk.ID) error

	// Iterate passes every stored chunk to the handler. If a chunk can not be
	// read, errHandler is called if set, otherwise iteration is aborted.
	// Any error returned by handlers aborts the iteration and is returned as
	// is. Handlers must not modify the storage.
	Iterate(handler func(chunk.ID, []byte) error, errHandler func(chunk.ID, error) error) error
	// IterateIDs is like Iterate but does not read chunk data.
	IterateIDs(handler func(chunk.ID) error) error
}

// Copy copies all chunks from source Storage into the destination one.
// Chunks already present in dst are skipped. If any chunk cannot be stored,
// Copy immediately fails. Optional progress callback is called for every
// processed chunk with the number of bytes written (0 for skipped ones).
func Copy(dst, src Storage, progress func(chunk.ID, int)) error {
	err := src.Open(true)
	if err != nil {
		return fmt.Errorf("open source sub-storage: %w", err)
	}

	defer func() { _ = src.Close() }()

	err = src.Init()
	if err != nil {
		return fmt.Errorf("initialize source sub-storage: %w", err)
	}

	err = dst.Open(false)
	if err != nil {
		return fmt.Errorf("open destination sub-storage: %w", err)
	}

	defer func() { _ = dst.Close() }()

	err = dst.Init()
	if err != nil {
		return fmt.Errorf("initialize destination sub-storage: %w", err)
	}

	err = src.Iterate(func(id chunk.ID, data []byte) error {
		exists, err := dst.Exists(id)
		if err != nil {
			return fmt.Errorf("check presence of chunk %s in the destination sub-storage: %w", id, err)
		} else if exists {
			if progress != nil {
				progress(id, 0)
			}
			return nil
		}

		err = dst.Put(id, data)
		if err != nil {
			return fmt.Errorf("put chunk %s into destination sub-storage: %w", id, err)
		}

		if progress != nil {
			progress(id, len(data))
		}
		return nil
	}, nil)
	if err != nil {
		return fmt.Errorf("iterate over source sub-storage: %w", err)
	}

	return nil
}

// Count returns the number of chunks in already opened and initialized
// storage.
func Count(s Storage) (int, error) {
	var n int

	err := s.IterateIDs(func(chunk.ID) error {
		n++
		return nil
	})

	return n, err
}

// IsNotFound checks whether err means missing chunk.
func IsNotFound(err error) bool {
	return errors.Is(err, chunk.ErrChunkNotFound)
}
