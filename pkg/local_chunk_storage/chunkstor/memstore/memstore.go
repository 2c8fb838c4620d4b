// Package memstore implements chunk storage in process memory.
//
// It keeps no data between process runs and is intended for tests and
// ephemeral setups. Data survives Close so the storage can be reopened.
package memstore

import (
	"bytes"
	"maps"
	"slices"
	"sync"

	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/common"
	"go.uber.org/zap"
)

// Type is memory storage type used in logs and configuration.
const Type = "memory"

type memstore struct {
	mtx      sync.RWMutex
	chunks   map[chunk.ID][]byte
	readOnly bool
	log      *zap.Logger
}

// New returns new in-memory common.Storage.
func New() common.Storage {
	return &memstore{
		chunks: make(map[chunk.ID][]byte),
		log:    zap.NewNop(),
	}
}

func (s *memstore) Open(readOnly bool) error {
	s.mtx.Lock()
	s.readOnly = readOnly
	s.mtx.Unlock()
	return nil
}

func (s *memstore) Init() error  { return nil }
func (s *memstore) Close() error { return nil }

func (s *memstore) Type() string { return Type }
func (s *memstore) Path() string { return "" }

func (s *memstore) SetLogger(l *zap.Logger) { s.log = l }

func (s *memstore) Get(id chunk.ID) ([]byte, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	data, ok := s.chunks[id]
	if !ok {
		return nil, chunk.ErrChunkNotFound
	}
	return bytes.Clone(data), nil
}

func (s *memstore) Exists(id chunk.ID) (bool, error) {
	s.mtx.RLock()
	_, ok := s.chunks[id]
	s.mtx.RUnlock()
	return ok, nil
}

func (s *memstore) Put(id chunk.ID, data []byte) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.readOnly {
		return common.ErrReadOnly
	}
	s.chunks[id] = bytes.Clone(data)
	return nil
}

func (s *memstore) Delete(id chunk.ID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.readOnly {
		return common.ErrReadOnly
	}
	if _, ok := s.chunks[id]; !ok {
		return chunk.ErrChunkNotFound
	}
	delete(s.chunks, id)
	return nil
}

// Iterate visits chunks in ascending ID order. Handlers work with a snapshot
// so they may call other methods of the storage.
func (s *memstore) Iterate(handler func(chunk.ID, []byte) error, _ func(chunk.ID, error) error) error {
	for _, id := range s.ids() {
		data, err := s.Get(id)
		if err != nil {
			// Removed after the snapshot.
			continue
		}
		if err := handler(id, data); err != nil {
			return err
		}
	}
	return nil
}

func (s *memstore) IterateIDs(handler func(chunk.ID) error) error {
	for _, id := range s.ids() {
		if err := handler(id); err != nil {
			return err
		}
	}
	return nil
}

func (s *memstore) ids() []chunk.ID {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return slices.Sorted(maps.Keys(s.chunks))
}
