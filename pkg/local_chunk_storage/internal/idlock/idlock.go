// Package idlock provides striped locks keyed by chunk identifiers.
package idlock

import (
	"sync"

	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
)

// Stripes is the number of locks shared between all identifiers.
const Stripes = 256

// Locker maps every chunk ID to one of the fixed set of RW mutexes.
// Operations on the same ID always use the same mutex, operations on
// different IDs may share it. Zero value is ready to use.
type Locker struct {
	mtx [Stripes]sync.RWMutex
}

func (l *Locker) get(id chunk.ID) *sync.RWMutex {
	u := uint64(id)
	// Mix the bits so that sequential IDs do not map to sequential stripes only.
	u ^= u >> 33
	u *= 0xff51afd7ed558ccd
	u ^= u >> 33
	return &l.mtx[u%Stripes]
}

// Lock locks id for writing.
func (l *Locker) Lock(id chunk.ID) { l.get(id).Lock() }

// Unlock undoes Lock.
func (l *Locker) Unlock(id chunk.ID) { l.get(id).Unlock() }

// RLock locks id for reading.
func (l *Locker) RLock(id chunk.ID) { l.get(id).RLock() }

// RUnlock undoes RLock.
func (l *Locker) RUnlock(id chunk.ID) { l.get(id).RUnlock() }
