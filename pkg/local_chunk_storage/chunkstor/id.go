package chunkstor

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// ID represents ChunkStor identifier.
//
// Each ChunkStor should have the unique ID within a single engine.
type ID uuid.UUID

// NewID returns random ID.
func NewID() ID {
	return ID(uuid.New())
}

// idForStorage derives ID from the storage type and its absolute path so that
// the same storage gets the same ID after restart.
func idForStorage(typ, path string) ID {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return ID(uuid.NewSHA1(uuid.NameSpaceURL, []byte("pfs://"+typ+"/"+path)))
}

// DecodeID parses ID from the form returned by ID.String.
func DecodeID(s string) (ID, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return ID{}, fmt.Errorf("decode base58: %w", err)
	}
	u, err := uuid.FromBytes(b)
	if err != nil {
		return ID{}, fmt.Errorf("invalid UUID: %w", err)
	}
	return ID(u), nil
}

// String returns base58 representation of the ID.
func (id ID) String() string {
	return base58.Encode(id[:])
}

// IsZero checks whether ID is unset.
func (id ID) IsZero() bool {
	return id == ID{}
}
