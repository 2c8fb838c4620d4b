package chunk

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// IDSize is a length of the binary chunk identifier representation.
const IDSize = 8

// ID is an opaque identifier of the stored chunk. Identifiers are assigned
// by the caller (segmentation layer), storages never allocate them.
type ID int64

// Bytes returns binary representation of the identifier: 8 bytes in
// big-endian order. It is used as a storage key.
func (id ID) Bytes() []byte {
	b := make([]byte, IDSize)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

// String returns fixed-length lowercase hex string of the identifier's
// binary representation.
func (id ID) String() string {
	return hex.EncodeToString(id.Bytes())
}

// DecodeBytes restores identifier from its binary representation.
func DecodeBytes(b []byte) (ID, error) {
	if len(b) != IDSize {
		return 0, fmt.Errorf("invalid chunk ID length %d, expected %d", len(b), IDSize)
	}
	return ID(binary.BigEndian.Uint64(b)), nil
}

// DecodeString restores identifier from the form returned by ID.String.
func DecodeString(s string) (ID, error) {
	if len(s) != 2*IDSize {
		return 0, fmt.Errorf("invalid chunk ID string length %d, expected %d", len(s), 2*IDSize)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return 0, fmt.Errorf("decode chunk ID: %w", err)
	}
	return DecodeBytes(b)
}

// Parse parses user-provided identifier. Decimal (possibly negative) and
// 0x-prefixed hexadecimal notations are accepted.
func Parse(s string) (ID, error) {
	if hexStr, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		v, err := strconv.ParseUint(hexStr, 16, 64)
		if err != nil {
			return 0, fmt.Errorf("parse hex chunk ID %q: %w", s, err)
		}
		return ID(v), nil
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse chunk ID %q: %w", s, err)
	}
	return ID(v), nil
}
