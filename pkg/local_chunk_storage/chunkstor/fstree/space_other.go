//go:build !linux

package fstree

import "errors"

// FreeSpace is not supported on this platform.
func (t *FSTree) FreeSpace() (uint64, error) {
	return 0, errors.ErrUnsupported
}
