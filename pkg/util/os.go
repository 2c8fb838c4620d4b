package util

import (
	"errors"
	"os"
	"syscall"
)

// MkdirAllX is os.MkdirAll adding +x for the user and the group to perm,
// created directories are always traversable by their owner.
func MkdirAllX(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm|0o110)
}

// IsNoSpace checks whether err is caused by the device running out of
// free space.
func IsNoSpace(err error) bool {
	return errors.Is(err, syscall.ENOSPC)
}
