//go:build linux

package fstree

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// FreeSpace returns the number of bytes available to an unprivileged user
// on the file system holding the tree.
func (t *FSTree) FreeSpace() (uint64, error) {
	var st unix.Statfs_t

	err := unix.Statfs(t.RootPath, &st)
	if err != nil {
		return 0, fmt.Errorf("statfs %q: %w", t.RootPath, err)
	}

	return st.Bavail * uint64(st.Bsize), nil
}
