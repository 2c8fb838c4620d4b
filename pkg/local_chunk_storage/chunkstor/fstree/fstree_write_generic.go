package fstree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"syscall"

	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/common"
	"github.com/nspcc-dev/pfs-agent/pkg/util"
)

type writer interface {
	writeData(chunk.ID, string, []byte) error
	finalize() error
}

type genericWriter struct {
	perm  fs.FileMode
	flags int
}

func newGenericWriter(perm fs.FileMode, noSync bool) writer {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC | os.O_EXCL
	if !noSync {
		flags |= os.O_SYNC
	}
	return &genericWriter{
		perm:  perm,
		flags: flags,
	}
}

func (w *genericWriter) finalize() error {
	return nil
}

func (w *genericWriter) writeData(_ chunk.ID, p string, data []byte) error {
	// Concurrent writers of the same chunk must not share a temporary file,
	// otherwise one of them fails to rename it or the data gets mixed. Every
	// writer takes the first free "<name>#<n>" slot instead.
	const retryCount = 5
	for i := range retryCount {
		tmpPath := p + tmpSeparator + strconv.FormatUint(uint64(i), 10)
		err := w.writeAndRename(tmpPath, p, data)
		if !errors.Is(err, syscall.EEXIST) || i == retryCount-1 {
			return err
		}
	}

	return fmt.Errorf("couldn't write file after %d retries", retryCount)
}

// writeAndRename opens tmpPath exclusively, writes data to it and renames it to p.
func (w *genericWriter) writeAndRename(tmpPath, p string, data []byte) error {
	err := w.writeFile(tmpPath, data)
	if err != nil {
		var pe *fs.PathError
		if errors.As(err, &pe) && errors.Is(pe.Err, syscall.EEXIST) {
			return syscall.EEXIST
		}

		_ = os.Remove(tmpPath)
		if util.IsNoSpace(err) {
			return common.ErrNoSpace
		}
		return fmt.Errorf("write data into file %q: %w", tmpPath, err)
	}

	err = os.Rename(tmpPath, p)
	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename file %q->%q: %w", tmpPath, p, err)
	}

	return nil
}

// writeFile writes data to a file with path p.
// The code is copied from `os.WriteFile` with minor corrections for flags.
func (w *genericWriter) writeFile(p string, data []byte) error {
	f, err := os.OpenFile(p, w.flags, w.perm)
	if err != nil {
		return fmt.Errorf("open file with flags %d: %w", w.flags, err)
	}
	_, err = f.Write(data)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("write data to the file: %w", err)
	}
	err = f.Close()
	if err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}
