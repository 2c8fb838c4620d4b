package fstree

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/common"
	"go.uber.org/zap"
)

// FSTree represents chunk storage as filesystem tree.
type FSTree struct {
	Info

	Depth      uint64
	DirNameLen int

	noSync   bool
	readOnly bool

	writer writer
	log    *zap.Logger
}

// Info groups the information about file storage.
type Info struct {
	// Permission bits of the root directory.
	Permissions fs.FileMode

	// Full path to the root directory.
	RootPath string
}

const (
	// DirNameLen is how many hex characters are used to group keys into directories.
	DirNameLen = 1
	// MaxDepth is maximum depth of nested directories.
	MaxDepth = (2*sha256.Size - 1) / DirNameLen
	// DefaultDepth is the depth used when nothing else is configured.
	DefaultDepth = 4
	// DefaultPerm is the permission set of created files and directories.
	DefaultPerm = 0700

	// Type is fstree storage type used in logs and configuration.
	Type = "fstree"

	tmpSeparator = "#"
)

var _ common.Storage = (*FSTree)(nil)

// New creates FSTree instance from the given options.
func New(opts ...Option) *FSTree {
	f := &FSTree{
		Info: Info{
			Permissions: DefaultPerm,
			RootPath:    "./",
		},
		Depth:      DefaultDepth,
		DirNameLen: DirNameLen,
		log:        zap.NewNop(),
	}
	for i := range opts {
		opts[i](f)
	}
	f.writer = newGenericWriter(f.Permissions, f.noSync)

	return f
}

func dirPrefix(id chunk.ID) string {
	h := sha256.Sum256(id.Bytes())
	return hex.EncodeToString(h[:])
}

func (t *FSTree) treePath(id chunk.ID) string {
	prefix := dirPrefix(id)

	dirs := make([]string, 0, t.Depth+1+1) // 1 for root, 1 for file
	dirs = append(dirs, t.RootPath)

	for range t.Depth {
		dirs = append(dirs, prefix[:t.DirNameLen])
		prefix = prefix[t.DirNameLen:]
	}

	dirs = append(dirs, id.String())

	return filepath.Join(dirs...)
}

// Iterate iterates over all stored chunks.
func (t *FSTree) Iterate(handler func(chunk.ID, []byte) error, errHandler func(chunk.ID, error) error) error {
	return t.iterate(0, []string{t.RootPath}, func(id chunk.ID, p string) error {
		data, err := os.ReadFile(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// Removed concurrently.
				return nil
			}
			if errHandler != nil {
				return errHandler(id, err)
			}
			return fmt.Errorf("read file %q: %w", p, err)
		}
		return handler(id, data)
	})
}

// IterateIDs iterates over identifiers of all stored chunks.
func (t *FSTree) IterateIDs(handler func(chunk.ID) error) error {
	return t.iterate(0, []string{t.RootPath}, func(id chunk.ID, _ string) error {
		return handler(id)
	})
}

func (t *FSTree) iterate(depth uint64, curPath []string, f func(chunk.ID, string) error) error {
	curName := filepath.Join(curPath...)
	entries, err := os.ReadDir(curName)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", curName, err)
	}

	isLast := depth >= t.Depth
	l := len(curPath)
	curPath = append(curPath, "")

	for i := range entries {
		curPath[l] = entries[i].Name()

		if !isLast {
			if !entries[i].IsDir() {
				continue
			}
			err = t.iterate(depth+1, curPath, f)
			if err != nil {
				return err
			}
			continue
		}

		if !entries[i].Type().IsRegular() || strings.Contains(curPath[l], tmpSeparator) {
			continue
		}

		id, err := chunk.DecodeString(curPath[l])
		if err != nil {
			t.log.Debug("skip unexpected file in the tree",
				zap.String("path", filepath.Join(curPath...)), zap.Error(err))
			continue
		}

		err = f(id, filepath.Join(curPath...))
		if err != nil {
			return err
		}
	}

	return nil
}

// Delete removes chunk with the specified ID from the storage.
func (t *FSTree) Delete(id chunk.ID) error {
	if t.readOnly {
		return common.ErrReadOnly
	}

	p := t.treePath(id)

	err := os.Remove(p)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		err = chunk.ErrChunkNotFound
	}
	return err
}

// Exists returns true if chunk with the given ID is stored.
func (t *FSTree) Exists(id chunk.ID) (bool, error) {
	_, err := os.Stat(t.treePath(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Put puts chunk data into the storage, overwriting existing one.
func (t *FSTree) Put(id chunk.ID, data []byte) error {
	if t.readOnly {
		return common.ErrReadOnly
	}

	p := t.treePath(id)

	if err := t.mkdirAll(filepath.Dir(p)); err != nil {
		if errors.Is(err, common.ErrNoSpace) {
			return err
		}
		return fmt.Errorf("mkdirall for %q: %w", p, err)
	}

	return t.writer.writeData(id, p, data)
}

// Get returns chunk data from the storage by ID.
func (t *FSTree) Get(id chunk.ID) ([]byte, error) {
	p := t.treePath(id)

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, chunk.ErrChunkNotFound
		}
		return nil, fmt.Errorf("read file %q: %w", p, err)
	}

	return data, nil
}

// NumberOfChunks walks the file tree rooted at FSTree's root
// and returns the number of stored chunks.
func (t *FSTree) NumberOfChunks() (uint64, error) {
	var counter uint64
	err := t.IterateIDs(func(chunk.ID) error {
		counter++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("could not walk through %s directory: %w", t.RootPath, err)
	}

	return counter, nil
}

// Type is fstree storage type used in logs and configuration.
func (t *FSTree) Type() string {
	return Type
}

// Path implements common.Storage.
func (t *FSTree) Path() string {
	return t.RootPath
}

// SetLogger sets logger. It is used after the shard ID was generated to use it in logs.
func (t *FSTree) SetLogger(l *zap.Logger) {
	t.log = l
}
