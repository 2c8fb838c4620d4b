package fstree

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/common"
	"github.com/nspcc-dev/pfs-agent/pkg/util"
	"go.uber.org/zap"
)

// ErrInvalidDepth is returned from Init when directory depth and directory
// name length do not fit into the hashed chunk ID.
var ErrInvalidDepth = errors.New("invalid tree depth")

// Open implements common.Storage.
func (t *FSTree) Open(ro bool) error {
	t.readOnly = ro
	return nil
}

// Init implements common.Storage.
func (t *FSTree) Init() error {
	if t.DirNameLen <= 0 || t.Depth > uint64((2*sha256.Size-1)/t.DirNameLen) {
		return fmt.Errorf("%w: depth %d, directory name length %d", ErrInvalidDepth, t.Depth, t.DirNameLen)
	}

	if t.readOnly {
		// Nothing can be written, but the tree must be walkable.
		_, err := os.Stat(t.RootPath)
		if err != nil {
			return fmt.Errorf("stat %q: %w", t.RootPath, err)
		}
		return nil
	}

	err := t.mkdirAll(t.RootPath)
	if err != nil {
		return fmt.Errorf("mkdir all for %q: %w", t.RootPath, err)
	}

	err = t.removeTemporary()
	if err != nil {
		return fmt.Errorf("remove temporary files: %w", err)
	}
	return nil
}

// removeTemporary deletes files left by interrupted writes.
func (t *FSTree) removeTemporary() error {
	root := filepath.Clean(t.RootPath)
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if p == root {
				return nil
			}
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			if uint64(strings.Count(rel, string(filepath.Separator))+1) > t.Depth {
				return fs.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !strings.Contains(d.Name(), tmpSeparator) {
			return nil
		}

		err = os.Remove(p)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		t.log.Debug("removed leftover of interrupted write", zap.String("path", p))
		return nil
	})
}

// Close implements common.Storage.
func (t *FSTree) Close() error {
	return t.writer.finalize()
}

func (t *FSTree) mkdirAll(p string) error {
	err := util.MkdirAllX(p, t.Permissions)
	if util.IsNoSpace(err) {
		return common.ErrNoSpace
	}
	return err
}
