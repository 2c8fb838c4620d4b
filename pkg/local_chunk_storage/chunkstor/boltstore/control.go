package boltstore

import (
	"fmt"
	"path/filepath"

	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/common"
	"github.com/nspcc-dev/pfs-agent/pkg/util"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// Open opens an internal database at configured path with configured permissions.
//
// If the database file does not exist then it will be created automatically
// unless the storage is opened in read-only mode.
func (b *Bolt) Open(readOnly bool) (err error) {
	defer common.RecoverFatal(&err)

	b.readOnly = readOnly

	if !readOnly {
		b.log.Debug("creating directory for BoltDB",
			zap.String("path", b.path),
		)

		err = util.MkdirAllX(filepath.Dir(b.path), b.perm)
		if err != nil {
			return fmt.Errorf("create dir %q: %w", filepath.Dir(b.path), err)
		}
	}

	b.log.Debug("opening BoltDB",
		zap.String("path", b.path),
		zap.Stringer("permissions", b.perm),
		zap.Bool("read-only", readOnly),
	)

	opts := b.boltOptions
	opts.ReadOnly = readOnly
	opts.NoSync = b.noSync

	b.db, err = bbolt.Open(b.path, b.perm, &opts)
	if err != nil {
		return fmt.Errorf("open BoltDB %q: %w", b.path, err)
	}

	b.written.Store(0)

	return nil
}

// Init creates the chunk bucket if it does not exist yet.
func (b *Bolt) Init() (err error) {
	defer common.RecoverFatal(&err)

	if b.readOnly {
		return nil
	}

	err = b.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		return fmt.Errorf("create bucket: %w", convertErr(err))
	}
	return nil
}

// Close releases all internal database resources.
func (b *Bolt) Close() error {
	if b.db == nil {
		return nil
	}

	b.log.Debug("closing BoltDB",
		zap.String("path", b.path),
	)

	err := b.db.Close()
	b.db = nil
	return err
}

func convertErr(err error) error {
	if util.IsNoSpace(err) {
		return common.ErrNoSpace
	}
	return err
}
