package boltstore

import (
	"bytes"
	"fmt"

	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/common"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// Get returns chunk data by ID. The returned slice is owned by the caller.
func (b *Bolt) Get(id chunk.ID) (data []byte, err error) {
	defer common.RecoverFatal(&err)

	err = b.db.View(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(bucketName)
		if bkt == nil {
			return chunk.ErrChunkNotFound
		}

		v := bkt.Get(id.Bytes())
		if v == nil {
			return chunk.ErrChunkNotFound
		}

		// Value is valid only during the transaction.
		data = bytes.Clone(v)
		return nil
	})

	return data, err
}

// Exists checks whether chunk is stored.
func (b *Bolt) Exists(id chunk.ID) (ok bool, err error) {
	defer common.RecoverFatal(&err)

	err = b.db.View(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(bucketName)
		ok = bkt != nil && bkt.Get(id.Bytes()) != nil
		return nil
	})

	return ok, err
}

// Put saves chunk data in a single transaction, overwriting existing value.
func (b *Bolt) Put(id chunk.ID, data []byte) (err error) {
	if b.readOnly {
		return common.ErrReadOnly
	}

	defer common.RecoverFatal(&err)

	err = b.db.Update(func(tx *bbolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return err
		}
		// bbolt copies value on commit, but the slice must stay untouched
		// till then.
		return bkt.Put(id.Bytes(), bytes.Clone(data))
	})
	if err != nil {
		return fmt.Errorf("put chunk %s into BoltDB: %w", id, convertErr(err))
	}

	b.written.Add(uint64(len(data)))

	return nil
}

// Delete removes chunk from the database.
func (b *Bolt) Delete(id chunk.ID) (err error) {
	if b.readOnly {
		return common.ErrReadOnly
	}

	defer common.RecoverFatal(&err)

	return b.db.Update(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(bucketName)
		if bkt == nil || bkt.Get(id.Bytes()) == nil {
			return chunk.ErrChunkNotFound
		}
		return bkt.Delete(id.Bytes())
	})
}

// Iterate implements common.Storage. Chunks are visited in key order.
func (b *Bolt) Iterate(handler func(chunk.ID, []byte) error, errHandler func(chunk.ID, error) error) (err error) {
	defer common.RecoverFatal(&err)

	return b.db.View(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(bucketName)
		if bkt == nil {
			return nil
		}

		return bkt.ForEach(func(k, v []byte) error {
			id, err := chunk.DecodeBytes(k)
			if err != nil {
				b.log.Debug("skip invalid key in BoltDB",
					zap.String("path", b.path), zap.Error(err))
				return nil
			}
			if v == nil {
				err = fmt.Errorf("nested bucket %s instead of a chunk", id)
				if errHandler != nil {
					return errHandler(id, err)
				}
				return err
			}
			return handler(id, bytes.Clone(v))
		})
	})
}

// IterateIDs implements common.Storage. Nested buckets are skipped.
func (b *Bolt) IterateIDs(handler func(chunk.ID) error) (err error) {
	defer common.RecoverFatal(&err)

	return b.db.View(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(bucketName)
		if bkt == nil {
			return nil
		}

		return bkt.ForEach(func(k, v []byte) error {
			if v == nil {
				return nil
			}
			id, err := chunk.DecodeBytes(k)
			if err != nil {
				b.log.Debug("skip invalid key in BoltDB",
					zap.String("path", b.path), zap.Error(err))
				return nil
			}
			return handler(id)
		})
	})
}
