// Package boltstore implements chunk storage on top of a single BoltDB file.
package boltstore

import (
	"io/fs"
	"time"

	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/common"
	"go.etcd.io/bbolt"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Type is bbolt storage type used in logs and configuration.
const Type = "bbolt"

// DefaultPerm is the permission set of the database file and its parent
// directories.
const DefaultPerm = 0700

var bucketName = []byte("chunks")

// Bolt represents chunk storage in BoltDB.
type Bolt struct {
	*cfg

	readOnly bool
	// written is the number of bytes put since the last Open.
	written *atomic.Uint64

	db *bbolt.DB
}

// Option is an option of Bolt's constructor.
type Option func(*cfg)

type cfg struct {
	perm   fs.FileMode
	path   string
	noSync bool

	boltOptions bbolt.Options

	log *zap.Logger
}

func defaultCfg() *cfg {
	return &cfg{
		perm: DefaultPerm,
		boltOptions: bbolt.Options{
			Timeout: 100 * time.Millisecond,
		},
		log: zap.NewNop(),
	}
}

var _ common.Storage = (*Bolt)(nil)

// New creates and returns new Bolt instance.
func New(opts ...Option) *Bolt {
	c := defaultCfg()

	for i := range opts {
		opts[i](c)
	}

	return &Bolt{
		cfg:     c,
		written: atomic.NewUint64(0),
	}
}

// WithPath returns option to set system path to the database file.
func WithPath(path string) Option {
	return func(c *cfg) {
		c.path = path
	}
}

// WithPermissions returns option to specify permission bits
// of the database file.
func WithPermissions(perm fs.FileMode) Option {
	return func(c *cfg) {
		c.perm = perm
	}
}

// WithNoSync returns option to skip fsync after every transaction.
func WithNoSync(noSync bool) Option {
	return func(c *cfg) {
		c.noSync = noSync
	}
}

// WithLogger returns option to specify Bolt's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l.With(zap.String("component", "BoltStore"))
	}
}

// Type implements common.Storage.
func (b *Bolt) Type() string {
	return Type
}

// Path implements common.Storage.
func (b *Bolt) Path() string {
	return b.path
}

// SetLogger implements common.Storage.
func (b *Bolt) SetLogger(l *zap.Logger) {
	b.log = l
}

// Written returns the number of bytes put since the database was opened.
func (b *Bolt) Written() uint64 {
	return b.written.Load()
}
