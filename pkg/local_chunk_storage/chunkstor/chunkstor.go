// Package chunkstor implements chunk.Store over a single sub-storage.
//
// ChunkStor adds to the raw common.Storage everything required by the
// chunk.Store contract: empty chunk rejection, per-ID write serialization,
// optional compression and an optional cache of decoded chunks.
package chunkstor

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/common"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/compression"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/memstore"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/internal/idlock"
	"go.uber.org/zap"
)

// Metrics collects ChunkStor statistics. Every method receives the string
// form of the ChunkStor ID.
type Metrics interface {
	AddReadDuration(shardID string, d time.Duration)
	AddWriteDuration(shardID string, d time.Duration)
	AddReadBytes(shardID string, n int)
	AddWriteBytes(shardID string, n int)
	IncErrors(shardID string, op string)
	IncCacheHits(shardID string)
	IncCacheMisses(shardID string)
}

type noopMetrics struct{}

func (noopMetrics) AddReadDuration(string, time.Duration)  {}
func (noopMetrics) AddWriteDuration(string, time.Duration) {}
func (noopMetrics) AddReadBytes(string, int)               {}
func (noopMetrics) AddWriteBytes(string, int)              {}
func (noopMetrics) IncErrors(string, string)               {}
func (noopMetrics) IncCacheHits(string)                    {}
func (noopMetrics) IncCacheMisses(string)                  {}

// ChunkStor represents chunk storage over one sub-storage.
type ChunkStor struct {
	*cfg

	locks idlock.Locker

	cache *lru.Cache[chunk.ID, []byte]

	readOnly bool
}

var _ chunk.Store = (*ChunkStor)(nil)

// Option represents ChunkStor's constructor option.
type Option func(*cfg)

type cfg struct {
	id ID

	storage common.Storage

	compression compression.Config

	cacheSize int

	log *zap.Logger

	metrics Metrics
}

func defaultCfg() *cfg {
	return &cfg{
		log:     zap.NewNop(),
		metrics: noopMetrics{},
	}
}

// New creates ChunkStor instance. Without WithStorage in-memory sub-storage
// is used.
func New(opts ...Option) *ChunkStor {
	c := defaultCfg()

	for i := range opts {
		opts[i](c)
	}

	if c.storage == nil {
		c.storage = memstore.New()
	}

	if c.id.IsZero() {
		if p := c.storage.Path(); p != "" {
			c.id = idForStorage(c.storage.Type(), p)
		} else {
			c.id = NewID()
		}
	}

	c.log = c.log.With(zap.Stringer("shard_id", c.id))
	c.storage.SetLogger(c.log)

	return &ChunkStor{
		cfg: c,
	}
}

// WithStorage returns option to set sub-storage keeping chunk data.
func WithStorage(s common.Storage) Option {
	return func(c *cfg) {
		c.storage = s
	}
}

// WithLogger returns option to set ChunkStor's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l
	}
}

// WithCompression returns option to toggle compression of the stored chunks.
//
// If true, Zstandard algorithm is used for data compression.
func WithCompression(comp bool) Option {
	return func(c *cfg) {
		c.compression.Enabled = comp
	}
}

// WithCacheSize returns option to set the number of decoded chunks kept in
// memory. Zero disables caching.
func WithCacheSize(sz int) Option {
	return func(c *cfg) {
		c.cacheSize = sz
	}
}

// WithMetrics returns option to set metrics collector.
func WithMetrics(m Metrics) Option {
	return func(c *cfg) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithID returns option to set ChunkStor's identifier. By default it is
// derived from the sub-storage type and path, random one is used for
// storages without a path.
func WithID(id ID) Option {
	return func(c *cfg) {
		c.id = id
	}
}

// ID returns ChunkStor identifier.
func (s *ChunkStor) ID() ID {
	return s.id
}
