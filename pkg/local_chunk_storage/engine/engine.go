package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/nspcc-dev/hrw"
	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/internal/idlock"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// StorageEngine represents local chunk storage engine distributing chunks
// over several ChunkStor shards.
type StorageEngine struct {
	*cfg

	mtx sync.RWMutex

	shards []shardWrapper

	locks idlock.Locker
}

type shardWrapper struct {
	readOnly bool
	// hash is HRW weight base of the shard, derived from its ID.
	hash uint64
	// errorCount counts unexpected shard errors, it is reported in Info.
	errorCount *atomic.Uint32
	*chunkstor.ChunkStor
}

var _ chunk.Store = (*StorageEngine)(nil)

// Option represents StorageEngine's constructor option.
type Option func(*cfg)

type cfg struct {
	log *zap.Logger

	shardOpts []chunkstor.Option
}

func defaultCfg() *cfg {
	return &cfg{
		log: zap.NewNop(),
	}
}

// New creates, initializes and returns new StorageEngine instance.
func New(opts ...Option) *StorageEngine {
	c := defaultCfg()

	for i := range opts {
		opts[i](c)
	}

	return &StorageEngine{
		cfg: c,
	}
}

// WithLogger returns option to set StorageEngine's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l
	}
}

// WithShardOptions returns option to add options to every shard created
// with AddShard. Shard-specific options take precedence.
func WithShardOptions(opts ...chunkstor.Option) Option {
	return func(c *cfg) {
		c.shardOpts = append(c.shardOpts, opts...)
	}
}

var errDuplicatedShard = errors.New("shard with the same ID already exists")

// AddShard adds a new shard to the engine. Shard is opened read-only if
// readOnly is set. Must be called before Open.
func (e *StorageEngine) AddShard(readOnly bool, opts ...chunkstor.Option) (chunkstor.ID, error) {
	all := make([]chunkstor.Option, 0, len(e.shardOpts)+len(opts)+1)
	all = append(all, chunkstor.WithLogger(e.log))
	all = append(all, e.shardOpts...)
	all = append(all, opts...)

	sh := chunkstor.New(all...)

	e.mtx.Lock()
	defer e.mtx.Unlock()

	for i := range e.shards {
		if e.shards[i].ID() == sh.ID() {
			return chunkstor.ID{}, fmt.Errorf("%w: %s", errDuplicatedShard, sh.ID())
		}
	}

	e.shards = append(e.shards, shardWrapper{
		readOnly:   readOnly,
		hash:       hrw.Hash([]byte(sh.ID().String())),
		errorCount: atomic.NewUint32(0),
		ChunkStor:  sh,
	})

	e.log.Info("shard added",
		zap.Stringer("shard_id", sh.ID()),
		zap.String("type", sh.Info().Type),
		zap.String("path", sh.Info().Path),
		zap.Bool("read-only", readOnly))

	return sh.ID(), nil
}

// sortedShards returns shards in the HRW order of the chunk key.
func (e *StorageEngine) sortedShards(id chunk.ID) []shardWrapper {
	e.mtx.RLock()
	defer e.mtx.RUnlock()

	hashes := make([]uint64, len(e.shards))
	byHash := make(map[uint64]shardWrapper, len(e.shards))
	for i := range e.shards {
		hashes[i] = e.shards[i].hash
		byHash[e.shards[i].hash] = e.shards[i]
	}

	hrw.SortSliceByValue(hashes, hrw.Hash(id.Bytes()))

	res := make([]shardWrapper, len(hashes))
	for i := range hashes {
		res[i] = byHash[hashes[i]]
	}
	return res
}

func (e *StorageEngine) reportShardError(sh shardWrapper, msg string, err error, fields ...zap.Field) {
	errCount := sh.errorCount.Inc()
	e.log.Warn(msg, append([]zap.Field{
		zap.Stringer("shard_id", sh.ID()),
		zap.Uint32("error count", errCount),
		zap.Error(err),
	}, fields...)...)
}
