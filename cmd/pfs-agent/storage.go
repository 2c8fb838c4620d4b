package main

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config"
	storageconfig "github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config/storage"
	shardconfig "github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config/storage/shard"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/boltstore"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/common"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/fstree"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/memstore"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/engine"
	"go.uber.org/zap"
)

var errUnknownShardType = errors.New("unknown shard type")

func initEngine(c *cfg) {
	var shardOpts []chunkstor.Option
	if c.metrics != nil {
		shardOpts = append(shardOpts, chunkstor.WithMetrics(c.metrics))
	}

	e, err := newEngine(c.appCfg, c.log, shardOpts...)
	fatalOnErrDetails("configure storage engine", err)

	fatalOnErrDetails("open storage engine", e.Open())
	fatalOnErrDetails("init storage engine", e.Init())

	c.log.Info("storage engine is ready", zap.Int("shards", len(e.ShardInfos())))

	c.engine = e
	c.onShutdown(func() {
		c.log.Info("closing storage engine...")

		if err := e.Close(); err != nil {
			c.log.Warn("storage engine closing failure", zap.Error(err))
		}
	})
}

// newEngine builds unopened StorageEngine with shards described by appCfg.
func newEngine(appCfg *config.Config, l *zap.Logger, opts ...chunkstor.Option) (*engine.StorageEngine, error) {
	e := engine.New(
		engine.WithLogger(l),
		engine.WithShardOptions(append([]chunkstor.Option{
			chunkstor.WithCompression(storageconfig.Compress(appCfg)),
			chunkstor.WithCacheSize(storageconfig.CacheSize(appCfg)),
		}, opts...)...),
	)

	err := storageconfig.IterateShards(appCfg, func(sc *shardconfig.Config) error {
		st, err := newShardStorage(sc)
		if err != nil {
			return err
		}

		_, err = e.AddShard(sc.ReadOnly(), chunkstor.WithStorage(st))
		if err != nil {
			return fmt.Errorf("add %s shard %q: %w", st.Type(), st.Path(), err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return e, nil
}

func newShardStorage(sc *shardconfig.Config) (common.Storage, error) {
	switch typ := sc.Type(); typ {
	case fstree.Type:
		return fstree.New(
			fstree.WithPath(sc.Path()),
			fstree.WithPerm(sc.Perm()),
			fstree.WithDepth(sc.Depth()),
			fstree.WithNoSync(sc.NoSync()),
		), nil
	case boltstore.Type:
		return boltstore.New(
			boltstore.WithPath(sc.Path()),
			boltstore.WithPermissions(sc.Perm()),
			boltstore.WithNoSync(sc.NoSync()),
		), nil
	case memstore.Type:
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownShardType, typ)
	}
}
