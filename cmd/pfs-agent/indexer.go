package main

import (
	"context"
	"time"

	indexerconfig "github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config/indexer"
	"github.com/nspcc-dev/pfs-agent/pkg/indexer"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor"
	"github.com/nspcc-dev/pfs-agent/pkg/util"
	"go.uber.org/zap"
)

func initIndexer(c *cfg) {
	root, err := indexerconfig.Root(c.appCfg)
	fatalOnErr(err)

	workers := indexerconfig.Workers(c.appCfg)

	pool, err := util.NewWorkerPool(workers)
	fatalOnErrDetails("create indexer worker pool", err)

	opts := []indexer.Option{
		indexer.WithLogger(c.log),
		indexer.WithWorkerPool(pool),
		indexer.WithInitialCapacity(indexerconfig.InitialCapacity(c.appCfg)),
	}

	var (
		sizeRecorder  func(int)
		shardRecorder func(string, int)
	)
	if c.metrics != nil {
		opts = append(opts, indexer.WithMetrics(c.metrics))
		sizeRecorder = c.metrics.SetCatalogSize
		shardRecorder = c.metrics.SetStoredChunks
	}

	c.indexer = indexer.New(opts...)

	c.workers = append(c.workers, &indexWorker{
		log:         c.log.With(zap.String("component", "IndexWorker")),
		idx:         c.indexer,
		root:        root,
		interval:    indexerconfig.Interval(c.appCfg),
		parallel:    workers > 1,
		reportSize:  sizeRecorder,
		shards:      c.engine,
		reportShard: shardRecorder,
	})

	c.onShutdown(pool.Release)
}

// indexWorker re-indexes root directory periodically.
type indexWorker struct {
	log *zap.Logger

	idx *indexer.Indexer

	root string

	interval time.Duration

	parallel bool

	// reportSize is optional.
	reportSize func(int)

	// shards is optional.
	shards chunkCounter

	// reportShard is optional.
	reportShard func(shardID string, n int)
}

type chunkCounter interface {
	ChunkCount() (map[chunkstor.ID]int, error)
}

// Run indexes the root immediately and then every interval until ctx is done.
func (w *indexWorker) Run(ctx context.Context) {
	t := time.NewTicker(w.interval)
	defer t.Stop()

	for {
		w.index()

		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

func (w *indexWorker) index() {
	var (
		start = time.Now()
		c     *indexer.Catalog
		err   error
	)

	if w.parallel {
		c, err = w.idx.WalkParallel(w.root)
		if err != nil {
			w.log.Error("indexing failed", zap.String("root", w.root), zap.Error(err))
			return
		}
	} else {
		c = w.idx.Walk(w.root)
	}

	if w.reportSize != nil {
		w.reportSize(c.Len())
	}

	w.log.Info("root has been indexed",
		zap.String("root", w.root),
		zap.Int("files", c.Len()),
		zap.Duration("took", time.Since(start)),
	)

	w.countChunks()
}

func (w *indexWorker) countChunks() {
	if w.shards == nil {
		return
	}

	counts, err := w.shards.ChunkCount()
	if err != nil {
		w.log.Warn("could not count stored chunks", zap.Error(err))
		return
	}

	for id, n := range counts {
		if w.reportShard != nil {
			w.reportShard(id.String(), n)
		}
		w.log.Debug("shard chunks counted", zap.Stringer("shard", id), zap.Int("chunks", n))
	}
}
