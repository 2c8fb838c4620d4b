package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config"
	agentconfig "github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config/agent"
	loggerconfig "github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config/logger"
	"github.com/nspcc-dev/pfs-agent/pkg/indexer"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/engine"
	"github.com/nspcc-dev/pfs-agent/pkg/metrics"
	"github.com/nspcc-dev/pfs-agent/pkg/util/logger"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

type cfg struct {
	ctx context.Context

	appCfg *config.Config

	log *zap.Logger
	// closeLog releases the log file after the last record.
	closeLog func() error

	dataDir string

	wg sync.WaitGroup

	workers []worker

	// closers are called in reverse order on shutdown.
	closers []func()

	healthy atomic.Bool

	engine *engine.StorageEngine

	indexer *indexer.Indexer

	metrics *metrics.AgentMetrics
}

func initCfg(path string) *cfg {
	appCfg, err := config.New(config.Prm{}, config.WithConfigFile(path))
	fatalOnErr(err)

	l, closeLog, err := newLogger(appCfg)
	fatalOnErrDetails("init logger", err)

	dataDir, err := agentconfig.DataDir(appCfg)
	fatalOnErrDetails("read data directory", err)

	return &cfg{
		appCfg:   appCfg,
		log:      l,
		closeLog: closeLog,
		dataDir:  dataDir,
	}
}

// newLogger returns the logger configured by appCfg and the function releasing
// its log file.
func newLogger(appCfg *config.Config) (*zap.Logger, func() error, error) {
	var prm logger.Prm

	err := prm.SetLevelString(loggerconfig.Level(appCfg))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid level: %w", err)
	}

	err = prm.SetEncoding(loggerconfig.Encoding(appCfg))
	if err != nil {
		return nil, nil, err
	}

	f, err := loggerconfig.LogFile(appCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log file: %w", err)
	}

	if f.Path != "" {
		prm.SetFile(logger.FilePrm{
			Path:       f.Path,
			MaxSizeMB:  f.MaxSizeMB,
			MaxBackups: f.MaxBackups,
			MaxAgeDays: f.MaxAgeDays,
		})
	}

	l, err := logger.NewLogger(&prm)
	if err != nil {
		_ = prm.Close()
		return nil, nil, err
	}

	return l, prm.Close, nil
}

func (c *cfg) onShutdown(f func()) {
	c.closers = append(c.closers, f)
}

func (c *cfg) setHealthy(ok bool) {
	c.healthy.Store(ok)
	if c.metrics != nil {
		c.metrics.SetHealthy(ok)
	}
}
