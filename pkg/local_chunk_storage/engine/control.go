package engine

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var errNoShards = errors.New("no shards configured")

// Open opens all StorageEngine's shards concurrently.
func (e *StorageEngine) Open() error {
	e.mtx.RLock()
	defer e.mtx.RUnlock()

	if len(e.shards) == 0 {
		return errNoShards
	}

	var g errgroup.Group
	for _, sh := range e.shards {
		g.Go(func() error {
			if err := sh.Open(sh.readOnly); err != nil {
				return fmt.Errorf("could not open shard %s: %w", sh.ID(), err)
			}
			return nil
		})
	}

	return g.Wait()
}

// Init initializes all StorageEngine's shards concurrently.
func (e *StorageEngine) Init() error {
	e.mtx.RLock()
	defer e.mtx.RUnlock()

	var g errgroup.Group
	for _, sh := range e.shards {
		g.Go(func() error {
			if err := sh.Init(); err != nil {
				return fmt.Errorf("could not initialize shard %s: %w", sh.ID(), err)
			}
			return nil
		})
	}

	return g.Wait()
}

// Close releases all StorageEngine's shards. Failures are logged, Close
// tries to close every shard.
func (e *StorageEngine) Close() error {
	e.mtx.RLock()
	defer e.mtx.RUnlock()

	var g errgroup.Group
	for _, sh := range e.shards {
		g.Go(func() error {
			if err := sh.Close(); err != nil {
				e.log.Debug("could not close shard",
					zap.Stringer("id", sh.ID()),
					zap.Error(err),
				)
				return fmt.Errorf("could not close shard %s: %w", sh.ID(), err)
			}
			return nil
		})
	}

	return g.Wait()
}
