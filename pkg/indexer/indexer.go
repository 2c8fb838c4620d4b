package indexer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nspcc-dev/pfs-agent/pkg/util"
	"go.uber.org/zap"
)

// readDirBatch is a number of directory entries requested from the OS at once.
const readDirBatch = 256

// Metrics is a set of indexing counters.
type Metrics interface {
	IncVisitedDirs()
	IncSkippedDirs()
	AddIndexedFiles(n int)
	ObserveWalkDuration(d time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) IncVisitedDirs()                   {}
func (noopMetrics) IncSkippedDirs()                   {}
func (noopMetrics) AddIndexedFiles(int)               {}
func (noopMetrics) ObserveWalkDuration(time.Duration) {}

// Indexer discovers regular files of directory trees.
//
// Traversal is depth-first pre-order. Directories which cannot be opened or
// read are skipped silently (logged at debug level), traversal errors are
// never returned to the caller. Symbolic links, devices, sockets and other
// non-regular entries are not indexed and not followed.
//
// Files are appended in the order the OS enumerates directory entries, this
// order is filesystem-dependent and is not lexicographic.
type Indexer struct {
	*cfg
}

// Option is an option of Indexer's constructor.
type Option func(*cfg)

type cfg struct {
	log *zap.Logger

	metrics Metrics

	visitor func(string)

	pool util.WorkerPool

	initCap int
}

func defaultCfg() *cfg {
	return &cfg{
		log:     zap.NewNop(),
		metrics: noopMetrics{},
		pool:    util.NewPseudoWorkerPool(),
		initCap: DefaultCatalogCapacity,
	}
}

// New returns new Indexer.
func New(opts ...Option) *Indexer {
	c := defaultCfg()

	for i := range opts {
		opts[i](c)
	}

	return &Indexer{
		cfg: c,
	}
}

// WithLogger returns option to specify Indexer's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l.With(zap.String("component", "Indexer"))
	}
}

// WithMetrics returns option to specify indexing metrics.
func WithMetrics(m Metrics) Option {
	return func(c *cfg) {
		c.metrics = m
	}
}

// WithVisitor returns option to register callback invoked with the path of
// every directory opened during traversal, including the root. In
// WalkParallel the callback is called from several routines concurrently.
func WithVisitor(f func(dir string)) Option {
	return func(c *cfg) {
		c.visitor = f
	}
}

// WithWorkerPool returns option to specify the pool WalkParallel submits
// subtree traversals to. By default subtrees are walked synchronously.
func WithWorkerPool(p util.WorkerPool) Option {
	return func(c *cfg) {
		c.pool = p
	}
}

// WithInitialCapacity returns option to set initial capacity of
// the catalogs created by Indexer.
func WithInitialCapacity(n int) Option {
	return func(c *cfg) {
		if n > 0 {
			c.initCap = n
		}
	}
}

// Walk traverses the tree rooted at root with default Indexer settings
// and returns all discovered regular files. Unreachable root leads to
// empty Catalog.
func Walk(root string) *Catalog {
	return New().Walk(root)
}

// WalkInto is like Walk but appends discovered files to c.
func WalkInto(root string, c *Catalog) {
	New().WalkInto(root, c)
}

// Walk traverses the tree rooted at root and returns all discovered
// regular files.
func (x *Indexer) Walk(root string) *Catalog {
	c := NewCatalog(x.initCap)
	x.WalkInto(root, c)
	return c
}

// WalkInto traverses the tree rooted at root appending discovered regular
// files to c.
func (x *Indexer) WalkInto(root string, c *Catalog) {
	start := time.Now()
	before := c.Len()

	x.walk(root, c)

	x.metrics.AddIndexedFiles(c.Len() - before)
	x.metrics.ObserveWalkDuration(time.Since(start))
}

// WalkParallel traverses the tree rooted at root walking each top-level
// subdirectory on the configured worker pool into its own Catalog. Files
// located directly in root come first, then subtree catalogs follow in
// the enumeration order of their directories. The set of returned files
// equals the one of Walk.
//
// Error is returned only if the pool rejected a subtree traversal.
func (x *Indexer) WalkParallel(root string) (*Catalog, error) {
	start := time.Now()
	res := NewCatalog(x.initCap)

	var subdirs []string

	x.readDir(root, func(p string, d fs.DirEntry) {
		switch {
		case d.Type().IsRegular():
			res.Append(p)
		case d.IsDir():
			subdirs = append(subdirs, p)
		}
	})

	var (
		wg   sync.WaitGroup
		subs = make([]*Catalog, len(subdirs))
	)

	for i := range subdirs {
		wg.Add(1)

		err := x.pool.Submit(func() {
			defer wg.Done()

			c := NewCatalog(x.initCap)
			x.walk(subdirs[i], c)
			subs[i] = c
		})
		if err != nil {
			wg.Done()
			wg.Wait()

			return nil, fmt.Errorf("submit traversal of %q: %w", subdirs[i], err)
		}
	}

	wg.Wait()

	for i := range subs {
		res.Merge(subs[i])
	}

	x.metrics.AddIndexedFiles(res.Len())
	x.metrics.ObserveWalkDuration(time.Since(start))

	return res, nil
}

func (x *Indexer) walk(dir string, c *Catalog) {
	x.readDir(dir, func(p string, d fs.DirEntry) {
		switch {
		case d.Type().IsRegular():
			c.Append(p)
		case d.IsDir():
			x.walk(p, c)
		}
	})
}

// readDir passes each entry of the directory except self and parent ones
// to f in enumeration order. The directory stays open while f is executed.
func (x *Indexer) readDir(dir string, f func(string, fs.DirEntry)) {
	d, err := os.Open(dir)
	if err != nil {
		x.skip(dir, err)
		return
	}

	defer func() {
		if err := d.Close(); err != nil {
			x.log.Debug("could not close directory",
				zap.String("path", dir),
				zap.Error(err),
			)
		}
	}()

	fi, err := d.Stat()
	if err != nil {
		x.skip(dir, err)
		return
	}

	if !fi.IsDir() {
		x.skip(dir, errNotDirectory)
		return
	}

	x.metrics.IncVisitedDirs()

	if x.visitor != nil {
		x.visitor(dir)
	}

	for {
		entries, err := d.ReadDir(readDirBatch)

		for i := range entries {
			name := entries[i].Name()
			if name == "." || name == ".." {
				continue
			}

			f(filepath.Join(dir, name), entries[i])
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				x.log.Debug("directory listing interrupted",
					zap.String("path", dir),
					zap.Error(err),
				)
			}

			return
		}
	}
}

var errNotDirectory = errors.New("not a directory")

func (x *Indexer) skip(dir string, err error) {
	x.metrics.IncSkippedDirs()

	x.log.Debug("skip unreachable directory",
		zap.String("path", dir),
		zap.Error(err),
	)
}
