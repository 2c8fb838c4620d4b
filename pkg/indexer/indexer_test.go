package indexer

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nspcc-dev/pfs-agent/pkg/util"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeFile(t *testing.T, p string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o700))
	require.NoError(t, os.WriteFile(p, []byte(p), 0o600))
}

func TestWalk_Scenario(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "a.txt"))
	writeFile(t, filepath.Join(root, "sub", "b.txt"))
	writeFile(t, filepath.Join(root, "sub", "sub2", "c.txt"))

	c := Walk(root)
	require.ElementsMatch(t, []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "sub", "b.txt"),
		filepath.Join(root, "sub", "sub2", "c.txt"),
	}, c.Slice())

	for p := range c.All() {
		require.NotEqual(t, ".", filepath.Base(p))
		require.NotEqual(t, "..", filepath.Base(p))
	}
}

func TestWalk_UnreachableRoot(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		c := Walk(filepath.Join(t.TempDir(), "missing"))
		require.Zero(t, c.Len())
	})

	t.Run("regular file", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "file")
		writeFile(t, p)

		c := Walk(p)
		require.Zero(t, c.Len())
	})

	t.Run("keeps accumulated", func(t *testing.T) {
		c := NewCatalog(0)
		c.Append("/already/there")

		WalkInto(filepath.Join(t.TempDir(), "missing"), c)
		require.Equal(t, []string{"/already/there"}, c.Slice())
	})
}

func TestWalk_OnlyDirectories(t *testing.T) {
	root := t.TempDir()

	dirs := []string{
		filepath.Join(root, "a"),
		filepath.Join(root, "a", "b"),
		filepath.Join(root, "a", "b", "c"),
		filepath.Join(root, "d"),
	}
	for i := range dirs {
		require.NoError(t, os.MkdirAll(dirs[i], 0o700))
	}

	var visited []string

	c := New(
		WithLogger(zaptest.NewLogger(t)),
		WithVisitor(func(dir string) { visited = append(visited, dir) }),
	).Walk(root)

	require.Zero(t, c.Len())
	require.ElementsMatch(t, append([]string{root}, dirs...), visited)
}

func TestWalk_NonRegularEntries(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()

	writeFile(t, filepath.Join(root, "regular"))
	writeFile(t, filepath.Join(outside, "target"))
	writeFile(t, filepath.Join(outside, "dir", "nested"))

	require.NoError(t, os.Symlink(filepath.Join(outside, "target"), filepath.Join(root, "file-link")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "dir"), filepath.Join(root, "dir-link")))

	c := Walk(root)
	require.Equal(t, []string{filepath.Join(root, "regular")}, c.Slice())
}

func TestWalk_UnreadableSubdirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	root := t.TempDir()
	locked := filepath.Join(root, "locked")

	writeFile(t, filepath.Join(root, "visible"))
	writeFile(t, filepath.Join(locked, "hidden"))

	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o700) })

	c := New(WithLogger(zaptest.NewLogger(t))).Walk(root)
	require.Equal(t, []string{filepath.Join(root, "visible")}, c.Slice())
}

func TestWalk_LongPaths(t *testing.T) {
	root := t.TempDir()

	p := root
	for range 8 {
		p = filepath.Join(p, strings.Repeat("d", 60))
	}
	p = filepath.Join(p, strings.Repeat("f", 100))

	writeFile(t, p)

	c := Walk(root)
	require.Equal(t, []string{p}, c.Slice())
}

// bigTree creates a tree with more files than DefaultCatalogCapacity and
// more entries per directory than a single listing batch.
func bigTree(t *testing.T) (string, []string) {
	root := t.TempDir()

	var files []string

	for i := range 3 * readDirBatch {
		p := filepath.Join(root, "flat", "f"+strings.Repeat("x", i%7)+string(rune('a'+i%26))+"-"+strconv.Itoa(i))
		files = append(files, p)
	}
	for i := range 20 {
		files = append(files,
			filepath.Join(root, "n"+strconv.Itoa(i), "file"),
			filepath.Join(root, "n"+strconv.Itoa(i), "deep", "file"),
			filepath.Join(root, "top-"+strconv.Itoa(i)),
		)
	}

	for i := range files {
		writeFile(t, files[i])
	}

	return root, files
}

func TestWalk_BigTree(t *testing.T) {
	root, files := bigTree(t)

	c := Walk(root)
	require.Greater(t, c.Len(), DefaultCatalogCapacity)
	require.ElementsMatch(t, files, c.Slice())
}

func TestIndexer_WalkParallel(t *testing.T) {
	root, files := bigTree(t)

	pool, err := util.NewWorkerPool(4)
	require.NoError(t, err)
	t.Cleanup(pool.Release)

	var (
		mtx     sync.Mutex
		visited int
	)

	x := New(
		WithWorkerPool(pool),
		WithInitialCapacity(16),
		WithVisitor(func(string) {
			mtx.Lock()
			visited++
			mtx.Unlock()
		}),
	)

	c, err := x.WalkParallel(root)
	require.NoError(t, err)
	require.ElementsMatch(t, files, c.Slice())
	require.ElementsMatch(t, Walk(root).Slice(), c.Slice())

	// root + flat + 20 * (n, n/deep)
	require.Equal(t, 1+1+2*20, visited)

	t.Run("root files first", func(t *testing.T) {
		var rootFiles int
		for i := range files {
			if filepath.Dir(files[i]) == root {
				rootFiles++
			}
		}

		for i := range rootFiles {
			require.Equal(t, root, filepath.Dir(c.At(i)))
		}
	})

	t.Run("missing root", func(t *testing.T) {
		c, err := x.WalkParallel(filepath.Join(root, "missing"))
		require.NoError(t, err)
		require.Zero(t, c.Len())
	})

	t.Run("closed pool", func(t *testing.T) {
		p := util.NewPseudoWorkerPool()
		p.Release()

		_, err := New(WithWorkerPool(p)).WalkParallel(root)
		require.ErrorIs(t, err, util.ErrPoolClosed)
	})
}

type countingMetrics struct {
	visited, skipped, files int
	walks                   int
}

func (m *countingMetrics) IncVisitedDirs()                   { m.visited++ }
func (m *countingMetrics) IncSkippedDirs()                   { m.skipped++ }
func (m *countingMetrics) AddIndexedFiles(n int)             { m.files += n }
func (m *countingMetrics) ObserveWalkDuration(time.Duration) { m.walks++ }

func TestIndexer_Metrics(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a"))
	writeFile(t, filepath.Join(root, "b", "c"))

	var m countingMetrics

	x := New(WithMetrics(&m))
	require.Equal(t, 2, x.Walk(root).Len())
	x.Walk(filepath.Join(root, "missing"))

	require.Equal(t, 2, m.visited)
	require.Equal(t, 1, m.skipped)
	require.Equal(t, 2, m.files)
	require.Equal(t, 2, m.walks)
}
