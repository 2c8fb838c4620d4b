package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const indexerSubsystem = "indexer"

type indexerMetrics struct {
	visitedDirs  prometheus.Counter
	skippedDirs  prometheus.Counter
	indexedFiles prometheus.Counter
	walkDuration prometheus.Histogram

	catalogSize prometheus.Gauge
}

func newIndexerMetrics() indexerMetrics {
	return indexerMetrics{
		visitedDirs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: indexerSubsystem,
			Name:      "visited_dirs",
			Help:      "Number of directories opened by the indexer",
		}),
		skippedDirs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: indexerSubsystem,
			Name:      "skipped_dirs",
			Help:      "Number of directories the indexer failed to open",
		}),
		indexedFiles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: indexerSubsystem,
			Name:      "indexed_files",
			Help:      "Number of regular files put into catalogs",
		}),
		walkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: indexerSubsystem,
			Name:      "walk_time",
			Help:      "Full tree indexing time",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		catalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: indexerSubsystem,
			Name:      "catalog_size",
			Help:      "Number of files in the last built catalog",
		}),
	}
}

func (m indexerMetrics) register(reg prometheus.Registerer) {
	reg.MustRegister(m.visitedDirs)
	reg.MustRegister(m.skippedDirs)
	reg.MustRegister(m.indexedFiles)
	reg.MustRegister(m.walkDuration)
	reg.MustRegister(m.catalogSize)
}

func (m indexerMetrics) IncVisitedDirs() {
	m.visitedDirs.Inc()
}

func (m indexerMetrics) IncSkippedDirs() {
	m.skippedDirs.Inc()
}

func (m indexerMetrics) AddIndexedFiles(n int) {
	m.indexedFiles.Add(float64(n))
}

func (m indexerMetrics) ObserveWalkDuration(d time.Duration) {
	m.walkDuration.Observe(d.Seconds())
}

// SetCatalogSize updates the size of the last built catalog.
func (m indexerMetrics) SetCatalogSize(n int) {
	m.catalogSize.Set(float64(n))
}
