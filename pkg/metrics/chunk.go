package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const chunkSubsystem = "chunk"

type chunkMetrics struct {
	readDuration  *prometheus.HistogramVec
	writeDuration *prometheus.HistogramVec

	readBytes  *prometheus.CounterVec
	writeBytes *prometheus.CounterVec

	errors *prometheus.CounterVec

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec

	stored *prometheus.GaugeVec
}

func newChunkMetrics() chunkMetrics {
	newCounter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: chunkSubsystem,
			Name:      name,
			Help:      help,
		}, labels)
	}

	return chunkMetrics{
		readDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: chunkSubsystem,
			Name:      "read_time",
			Help:      "Chunk 'read' operations handling time",
		}, []string{shardIDLabelKey}),
		writeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: chunkSubsystem,
			Name:      "write_time",
			Help:      "Chunk 'write' operations handling time",
		}, []string{shardIDLabelKey}),
		readBytes:   newCounter("read_bytes", "Number of chunk bytes read", shardIDLabelKey),
		writeBytes:  newCounter("write_bytes", "Number of chunk bytes written", shardIDLabelKey),
		errors:      newCounter("errors", "Number of failed chunk operations", shardIDLabelKey, opLabelKey),
		cacheHits:   newCounter("cache_hits", "Number of chunk reads served from cache", shardIDLabelKey),
		cacheMisses: newCounter("cache_misses", "Number of chunk reads missed cache", shardIDLabelKey),
		stored: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: chunkSubsystem,
			Name:      "stored",
			Help:      "Number of chunks stored in the shard",
		}, []string{shardIDLabelKey}),
	}
}

func (m chunkMetrics) register(reg prometheus.Registerer) {
	reg.MustRegister(m.readDuration)
	reg.MustRegister(m.writeDuration)
	reg.MustRegister(m.readBytes)
	reg.MustRegister(m.writeBytes)
	reg.MustRegister(m.errors)
	reg.MustRegister(m.cacheHits)
	reg.MustRegister(m.cacheMisses)
	reg.MustRegister(m.stored)
}

func (m chunkMetrics) AddReadDuration(shardID string, d time.Duration) {
	m.readDuration.With(prometheus.Labels{shardIDLabelKey: shardID}).Observe(d.Seconds())
}

func (m chunkMetrics) AddWriteDuration(shardID string, d time.Duration) {
	m.writeDuration.With(prometheus.Labels{shardIDLabelKey: shardID}).Observe(d.Seconds())
}

func (m chunkMetrics) AddReadBytes(shardID string, n int) {
	m.readBytes.With(prometheus.Labels{shardIDLabelKey: shardID}).Add(float64(n))
}

func (m chunkMetrics) AddWriteBytes(shardID string, n int) {
	m.writeBytes.With(prometheus.Labels{shardIDLabelKey: shardID}).Add(float64(n))
}

func (m chunkMetrics) IncErrors(shardID string, op string) {
	m.errors.With(prometheus.Labels{shardIDLabelKey: shardID, opLabelKey: op}).Inc()
}

func (m chunkMetrics) IncCacheHits(shardID string) {
	m.cacheHits.With(prometheus.Labels{shardIDLabelKey: shardID}).Inc()
}

func (m chunkMetrics) IncCacheMisses(shardID string) {
	m.cacheMisses.With(prometheus.Labels{shardIDLabelKey: shardID}).Inc()
}

// SetStoredChunks updates the number of chunks stored in the shard.
func (m chunkMetrics) SetStoredChunks(shardID string, n int) {
	m.stored.With(prometheus.Labels{shardIDLabelKey: shardID}).Set(float64(n))
}
