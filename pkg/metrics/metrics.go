package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "pfs_agent"

	shardIDLabelKey = "shard"
	opLabelKey      = "operation"
)

// AgentMetrics groups all agent's collectors. It implements both
// chunkstor.Metrics and indexer.Metrics.
type AgentMetrics struct {
	chunkMetrics
	indexerMetrics
	stateMetrics
}

// NewAgentMetrics creates agent collectors and registers them in the default
// prometheus registry. Must be called once per process.
func NewAgentMetrics(version string) *AgentMetrics {
	return newAgentMetrics(prometheus.DefaultRegisterer, version)
}

func newAgentMetrics(reg prometheus.Registerer, version string) *AgentMetrics {
	chunks := newChunkMetrics()
	chunks.register(reg)

	idx := newIndexerMetrics()
	idx.register(reg)

	state := newStateMetrics()
	state.register(reg)

	registerVersionMetric(reg, namespace, version)

	return &AgentMetrics{
		chunkMetrics:   chunks,
		indexerMetrics: idx,
		stateMetrics:   state,
	}
}
