package metricsconfig_test

import (
	"testing"
	"time"

	"github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config"
	metricsconfig "github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config/metrics"
	configtest "github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config/test"
	"github.com/stretchr/testify/require"
)

func TestMetricsSection(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		to := metricsconfig.ShutdownTimeout(configtest.EmptyConfig(t))
		addr := metricsconfig.Address(configtest.EmptyConfig(t))

		require.Equal(t, metricsconfig.ShutdownTimeoutDefault, to)
		require.Equal(t, metricsconfig.AddressDefault, addr)
		require.False(t, metricsconfig.Enabled(configtest.EmptyConfig(t)))
	})

	const path = "../../../../config/example/agent"

	var fileConfigTest = func(c *config.Config) {
		to := metricsconfig.ShutdownTimeout(c)
		addr := metricsconfig.Address(c)

		require.Equal(t, 15*time.Second, to)
		require.Equal(t, "localhost:9091", addr)
		require.True(t, metricsconfig.Enabled(c))
	}

	configtest.ForEachFileType(t, path, fileConfigTest)

	t.Run("ENV", func(t *testing.T) {
		configtest.ForEnvFileType(t, path, fileConfigTest)
	})
}
