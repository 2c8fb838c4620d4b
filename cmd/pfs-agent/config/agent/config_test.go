package agentconfig_test

import (
	"testing"

	"github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config"
	agentconfig "github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config/agent"
	configtest "github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config/test"
	"github.com/stretchr/testify/require"
)

func TestAgentSection(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		empty := configtest.EmptyConfig(t)

		dir, err := agentconfig.DataDir(empty)
		require.NoError(t, err)
		require.Equal(t, agentconfig.DataDirDefault, dir)
	})

	const path = "../../../../config/example/agent"

	var fileConfigTest = func(c *config.Config) {
		dir, err := agentconfig.DataDir(c)
		require.NoError(t, err)
		require.Equal(t, "/var/lib/pfs-agent-test", dir)
	}

	configtest.ForEachFileType(t, path, fileConfigTest)

	t.Run("ENV", func(t *testing.T) {
		configtest.ForEnvFileType(t, path, fileConfigTest)
	})

	t.Run("home expansion", func(t *testing.T) {
		t.Setenv("HOME", "/home/pfs")
		t.Setenv("PFS_AGENT_DATA_DIR", "~/agent")

		dir, err := agentconfig.DataDir(configtest.EmptyConfig(t))
		require.NoError(t, err)
		require.Equal(t, "/home/pfs/agent", dir)
	})
}
