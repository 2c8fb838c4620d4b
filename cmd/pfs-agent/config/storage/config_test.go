package storageconfig_test

import (
	"io/fs"
	"strconv"
	"testing"

	"github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config"
	storageconfig "github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config/storage"
	shardconfig "github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config/storage/shard"
	configtest "github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config/test"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/fstree"
	"github.com/stretchr/testify/require"
)

func TestStorageSection(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		empty := configtest.EmptyConfig(t)

		require.ErrorIs(t,
			storageconfig.IterateShards(empty, nil),
			storageconfig.ErrNoShardConfigured)

		require.False(t, storageconfig.Compress(empty))
		require.Equal(t, storageconfig.CacheSizeDefault, storageconfig.CacheSize(empty))
	})

	const path = "../../../../config/example/agent"

	var fileConfigTest = func(c *config.Config) {
		require.True(t, storageconfig.Compress(c))
		require.Equal(t, 128, storageconfig.CacheSize(c))

		num := 0
		require.NoError(t, storageconfig.IterateShards(c, func(sc *shardconfig.Config) error {
			switch num {
			case 0:
				require.Equal(t, "fstree", sc.Type())
				require.Equal(t, "/srv/pfs/fstree0", sc.Path())
				require.Equal(t, fs.FileMode(0o750), sc.Perm())
				require.EqualValues(t, 3, sc.Depth())
				require.True(t, sc.NoSync())
				require.Equal(t, shardconfig.ModeReadWrite, sc.Mode())
				require.False(t, sc.ReadOnly())
			case 1:
				require.Equal(t, "bbolt", sc.Type())
				require.Equal(t, "/srv/pfs/bbolt1.db", sc.Path())
				require.Equal(t, fs.FileMode(shardconfig.PermDefault), sc.Perm())
				require.EqualValues(t, shardconfig.DepthDefault, sc.Depth())
				require.False(t, sc.NoSync())
				require.Equal(t, shardconfig.ModeReadOnly, sc.Mode())
				require.True(t, sc.ReadOnly())
			}
			num++
			return nil
		}))
		require.Equal(t, 2, num)
	}

	configtest.ForEachFileType(t, path, fileConfigTest)

	t.Run("ENV", func(t *testing.T) {
		configtest.ForEnvFileType(t, path, fileConfigTest)
	})

	t.Run("invalid mode", func(t *testing.T) {
		t.Setenv("PFS_STORAGE_SHARD_0_TYPE", "memory")
		t.Setenv("PFS_STORAGE_SHARD_0_MODE", "degraded")

		require.NoError(t, storageconfig.IterateShards(configtest.EmptyConfig(t), func(sc *shardconfig.Config) error {
			require.Panics(t, func() { sc.Mode() })
			return nil
		}))
	})
	t.Run("depth out of range", func(t *testing.T) {
		t.Setenv("PFS_STORAGE_SHARD_0_TYPE", "fstree")
		t.Setenv("PFS_STORAGE_SHARD_0_DEPTH", strconv.Itoa(fstree.MaxDepth+2))

		require.NoError(t, storageconfig.IterateShards(configtest.EmptyConfig(t), func(sc *shardconfig.Config) error {
			require.Panics(t, func() { sc.Depth() })
			return nil
		}))
	})

	t.Run("maximum depth", func(t *testing.T) {
		t.Setenv("PFS_STORAGE_SHARD_0_TYPE", "fstree")
		t.Setenv("PFS_STORAGE_SHARD_0_DEPTH", strconv.Itoa(fstree.MaxDepth))

		require.NoError(t, storageconfig.IterateShards(configtest.EmptyConfig(t), func(sc *shardconfig.Config) error {
			require.EqualValues(t, fstree.MaxDepth, sc.Depth())
			return nil
		}))
	})
}
