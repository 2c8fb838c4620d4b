package util_test

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/nspcc-dev/pfs-agent/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestMkdirAllX(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, util.MkdirAllX(p, 0o600))

	fi, err := os.Stat(p)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
	require.Equal(t, fs.FileMode(0o700), fi.Mode().Perm()&0o700)

	require.NoError(t, util.MkdirAllX(p, 0o600), "existing directory")
}

func TestIsNoSpace(t *testing.T) {
	require.True(t, util.IsNoSpace(syscall.ENOSPC))
	require.True(t, util.IsNoSpace(fmt.Errorf("write: %w", &os.PathError{Op: "write", Path: "f", Err: syscall.ENOSPC})))
	require.False(t, util.IsNoSpace(syscall.EACCES))
	require.False(t, util.IsNoSpace(nil))
}
