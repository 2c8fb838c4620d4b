package common

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/boltstore"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/fstree"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestNewStorage(t *testing.T) {
	dir := t.TempDir()

	st, err := NewStorage(StoragePrm{Type: fstree.Type, Path: dir, Depth: 1})
	require.NoError(t, err)
	require.Equal(t, fstree.Type, st.Type())
	require.Equal(t, dir, st.Path())
	require.EqualValues(t, 1, st.(*fstree.FSTree).Depth)

	st, err = NewStorage(StoragePrm{Type: boltstore.Type, Path: filepath.Join(dir, "db")})
	require.NoError(t, err)
	require.Equal(t, boltstore.Type, st.Type())

	_, err = NewStorage(StoragePrm{Type: fstree.Type, Path: dir, Depth: fstree.MaxDepth + 2})
	require.ErrorIs(t, err, ErrInvalidDepth)

	_, err = NewStorage(StoragePrm{Type: "peapod", Path: dir})
	require.ErrorIs(t, err, ErrUnsupportedType)

	t.Setenv("HOME", dir)

	st, err = NewStorage(StoragePrm{Type: fstree.Type, Path: "~/chunks"})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "chunks"), st.Path())
}

func TestOpenChunkStor(t *testing.T) {
	prm := StoragePrm{Type: fstree.Type, Path: t.TempDir(), Depth: 2}

	s, err := OpenChunkStor(prm, false)
	require.NoError(t, err)

	_, err = s.WriteChunk(7, []byte("data"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = OpenChunkStor(prm, true)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	data, err := s.Get(7)
	require.NoError(t, err)
	require.Equal(t, []byte("data"), data)

	_, err = s.WriteChunk(8, []byte("data"))
	require.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("0x10")
	require.NoError(t, err)
	require.Equal(t, chunk.ID(16), id)

	_, err = ParseID("")
	require.Error(t, err)
}

func TestInputOutput(t *testing.T) {
	var (
		cmd = new(cobra.Command)
		out bytes.Buffer
	)

	cmd.SetOut(&out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader("from stdin"))

	require.NoError(t, WriteToFile(cmd, "", []byte("to stdout")))
	require.Equal(t, "to stdout", out.String())

	p := filepath.Join(t.TempDir(), "file")
	require.NoError(t, WriteToFile(cmd, p, []byte("to file")))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	require.Equal(t, "to file", string(data))

	data, err = ReadInput(cmd, p)
	require.NoError(t, err)
	require.Equal(t, "to file", string(data))

	data, err = ReadInput(cmd, "-")
	require.NoError(t, err)
	require.Equal(t, "from stdin", string(data))

	_, err = ReadInput(cmd, filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
