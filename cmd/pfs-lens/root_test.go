package main

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/boltstore"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/fstree"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, error) {
	var out, errOut bytes.Buffer

	command.SetOut(&out)
	command.SetErr(&errOut)
	command.SetArgs(args)

	err := command.Execute()
	if errOut.Len() > 0 {
		t.Log(errOut.String())
	}

	return out.String(), err
}

func TestIndexCommand(t *testing.T) {
	root := t.TempDir()

	var files []string
	for _, p := range []string{"1", "a/2", "a/b/3", "c/4", "c/d/e/5"} {
		full := filepath.Join(root, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o700))
		require.NoError(t, os.WriteFile(full, []byte(p), 0o600))
		files = append(files, full)
	}
	require.NoError(t, os.Mkdir(filepath.Join(root, "empty"), 0o700))

	for _, parallel := range []string{"0", "4"} {
		out, err := execute(t, "index", root, "--parallel", parallel, "--format", "count")
		require.NoError(t, err)
		require.Equal(t, "5\n", out)

		out, err = execute(t, "index", root, "--parallel", parallel, "--format", "plain")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.ElementsMatch(t, files, lines)
		if parallel != "0" {
			require.Equal(t, filepath.Join(root, "1"), lines[0], "root files go first")
		}

		out, err = execute(t, "index", root, "--parallel", parallel, "--format", "yaml")
		require.NoError(t, err)

		var res struct {
			Root  string   `yaml:"root"`
			Count int      `yaml:"count"`
			Files []string `yaml:"files"`
		}
		require.NoError(t, yaml.Unmarshal([]byte(out), &res))
		require.Equal(t, root, res.Root)
		require.Equal(t, 5, res.Count)
		require.ElementsMatch(t, files, res.Files)
	}

	_, err := execute(t, "index", root, "--parallel", "0", "--format", "xml")
	require.Error(t, err)

	_, err = execute(t, "index", "--format", "plain")
	require.Error(t, err)
}

func TestChunkCommands(t *testing.T) {
	for _, typ := range []string{fstree.Type, boltstore.Type} {
		t.Run(typ, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "storage")
			storageFlags := []string{"--type", typ, "--path", path, "--depth", "2"}

			in := filepath.Join(t.TempDir(), "in")
			payload := []byte("some chunk payload")
			require.NoError(t, os.WriteFile(in, payload, 0o600))

			for _, id := range []string{"1", "0x20", "300"} {
				out, err := execute(t, append([]string{"chunk", "put", "--id", id, "--in", in, "--compress=true"}, storageFlags...)...)
				require.NoError(t, err)
				require.Contains(t, out, "saved")
			}

			out, err := execute(t, append([]string{"chunk", "get", "--id", "0x20", "--out", "", "--size", "0"}, storageFlags...)...)
			require.NoError(t, err)
			require.Equal(t, string(payload), out)

			out, err = execute(t, append([]string{"chunk", "get", "--id", "32", "--out", "", "--size", "4"}, storageFlags...)...)
			require.NoError(t, err)
			require.Equal(t, string(payload[:4]), out)

			dst := filepath.Join(t.TempDir(), "out")
			_, err = execute(t, append([]string{"chunk", "get", "--id", "1", "--out", dst, "--size", "0"}, storageFlags...)...)
			require.NoError(t, err)

			got, err := os.ReadFile(dst)
			require.NoError(t, err)
			require.Equal(t, payload, got)

			out, err = execute(t, append([]string{"chunk", "list"}, storageFlags...)...)
			require.NoError(t, err)

			ids := strings.Fields(out)
			slices.Sort(ids)
			require.Equal(t, []string{chunk.ID(1).String(), chunk.ID(0x20).String(), chunk.ID(300).String()}, ids)

			_, err = execute(t, append([]string{"chunk", "delete", "--id", "300"}, storageFlags...)...)
			require.NoError(t, err)

			_, err = execute(t, append([]string{"chunk", "get", "--id", "300", "--out", "", "--size", "0"}, storageFlags...)...)
			require.ErrorIs(t, err, chunk.ErrChunkNotFound)

			_, err = execute(t, append([]string{"chunk", "delete", "--id", "300"}, storageFlags...)...)
			require.ErrorIs(t, err, chunk.ErrChunkNotFound)

			_, err = execute(t, append([]string{"chunk", "get", "--id", "not-an-id", "--out", "", "--size", "0"}, storageFlags...)...)
			require.Error(t, err)
		})
	}

	t.Run("unsupported type", func(t *testing.T) {
		_, err := execute(t, "chunk", "list", "--type", "memory", "--path", t.TempDir(), "--depth", "2")
		require.Error(t, err)
	})
}

func TestStorageCommands(t *testing.T) {
	dir := t.TempDir()
	from := filepath.Join(dir, "fstree")
	to := filepath.Join(dir, "chunks.db")

	in := filepath.Join(dir, "in")
	require.NoError(t, os.WriteFile(in, []byte("payload"), 0o600))

	for _, id := range []string{"1", "2", "3"} {
		_, err := execute(t, "chunk", "put", "--type", fstree.Type, "--path", from, "--depth", "2",
			"--id", id, "--in", in, "--compress=false")
		require.NoError(t, err)
	}

	copyArgs := []string{"storage", "copy",
		"--from-type", fstree.Type, "--from-path", from, "--from-depth", "2",
		"--to-type", boltstore.Type, "--to-path", to,
		"--no-progress",
	}

	out, err := execute(t, copyArgs...)
	require.NoError(t, err)
	require.Contains(t, out, "Copied 3 chunks")
	require.Contains(t, out, "skipped 0 existing")

	out, err = execute(t, copyArgs...)
	require.NoError(t, err)
	require.Contains(t, out, "Copied 0 chunks")
	require.Contains(t, out, "skipped 3 existing")

	out, err = execute(t, "chunk", "get", "--type", boltstore.Type, "--path", to, "--depth", "2",
		"--id", "2", "--out", "", "--size", "0")
	require.NoError(t, err)
	require.Equal(t, "payload", out)

	for _, args := range [][]string{
		{"--type", fstree.Type, "--path", from, "--depth", "2"},
		{"--type", boltstore.Type, "--path", to, "--depth", "2"},
	} {
		out, err = execute(t, append([]string{"storage", "status"}, args...)...)
		require.NoError(t, err)
		require.Contains(t, out, args[1])
		require.Contains(t, out, args[3])
		require.Contains(t, out, "21 B")
	}

	_, err = execute(t, "storage", "status", "--type", fstree.Type, "--path", filepath.Join(dir, "missing"), "--depth", "2")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	require.Contains(t, out, "PFS Lens")
}
