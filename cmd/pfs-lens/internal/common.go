package common

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/boltstore"
	storagecommon "github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/common"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/fstree"
	"github.com/spf13/cobra"
)

const (
	flagType  = "type"
	flagPath  = "path"
	flagID    = "id"
	flagOut   = "out"
	flagDepth = "depth"
)

// ErrInvalidDepth is returned for FSTree depth not fitting into the chunk hash.
var ErrInvalidDepth = errors.New("invalid depth")

// ErrUnsupportedType is returned for storage types lens can not open.
var ErrUnsupportedType = errors.New("unsupported storage type")

// StoragePrm groups flags describing sub-storage location.
type StoragePrm struct {
	Type  string
	Path  string
	Depth uint64
}

// AddStorageFlags adds flags describing sub-storage to cmd.
func AddStorageFlags(cmd *cobra.Command, prm *StoragePrm) {
	addStorageFlags(cmd, prm, "")
}

// AddPrefixedStorageFlags is like AddStorageFlags, but prefixes flag names,
// e.g. "from-type".
func AddPrefixedStorageFlags(cmd *cobra.Command, prm *StoragePrm, prefix string) {
	addStorageFlags(cmd, prm, prefix+"-")
}

func addStorageFlags(cmd *cobra.Command, prm *StoragePrm, prefix string) {
	cmd.Flags().StringVar(&prm.Type, prefix+flagType, fstree.Type,
		fmt.Sprintf("Sub-storage type (%s|%s)", fstree.Type, boltstore.Type))
	cmd.Flags().StringVar(&prm.Path, prefix+flagPath, "", "Path to the sub-storage")
	cmd.Flags().Uint64Var(&prm.Depth, prefix+flagDepth, fstree.DefaultDepth, "FSTree directory depth")
	_ = cmd.MarkFlagRequired(prefix + flagPath)
}

// AddIDFlag adds the chunk ID flag to cmd.
func AddIDFlag(cmd *cobra.Command, v *string) {
	cmd.Flags().StringVar(v, flagID, "", "Chunk ID (decimal or 0x-prefixed hex)")
	_ = cmd.MarkFlagRequired(flagID)
}

// AddOutputFileFlag adds the output file flag to cmd.
func AddOutputFileFlag(cmd *cobra.Command, v *string) {
	cmd.Flags().StringVar(v, flagOut, "", "File to write data to, stdout if omitted")
}

// NewStorage returns unopened sub-storage described by prm.
func NewStorage(prm StoragePrm) (storagecommon.Storage, error) {
	p, err := homedir.Expand(prm.Path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", prm.Path, err)
	}

	switch prm.Type {
	case fstree.Type:
		if prm.Depth > fstree.MaxDepth {
			return nil, fmt.Errorf("%w: %d exceeds %d", ErrInvalidDepth, prm.Depth, fstree.MaxDepth)
		}
		return fstree.New(
			fstree.WithPath(p),
			fstree.WithDepth(prm.Depth),
		), nil
	case boltstore.Type:
		return boltstore.New(
			boltstore.WithPath(p),
		), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, prm.Type)
	}
}

// OpenChunkStor opens and initializes ChunkStor over the sub-storage
// described by prm. Caller must close the result.
func OpenChunkStor(prm StoragePrm, readOnly bool, opts ...chunkstor.Option) (*chunkstor.ChunkStor, error) {
	st, err := NewStorage(prm)
	if err != nil {
		return nil, err
	}

	s := chunkstor.New(append([]chunkstor.Option{chunkstor.WithStorage(st)}, opts...)...)

	err = s.Open(readOnly)
	if err != nil {
		return nil, err
	}

	err = s.Init()
	if err != nil {
		_ = s.Close()
		return nil, err
	}

	return s, nil
}

// ParseID parses chunk ID flag value.
func ParseID(s string) (chunk.ID, error) {
	id, err := chunk.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("invalid chunk ID: %w", err)
	}
	return id, nil
}

// WriteToFile writes data to the file at path, or to cmd's output if path
// is empty.
func WriteToFile(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	err := os.WriteFile(path, data, 0o644)
	if err != nil {
		return fmt.Errorf("could not write file: %w", err)
	}

	cmd.PrintErrf("Data successfully saved to %s (%d bytes)\n", path, len(data))

	return nil
}

// ReadInput reads the file at path, or cmd's input if path is "-".
func ReadInput(cmd *cobra.Command, path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read input: %w", err)
	}

	return data, nil
}

// Errf returns formatted error in errFmt format if err is not nil.
func Errf(errFmt string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf(errFmt, err)
}
