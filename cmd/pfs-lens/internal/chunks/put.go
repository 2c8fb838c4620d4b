package chunks

import (
	common "github.com/nspcc-dev/pfs-agent/cmd/pfs-lens/internal"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor"
	"github.com/spf13/cobra"
)

var putCMD = &cobra.Command{
	Use:   "put",
	Short: "Put chunk",
	Long:  `Store file contents as a chunk, existing chunk is overwritten.`,
	Args:  cobra.NoArgs,
	RunE:  putFunc,
}

func init() {
	common.AddStorageFlags(putCMD, &vStorage)
	common.AddIDFlag(putCMD, &vID)
	putCMD.Flags().StringVar(&vIn, "in", "", "File to read chunk data from, '-' for stdin")
	putCMD.Flags().BoolVar(&vCompress, "compress", false, "Compress stored data")
	_ = putCMD.MarkFlagRequired("in")
}

func putFunc(cmd *cobra.Command, _ []string) error {
	id, err := common.ParseID(vID)
	if err != nil {
		return err
	}

	data, err := common.ReadInput(cmd, vIn)
	if err != nil {
		return err
	}

	s, err := common.OpenChunkStor(vStorage, false, chunkstor.WithCompression(vCompress))
	if err != nil {
		return common.Errf("could not open sub-storage: %w", err)
	}
	defer s.Close()

	n, err := s.WriteChunk(id, data)
	if err != nil {
		return common.Errf("could not write chunk: %w", err)
	}

	cmd.Printf("Chunk %s saved (%d bytes)\n", id, n)

	return nil
}
