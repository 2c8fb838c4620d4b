package chunks

import (
	"fmt"

	common "github.com/nspcc-dev/pfs-agent/cmd/pfs-lens/internal"
	"github.com/spf13/cobra"
)

var getCMD = &cobra.Command{
	Use:   "get",
	Short: "Get chunk",
	Long: `Read specific chunk from a sub-storage. With --size only the given
number of leading bytes is read.`,
	Args: cobra.NoArgs,
	RunE: getFunc,
}

func init() {
	common.AddStorageFlags(getCMD, &vStorage)
	common.AddIDFlag(getCMD, &vID)
	common.AddOutputFileFlag(getCMD, &vOut)
	getCMD.Flags().IntVar(&vSize, "size", 0, "Number of bytes to read, whole chunk if 0")
}

func getFunc(cmd *cobra.Command, _ []string) error {
	id, err := common.ParseID(vID)
	if err != nil {
		return err
	}

	if vSize < 0 {
		return fmt.Errorf("negative size %d", vSize)
	}

	s, err := common.OpenChunkStor(vStorage, true)
	if err != nil {
		return common.Errf("could not open sub-storage: %w", err)
	}
	defer s.Close()

	var data []byte

	if vSize > 0 {
		data = make([]byte, vSize)

		n, err := s.ReadChunk(id, data)
		if err != nil {
			return common.Errf("could not read chunk: %w", err)
		}
		data = data[:n]
	} else {
		data, err = s.Get(id)
		if err != nil {
			return common.Errf("could not read chunk: %w", err)
		}
	}

	return common.WriteToFile(cmd, vOut, data)
}
