package chunks

import (
	common "github.com/nspcc-dev/pfs-agent/cmd/pfs-lens/internal"
	"github.com/spf13/cobra"
)

var deleteCMD = &cobra.Command{
	Use:   "delete",
	Short: "Delete chunk",
	Args:  cobra.NoArgs,
	RunE:  deleteFunc,
}

func init() {
	common.AddStorageFlags(deleteCMD, &vStorage)
	common.AddIDFlag(deleteCMD, &vID)
}

func deleteFunc(cmd *cobra.Command, _ []string) error {
	id, err := common.ParseID(vID)
	if err != nil {
		return err
	}

	s, err := common.OpenChunkStor(vStorage, false)
	if err != nil {
		return common.Errf("could not open sub-storage: %w", err)
	}
	defer s.Close()

	err = s.Delete(id)
	if err != nil {
		return common.Errf("could not delete chunk: %w", err)
	}

	cmd.Printf("Chunk %s deleted\n", id)

	return nil
}
