package chunks

import (
	common "github.com/nspcc-dev/pfs-agent/cmd/pfs-lens/internal"
	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"github.com/spf13/cobra"
)

var listCMD = &cobra.Command{
	Use:   "list",
	Short: "List chunk IDs",
	Long:  `List identifiers of all chunks stored in a sub-storage.`,
	Args:  cobra.NoArgs,
	RunE:  listFunc,
}

func init() {
	common.AddStorageFlags(listCMD, &vStorage)
}

func listFunc(cmd *cobra.Command, _ []string) error {
	s, err := common.OpenChunkStor(vStorage, true)
	if err != nil {
		return common.Errf("could not open sub-storage: %w", err)
	}
	defer s.Close()

	err = s.IterateIDs(func(id chunk.ID) error {
		cmd.Println(id)
		return nil
	})

	return common.Errf("could not iterate over chunks: %w", err)
}
