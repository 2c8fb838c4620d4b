package chunks

import (
	common "github.com/nspcc-dev/pfs-agent/cmd/pfs-lens/internal"
	"github.com/spf13/cobra"
)

var (
	vStorage  common.StoragePrm
	vID       string
	vOut      string
	vIn       string
	vSize     int
	vCompress bool
)

// Root defines root command for operations with single chunks.
var Root = &cobra.Command{
	Use:   "chunk",
	Short: "Operations with chunks of a sub-storage",
}

func init() {
	Root.AddCommand(
		getCMD,
		putCMD,
		deleteCMD,
		listCMD,
	)
}
