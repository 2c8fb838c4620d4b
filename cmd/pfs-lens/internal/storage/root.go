package storage

import (
	"github.com/spf13/cobra"
)

// Root defines root command for operations with whole sub-storages.
var Root = &cobra.Command{
	Use:   "storage",
	Short: "Operations with sub-storages",
}

func init() {
	Root.AddCommand(
		statusCMD,
		copyCMD,
	)
}
