package main

import (
	"errors"
	"os"

	"github.com/nspcc-dev/pfs-agent/cmd/internal/cmderr"
	"github.com/nspcc-dev/pfs-agent/cmd/pfs-lens/internal/chunks"
	"github.com/nspcc-dev/pfs-agent/cmd/pfs-lens/internal/index"
	"github.com/nspcc-dev/pfs-agent/cmd/pfs-lens/internal/storage"
	"github.com/nspcc-dev/pfs-agent/misc"
	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"github.com/spf13/cobra"
)

var command = &cobra.Command{
	Use:           "pfs-lens",
	Short:         "PFS Lens",
	Long:          `PFS Lens provides tools to index directory trees and browse the contents of local chunk storages.`,
	RunE:          entryPoint,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func entryPoint(cmd *cobra.Command, _ []string) error {
	printVersion, _ := cmd.Flags().GetBool("version")
	if printVersion {
		cmd.Print(misc.BuildInfo("PFS Lens"))

		return nil
	}

	return cmd.Usage()
}

func init() {
	// use stdout as default output for cmd.Print()
	command.SetOut(os.Stdout)
	command.Flags().Bool("version", false, "Application version")
	command.AddCommand(
		index.Root,
		chunks.Root,
		storage.Root,
	)
}

func main() {
	err := command.Execute()
	if errors.Is(err, chunk.ErrChunkNotFound) {
		err = cmderr.WithCode(cmderr.CodeNotFound, err)
	}
	cmderr.ExitOnErr(err)
}
