package storage

import (
	"errors"
	"strconv"

	"github.com/dustin/go-humanize"
	common "github.com/nspcc-dev/pfs-agent/cmd/pfs-lens/internal"
	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var vStatusStorage common.StoragePrm

var statusCMD = &cobra.Command{
	Use:   "status",
	Short: "Print sub-storage status",
	Long:  `Print number of stored chunks, their total stored size and free space of the sub-storage.`,
	Args:  cobra.NoArgs,
	RunE:  statusFunc,
}

func init() {
	common.AddStorageFlags(statusCMD, &vStatusStorage)
}

// freeSpacer is implemented by sub-storages able to report available space.
type freeSpacer interface {
	FreeSpace() (uint64, error)
}

type status struct {
	chunks    int
	size      uint64
	broken    int
	freeSpace string
}

func statusFunc(cmd *cobra.Command, _ []string) error {
	st, err := common.NewStorage(vStatusStorage)
	if err != nil {
		return err
	}

	err = st.Open(true)
	if err != nil {
		return common.Errf("could not open sub-storage: %w", err)
	}
	defer st.Close()

	err = st.Init()
	if err != nil {
		return common.Errf("could not init sub-storage: %w", err)
	}

	var s status

	err = st.Iterate(func(_ chunk.ID, data []byte) error {
		s.chunks++
		s.size += uint64(len(data))
		return nil
	}, func(id chunk.ID, err error) error {
		s.broken++
		cmd.PrintErrf("Broken chunk %s: %v\n", id, err)
		return nil
	})
	if err != nil {
		return common.Errf("could not iterate over chunks: %w", err)
	}

	s.freeSpace = "-"
	if fs, ok := st.(freeSpacer); ok {
		free, err := fs.FreeSpace()
		switch {
		case err == nil:
			s.freeSpace = humanize.IBytes(free)
		case errors.Is(err, errors.ErrUnsupported):
		default:
			return common.Errf("could not get free space: %w", err)
		}
	}

	out := tablewriter.NewWriter(cmd.OutOrStdout())
	out.SetHeader([]string{"Type", "Path", "Chunks", "Broken", "Stored", "Free"})
	out.SetAutoWrapText(false)
	out.Append([]string{
		st.Type(),
		st.Path(),
		strconv.Itoa(s.chunks),
		strconv.Itoa(s.broken),
		humanize.IBytes(s.size),
		s.freeSpace,
	})
	out.Render()

	return nil
}
