package storage

import (
	"os"

	"github.com/cheggaaa/pb"
	"github.com/dustin/go-humanize"
	common "github.com/nspcc-dev/pfs-agent/cmd/pfs-lens/internal"
	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	storagecommon "github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/common"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const noProgressFlag = "no-progress"

var (
	vFrom       common.StoragePrm
	vTo         common.StoragePrm
	vNoProgress bool
)

var copyCMD = &cobra.Command{
	Use:   "copy",
	Short: "Copy chunks between sub-storages",
	Long: `Copy all chunks from one sub-storage to another one, possibly of a different
type. Chunks already present in the destination are skipped. Stored data is
copied as is, compressed chunks stay compressed.`,
	Args: cobra.NoArgs,
	RunE: copyFunc,
}

func init() {
	common.AddPrefixedStorageFlags(copyCMD, &vFrom, "from")
	common.AddPrefixedStorageFlags(copyCMD, &vTo, "to")
	copyCMD.Flags().BoolVar(&vNoProgress, noProgressFlag, false, "Do not show progress bar")
}

func copyFunc(cmd *cobra.Command, _ []string) error {
	src, err := common.NewStorage(vFrom)
	if err != nil {
		return common.Errf("invalid source: %w", err)
	}

	dst, err := common.NewStorage(vTo)
	if err != nil {
		return common.Errf("invalid destination: %w", err)
	}

	var (
		p       *pb.ProgressBar
		copied  int
		skipped int
		size    uint64
	)

	if !vNoProgress && term.IsTerminal(int(os.Stdout.Fd())) {
		total, err := countChunks(src)
		if err != nil {
			return err
		}

		p = pb.New(total)
		p.Output = cmd.OutOrStdout()
		p.Start()
	}

	err = storagecommon.Copy(dst, src, func(_ chunk.ID, n int) {
		if n == 0 {
			skipped++
		} else {
			copied++
			size += uint64(n)
		}

		if p != nil {
			p.Increment()
		}
	})
	if p != nil {
		p.Finish()
	}
	if err != nil {
		return err
	}

	cmd.Printf("Copied %d chunks (%s), skipped %d existing\n", copied, humanize.IBytes(size), skipped)

	return nil
}

func countChunks(s storagecommon.Storage) (int, error) {
	err := s.Open(true)
	if err != nil {
		return 0, common.Errf("could not open source: %w", err)
	}
	defer s.Close()

	err = s.Init()
	if err != nil {
		return 0, common.Errf("could not init source: %w", err)
	}

	return storagecommon.Count(s)
}
