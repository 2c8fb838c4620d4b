package index

import (
	"fmt"
	"strconv"

	common "github.com/nspcc-dev/pfs-agent/cmd/pfs-lens/internal"
	"github.com/nspcc-dev/pfs-agent/pkg/indexer"
	"github.com/nspcc-dev/pfs-agent/pkg/util"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatPlain = "plain"
	formatYAML  = "yaml"
	formatCount = "count"
)

var (
	vParallel int
	vFormat   string
)

// Root defines command for directory tree indexing.
var Root = &cobra.Command{
	Use:   "index <root>",
	Short: "Index directory tree",
	Long: `Walk the directory tree and print paths of all regular files found in it.
Directories that can not be read are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: indexFunc,
}

func init() {
	Root.Flags().IntVar(&vParallel, "parallel", 0, "Number of parallel workers, 0 or 1 for sequential walk")
	Root.Flags().StringVar(&vFormat, "format", formatPlain,
		fmt.Sprintf("Output format (%s|%s|%s)", formatPlain, formatYAML, formatCount))
}

type yamlCatalog struct {
	Root  string   `yaml:"root"`
	Count int      `yaml:"count"`
	Files []string `yaml:"files"`
}

func indexFunc(cmd *cobra.Command, args []string) error {
	switch vFormat {
	case formatPlain, formatYAML, formatCount:
	default:
		return fmt.Errorf("unsupported output format %q", vFormat)
	}

	root := args[0]

	c, err := walk(root, vParallel)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	switch vFormat {
	case formatCount:
		_, err = fmt.Fprintln(out, strconv.Itoa(c.Len()))
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)

		err = enc.Encode(yamlCatalog{
			Root:  root,
			Count: c.Len(),
			Files: c.Slice(),
		})
		if err == nil {
			err = enc.Close()
		}
	default:
		for p := range c.All() {
			if _, err = fmt.Fprintln(out, p); err != nil {
				break
			}
		}
	}

	return common.Errf("could not print catalog: %w", err)
}

func walk(root string, workers int) (*indexer.Catalog, error) {
	if workers < 2 {
		return indexer.Walk(root), nil
	}

	pool, err := util.NewWorkerPool(workers)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	return indexer.New(indexer.WithWorkerPool(pool)).WalkParallel(root)
}
