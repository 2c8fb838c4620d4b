package indexerconfig

import (
	"errors"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config"
	"github.com/nspcc-dev/pfs-agent/pkg/indexer"
)

const (
	subsection = "indexer"

	// IntervalDefault is a default period of re-indexing.
	IntervalDefault = time.Minute

	// WorkersDefault is a default number of parallel traversal workers.
	WorkersDefault = 4

	// InitialCapacityDefault is a default capacity of created catalogs.
	InitialCapacityDefault = indexer.DefaultCatalogCapacity
)

// ErrRootMissing is returned when indexed root is not configured.
var ErrRootMissing = errors.New("indexer root is not set")

// Root returns the value of "root" config parameter from "indexer" section
// with `~` expanded.
//
// Returns ErrRootMissing if the value is missing.
func Root(c *config.Config) (string, error) {
	v := config.StringSafe(c.Sub(subsection), "root")
	if v == "" {
		return "", ErrRootMissing
	}

	return homedir.Expand(v)
}

// Interval returns the value of "interval" config parameter
// from "indexer" section.
//
// Returns IntervalDefault if the value is not positive duration.
func Interval(c *config.Config) time.Duration {
	v := config.DurationSafe(c.Sub(subsection), "interval")
	if v > 0 {
		return v
	}

	return IntervalDefault
}

// Workers returns the value of "workers" config parameter
// from "indexer" section. Values 0 and 1 mean sequential traversal.
//
// Returns WorkersDefault if the value is missing or invalid.
func Workers(c *config.Config) int {
	s := c.Sub(subsection)
	if s.Value("workers") == nil {
		return WorkersDefault
	}

	v := config.IntSafe(s, "workers")
	if v < 0 {
		return WorkersDefault
	}
	return int(v)
}

// InitialCapacity returns the value of "initial_capacity" config parameter
// from "indexer" section.
//
// Returns InitialCapacityDefault if the value is not positive.
func InitialCapacity(c *config.Config) int {
	v := config.IntSafe(c.Sub(subsection), "initial_capacity")
	if v > 0 {
		return int(v)
	}

	return InitialCapacityDefault
}
