package storageconfig

import (
	"errors"
	"strconv"

	"github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config"
	shardconfig "github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config/storage/shard"
)

const (
	subsection = "storage"

	// CacheSizeDefault is a default number of chunks cached by each shard.
	CacheSizeDefault = 0
)

// ErrNoShardConfigured is returned when at least 1 shard is required but none are found.
var ErrNoShardConfigured = errors.New("no shard configured")

// IterateShards iterates over subsections of "shard" subsection of "storage" section of c,
// wrap them into shardconfig.Config and passes to f.
//
// Section names are expected to be consecutive integer numbers, starting from 0.
// Iteration stops at the first index without "type" parameter.
//
// Returns ErrNoShardConfigured if no shards are configured. Breaks on f's error.
func IterateShards(c *config.Config, f func(*shardconfig.Config) error) error {
	c = c.
		Sub(subsection).
		Sub("shard")

	var i uint64
	for ; ; i++ {
		si := strconv.FormatUint(i, 10)

		sc := shardconfig.From(
			c.Sub(si),
		)

		// Path for the shard is required, but type may be used
		// to detect the end of the list.
		if (*config.Config)(sc).Value("type") == nil {
			break
		}

		if err := f(sc); err != nil {
			return err
		}
	}

	if i == 0 {
		return ErrNoShardConfigured
	}

	return nil
}

// Compress returns the value of "compress" config parameter
// from "storage" section.
//
// Returns false if the value is not a boolean.
func Compress(c *config.Config) bool {
	return config.BoolSafe(c.Sub(subsection), "compress")
}

// CacheSize returns the value of "cache_size" config parameter
// from "storage" section.
//
// Returns CacheSizeDefault if the value is not a positive number.
func CacheSize(c *config.Config) int {
	v := config.IntSafe(c.Sub(subsection), "cache_size")
	if v > 0 {
		return int(v)
	}

	return CacheSizeDefault
}
