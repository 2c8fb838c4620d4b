package shardconfig

import (
	"fmt"
	"io/fs"

	"github.com/mitchellh/go-homedir"
	"github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config"
	"github.com/nspcc-dev/pfs-agent/pkg/local_chunk_storage/chunkstor/fstree"
)

// Config is a wrapper over the config section
// which provides access to Shard configurations.
type Config config.Config

const (
	// PermDefault is a default permission bits for shard files.
	PermDefault = 0o700

	// DepthDefault is a default depth of the FSTree directories.
	DepthDefault = fstree.DefaultDepth

	// ModeReadWrite is a mode of the shard accepting writes.
	ModeReadWrite = "read-write"
	// ModeReadOnly is a mode of the shard refusing any modifications.
	ModeReadOnly = "read-only"
)

// From wraps config section into Config.
func From(c *config.Config) *Config {
	return (*Config)(c)
}

// Type returns the value of "type" config parameter.
//
// Panics if the value is not a string.
func (x *Config) Type() string {
	return config.String(
		(*config.Config)(x),
		"type",
	)
}

// Path returns the value of "path" config parameter with `~` expanded.
//
// Panics if the value is not a string.
func (x *Config) Path() string {
	p := config.String(
		(*config.Config)(x),
		"path",
	)

	expanded, err := homedir.Expand(p)
	if err != nil {
		panic(fmt.Errorf("invalid shard path %q: %w", p, err))
	}

	return expanded
}

// Perm returns the value of "perm" config parameter as a fs.FileMode.
//
// Returns PermDefault if the value is not a positive number.
func (x *Config) Perm() fs.FileMode {
	p := config.UintSafe(
		(*config.Config)(x),
		"perm",
	)
	if p == 0 {
		p = PermDefault
	}

	return fs.FileMode(p)
}

// Depth returns the value of "depth" config parameter.
//
// Returns DepthDefault if the value is missing. Panics if the value is
// not a non-negative integer or exceeds fstree.MaxDepth.
func (x *Config) Depth() uint64 {
	c := (*config.Config)(x)
	if c.Value("depth") == nil {
		return DepthDefault
	}

	d := config.Uint(c, "depth")
	if d > fstree.MaxDepth {
		panic(fmt.Sprintf("shard depth %d exceeds maximum %d", d, fstree.MaxDepth))
	}

	return d
}

// NoSync returns the value of "no_sync" config parameter.
//
// Returns false if the value is not a boolean.
func (x *Config) NoSync() bool {
	return config.BoolSafe(
		(*config.Config)(x),
		"no_sync",
	)
}

// Mode returns the value of "mode" config parameter.
//
// Returns ModeReadWrite if the value is missing. Panics if the value is
// not one of the supported modes.
func (x *Config) Mode() string {
	m := config.StringSafe(
		(*config.Config)(x),
		"mode",
	)

	switch m {
	case "":
		return ModeReadWrite
	case ModeReadWrite, ModeReadOnly:
		return m
	default:
		panic(fmt.Sprintf("unknown shard mode: %q", m))
	}
}

// ReadOnly returns true if the shard is configured in ModeReadOnly.
func (x *Config) ReadOnly() bool {
	return x.Mode() == ModeReadOnly
}
