package agentconfig

import (
	"github.com/mitchellh/go-homedir"
	"github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config"
)

const (
	subsection = "agent"

	// DataDirDefault is a default directory for agent's own files.
	DataDirDefault = "/var/lib/pfs-agent"
)

// DataDir returns the value of "data_dir" config parameter from "agent"
// section with `~` expanded.
//
// Returns DataDirDefault if the value is missing or empty.
func DataDir(c *config.Config) (string, error) {
	v := config.StringSafe(c.Sub(subsection), "data_dir")
	if v == "" {
		v = DataDirDefault
	}

	return homedir.Expand(v)
}
