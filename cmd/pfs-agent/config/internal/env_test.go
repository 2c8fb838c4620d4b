package internal_test

import (
	"testing"

	"github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config/internal"
	"github.com/stretchr/testify/require"
)

func TestEnv(t *testing.T) {
	require.Equal(t,
		"PFS_SECTION_SUBSECTION_VALUE",
		internal.Env("section", "subsection", "value"),
	)
}
