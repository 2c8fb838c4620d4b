package storagelog

import (
	"testing"

	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWrite(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	Write(zap.New(core), OpField("PUT"), ChunkField(42), StorageTypeField("fstree"))

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, headMsg, entries[0].Message)
	require.Equal(t, zapcore.DebugLevel, entries[0].Level)
	require.Equal(t, map[string]any{
		"op":    "PUT",
		"chunk": chunk.ID(42).String(),
		"type":  "fstree",
	}, entries[0].ContextMap())
}
