package storagelog

import (
	"github.com/nspcc-dev/pfs-agent/pkg/core/chunk"
	"go.uber.org/zap"
)

// headMsg is a distinctive part of all messages.
const headMsg = "local chunk storage operation"

// Write writes message about storage engine's operation to logger.
func Write(logger *zap.Logger, fields ...zap.Field) {
	logger.Debug(headMsg, fields...)
}

// ChunkField returns logger's field for chunk ID.
func ChunkField(id chunk.ID) zap.Field {
	return zap.Stringer("chunk", id)
}

// OpField returns logger's field for operation type.
func OpField(op string) zap.Field {
	return zap.String("op", op)
}

// StorageTypeField returns logger's field for storage type.
func StorageTypeField(typ string) zap.Field {
	return zap.String("type", typ)
}
