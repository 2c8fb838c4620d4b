package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// EncodingConsole is human-readable log encoding.
	EncodingConsole = "console"
	// EncodingJSON is machine-readable log encoding.
	EncodingJSON = "json"
)

// Prm groups Logger's parameters.
// Successful passing non-nil parameters to the NewLogger (if returned
// error is nil) leads to setting the level and output of the logger.
type Prm struct {
	level zapcore.Level

	encoding string

	file *lumberjack.Logger

	// stdout is replaced in tests.
	stdout zapcore.WriteSyncer
}

// FilePrm groups parameters of the rotated log file.
type FilePrm struct {
	Path string

	// MaxSizeMB is the size in megabytes at which the file is rotated.
	MaxSizeMB int
	// MaxBackups is the number of rotated files to keep.
	MaxBackups int
	// MaxAgeDays is the number of days to keep rotated files.
	MaxAgeDays int
}

// SetLevelString sets the minimum logging level.
//
// Returns error of s is not a string representation of zap.Level
// value (see zapcore.Level docs).
func (p *Prm) SetLevelString(s string) error {
	return p.level.UnmarshalText([]byte(s))
}

// SetEncoding sets log encoding, "console" or "json".
func (p *Prm) SetEncoding(s string) error {
	switch strings.ToLower(s) {
	case EncodingConsole, "":
		p.encoding = EncodingConsole
	case EncodingJSON:
		p.encoding = EncodingJSON
	default:
		return fmt.Errorf("unsupported log encoding %q", s)
	}
	return nil
}

// SetFile makes logger duplicate records into the rotated file.
// Empty path disables file output.
func (p *Prm) SetFile(f FilePrm) {
	if f.Path == "" {
		p.file = nil
		return
	}
	p.file = &lumberjack.Logger{
		Filename:   f.Path,
		MaxSize:    f.MaxSizeMB,
		MaxBackups: f.MaxBackups,
		MaxAge:     f.MaxAgeDays,
	}
}

// Close releases the log file set by SetFile. Loggers built from p reopen
// the file on the next write.
func (p *Prm) Close() error {
	if p.file == nil {
		return nil
	}
	return p.file.Close()
}

// NewLogger constructs zap.Logger from the parameters. Nil prm means
// defaults: info level, console encoding, stdout only.
//
// Logger writes ISO8601 timestamps and adds stack traces to fatal records.
func NewLogger(prm *Prm) (*zap.Logger, error) {
	if prm == nil {
		prm = new(Prm)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if prm.encoding == EncodingJSON {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	out := prm.stdout
	if out == nil {
		out = zapcore.Lock(os.Stdout)
	}
	if prm.file != nil {
		out = zapcore.NewMultiWriteSyncer(out, zapcore.AddSync(prm.file))
	}

	core := zapcore.NewCore(enc, out, zap.NewAtomicLevelAt(prm.level))

	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zap.NewAtomicLevelAt(zap.FatalLevel)),
	), nil
}
