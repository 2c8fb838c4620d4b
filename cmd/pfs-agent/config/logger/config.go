package loggerconfig

import (
	"github.com/mitchellh/go-homedir"
	"github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config"
)

const (
	subsection = "logger"

	// LevelDefault is a default logger level.
	LevelDefault = "info"
	// EncodingDefault is a default logger encoding.
	EncodingDefault = "console"

	// MaxSizeDefault is a default size in megabytes of the log file
	// triggering rotation.
	MaxSizeDefault = 50
	// MaxBackupsDefault is a default number of kept rotated files.
	MaxBackupsDefault = 20
	// MaxAgeDefault is a default number of days to keep rotated files.
	MaxAgeDefault = 30
)

// Level returns the value of "level" config parameter
// from "logger" section.
//
// Returns LevelDefault if the value is not a non-empty string.
func Level(c *config.Config) string {
	v := config.StringSafe(
		c.Sub(subsection),
		"level",
	)
	if v != "" {
		return v
	}

	return LevelDefault
}

// Encoding returns the value of "encoding" config parameter
// from "logger" section.
//
// Returns EncodingDefault if the value is not a non-empty string.
func Encoding(c *config.Config) string {
	v := config.StringSafe(
		c.Sub(subsection),
		"encoding",
	)
	if v != "" {
		return v
	}

	return EncodingDefault
}

// File groups parameters of the rotated log file.
type File struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// LogFile returns "file" subsection of "logger" section. Empty Path means
// logging to file is disabled.
func LogFile(c *config.Config) (File, error) {
	s := c.Sub(subsection).Sub("file")

	var (
		f   File
		err error
	)

	if p := config.StringSafe(s, "path"); p != "" {
		f.Path, err = homedir.Expand(p)
		if err != nil {
			return File{}, err
		}
	}

	f.MaxSizeMB = positiveOr(config.IntSafe(s, "max_size_mb"), MaxSizeDefault)
	f.MaxBackups = positiveOr(config.IntSafe(s, "max_backups"), MaxBackupsDefault)
	f.MaxAgeDays = positiveOr(config.IntSafe(s, "max_age_days"), MaxAgeDefault)

	return f, nil
}

func positiveOr(v int64, def int) int {
	if v > 0 {
		return int(v)
	}
	return def
}
