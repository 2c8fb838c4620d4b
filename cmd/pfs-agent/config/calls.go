package config

import (
	"slices"
	"strings"
)

// Sub returns subsection of the Config by name.
//
// Missing subsection is an empty tree.
func (x *Config) Sub(name string) *Config {
	return &Config{
		v:    x.v,
		path: append(slices.Clip(x.path), name),
	}
}

// Value returns configuration value by name.
//
// Result can be casted to a particular type
// via corresponding function (e.g. StringSlice).
// Note: casting via Go `.()` operator is not
// recommended.
//
// Returns nil if value is missing.
func (x *Config) Value(name string) any {
	return x.v.Get(strings.Join(append(slices.Clip(x.path), name), separator))
}
