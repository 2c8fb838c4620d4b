package common

import (
	"errors"
	"fmt"
)

// ErrReadOnly MUST be returned for modifying operations when the storage was opened
// in readonly mode.
var ErrReadOnly = errors.New("opened as read-only")

// ErrNoSpace MUST be returned when there is no space to put a chunk on the device.
var ErrNoSpace = errors.New("no free space")

// ErrFatal wraps panics of the underlying database.
var ErrFatal = errors.New("fatal error")

// RecoverFatal converts panic of the storage routine into ErrFatal written
// to err. Must be deferred directly.
func RecoverFatal(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrFatal, r)
	}
}
