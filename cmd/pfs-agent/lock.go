package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nspcc-dev/pfs-agent/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

const lockFileName = "pfs-agent.lock"

var errLocked = errors.New("data directory is used by another agent")

// dirLock is an exclusive advisory lock of the agent's data directory.
type dirLock struct {
	f *os.File
}

func lockDataDir(dir string) (*dirLock, error) {
	err := util.MkdirAllX(dir, 0o700)
	if err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	p := filepath.Join(dir, lockFileName)

	f, err := os.OpenFile(p, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	err = unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err != nil {
		_ = f.Close()

		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, fmt.Errorf("%w: %s", errLocked, p)
		}

		return nil, fmt.Errorf("lock %s: %w", p, err)
	}

	err = f.Truncate(0)
	if err == nil {
		_, err = fmt.Fprintf(f, "%d\n", os.Getpid())
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write pid to %s: %w", p, err)
	}

	return &dirLock{f: f}, nil
}

func (l *dirLock) release() error {
	name := l.f.Name()

	// Remove before unlocking, so that another agent never removes the file
	// it has just locked.
	rmErr := os.Remove(name)
	err := errors.Join(rmErr, l.f.Close())
	if err != nil {
		return fmt.Errorf("release %s: %w", name, err)
	}

	return nil
}

func (c *cfg) acquireLock() error {
	l, err := lockDataDir(c.dataDir)
	if err != nil {
		return err
	}

	c.onShutdown(func() {
		if err := l.release(); err != nil {
			c.log.Warn("could not release data directory lock", zap.Error(err))
		}
	})

	return nil
}
