//go:build !windows

package keyring

import (
	"os"

	"golang.org/x/sys/unix"
)

// lockFile takes an exclusive flock on f and returns its release func.
func lockFile(f *os.File) (unlock func(), err error) {
	fd := int(f.Fd())
	if err := unix.Flock(fd, unix.LOCK_EX); err != nil {
		return nil, err
	}
	return func() {
		_ = unix.Flock(fd, unix.LOCK_UN)
	}, nil
}
