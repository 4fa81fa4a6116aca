// Released under an MIT license. See LICENSE.

//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package history

import (
	"os"

	"golang.org/x/sys/unix"
)

// Private runs op, which creates a file, under a umask that keeps the
// file private to its owner.
func Private(op func() (*os.File, error)) (*os.File, error) {
	old := unix.Umask(0o077)
	defer unix.Umask(old)

	return op()
}
