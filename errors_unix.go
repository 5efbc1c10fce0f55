//go:build unix

package fsops

import (
	"errors"
	"syscall"
)

var nativeErrors = map[syscall.Errno]error{
	syscall.ENOTEMPTY: ErrDirNotEmpty,
	syscall.ENOTDIR:   ErrNotDir,
	syscall.ELOOP:     ErrCycle,
	syscall.EXDEV:     ErrCrossDevice,
}

func nativeSentinel(err error) error {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return nil
	}
	return nativeErrors[errno]
}
