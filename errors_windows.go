//go:build windows

package fsops

import (
	"errors"
	"syscall"

	"golang.org/x/sys/windows"
)

var nativeErrors = map[syscall.Errno]error{
	windows.ERROR_DIR_NOT_EMPTY:         ErrDirNotEmpty,
	windows.ERROR_DIRECTORY:             ErrNotDir,
	windows.ERROR_CANT_RESOLVE_FILENAME: ErrCycle,
	windows.ERROR_NOT_SAME_DEVICE:       ErrCrossDevice,
}

func nativeSentinel(err error) error {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return nil
	}
	return nativeErrors[errno]
}
