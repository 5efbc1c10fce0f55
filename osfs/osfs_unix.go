//go:build unix

package osfs

import (
	"context"
	"fmt"
	"net"

	"github.com/jmgilman/go/exec"
	"golang.org/x/sys/unix"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

// Kind implements fsops.KindFS from the raw st_mode bits. A bit pattern
// outside the seven known file types panics: it means the host reported
// something this package does not understand.
func (f *FS) Kind(
	_ context.Context, name path.Path, follow bool,
) (fsops.Kind, error) {
	path, err := native("kind", name)
	if err != nil {
		return 0, err
	}
	var st unix.Stat_t
	if follow {
		err = unix.Stat(path, &st)
	} else {
		err = unix.Lstat(path, &st)
	}
	if err != nil {
		return 0, &fsops.PathError{Op: "kind", Path: path, Err: err}
	}
	return kindOf(uint32(st.Mode)), nil
}

func kindOf(mode uint32) fsops.Kind {
	switch mode & unix.S_IFMT {
	case unix.S_IFIFO:
		return fsops.KindFifo
	case unix.S_IFCHR:
		return fsops.KindCharDevice
	case unix.S_IFDIR:
		return fsops.KindDirectory
	case unix.S_IFBLK:
		return fsops.KindBlockDevice
	case unix.S_IFREG:
		return fsops.KindFile
	case unix.S_IFLNK:
		return fsops.KindSymlink
	case unix.S_IFSOCK:
		return fsops.KindSocket
	}
	panic(fmt.Sprintf("osfs: unrecognized file mode %#o", mode))
}

// LinkCount implements fsops.LinkCountFS
func (f *FS) LinkCount(
	_ context.Context, name path.Path,
) (uint64, error) {
	path, err := native("linkcount", name)
	if err != nil {
		return 0, err
	}
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, &fsops.PathError{Op: "linkcount", Path: path, Err: err}
	}
	return uint64(st.Nlink), nil
}

// Mkfifo implements fsops.FifoFS by running mkfifo(1). The mode comes
// from fsops.FileMode(ctx).
func (f *FS) Mkfifo(ctx context.Context, name path.Path) error {
	path, err := native("mkfifo", name)
	if err != nil {
		return err
	}
	var st unix.Stat_t
	if unix.Lstat(path, &st) == nil {
		return &fsops.PathError{
			Op: "mkfifo", Path: path, Err: fsops.ErrExist,
		}
	}
	// mkfifo(1) exits without an errno; report a bad parent natively.
	if err := checkParent(name); err != nil {
		return &fsops.PathError{Op: "mkfifo", Path: path, Err: err}
	}
	mode := fmt.Sprintf("%o", fsops.FileMode(ctx).Perm())
	args := []string{"-m", mode, path}
	f.sink.Attempted(ctx, fsops.Event{
		Op:      fsops.OpCreate,
		Path:    name,
		Command: append([]string{"mkfifo"}, args...),
	})
	cmd := exec.NewWrapper(f.exec.Clone(), "mkfifo").WithContext(ctx)
	if _, err := cmd.Run(args...); err != nil {
		return &fsops.PathError{Op: "mkfifo", Path: path, Err: err}
	}
	return nil
}

// checkParent returns the errno a native create of name would report
// for its parent directory, or nil if the parent is a directory.
func checkParent(name path.Path) error {
	dir, ok := name.Parent()
	if !ok {
		return nil
	}
	var st unix.Stat_t
	if err := unix.Stat(dir.String(), &st); err != nil {
		return err
	}
	if st.Mode&unix.S_IFMT != unix.S_IFDIR {
		return unix.ENOTDIR
	}
	return nil
}

// Mksocket implements fsops.SocketFS by binding a Unix socket and
// closing it without removing the node.
func (f *FS) Mksocket(_ context.Context, name path.Path) error {
	path, err := native("mksocket", name)
	if err != nil {
		return err
	}
	addr := &net.UnixAddr{Name: path, Net: "unix"}
	l, err := net.ListenUnix("unix", addr)
	if err != nil {
		return &fsops.PathError{Op: "mksocket", Path: path, Err: err}
	}
	l.SetUnlinkOnClose(false)
	return l.Close()
}

var (
	_ fsops.KindFS      = (*FS)(nil)
	_ fsops.LinkCountFS = (*FS)(nil)
	_ fsops.FifoFS      = (*FS)(nil)
	_ fsops.SocketFS    = (*FS)(nil)
)
