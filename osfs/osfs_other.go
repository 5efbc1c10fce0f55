//go:build !unix

package osfs

import (
	"context"
	"os"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

// Kind implements fsops.KindFS with the coarse queries available without
// Unix mode bits. Anything that is not a symlink, directory or regular
// file is reported as unsupported.
func (f *FS) Kind(
	_ context.Context, name path.Path, follow bool,
) (fsops.Kind, error) {
	path, err := native("kind", name)
	if err != nil {
		return 0, err
	}
	stat := os.Lstat
	if follow {
		stat = os.Stat
	}
	info, err := stat(path)
	if err != nil {
		return 0, err
	}
	switch m := info.Mode(); {
	case m&fsops.ModeSymlink != 0:
		return fsops.KindSymlink, nil
	case m.IsDir():
		return fsops.KindDirectory, nil
	case m.IsRegular():
		return fsops.KindFile, nil
	}
	return 0, &fsops.PathError{
		Op: "kind", Path: path, Err: fsops.ErrUnsupported,
	}
}

var _ fsops.KindFS = (*FS)(nil)
