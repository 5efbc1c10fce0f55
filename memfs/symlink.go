package memfs

import (
	"context"
	"time"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

var _ fsops.SymlinkFS = (*FS)(nil)
var _ fsops.ReadLinkFS = (*FS)(nil)

// Symlink implements fsops.SymlinkFS.
func (f *FS) Symlink(
	_ context.Context, oldname string, newname path.Path,
) error {
	f.Lock()
	defer f.Unlock()

	n := &node{
		mode:    fsops.ModeSymlink | 0777,
		target:  oldname,
		modTime: time.Now(),
		nlink:   1,
	}
	if err := f.add(newname, n); err != nil {
		return pathError("symlink", newname, err)
	}
	f.notify("symlink", newname)
	return nil
}

// ReadLink implements fsops.ReadLinkFS.
func (f *FS) ReadLink(_ context.Context, name path.Path) (string, error) {
	f.RLock()
	defer f.RUnlock()

	n, err := f.resolve(name, false)
	if err != nil {
		return "", pathError("readlink", name, err)
	}
	if !n.isSymlink() {
		return "", pathError("readlink", name, fsops.ErrInvalid)
	}
	return n.target, nil
}
