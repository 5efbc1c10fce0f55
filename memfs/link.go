package memfs

import (
	"context"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

var _ fsops.LinkFS = (*FS)(nil)
var _ fsops.LinkCountFS = (*FS)(nil)

// Link implements fsops.LinkFS. Directories cannot be hard linked.
func (f *FS) Link(_ context.Context, oldname, newname path.Path) error {
	f.Lock()
	defer f.Unlock()

	n, err := f.resolve(oldname, false)
	if err != nil {
		return pathError("link", oldname, err)
	}
	if n.isDir() {
		return pathError("link", oldname, fsops.ErrPermission)
	}
	dir, _, err := f.parent(newname)
	if err != nil {
		return pathError("link", newname, err)
	}
	if dir.vol != n.vol {
		return pathError("link", newname, fsops.ErrCrossDevice)
	}
	if err := f.add(newname, n); err != nil {
		return pathError("link", newname, err)
	}
	n.nlink++
	f.notify("link", newname)
	return nil
}

// LinkCount implements fsops.LinkCountFS.
func (f *FS) LinkCount(_ context.Context, name path.Path) (uint64, error) {
	f.RLock()
	defer f.RUnlock()

	n, err := f.resolve(name, true)
	if err != nil {
		return 0, pathError("linkcount", name, err)
	}
	return uint64(n.nlink), nil
}
