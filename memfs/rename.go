package memfs

import (
	"context"
	"time"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

var _ fsops.RenameFS = (*FS)(nil)

// Rename implements fsops.RenameFS. An existing newname is replaced
// unless it is a non-empty directory. Renames between volumes, and of a
// volume's mount point, fail with fsops.ErrCrossDevice.
func (f *FS) Rename(_ context.Context, oldname, newname path.Path) error {
	f.Lock()
	defer f.Unlock()

	oldDir, oldBase, err := f.parent(oldname)
	if err != nil {
		return pathError("rename", oldname, err)
	}
	oldKey := nameKey(oldname.Platform(), oldBase)
	e, ok := oldDir.children[oldKey]
	if !ok {
		return pathError("rename", oldname, fsops.ErrNotExist)
	}
	newDir, newBase, err := f.parent(newname)
	if err != nil {
		return pathError("rename", newname, err)
	}
	if e.n.vol != oldDir.vol || e.n.vol != newDir.vol {
		return pathError("rename", oldname, fsops.ErrCrossDevice)
	}
	if newname.HasPrefix(oldname) {
		return pathError("rename", newname, fsops.ErrInvalid)
	}
	newKey := nameKey(newname.Platform(), newBase)
	old, replace := newDir.children[newKey]
	if replace && old.n == e.n {
		// Both names already link the same node.
		return nil
	}
	if replace && old.n.isDir() && len(old.n.children) > 0 {
		return pathError("rename", newname, fsops.ErrDirNotEmpty)
	}

	delete(oldDir.children, oldKey)
	if replace {
		old.n.nlink--
	}
	newDir.children[newKey] = &dirent{name: newBase.String(), n: e.n}
	oldDir.modTime, newDir.modTime = time.Now(), time.Now()
	f.notify("rename", oldname)
	return nil
}
