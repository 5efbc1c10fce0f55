package memfs

import (
	"context"
	"time"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

var _ fsops.RemoveFS = (*FS)(nil)

// Remove implements fsops.RemoveFS.
func (f *FS) Remove(_ context.Context, name path.Path) error {
	f.Lock()
	defer f.Unlock()

	dir, base, err := f.parent(name)
	if err != nil {
		return pathError("remove", name, err)
	}
	key := nameKey(name.Platform(), base)
	e, ok := dir.children[key]
	if !ok {
		return pathError("remove", name, fsops.ErrNotExist)
	}
	if e.n.isDir() && len(e.n.children) > 0 {
		return pathError("remove", name, fsops.ErrDirNotEmpty)
	}

	delete(dir.children, key)
	e.n.nlink--
	dir.modTime = time.Now()
	f.notify("remove", name)
	return nil
}
