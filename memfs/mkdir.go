package memfs

import (
	"context"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

var _ fsops.MkdirFS = (*FS)(nil)

// Mkdir implements fsops.MkdirFS.
func (f *FS) Mkdir(ctx context.Context, name path.Path) error {
	f.Lock()
	defer f.Unlock()

	if err := f.add(name, newDir(fsops.DirMode(ctx), nil)); err != nil {
		return pathError("mkdir", name, err)
	}
	f.notify("mkdir", name)
	return nil
}
