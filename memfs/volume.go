package memfs

import (
	"context"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

var _ fsops.VolumeFS = (*FS)(nil)

// Mount turns the empty directory at p into the mount point of a new
// volume. Everything created below p afterwards belongs to that volume.
func (f *FS) Mount(p path.Path, name, typ string) error {
	f.Lock()
	defer f.Unlock()

	n, err := f.resolve(p, true)
	if err != nil {
		return pathError("mount", p, err)
	}
	if !n.isDir() {
		return pathError("mount", p, fsops.ErrNotDir)
	}
	if len(n.children) > 0 {
		return pathError("mount", p, fsops.ErrDirNotEmpty)
	}
	n.vol = &volume{name: name, typ: typ}
	return nil
}

// Volume implements fsops.VolumeFS.
func (f *FS) Volume(
	_ context.Context, name path.Path,
) (fsops.Volume, error) {
	f.RLock()
	defer f.RUnlock()

	n, err := f.resolve(name, true)
	if err != nil {
		return fsops.Volume{}, pathError("volume", name, err)
	}
	return fsops.Volume{Name: n.vol.name, Type: n.vol.typ}, nil
}
