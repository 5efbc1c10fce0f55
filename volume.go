package fsops

import (
	"context"

	"lesiw.io/fsops/path"
)

// A Volume identifies the filesystem or mount that backs a path.
type Volume struct {
	Name string // device or drive, for example "8:1" or "C:"
	Type string // filesystem type, for example "ext4" or "tmpfs"
}

func (v Volume) String() string {
	if v.Type == "" {
		return v.Name
	}
	return v.Name + " (" + v.Type + ")"
}

// A VolumeFS is a file system that can identify volumes.
type VolumeFS interface {
	FS

	// Volume returns the volume holding name.
	Volume(ctx context.Context, name path.Path) (Volume, error)
}

// Volume returns the volume holding p.
// Analogous to: df, stat -f.
//
// Requires: [VolumeFS]
func (x *Executor) Volume(
	ctx context.Context, p path.Path,
) (Volume, error) {
	vfs, ok := x.fsys.(VolumeFS)
	if !ok {
		return Volume{}, unsupported(OpMetadata, p)
	}
	v, err := vfs.Volume(ctx, p)
	return v, translate(OpMetadata, p, err)
}
