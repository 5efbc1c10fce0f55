package memfs

import (
	"context"
	"time"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

var _ fsops.StatFS = (*FS)(nil)

// Stat implements fsops.StatFS.
func (f *FS) Stat(
	_ context.Context, name path.Path,
) (fsops.FileInfo, error) {
	return f.stat("stat", name, true)
}

// Lstat implements fsops.ReadLinkFS.
func (f *FS) Lstat(
	_ context.Context, name path.Path,
) (fsops.FileInfo, error) {
	return f.stat("lstat", name, false)
}

func (f *FS) stat(
	op string, name path.Path, follow bool,
) (fsops.FileInfo, error) {
	f.RLock()
	defer f.RUnlock()

	n, err := f.resolve(name, follow)
	if err != nil {
		return nil, pathError(op, name, err)
	}
	base := name.Root().Prefix()
	if b, ok := name.Base(); ok {
		base = b.String()
	}
	return stat(base, n), nil
}

var _ fsops.FileInfo = (*fileInfo)(nil)

// fileInfo is a snapshot of a node taken under the lock.
type fileInfo struct {
	name    string
	size    int64
	mode    fsops.Mode
	modTime time.Time
}

func stat(name string, n *node) *fileInfo {
	size := int64(len(n.data))
	if n.isSymlink() {
		size = int64(len(n.target))
	}
	return &fileInfo{
		name:    name,
		size:    size,
		mode:    n.mode,
		modTime: n.modTime,
	}
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return fi.size }
func (fi *fileInfo) Mode() fsops.Mode   { return fi.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi *fileInfo) Sys() any           { return nil }

func (fi *fileInfo) typ() fsops.Mode { return fi.mode.Type() }
