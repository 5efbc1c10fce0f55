package memfs

import (
	"context"
	"time"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

var _ fsops.FifoFS = (*FS)(nil)
var _ fsops.SocketFS = (*FS)(nil)

// Mkfifo implements fsops.FifoFS. The pipe cannot be opened.
func (f *FS) Mkfifo(ctx context.Context, name path.Path) error {
	return f.special(ctx, "mkfifo", name, fsops.ModeNamedPipe)
}

// Mksocket implements fsops.SocketFS.
func (f *FS) Mksocket(ctx context.Context, name path.Path) error {
	return f.special(ctx, "mksocket", name, fsops.ModeSocket)
}

func (f *FS) special(
	ctx context.Context, op string, name path.Path, typ fsops.Mode,
) error {
	f.Lock()
	defer f.Unlock()

	n := &node{mode: typ | fsops.FileMode(ctx), modTime: time.Now(), nlink: 1}
	if err := f.add(name, n); err != nil {
		return pathError(op, name, err)
	}
	f.notify(op, name)
	return nil
}
