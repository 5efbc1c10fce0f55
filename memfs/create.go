package memfs

import (
	"context"
	"io"
	"time"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

var _ fsops.CreateFS = (*FS)(nil)

// Create implements fsops.CreateFS. Writes are buffered until Close
// whether or not sync is set.
func (f *FS) Create(
	ctx context.Context, name path.Path, _ bool,
) (io.WriteCloser, error) {
	f.Lock()
	defer f.Unlock()

	n := &node{mode: fsops.FileMode(ctx), modTime: time.Now(), nlink: 1}
	if err := f.add(name, n); err != nil {
		return nil, pathError("create", name, err)
	}
	f.notify("create", name)
	return newWriter(f, n), nil
}
