package memfs

import (
	"cmp"
	"context"
	"iter"
	"slices"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

var _ fsops.ReadDirFS = (*FS)(nil)

// ReadDir implements fsops.ReadDirFS. Entries are sorted by name.
func (f *FS) ReadDir(
	ctx context.Context, name path.Path,
) iter.Seq2[fsops.DirEntry, error] {
	return func(yield func(fsops.DirEntry, error) bool) {
		// Snapshot entries while holding lock
		f.RLock()

		n, err := f.resolve(name, true)
		if err != nil {
			f.RUnlock()
			yield(nil, pathError("readdir", name, err))
			return
		}
		if !n.isDir() {
			f.RUnlock()
			yield(nil, pathError("readdir", name, fsops.ErrNotDir))
			return
		}

		entries := make([]*dirEntry, 0, len(n.children))
		for _, e := range n.children {
			entries = append(entries, &dirEntry{info: stat(e.name, e.n)})
		}
		f.RUnlock()

		slices.SortFunc(entries, func(a, b *dirEntry) int {
			return cmp.Compare(a.info.name, b.info.name)
		})

		// Yield entries without holding lock
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if !yield(entry, nil) {
				return
			}
		}
	}
}

// dirEntry implements fsops.DirEntry.
type dirEntry struct {
	info *fileInfo
}

func (de *dirEntry) Name() string                  { return de.info.name }
func (de *dirEntry) IsDir() bool                   { return de.info.IsDir() }
func (de *dirEntry) Type() fsops.Mode              { return de.info.typ() }
func (de *dirEntry) Info() (fsops.FileInfo, error) { return de.info, nil }
