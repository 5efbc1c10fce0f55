package fsops

import (
	"context"
	"iter"

	"lesiw.io/fsops/path"
)

// A ReadDirFS is a file system with the ReadDir method.
type ReadDirFS interface {
	FS

	// ReadDir reads the directory and returns an iterator over its
	// entries. Entries are produced as they are read; stopping the
	// iteration early must release any native handle.
	ReadDir(ctx context.Context, name path.Path) iter.Seq2[DirEntry, error]
}

// Children returns an iterator over the entries directly inside the
// directory p.
// Analogous to: [os.ReadDir], ls.
//
// Entries are read on demand. No order is guaranteed. A name that is
// not valid on p's platform is reported as an error for that entry and
// iteration continues.
//
// Requires: [ReadDirFS]
func (x *Executor) Children(
	ctx context.Context, p path.Path,
) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for e, err := range x.children(ctx, p) {
			if !yield(e, translate(OpRead, p, err)) {
				return
			}
		}
	}
}

// Descendants returns an iterator over every entry below p, depth-first
// in pre-order: a directory is yielded before its contents. Symlinks are
// yielded but never traversed. Breaking out of the loop stops the walk.
// Analogous to: [io/fs.WalkDir], find.
//
// If a directory cannot be read, the zero Entry and the error are
// yielded. The caller can continue to skip that directory or break to
// stop.
//
// Requires: [ReadDirFS]
func (x *Executor) Descendants(
	ctx context.Context, p path.Path,
) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		x.descend(ctx, p, yield)
	}
}

func (x *Executor) descend(
	ctx context.Context, p path.Path, yield func(Entry, error) bool,
) bool {
	for e, err := range x.children(ctx, p) {
		if err != nil {
			if !yield(Entry{}, translate(OpRead, p, err)) {
				return false
			}
			continue
		}
		if !yield(e, nil) {
			return false
		}
		if e.Kind == KindDirectory && !x.descend(ctx, e.Path, yield) {
			return false
		}
	}
	return true
}

// children lists p with native errors. Kinds come from the directory
// entry where possible and do not follow symlinks.
func (x *Executor) children(
	ctx context.Context, p path.Path,
) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		rfs, ok := x.fsys.(ReadDirFS)
		if !ok {
			yield(Entry{}, ErrUnsupported)
			return
		}
		for de, err := range rfs.ReadDir(ctx, p) {
			var e Entry
			if err == nil {
				e, err = x.dirEntry(ctx, p, de)
			}
			if !yield(e, err) {
				return
			}
		}
	}
}

func (x *Executor) dirEntry(
	ctx context.Context, dir path.Path, de DirEntry,
) (Entry, error) {
	p, err := dir.ChildText(de.Name())
	if err != nil {
		return Entry{}, err
	}
	k, ok := KindOfMode(de.Type())
	if !ok {
		if k, err = x.kind(ctx, p, false); err != nil {
			return Entry{}, err
		}
	}
	return Entry{Path: p, Kind: k}, nil
}
