package fsops

import (
	"context"

	"lesiw.io/fsops/path"
)

// A RemoveFS is a file system with the Remove method.
type RemoveFS interface {
	FS

	// Remove removes the named file, symlink or empty directory. A
	// symlink is removed itself, never its target. It returns an error
	// if name does not exist or is a directory that is not empty.
	Remove(ctx context.Context, name path.Path) error
}

// Delete removes the node at p. A symlink is unlinked; its target is
// never touched.
// Analogous to: [os.Remove], [os.RemoveAll], rm, rm -r.
//
// A non-empty directory is [DirectoryNotEmpty], and nothing is deleted,
// unless the call's policy has [Recursive]. Recursive deletion visits
// children depth-first and removes each directory after its contents.
// It is not transactional: a failure part way leaves the nodes that were
// not yet reached.
//
// Requires: [RemoveFS], and [ReadDirFS] for [Recursive]
func (x *Executor) Delete(
	ctx context.Context, p path.Path, caps ...Capability,
) error {
	pol := x.policyFor(caps)
	return x.delete(ctx, p, pol.Recurse)
}

func (x *Executor) delete(
	ctx context.Context, p path.Path, recurse DeleteRecursively,
) error {
	if recurse {
		return x.removeTree(ctx, p, false)
	}
	return translate(OpDelete, p, x.remove(ctx, p))
}

func (x *Executor) remove(ctx context.Context, p path.Path) error {
	if rfs, ok := x.fsys.(RemoveFS); ok {
		return rfs.Remove(ctx, p)
	}
	return ErrUnsupported
}
