package fsops

import (
	"context"

	"lesiw.io/fsops/path"
)

// A LinkFS is a file system with the Link method.
type LinkFS interface {
	FS

	// Link creates newname as a hard link to oldname. It reports
	// ErrCrossDevice when the two are on different volumes.
	Link(ctx context.Context, oldname, newname path.Path) error
}

// A LinkCountFS is a file system that reports hard link counts.
type LinkCountFS interface {
	FS

	// LinkCount returns the number of hard links to the named file.
	LinkCount(ctx context.Context, name path.Path) (uint64, error)
}

// CreateHardLink creates link as a hard link to the existing node. With
// [FollowSymlinks], a symlink at existing is resolved first and the link
// is made to its target.
// Analogous to: [os.Link], ln.
//
// Hard links across volumes are [Unsupported].
//
// Requires: [LinkFS]
func (x *Executor) CreateHardLink(
	ctx context.Context, existing, link path.Path, caps ...Capability,
) error {
	pol := x.policyFor(caps)
	if existing.Platform() != link.Platform() {
		return translate(OpCreate, link, path.ErrPlatformMismatch)
	}
	src := existing
	if pol.Dereference {
		rp, err := x.RealPath(ctx, existing)
		if err != nil {
			return err
		}
		src = rp
	} else if _, err := x.lstat(ctx, existing); err != nil {
		return translate(OpMetadata, existing, err)
	}
	lfs, ok := x.fsys.(LinkFS)
	if !ok {
		return unsupported(OpCreate, link)
	}
	return x.mutate(ctx, pol, OpCreate, link, func() error {
		return translate(OpCreate, link, lfs.Link(ctx, src, link))
	})
}

// HardLinkCount returns the number of hard links to the node at p. Hard
// link counts are a POSIX notion: a path for any other platform is
// [Unsupported].
//
// Requires: [LinkCountFS]
func (x *Executor) HardLinkCount(
	ctx context.Context, p path.Path,
) (uint64, error) {
	if p.Platform() != path.Posix {
		return 0, translate(OpMetadata, p, path.ErrPlatformMismatch)
	}
	lfs, ok := x.fsys.(LinkCountFS)
	if !ok {
		return 0, unsupported(OpMetadata, p)
	}
	n, err := lfs.LinkCount(ctx, p)
	return n, translate(OpMetadata, p, err)
}
