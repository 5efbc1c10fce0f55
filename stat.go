package fsops

import (
	"context"
	"errors"

	"lesiw.io/fsops/path"
)

// A StatFS is a file system with the Stat method.
type StatFS interface {
	FS

	// Stat returns metadata for the named file, following symlinks.
	Stat(ctx context.Context, name path.Path) (FileInfo, error)
}

// Stat returns metadata for p. The node itself is described unless the
// call's policy has [FollowSymlinks].
// Analogous to: [os.Lstat], [os.Stat], stat.
//
// Requires: [ReadLinkFS] || [StatFS]
func (x *Executor) Stat(
	ctx context.Context, p path.Path, caps ...Capability,
) (FileInfo, error) {
	pol := x.policyFor(caps)
	info, err := x.statFollow(ctx, p, bool(pol.Dereference))
	return info, translate(OpMetadata, p, err)
}

// Exists reports whether p names an existing node. A dangling symlink
// exists unless the call's policy has [FollowSymlinks]. Failures other
// than [Nonexistent] are returned as errors.
//
// Requires: [ReadLinkFS] || [StatFS]
func (x *Executor) Exists(
	ctx context.Context, p path.Path, caps ...Capability,
) (bool, error) {
	pol := x.policyFor(caps)
	_, err := x.statFollow(ctx, p, bool(pol.Dereference))
	if errors.Is(err, ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, translate(OpMetadata, p, err)
	}
	return true, nil
}

func (x *Executor) statFollow(
	ctx context.Context, p path.Path, follow bool,
) (FileInfo, error) {
	if follow {
		return x.stat(ctx, p)
	}
	return x.lstat(ctx, p)
}

func (x *Executor) stat(ctx context.Context, p path.Path) (FileInfo, error) {
	if sfs, ok := x.fsys.(StatFS); ok {
		return sfs.Stat(ctx, p)
	}
	return nil, ErrUnsupported
}

// lstat falls back to Stat on filesystems without symlinks.
func (x *Executor) lstat(ctx context.Context, p path.Path) (FileInfo, error) {
	if rfs, ok := x.fsys.(ReadLinkFS); ok {
		return rfs.Lstat(ctx, p)
	}
	return x.stat(ctx, p)
}

func (x *Executor) lexists(ctx context.Context, p path.Path) (bool, error) {
	_, err := x.lstat(ctx, p)
	if errors.Is(err, ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}
