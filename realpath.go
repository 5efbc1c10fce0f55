package fsops

import (
	"context"

	"lesiw.io/fsops/path"
)

// maxSymlinkHops bounds symlink resolution, matching Linux's MAXSYMLINKS.
const maxSymlinkHops = 40

// RealPath returns p with every symlink along it resolved. Resolving
// more than 40 symlinks is a [Cycle]. A target that ascends past the
// root is [Unsupported].
// Analogous to: [path/filepath.EvalSymlinks], realpath.
//
// Requires: [ReadLinkFS] || [StatFS]
func (x *Executor) RealPath(
	ctx context.Context, p path.Path,
) (path.Path, error) {
	cur := path.New(p.Root())
	pending := p.Names()
	hops := 0
	for len(pending) > 0 {
		next := cur.Child(pending[0])
		pending = pending[1:]
		info, err := x.lstat(ctx, next)
		if err != nil {
			return path.Path{}, translate(OpMetadata, next, err)
		}
		if info.Mode()&ModeSymlink == 0 {
			cur = next
			continue
		}
		hops++
		if hops > maxSymlinkHops {
			return path.Path{}, translate(OpMetadata, p, ErrCycle)
		}
		t, err := x.readLink(ctx, next)
		if err != nil {
			return path.Path{}, translate(OpMetadata, next, err)
		}
		dest, err := t.Resolve(next)
		if err != nil {
			return path.Path{}, translate(OpMetadata, next, err)
		}
		cur = path.New(dest.Root())
		pending = append(dest.Names(), pending...)
	}
	return cur, nil
}
