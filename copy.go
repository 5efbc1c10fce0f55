package fsops

import (
	"context"
	"errors"

	"lesiw.io/fsops/path"
)

// Copy copies the node at src to dst.
// Analogous to: cp, cp -R.
//
// Files are streamed. Directories are copied recursively: each directory
// is created before its children are copied. A symlink is recreated with
// the same target text unless the call's policy has [FollowSymlinks], in
// which case the content it points to is copied; a symlink loop met
// while following is a [Cycle]. Named pipes are recreated empty. Sockets
// and devices are [Unsupported].
//
// Copying a path onto itself, into its own subtree or onto one of its
// ancestors is a [Cycle].
// Copy is not transactional: a failure part way leaves a partial copy.
//
// Requires: [CreateFS], plus [MkdirFS] and [ReadDirFS] for directories
// and [SymlinkFS] for symlinks
func (x *Executor) Copy(
	ctx context.Context, src, dst path.Path, caps ...Capability,
) error {
	pol := x.policyFor(caps)
	if err := checkNested(OpCreate, src, dst); err != nil {
		return err
	}
	follow := bool(pol.Dereference)
	k, err := x.kind(ctx, src, follow)
	if err != nil {
		return translate(OpMetadata, src, err)
	}
	var stack []path.Path
	if follow {
		rp, rerr := x.RealPath(ctx, src)
		if rerr != nil {
			return rerr
		}
		if rerr = checkNested(OpCreate, rp, dst); rerr != nil {
			return rerr
		}
		stack = []path.Path{rp}
	}
	return x.mutate(ctx, pol, OpCreate, dst, func() error {
		return x.copyNode(ctx, pol, src, dst, k, stack)
	})
}

// CopyInto copies src into the directory dir, keeping its name.
func (x *Executor) CopyInto(
	ctx context.Context, src, dir path.Path, caps ...Capability,
) error {
	dst, err := into(OpCreate, src, dir)
	if err != nil {
		return err
	}
	return x.Copy(ctx, src, dst, caps...)
}

// copyNode copies src, already classified as k, to the absent dst.
// stack holds the real paths of the directories being copied when
// symlinks are followed.
func (x *Executor) copyNode(
	ctx context.Context, pol Policy, src, dst path.Path, k Kind,
	stack []path.Path,
) error {
	switch k {
	case KindFile:
		return x.copyFile(ctx, pol, src, dst)
	case KindDirectory:
		return x.copyDir(ctx, pol, src, dst, stack)
	case KindSymlink:
		s, err := x.readLinkText(ctx, src)
		if err != nil {
			return translate(OpMetadata, src, err)
		}
		return translate(OpCreate, dst, x.symlink(ctx, s, dst))
	case KindFifo:
		return translate(OpCreate, dst, x.mkfifo(ctx, dst))
	}
	return unsupported(OpCreate, src)
}

func (x *Executor) copyFile(
	ctx context.Context, pol Policy, src, dst path.Path,
) (err error) {
	if info, serr := x.stat(ctx, src); serr == nil {
		ctx = WithFileMode(ctx, info.Mode().Perm())
	}
	rc, err := x.fsys.Open(ctx, src)
	if err != nil {
		return translate(OpOpen, src, err)
	}
	defer func() {
		err = errors.Join(err, translate(OpRead, src, rc.Close()))
	}()
	return x.createFrom(ctx, dst, bool(pol.Sync), opReader{rc, src})
}

func (x *Executor) copyDir(
	ctx context.Context, pol Policy, src, dst path.Path, stack []path.Path,
) error {
	if info, err := x.stat(ctx, src); err == nil {
		ctx = WithDirMode(ctx, info.Mode().Perm())
	}
	if err := x.mkdir(ctx, dst); err != nil {
		return translate(OpCreate, dst, err)
	}
	for e, lerr := range x.children(ctx, src) {
		if lerr != nil {
			return translate(OpRead, src, lerr)
		}
		if err := x.copyChild(ctx, pol, e, dst, stack); err != nil {
			return err
		}
	}
	return nil
}

func (x *Executor) copyChild(
	ctx context.Context, pol Policy, e Entry, dir path.Path,
	stack []path.Path,
) error {
	name, _ := e.Path.Base()
	to, err := dir.ChildText(name.String())
	if err != nil {
		return err
	}
	k := e.Kind
	if !pol.Dereference {
		return x.copyNode(ctx, pol, e.Path, to, k, nil)
	}
	if k == KindSymlink {
		if k, err = x.kind(ctx, e.Path, true); err != nil {
			return translate(OpMetadata, e.Path, err)
		}
	}
	if k != KindDirectory {
		return x.copyNode(ctx, pol, e.Path, to, k, stack)
	}
	rp := stack[len(stack)-1].Join(name)
	if e.Kind == KindSymlink {
		if rp, err = x.RealPath(ctx, e.Path); err != nil {
			return err
		}
	}
	for _, s := range stack {
		if s.HasPrefix(rp) {
			return translate(OpRead, e.Path, ErrCycle)
		}
	}
	if to.HasPrefix(rp) {
		return translate(OpCreate, to, ErrCycle)
	}
	next := append(stack[:len(stack):len(stack)], rp)
	return x.copyNode(ctx, pol, e.Path, to, k, next)
}
