package fsops

import (
	"context"
	"errors"
	"fmt"

	"lesiw.io/fsops/path"
)

// A RenameFS is a file system with the Rename method.
type RenameFS interface {
	FS

	// Rename renames (moves) oldname to newname in a single native call.
	// It reports ErrCrossDevice when the two paths are on different
	// volumes.
	Rename(ctx context.Context, oldname, newname path.Path) error
}

// Move moves the node at src to dst.
// Analogous to: [os.Rename], mv.
//
// The move is attempted as a single rename. If the rename crosses a
// volume boundary, or the filesystem has no [RenameFS], Move copies src
// to dst recursively and then deletes src, unless the call's policy has
// [Atomic], in which case it fails with [Unsupported] and wraps
// [ErrCrossDevice] or [ErrUnsupported]. Symlinks below src are
// recreated, never followed, by the fallback.
//
// Moving an existing path onto itself does nothing. Moving a directory
// into its own subtree, or onto one of its ancestors, is a [Cycle].
//
// Requires: [RenameFS] || ([CreateFS] && [MkdirFS] && [RemoveFS])
func (x *Executor) Move(
	ctx context.Context, src, dst path.Path, caps ...Capability,
) error {
	pol := x.policyFor(caps)
	k, err := x.kind(ctx, src, false)
	if err != nil {
		return translate(OpWrite, src, err)
	}
	if src.Equal(dst) {
		return nil
	}
	if err = checkNested(OpWrite, src, dst); err != nil {
		return err
	}
	if pol.Atomic {
		if err := x.checkAtomic(ctx, src, dst); err != nil {
			return err
		}
	}
	return x.mutate(ctx, pol, OpWrite, dst, func() error {
		return x.rename(ctx, pol, src, dst, k)
	})
}

// MoveInto moves src into the directory dir, keeping its name.
func (x *Executor) MoveInto(
	ctx context.Context, src, dir path.Path, caps ...Capability,
) error {
	dst, err := into(OpWrite, src, dir)
	if err != nil {
		return err
	}
	return x.Move(ctx, src, dst, caps...)
}

func (x *Executor) rename(
	ctx context.Context, pol Policy, src, dst path.Path, k Kind,
) error {
	rfs, ok := x.fsys.(RenameFS)
	if ok {
		err := translate(OpWrite, src, rfs.Rename(ctx, src, dst))
		if err == nil || bool(pol.Atomic) || !errors.Is(err, ErrCrossDevice) {
			return err
		}
	} else if pol.Atomic {
		return unsupported(OpWrite, src)
	}
	cp := pol.With(NoFollowSymlinks)
	if err := x.copyNode(ctx, cp, src, dst, k, nil); err != nil {
		return err
	}
	return x.removeTree(ctx, src, false)
}

// checkAtomic fails before any mutation when src and the parent of dst
// are known to be on different volumes.
func (x *Executor) checkAtomic(ctx context.Context, src, dst path.Path) error {
	if _, ok := x.fsys.(RenameFS); !ok {
		return unsupported(OpWrite, src)
	}
	vfs, ok := x.fsys.(VolumeFS)
	if !ok {
		return nil
	}
	parent, _ := dst.Parent()
	from, ferr := vfs.Volume(ctx, src)
	to, terr := vfs.Volume(ctx, parent)
	if ferr != nil || terr != nil {
		// Unknown; let the rename itself decide.
		return nil
	}
	if from != to {
		return translate(OpWrite, src, fmt.Errorf(
			"%w: %s to %s", ErrCrossDevice, from, to,
		))
	}
	return nil
}

// into derives the destination for src inside dir.
func into(op Op, src, dir path.Path) (path.Path, error) {
	name, ok := src.Base()
	if !ok {
		return path.Path{}, translate(op, src, ErrInvalid)
	}
	dst, err := dir.ChildText(name.String())
	if err != nil {
		return path.Path{}, err
	}
	return dst, nil
}

// checkNested fails with [Cycle] when one of src and dst contains the
// other.
func checkNested(op Op, src, dst path.Path) error {
	if dst.HasPrefix(src) {
		return translate(op, dst, ErrCycle)
	}
	if src.HasPrefix(dst) {
		return translate(op, dst, ErrCycle)
	}
	return nil
}
