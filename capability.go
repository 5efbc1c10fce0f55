package fsops

import (
	"context"

	"lesiw.io/fsops/path"
)

// A Capability selects one behavior of an operation. Capabilities are
// plain values with no state of their own; passing one to an [Executor]
// method overrides the matching field of the executor's [Policy] for
// that call only.
type Capability interface {
	apply(*Policy)
}

// CreateNonexistentParents decides whether missing ancestors of a
// destination are created before the operation runs. When off, a missing
// parent surfaces as [Nonexistent].
type CreateNonexistentParents bool

// Values of [CreateNonexistentParents].
const (
	CreateParents   CreateNonexistentParents = true
	NoCreateParents CreateNonexistentParents = false
)

func (c CreateNonexistentParents) apply(p *Policy) { p.CreateParents = c }

// OverwritePreexisting decides what happens to an existing destination.
// When on, the destination is deleted first, recursively if the policy
// also has [Recursive]. When off, the operation fails with
// [AlreadyExists] and nothing is modified.
type OverwritePreexisting bool

// Values of [OverwritePreexisting].
const (
	Overwrite   OverwritePreexisting = true
	NoOverwrite OverwritePreexisting = false
)

func (c OverwritePreexisting) apply(p *Policy) { p.Overwrite = c }

// DeleteRecursively decides whether a non-empty directory may be deleted.
// When on, children are deleted depth-first before their parent. When
// off, deleting a non-empty directory fails with [DirectoryNotEmpty] and
// nothing is deleted.
type DeleteRecursively bool

// Values of [DeleteRecursively].
const (
	Recursive    DeleteRecursively = true
	NonRecursive DeleteRecursively = false
)

func (c DeleteRecursively) apply(p *Policy) { p.Recurse = c }

// MoveAtomically decides whether a move must be a single rename. When on,
// a move across volumes, or on a filesystem without [RenameFS], fails
// with [Unsupported] instead of copying and deleting.
type MoveAtomically bool

// Values of [MoveAtomically].
const (
	Atomic    MoveAtomically = true
	NonAtomic MoveAtomically = false
)

func (c MoveAtomically) apply(p *Policy) { p.Atomic = c }

// DereferenceSymlinks decides whether operations that meet a symlink act
// on its target. When off they act on the symlink itself.
type DereferenceSymlinks bool

// Values of [DereferenceSymlinks].
const (
	FollowSymlinks   DereferenceSymlinks = true
	NoFollowSymlinks DereferenceSymlinks = false
)

func (c DereferenceSymlinks) apply(p *Policy) { p.Dereference = c }

// WriteSynchronously decides whether file writes ask the host for
// durable, unbuffered semantics.
type WriteSynchronously bool

// Values of [WriteSynchronously].
const (
	Sync   WriteSynchronously = true
	NoSync WriteSynchronously = false
)

func (c WriteSynchronously) apply(p *Policy) { p.Sync = c }

// A Policy is a complete set of capability choices.
// A Policy is itself a Capability that replaces every choice at once.
type Policy struct {
	CreateParents CreateNonexistentParents
	Overwrite     OverwritePreexisting
	Recurse       DeleteRecursively
	Atomic        MoveAtomically
	Dereference   DereferenceSymlinks
	Sync          WriteSynchronously
}

// DefaultPolicy is the documented default: every capability is off.
// Parents are not created, destinations are not overwritten, directories
// are not deleted recursively, moves may fall back to copy and delete,
// symlinks are not followed and writes are not synchronous.
var DefaultPolicy = Policy{}

func (p Policy) apply(q *Policy) { *q = p }

// With returns a copy of p with caps applied in order.
func (p Policy) With(caps ...Capability) Policy {
	for _, c := range caps {
		if c != nil {
			c.apply(&p)
		}
	}
	return p
}

// around runs next after creating dst's missing ancestors, if enabled.
func (c CreateNonexistentParents) around(
	ctx context.Context, x *Executor, op Op, dst path.Path,
	next func() error,
) error {
	if c {
		if parent, ok := dst.Parent(); ok {
			if err := x.mkdirAll(ctx, op, parent); err != nil {
				return err
			}
		}
	}
	return next()
}

// around runs next once dst is known not to exist. An existing dst is
// deleted when c is on and reported as [AlreadyExists] when it is off.
func (c OverwritePreexisting) around(
	ctx context.Context, x *Executor, pol Policy, op Op, dst path.Path,
	next func() error,
) error {
	exists, err := x.lexists(ctx, dst)
	if err != nil {
		return translate(op, dst, err)
	}
	if exists {
		if !c {
			return translate(op, dst, ErrExist)
		}
		if err := x.delete(ctx, dst, pol.Recurse); err != nil {
			return err
		}
	}
	return next()
}

// mutate runs core under the guards of pol in their fixed order:
// parent creation outermost, then the overwrite check, then core.
func (x *Executor) mutate(
	ctx context.Context, pol Policy, op Op, dst path.Path,
	core func() error,
) error {
	return pol.CreateParents.around(ctx, x, op, dst, func() error {
		return pol.Overwrite.around(ctx, x, pol, op, dst, core)
	})
}
