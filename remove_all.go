package fsops

import (
	"context"
	"errors"

	"lesiw.io/fsops/path"
)

// Wipe removes p and everything below it, like rm -rf. Nodes that vanish
// while Wipe runs, including p itself, are not errors.
//
// Requires: [RemoveFS], and [ReadDirFS] for directories
func (x *Executor) Wipe(ctx context.Context, p path.Path) error {
	return x.removeTree(ctx, p, true)
}

// removeTree deletes p in post-order. Children are listed lazily and
// each one is removed before p. When quiet is set, Nonexistent
// failures are ignored at every level.
func (x *Executor) removeTree(
	ctx context.Context, p path.Path, quiet bool,
) error {
	k, err := x.kind(ctx, p, false)
	if err != nil {
		if quiet && errors.Is(err, ErrNotExist) {
			return nil
		}
		return translate(OpDelete, p, err)
	}
	if k == KindDirectory {
		for e, lerr := range x.children(ctx, p) {
			if lerr != nil {
				if quiet && errors.Is(lerr, ErrNotExist) {
					continue
				}
				return translate(OpDelete, p, lerr)
			}
			if rerr := x.removeTree(ctx, e.Path, quiet); rerr != nil {
				return rerr
			}
		}
	}
	err = x.remove(ctx, p)
	if quiet && errors.Is(err, ErrNotExist) {
		return nil
	}
	return translate(OpDelete, p, err)
}
