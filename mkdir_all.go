package fsops

import (
	"context"
	"errors"

	"lesiw.io/fsops/path"
)

// mkdirAll creates p and any missing ancestors. An existing directory
// anywhere along p is accepted; any other existing node is
// [IsNotDirectory].
func (x *Executor) mkdirAll(ctx context.Context, op Op, p path.Path) error {
	k, err := x.kind(ctx, p, true)
	if err == nil {
		if k != KindDirectory {
			return translate(op, p, ErrNotDir)
		}
		return nil
	}
	if !errors.Is(err, ErrNotExist) {
		return translate(op, p, err)
	}
	if parent, ok := p.Parent(); ok {
		if perr := x.mkdirAll(ctx, op, parent); perr != nil {
			return perr
		}
	}
	err = x.mkdir(ctx, p)
	if errors.Is(err, ErrExist) {
		// Lost a race with another creator; accept a directory.
		if got, kerr := x.kind(ctx, p, true); kerr == nil &&
			got == KindDirectory {
			return nil
		}
	}
	return translate(op, p, err)
}
