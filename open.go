package fsops

import (
	"context"
	"errors"
	"io"

	"lesiw.io/fsops/path"
)

// WithReader opens the file at p, passes its contents to fn and closes
// it on every exit path, including a failing or panicking fn. Symlinks
// are always followed.
// Analogous to: [os.Open], cat.
//
// Read failures surface from the reader as [OpError] values with
// [OpRead].
//
// Requires: [FS]
func (x *Executor) WithReader(
	ctx context.Context, p path.Path, fn func(io.Reader) error,
) (err error) {
	rc, err := x.fsys.Open(ctx, p)
	if err != nil {
		return translate(OpOpen, p, err)
	}
	defer func() {
		err = errors.Join(err, translate(OpRead, p, rc.Close()))
	}()
	return fn(opReader{rc, p})
}

// WithWriter creates a file at p, passes it to fn and closes it on
// every exit path. The destination is guarded like every other create:
// see [CreateParents] and [Overwrite]. With [Sync], writes are durable
// when they return.
//
// Requires: [CreateFS]
func (x *Executor) WithWriter(
	ctx context.Context, p path.Path, fn func(io.Writer) error,
	caps ...Capability,
) error {
	pol := x.policyFor(caps)
	return x.mutate(ctx, pol, OpCreate, p, func() (err error) {
		w, err := x.create(ctx, p, bool(pol.Sync))
		if err != nil {
			return translate(OpCreate, p, err)
		}
		defer func() {
			err = errors.Join(err, translate(OpWrite, p, w.Close()))
		}()
		return fn(opWriter{w, p})
	})
}
