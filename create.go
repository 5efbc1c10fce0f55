package fsops

import (
	"context"
	"errors"
	"io"

	"lesiw.io/fsops/path"
)

// A CreateFS is a file system with the Create method.
type CreateFS interface {
	FS

	// Create creates a new file for writing. It fails with ErrExist if
	// name already exists. The file is created with mode 0644 (or the
	// mode specified via WithFileMode).
	//
	// When sync is true, writes are durable when Write returns.
	//
	// The returned writer must be closed when done.
	Create(
		ctx context.Context, name path.Path, sync bool,
	) (io.WriteCloser, error)
}

// CreateFile creates an empty file at p.
// Analogous to: [os.Create], touch.
//
// Requires: [CreateFS]
func (x *Executor) CreateFile(
	ctx context.Context, p path.Path, caps ...Capability,
) error {
	pol := x.policyFor(caps)
	return x.mutate(ctx, pol, OpCreate, p, func() error {
		w, err := x.create(ctx, p, bool(pol.Sync))
		if err != nil {
			return translate(OpCreate, p, err)
		}
		return translate(OpWrite, p, w.Close())
	})
}

func (x *Executor) create(
	ctx context.Context, p path.Path, sync bool,
) (io.WriteCloser, error) {
	if cfs, ok := x.fsys.(CreateFS); ok {
		return cfs.Create(ctx, p, sync)
	}
	return nil, ErrUnsupported
}

// createFrom streams r into a new file at p.
func (x *Executor) createFrom(
	ctx context.Context, p path.Path, sync bool, r io.Reader,
) error {
	w, err := x.create(ctx, p, sync)
	if err != nil {
		return translate(OpCreate, p, err)
	}
	_, cerr := io.Copy(opWriter{w, p}, r)
	return translate(OpWrite, p, errors.Join(cerr, w.Close()))
}
