package fsops

import (
	"context"

	"lesiw.io/fsops/path"
)

// A FifoFS is a file system that can create named pipes.
type FifoFS interface {
	FS

	// Mkfifo creates a named pipe with the mode from FileMode(ctx).
	Mkfifo(ctx context.Context, name path.Path) error
}

// A SocketFS is a file system that can create Unix domain sockets.
type SocketFS interface {
	FS

	// Mksocket creates a socket node at name and leaves it in place
	// without listening on it.
	Mksocket(ctx context.Context, name path.Path) error
}

// CreateFifo creates a named pipe at p.
// Analogous to: [syscall.Mkfifo], mkfifo.
//
// Requires: [FifoFS]
func (x *Executor) CreateFifo(
	ctx context.Context, p path.Path, caps ...Capability,
) error {
	pol := x.policyFor(caps)
	return x.mutate(ctx, pol, OpCreate, p, func() error {
		return translate(OpCreate, p, x.mkfifo(ctx, p))
	})
}

// CreateSocket creates a Unix domain socket node at p.
//
// Requires: [SocketFS]
func (x *Executor) CreateSocket(
	ctx context.Context, p path.Path, caps ...Capability,
) error {
	pol := x.policyFor(caps)
	return x.mutate(ctx, pol, OpCreate, p, func() error {
		sfs, ok := x.fsys.(SocketFS)
		if !ok {
			return unsupported(OpCreate, p)
		}
		return translate(OpCreate, p, sfs.Mksocket(ctx, p))
	})
}

func (x *Executor) mkfifo(ctx context.Context, p path.Path) error {
	if ffs, ok := x.fsys.(FifoFS); ok {
		return ffs.Mkfifo(ctx, p)
	}
	return ErrUnsupported
}
