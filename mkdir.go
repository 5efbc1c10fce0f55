package fsops

import (
	"context"

	"lesiw.io/fsops/path"
)

// A MkdirFS is a file system with the Mkdir method.
type MkdirFS interface {
	FS

	// Mkdir creates a new directory.
	//
	// The directory mode is obtained from DirMode(ctx). If not set in
	// the context, the default mode 0755 is used.
	//
	// Mkdir returns an error if name already exists or if the parent
	// directory does not exist.
	Mkdir(ctx context.Context, name path.Path) error
}

// CreateDirectory creates a directory at p.
// Analogous to: [os.Mkdir], mkdir.
//
// The directory mode is obtained from [DirMode](ctx):
//
//	ctx = fsops.WithDirMode(ctx, 0700)
//	x.CreateDirectory(ctx, p) // Creates with mode 0700
//
// With [CreateParents], missing ancestors are created first, like
// mkdir -p. Unlike mkdir -p, an existing p is still [AlreadyExists]
// unless the call's policy has [Overwrite].
//
// Requires: [MkdirFS]
func (x *Executor) CreateDirectory(
	ctx context.Context, p path.Path, caps ...Capability,
) error {
	pol := x.policyFor(caps)
	return x.mutate(ctx, pol, OpCreate, p, func() error {
		return translate(OpCreate, p, x.mkdir(ctx, p))
	})
}

func (x *Executor) mkdir(ctx context.Context, p path.Path) error {
	if mfs, ok := x.fsys.(MkdirFS); ok {
		return mfs.Mkdir(ctx, p)
	}
	return ErrUnsupported
}
