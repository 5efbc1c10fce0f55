// Package osfs implements lesiw.io/fsops.FS using the os package.
//
// Paths are host paths: [path.Posix] paths on Unix systems and
// [path.Windows] paths on Windows. A path for the other platform fails
// with fsops.ErrInvalid before any system call is made.
//
// Named pipes have no portable native call, so Mkfifo runs the mkfifo
// command through a [github.com/jmgilman/go/exec.Executor]. Every such
// command is reported to an [fsops.EventSink] before it runs.
//
// # Context Handling
//
// Context cancelation applies to the external mkfifo command only. All
// other calls are local system calls and ignore it.
package osfs

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/jmgilman/go/exec"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

// FS implements lesiw.io/fsops.FS using the OS filesystem.
type FS struct {
	exec exec.Executor
	sink fsops.EventSink
}

// An Option configures an FS.
type Option func(*FS)

// WithExecutor sets the executor used for external commands.
// The default runs commands with the parent's environment.
func WithExecutor(e exec.Executor) Option {
	return func(f *FS) { f.exec = e }
}

// WithEventSink sets the sink that is told about external commands.
// The default discards events.
func WithEventSink(s fsops.EventSink) Option {
	return func(f *FS) { f.sink = s }
}

// New returns the host filesystem.
func New(opts ...Option) *FS {
	f := &FS{
		exec: exec.New(exec.WithInheritEnv()),
		sink: fsops.NopSink{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// native renders p as a host path.
func native(op string, p path.Path) (string, error) {
	if p.Platform() != path.Host() {
		return "", &fsops.PathError{
			Op:   op,
			Path: p.String(),
			Err: fmt.Errorf(
				"%w: %w", fsops.ErrInvalid, path.ErrPlatformMismatch,
			),
		}
	}
	return p.String(), nil
}

// Open implements fsops.FS
func (f *FS) Open(
	_ context.Context, name path.Path,
) (io.ReadCloser, error) {
	path, err := native("open", name)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Create implements fsops.CreateFS. With sync set, the file is opened
// with O_SYNC.
func (f *FS) Create(
	ctx context.Context, name path.Path, sync bool,
) (io.WriteCloser, error) {
	path, err := native("create", name)
	if err != nil {
		return nil, err
	}
	flag := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if sync {
		flag |= os.O_SYNC
	}
	return os.OpenFile(path, flag, fsops.FileMode(ctx))
}

// Stat implements fsops.StatFS
func (f *FS) Stat(
	_ context.Context, name path.Path,
) (fsops.FileInfo, error) {
	path, err := native("stat", name)
	if err != nil {
		return nil, err
	}
	return os.Stat(path)
}

// Lstat implements fsops.ReadLinkFS
func (f *FS) Lstat(
	_ context.Context, name path.Path,
) (fsops.FileInfo, error) {
	path, err := native("lstat", name)
	if err != nil {
		return nil, err
	}
	return os.Lstat(path)
}

// ReadLink implements fsops.ReadLinkFS
func (f *FS) ReadLink(_ context.Context, name path.Path) (string, error) {
	path, err := native("readlink", name)
	if err != nil {
		return "", err
	}
	return os.Readlink(path)
}

// ReadDir implements fsops.ReadDirFS. The directory is read in batches
// as the iteration advances.
func (f *FS) ReadDir(
	ctx context.Context, name path.Path,
) iter.Seq2[fsops.DirEntry, error] {
	return func(yield func(fsops.DirEntry, error) bool) {
		path, err := native("readdir", name)
		if err != nil {
			yield(nil, err)
			return
		}
		d, err := os.Open(path)
		if err != nil {
			yield(nil, err)
			return
		}
		defer d.Close()
		for {
			entries, err := d.ReadDir(64)
			for _, entry := range entries {
				if !yield(entry, nil) {
					return
				}
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if cerr := ctx.Err(); cerr != nil {
				yield(nil, cerr)
				return
			}
		}
	}
}

// Remove implements fsops.RemoveFS
func (f *FS) Remove(_ context.Context, name path.Path) error {
	path, err := native("remove", name)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// Mkdir implements fsops.MkdirFS
func (f *FS) Mkdir(ctx context.Context, name path.Path) error {
	path, err := native("mkdir", name)
	if err != nil {
		return err
	}
	return os.Mkdir(path, fsops.DirMode(ctx))
}

// Rename implements fsops.RenameFS
func (f *FS) Rename(_ context.Context, oldname, newname path.Path) error {
	oldpath, err := native("rename", oldname)
	if err != nil {
		return err
	}
	newpath, err := native("rename", newname)
	if err != nil {
		return err
	}
	return os.Rename(oldpath, newpath)
}

// Symlink implements fsops.SymlinkFS
func (f *FS) Symlink(
	_ context.Context, oldname string, newname path.Path,
) error {
	newpath, err := native("symlink", newname)
	if err != nil {
		return err
	}
	// oldname is the link target, not a path in this filesystem,
	// so we don't resolve it
	return os.Symlink(oldname, newpath)
}

// Link implements fsops.LinkFS
func (f *FS) Link(_ context.Context, oldname, newname path.Path) error {
	oldpath, err := native("link", oldname)
	if err != nil {
		return err
	}
	newpath, err := native("link", newname)
	if err != nil {
		return err
	}
	return os.Link(oldpath, newpath)
}

// Compile-time interface checks
var (
	_ fsops.FS         = (*FS)(nil)
	_ fsops.CreateFS   = (*FS)(nil)
	_ fsops.RemoveFS   = (*FS)(nil)
	_ fsops.MkdirFS    = (*FS)(nil)
	_ fsops.RenameFS   = (*FS)(nil)
	_ fsops.StatFS     = (*FS)(nil)
	_ fsops.ReadDirFS  = (*FS)(nil)
	_ fsops.SymlinkFS  = (*FS)(nil)
	_ fsops.ReadLinkFS = (*FS)(nil)
	_ fsops.LinkFS     = (*FS)(nil)
	_ fsops.VolumeFS   = (*FS)(nil)
)
