// Package billyfs implements lesiw.io/fsops.FS on top of a go-billy
// filesystem.
//
// Any [billy.Filesystem] can sit behind an executor: billy's memfs for
// tests, its osfs for a chrooted view of the host, or a filesystem
// shared with go-git. Paths are [path.Posix] paths resolved against the
// billy filesystem's root.
//
// Billy creates missing parents implicitly and does not report
// non-empty directories on Remove, so FS checks both itself before
// delegating. Hard links, named pipes, sockets and volumes have no billy
// equivalent and are not implemented.
package billyfs

import (
	"context"
	"io"
	"iter"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

// FS adapts a billy.Filesystem.
type FS struct {
	bfs billy.Filesystem
}

// New returns an FS backed by bfs.
func New(bfs billy.Filesystem) *FS {
	return &FS{bfs: bfs}
}

// NewMemory returns an FS backed by a new, empty billy memfs.
func NewMemory() *FS {
	return New(memfs.New())
}

// NewLocal returns an FS backed by billy's osfs, chrooted at dir.
func NewLocal(dir string) *FS {
	return New(osfs.New(dir))
}

// Unwrap returns the underlying billy.Filesystem.
func (f *FS) Unwrap() billy.Filesystem {
	return f.bfs
}

func pathError(op string, p path.Path, err error) error {
	if err == nil {
		return nil
	}
	return &fsops.PathError{Op: op, Path: p.String(), Err: err}
}

// name renders p for billy. Only POSIX paths are accepted.
func name(op string, p path.Path) (string, error) {
	if p.Platform() != path.Posix {
		return "", pathError(op, p, fsops.ErrInvalid)
	}
	return p.String(), nil
}

// checkParent fails unless the parent of p is an existing directory.
func (f *FS) checkParent(op string, p path.Path) error {
	dir, ok := p.Parent()
	if !ok {
		return pathError(op, p, fsops.ErrExist)
	}
	info, err := f.bfs.Stat(dir.String())
	if err != nil {
		return pathError(op, p, err)
	}
	if !info.IsDir() {
		return pathError(op, p, fsops.ErrNotDir)
	}
	return nil
}

// checkAbsent fails if a node already exists at p.
func (f *FS) checkAbsent(op string, p path.Path) error {
	if _, err := f.bfs.Lstat(p.String()); err == nil {
		return pathError(op, p, fsops.ErrExist)
	}
	return nil
}

// Open implements fsops.FS
func (f *FS) Open(
	_ context.Context, p path.Path,
) (io.ReadCloser, error) {
	n, err := name("open", p)
	if err != nil {
		return nil, err
	}
	file, err := f.bfs.Open(n)
	if err != nil {
		return nil, pathError("open", p, err)
	}
	return file, nil
}

// Create implements fsops.CreateFS
func (f *FS) Create(
	ctx context.Context, p path.Path, sync bool,
) (io.WriteCloser, error) {
	n, err := name("create", p)
	if err != nil {
		return nil, err
	}
	if err := f.checkParent("create", p); err != nil {
		return nil, err
	}
	flag := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if sync {
		flag |= os.O_SYNC
	}
	file, err := f.bfs.OpenFile(n, flag, fsops.FileMode(ctx))
	if err != nil {
		return nil, pathError("create", p, err)
	}
	return file, nil
}

// Stat implements fsops.StatFS
func (f *FS) Stat(
	_ context.Context, p path.Path,
) (fsops.FileInfo, error) {
	n, err := name("stat", p)
	if err != nil {
		return nil, err
	}
	info, err := f.bfs.Stat(n)
	return info, pathError("stat", p, err)
}

// Lstat implements fsops.ReadLinkFS
func (f *FS) Lstat(
	_ context.Context, p path.Path,
) (fsops.FileInfo, error) {
	n, err := name("lstat", p)
	if err != nil {
		return nil, err
	}
	info, err := f.bfs.Lstat(n)
	return info, pathError("lstat", p, err)
}

// ReadLink implements fsops.ReadLinkFS
func (f *FS) ReadLink(_ context.Context, p path.Path) (string, error) {
	n, err := name("readlink", p)
	if err != nil {
		return "", err
	}
	target, err := f.bfs.Readlink(n)
	return target, pathError("readlink", p, err)
}

// Symlink implements fsops.SymlinkFS
func (f *FS) Symlink(
	_ context.Context, oldname string, newname path.Path,
) error {
	n, err := name("symlink", newname)
	if err != nil {
		return err
	}
	if err := f.checkParent("symlink", newname); err != nil {
		return err
	}
	return pathError("symlink", newname, f.bfs.Symlink(oldname, n))
}

// Mkdir implements fsops.MkdirFS. Unlike billy's MkdirAll, it fails if
// the parent does not exist or the directory already does.
func (f *FS) Mkdir(ctx context.Context, p path.Path) error {
	n, err := name("mkdir", p)
	if err != nil {
		return err
	}
	if err := f.checkParent("mkdir", p); err != nil {
		return err
	}
	if err := f.checkAbsent("mkdir", p); err != nil {
		return err
	}
	return pathError("mkdir", p, f.bfs.MkdirAll(n, fsops.DirMode(ctx)))
}

// Remove implements fsops.RemoveFS
func (f *FS) Remove(_ context.Context, p path.Path) error {
	n, err := name("remove", p)
	if err != nil {
		return err
	}
	info, err := f.bfs.Lstat(n)
	if err != nil {
		return pathError("remove", p, err)
	}
	if info.IsDir() {
		infos, rerr := f.bfs.ReadDir(n)
		if rerr != nil {
			return pathError("remove", p, rerr)
		}
		if len(infos) > 0 {
			return pathError("remove", p, fsops.ErrDirNotEmpty)
		}
	}
	return pathError("remove", p, f.bfs.Remove(n))
}

// Rename implements fsops.RenameFS
func (f *FS) Rename(_ context.Context, oldname, newname path.Path) error {
	o, err := name("rename", oldname)
	if err != nil {
		return err
	}
	n, err := name("rename", newname)
	if err != nil {
		return err
	}
	if _, err := f.bfs.Lstat(o); err != nil {
		return pathError("rename", oldname, err)
	}
	if err := f.checkParent("rename", newname); err != nil {
		return err
	}
	return pathError("rename", oldname, f.bfs.Rename(o, n))
}

// ReadDir implements fsops.ReadDirFS
func (f *FS) ReadDir(
	_ context.Context, p path.Path,
) iter.Seq2[fsops.DirEntry, error] {
	return func(yield func(fsops.DirEntry, error) bool) {
		n, err := name("readdir", p)
		if err != nil {
			yield(nil, err)
			return
		}
		infos, err := f.bfs.ReadDir(n)
		if err != nil {
			yield(nil, pathError("readdir", p, err))
			return
		}
		for _, info := range infos {
			if !yield(&dirEntry{info: info}, nil) {
				return
			}
		}
	}
}

// dirEntry wraps fs.FileInfo to implement fs.DirEntry.
type dirEntry struct {
	info fsops.FileInfo
}

func (d *dirEntry) Name() string { return d.info.Name() }
func (d *dirEntry) IsDir() bool   { return d.info.IsDir() }

func (d *dirEntry) Type() fsops.Mode {
	return d.info.Mode().Type()
}

func (d *dirEntry) Info() (fsops.FileInfo, error) {
	return d.info, nil
}

// Compile-time interface checks
var (
	_ fsops.FS         = (*FS)(nil)
	_ fsops.CreateFS   = (*FS)(nil)
	_ fsops.StatFS     = (*FS)(nil)
	_ fsops.ReadLinkFS = (*FS)(nil)
	_ fsops.SymlinkFS  = (*FS)(nil)
	_ fsops.MkdirFS    = (*FS)(nil)
	_ fsops.RemoveFS   = (*FS)(nil)
	_ fsops.RenameFS   = (*FS)(nil)
	_ fsops.ReadDirFS  = (*FS)(nil)
)
