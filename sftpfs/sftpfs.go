// Package sftpfs implements lesiw.io/fsops.FS over SFTP.
//
// Paths are [path.Posix] paths on the server. An optional base
// directory is prepended to every path, for servers that confine users
// to a subtree.
//
// SFTP reports most failures with a generic status code, so FS checks
// the conditions the executor needs to classify (non-empty directories
// on Remove) itself before sending the request. Named pipes, sockets and
// volumes are not implemented. Hard links need the server to support
// the hardlink@openssh.com extension.
//
// Errors the server reports with a generic failure status reach the
// executor unclassified and surface as Unsupported.
package sftpfs

import (
	"context"
	"errors"
	"io"
	"iter"
	"os"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

// FS implements lesiw.io/fsops.FS using an SFTP client.
type FS struct {
	client *sftp.Client
	conn   *ssh.Client
	base   path.Path
}

// Dial connects to the SFTP server at addr with password authentication.
// The host key is not verified.
func Dial(addr, user, password string) (*FS, error) {
	config := &ssh.ClientConfig{
		User:            user,
		Auth:            []ssh.AuthMethod{ssh.Password(password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         10 * time.Second,
	}
	conn, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, err
	}
	client, err := sftp.NewClient(conn)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	f := New(client)
	f.conn = conn
	return f, nil
}

// New returns an FS that uses client. Closing the FS closes client.
func New(client *sftp.Client) *FS {
	return &FS{client: client, base: path.New(path.PosixRoot)}
}

// WithBase returns an FS that resolves every path below base.
func (f *FS) WithBase(base path.Path) *FS {
	g := *f
	g.base = base
	return &g
}

// Close closes the SFTP client and, for an FS returned by Dial, the SSH
// connection.
func (f *FS) Close() error {
	err := f.client.Close()
	if f.conn != nil {
		err = errors.Join(err, f.conn.Close())
	}
	return err
}

// remote renders p as a server path.
func (f *FS) remote(op string, p path.Path) (string, error) {
	if p.Platform() != path.Posix {
		return "", pathError(op, p, fsops.ErrInvalid)
	}
	return f.base.Join(p.Names()...).String(), nil
}

// Open implements fsops.FS
func (f *FS) Open(
	_ context.Context, name path.Path,
) (io.ReadCloser, error) {
	r, err := f.remote("open", name)
	if err != nil {
		return nil, err
	}
	file, err := f.client.Open(r)
	if err != nil {
		return nil, convertError("open", name, err)
	}
	return file, nil
}

// Create implements fsops.CreateFS. The sync flag is ignored: SFTP has
// no synchronous open mode.
func (f *FS) Create(
	ctx context.Context, name path.Path, _ bool,
) (io.WriteCloser, error) {
	r, err := f.remote("create", name)
	if err != nil {
		return nil, err
	}
	file, err := f.client.OpenFile(r, os.O_WRONLY|os.O_CREATE|os.O_EXCL)
	if err != nil {
		return nil, convertError("create", name, err)
	}
	if err := file.Chmod(fsops.FileMode(ctx)); err != nil {
		_ = file.Close()
		return nil, convertError("chmod", name, err)
	}
	return file, nil
}

// Stat implements fsops.StatFS
func (f *FS) Stat(
	_ context.Context, name path.Path,
) (fsops.FileInfo, error) {
	r, err := f.remote("stat", name)
	if err != nil {
		return nil, err
	}
	info, err := f.client.Stat(r)
	if err != nil {
		return nil, convertError("stat", name, err)
	}
	return info, nil
}

// Lstat implements fsops.ReadLinkFS
func (f *FS) Lstat(
	_ context.Context, name path.Path,
) (fsops.FileInfo, error) {
	r, err := f.remote("lstat", name)
	if err != nil {
		return nil, err
	}
	info, err := f.client.Lstat(r)
	if err != nil {
		return nil, convertError("lstat", name, err)
	}
	return info, nil
}

// ReadLink implements fsops.ReadLinkFS
func (f *FS) ReadLink(_ context.Context, name path.Path) (string, error) {
	r, err := f.remote("readlink", name)
	if err != nil {
		return "", err
	}
	target, err := f.client.ReadLink(r)
	if err != nil {
		return "", convertError("readlink", name, err)
	}
	return target, nil
}

// ReadDir implements fsops.ReadDirFS
func (f *FS) ReadDir(
	_ context.Context, name path.Path,
) iter.Seq2[fsops.DirEntry, error] {
	return func(yield func(fsops.DirEntry, error) bool) {
		r, err := f.remote("readdir", name)
		if err != nil {
			yield(nil, err)
			return
		}
		info, err := f.client.Stat(r)
		if err != nil {
			yield(nil, convertError("readdir", name, err))
			return
		}
		if !info.IsDir() {
			yield(nil, pathError("readdir", name, fsops.ErrNotDir))
			return
		}
		infos, err := f.client.ReadDir(r)
		if err != nil {
			yield(nil, convertError("readdir", name, err))
			return
		}
		for _, fi := range infos {
			if !yield(&dirEntry{info: fi}, nil) {
				return
			}
		}
	}
}

// Mkdir implements fsops.MkdirFS
func (f *FS) Mkdir(ctx context.Context, name path.Path) error {
	r, err := f.remote("mkdir", name)
	if err != nil {
		return err
	}
	if _, err := f.client.Lstat(r); err == nil {
		return pathError("mkdir", name, fsops.ErrExist)
	}
	if err := f.client.Mkdir(r); err != nil {
		return convertError("mkdir", name, err)
	}
	if err := f.client.Chmod(r, fsops.DirMode(ctx)); err != nil {
		return convertError("chmod", name, err)
	}
	return nil
}

// Remove implements fsops.RemoveFS
func (f *FS) Remove(_ context.Context, name path.Path) error {
	r, err := f.remote("remove", name)
	if err != nil {
		return err
	}
	info, err := f.client.Lstat(r)
	if err != nil {
		return convertError("remove", name, err)
	}
	if !info.IsDir() {
		return convertError("remove", name, f.client.Remove(r))
	}
	infos, err := f.client.ReadDir(r)
	if err != nil {
		return convertError("remove", name, err)
	}
	if len(infos) > 0 {
		return pathError("remove", name, fsops.ErrDirNotEmpty)
	}
	return convertError("remove", name, f.client.RemoveDirectory(r))
}

// Rename implements fsops.RenameFS
func (f *FS) Rename(_ context.Context, oldname, newname path.Path) error {
	o, err := f.remote("rename", oldname)
	if err != nil {
		return err
	}
	n, err := f.remote("rename", newname)
	if err != nil {
		return err
	}
	return convertError("rename", oldname, f.client.Rename(o, n))
}

// Symlink implements fsops.SymlinkFS
func (f *FS) Symlink(
	_ context.Context, oldname string, newname path.Path,
) error {
	n, err := f.remote("symlink", newname)
	if err != nil {
		return err
	}
	if _, err := f.client.Lstat(n); err == nil {
		return pathError("symlink", newname, fsops.ErrExist)
	}
	return convertError("symlink", newname, f.client.Symlink(oldname, n))
}

// Link implements fsops.LinkFS
func (f *FS) Link(_ context.Context, oldname, newname path.Path) error {
	o, err := f.remote("link", oldname)
	if err != nil {
		return err
	}
	n, err := f.remote("link", newname)
	if err != nil {
		return err
	}
	return convertError("link", newname, f.client.Link(o, n))
}

func pathError(op string, p path.Path, err error) error {
	return &fsops.PathError{Op: op, Path: p.String(), Err: err}
}

// convertError wraps an SFTP error in a PathError. Status codes the
// client maps onto os errors keep that mapping.
func convertError(op string, p path.Path, err error) error {
	if err == nil {
		return nil
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	switch {
	case errors.Is(err, os.ErrNotExist):
		err = fsops.ErrNotExist
	case errors.Is(err, os.ErrExist):
		err = fsops.ErrExist
	case errors.Is(err, os.ErrPermission):
		err = fsops.ErrPermission
	}
	return pathError(op, p, err)
}

// dirEntry wraps os.FileInfo to implement fs.DirEntry.
type dirEntry struct {
	info os.FileInfo
}

func (de *dirEntry) Name() string { return de.info.Name() }
func (de *dirEntry) IsDir() bool  { return de.info.IsDir() }
func (de *dirEntry) Type() fsops.Mode {
	return de.info.Mode().Type()
}

func (de *dirEntry) Info() (fsops.FileInfo, error) {
	return de.info, nil
}

// Compile-time interface checks
var (
	_ fsops.FS         = (*FS)(nil)
	_ fsops.CreateFS   = (*FS)(nil)
	_ fsops.StatFS     = (*FS)(nil)
	_ fsops.ReadLinkFS = (*FS)(nil)
	_ fsops.ReadDirFS  = (*FS)(nil)
	_ fsops.MkdirFS    = (*FS)(nil)
	_ fsops.RemoveFS   = (*FS)(nil)
	_ fsops.RenameFS   = (*FS)(nil)
	_ fsops.SymlinkFS  = (*FS)(nil)
	_ fsops.LinkFS     = (*FS)(nil)
)
