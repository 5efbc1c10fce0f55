// Package memfs implements lesiw.io/fsops.FS using an in-memory file tree.
//
// The tree supports every node kind the executor knows: files,
// directories, symlinks, hard links, named pipes and sockets. Directories
// can be turned into simulated volumes with [FS.Mount], so that renames
// and hard links across them fail the way they do across real mounts.
// [FS.Observe] records every mutation for tests that check ordering.
package memfs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

var errIsDir = errors.New("is a directory")

// An FS is an in-memory filesystem with one tree per root.
type FS struct {
	sync.RWMutex
	roots   map[string]*node
	observe func(op string, p path.Path)
}

// node is a file, directory, symlink, pipe or socket. Hard links share
// one node, so names live in the directory entries that point at it.
type node struct {
	mode     fsops.Mode
	data     []byte
	target   string
	modTime  time.Time
	children map[string]*dirent
	nlink    int
	vol      *volume
}

type dirent struct {
	name string
	n    *node
}

type volume struct {
	name string
	typ  string
}

// New returns an empty in-memory filesystem with the given roots. With
// no roots, it has the single POSIX root "/". Each root is its own
// volume.
func New(roots ...path.Root) *FS {
	if len(roots) == 0 {
		roots = []path.Root{path.PosixRoot}
	}
	f := &FS{roots: make(map[string]*node)}
	for _, r := range roots {
		name := "mem:" + r.Prefix()
		f.roots[rootKey(r)] = newDir(0755, &volume{name: name, typ: "memfs"})
	}
	return f
}

// Observe registers fn to be called after every successful mutation
// with the native operation name ("create", "mkdir", "remove", "rename",
// "symlink", "link", "mkfifo", "mksocket") and the path it changed.
// fn runs while f is locked and must not call back into f.
func (f *FS) Observe(fn func(op string, p path.Path)) {
	f.Lock()
	defer f.Unlock()
	f.observe = fn
}

func (f *FS) notify(op string, p path.Path) {
	if f.observe != nil {
		f.observe(op, p)
	}
}

func newDir(perm fsops.Mode, vol *volume) *node {
	return &node{
		mode:     perm | fsops.ModeDir,
		modTime:  time.Now(),
		children: make(map[string]*dirent),
		nlink:    1,
		vol:      vol,
	}
}

func rootKey(r path.Root) string {
	return strings.ToUpper(r.Prefix())
}

func nameKey(p path.Platform, n path.Name) string {
	if p.CaseSensitive() {
		return n.String()
	}
	return strings.ToUpper(n.String())
}

func (n *node) isDir() bool { return n.mode&fsops.ModeDir != 0 }

func (n *node) isSymlink() bool { return n.mode&fsops.ModeSymlink != 0 }

// resolve finds the node at p. Symlinks along the way are always
// followed; a symlink in the final position is followed only when
// follow is set.
func (f *FS) resolve(p path.Path, follow bool) (*node, error) {
	cur, ok := f.roots[rootKey(p.Root())]
	if !ok {
		return nil, fsops.ErrNotExist
	}
	at := path.New(p.Root())
	pending := p.Names()
	hops := 0
	for len(pending) > 0 {
		if !cur.isDir() {
			return nil, fsops.ErrNotDir
		}
		name := pending[0]
		pending = pending[1:]
		e, ok := cur.children[nameKey(p.Platform(), name)]
		if !ok {
			return nil, fsops.ErrNotExist
		}
		here := at.Child(name)
		if !e.n.isSymlink() || (len(pending) == 0 && !follow) {
			cur, at = e.n, here
			continue
		}
		if hops++; hops > 40 {
			return nil, fsops.ErrCycle
		}
		t, err := fsops.ParseTarget(p.Platform(), e.n.target)
		if err != nil {
			return nil, err
		}
		dest, err := t.Resolve(here)
		if err != nil {
			return nil, err
		}
		if cur, ok = f.roots[rootKey(dest.Root())]; !ok {
			return nil, fsops.ErrNotExist
		}
		at = path.New(dest.Root())
		pending = append(dest.Names(), pending...)
	}
	return cur, nil
}

// parent returns the directory that holds p and p's last name.
func (f *FS) parent(p path.Path) (*node, path.Name, error) {
	name, ok := p.Base()
	if !ok {
		return nil, path.Name{}, fsops.ErrExist
	}
	dir, _ := p.Parent()
	n, err := f.resolve(dir, true)
	if err != nil {
		return nil, name, err
	}
	if !n.isDir() {
		return nil, name, fsops.ErrNotDir
	}
	return n, name, nil
}

// add links n into the parent of p, failing if p exists.
func (f *FS) add(p path.Path, n *node) error {
	dir, name, err := f.parent(p)
	if err != nil {
		return err
	}
	key := nameKey(p.Platform(), name)
	if _, ok := dir.children[key]; ok {
		return fsops.ErrExist
	}
	if n.vol == nil {
		n.vol = dir.vol
	}
	dir.children[key] = &dirent{name: name.String(), n: n}
	dir.modTime = time.Now()
	return nil
}

func pathError(op string, p path.Path, err error) error {
	return &fsops.PathError{Op: op, Path: p.String(), Err: err}
}

var _ fsops.FS = (*FS)(nil)

// Open implements fsops.FS.
func (f *FS) Open(
	ctx context.Context, name path.Path,
) (io.ReadCloser, error) {
	f.RLock()
	defer f.RUnlock()

	n, err := f.resolve(name, true)
	if err != nil {
		return nil, pathError("open", name, err)
	}
	if n.isDir() {
		return nil, pathError("open", name, errIsDir)
	}
	if n.mode.Type() != 0 {
		return nil, pathError("open", name, fsops.ErrInvalid)
	}
	return io.NopCloser(bytes.NewReader(n.data)), nil
}

type writer struct {
	*FS
	*node
	bytes.Buffer
	closed bool
}

func newWriter(fs *FS, n *node) *writer {
	return &writer{FS: fs, node: n}
}

func (w *writer) Write(p []byte) (int, error) { return w.Buffer.Write(p) }

func (w *writer) Close() error {
	w.FS.Lock()
	defer w.FS.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	w.node.data = append(w.node.data, w.Bytes()...)
	w.node.modTime = time.Now()

	return nil
}
