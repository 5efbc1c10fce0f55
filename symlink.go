package fsops

import (
	"context"
	"strings"

	"lesiw.io/fsops/path"
)

// A SymlinkFS is a file system with the Symlink method.
type SymlinkFS interface {
	FS

	// Symlink creates newname as a symbolic link to the target text
	// oldname. The target is stored as given and is not checked.
	Symlink(ctx context.Context, oldname string, newname path.Path) error
}

// A ReadLinkFS is a file system with the ReadLink and Lstat methods.
type ReadLinkFS interface {
	FS

	// ReadLink returns the target text of the named symbolic link.
	// If the link destination is relative, ReadLink returns the relative
	// text without resolving it.
	ReadLink(ctx context.Context, name path.Path) (string, error)

	// Lstat returns FileInfo describing the named file.
	// If the file is a symbolic link, the returned FileInfo
	// describes the symbolic link. Lstat makes no attempt to follow
	// the link.
	Lstat(ctx context.Context, name path.Path) (FileInfo, error)
}

// A Target is the destination of a symbolic link: either an absolute
// [path.Path] or a [path.Link] relative to the directory that holds the
// symlink.
type Target struct {
	abs   path.Path
	rel   path.Link
	isAbs bool
}

// AbsTarget returns a target that names p.
func AbsTarget(p path.Path) Target { return Target{abs: p, isAbs: true} }

// RelTarget returns a target relative to the symlink's directory.
func RelTarget(l path.Link) Target { return Target{rel: l} }

// IsAbs reports whether t is absolute.
func (t Target) IsAbs() bool { return t.isAbs }

// Path returns the absolute target. It returns false for a relative
// target.
func (t Target) Path() (path.Path, bool) { return t.abs, t.isAbs }

// Link returns the relative target. It returns false for an absolute
// target.
func (t Target) Link() (path.Link, bool) { return t.rel, !t.isAbs }

// Platform returns the platform the target was built for.
func (t Target) Platform() path.Platform {
	if t.isAbs {
		return t.abs.Platform()
	}
	return t.rel.Platform()
}

// Resolve returns the path t points to from a symlink at link.
func (t Target) Resolve(link path.Path) (path.Path, error) {
	if t.isAbs {
		if t.abs.Platform() != link.Platform() {
			return path.Path{}, &path.ResolveError{
				Base: link, Err: path.ErrPlatformMismatch,
			}
		}
		return t.abs, nil
	}
	dir, _ := link.Parent()
	return dir.Resolve(t.rel)
}

// String returns the target text stored in the symlink.
func (t Target) String() string {
	if t.isAbs {
		return t.abs.String()
	}
	return t.rel.String()
}

// ParseTarget parses symlink target text for platform p. Absolute text
// must parse as a [path.Path]. Relative text is normalized lexically
// first: "." and empty segments are dropped and ".." cancels the name
// before it.
func ParseTarget(p path.Platform, s string) (Target, error) {
	if _, _, err := path.ParseRoot(p, s); err == nil {
		abs, err := path.Parse(p, s)
		if err != nil {
			return Target{}, err
		}
		return AbsTarget(abs), nil
	}
	l, err := path.ParseLink(p, normalizeLink(p, s))
	if err != nil {
		return Target{}, err
	}
	return RelTarget(l), nil
}

func normalizeLink(p path.Platform, s string) string {
	sep := string(p.Separator())
	var out []string
	for tok := range strings.SplitSeq(s, sep) {
		switch {
		case tok == "" || tok == ".":
		case tok == ".." && len(out) > 0 && out[len(out)-1] != "..":
			out = out[:len(out)-1]
		default:
			out = append(out, tok)
		}
	}
	if len(out) == 0 {
		return "."
	}
	return strings.Join(out, sep)
}

// CreateSymlink creates a symlink at link pointing to the absolute path
// target. The target need not exist.
// Analogous to: [os.Symlink], ln -s.
//
// Requires: [SymlinkFS]
func (x *Executor) CreateSymlink(
	ctx context.Context, target, link path.Path, caps ...Capability,
) error {
	return x.createSymlink(ctx, AbsTarget(target), link, caps)
}

// CreateRelativeSymlink creates a symlink at link whose target is
// stored as the relative text of target.
//
// Requires: [SymlinkFS]
func (x *Executor) CreateRelativeSymlink(
	ctx context.Context, target path.Link, link path.Path,
	caps ...Capability,
) error {
	return x.createSymlink(ctx, RelTarget(target), link, caps)
}

func (x *Executor) createSymlink(
	ctx context.Context, t Target, link path.Path, caps []Capability,
) error {
	if t.Platform() != link.Platform() {
		return translate(OpCreate, link, path.ErrPlatformMismatch)
	}
	pol := x.policyFor(caps)
	return x.mutate(ctx, pol, OpCreate, link, func() error {
		return translate(OpCreate, link, x.symlink(ctx, t.String(), link))
	})
}

// ReadLink returns the target of the symlink at p.
// Analogous to: [os.Readlink], readlink.
//
// Requires: [ReadLinkFS]
func (x *Executor) ReadLink(
	ctx context.Context, p path.Path,
) (Target, error) {
	t, err := x.readLink(ctx, p)
	return t, translate(OpMetadata, p, err)
}

func (x *Executor) readLink(
	ctx context.Context, p path.Path,
) (Target, error) {
	s, err := x.readLinkText(ctx, p)
	if err != nil {
		return Target{}, err
	}
	return ParseTarget(p.Platform(), s)
}

func (x *Executor) readLinkText(
	ctx context.Context, p path.Path,
) (string, error) {
	if rfs, ok := x.fsys.(ReadLinkFS); ok {
		return rfs.ReadLink(ctx, p)
	}
	return "", ErrUnsupported
}

func (x *Executor) symlink(
	ctx context.Context, target string, link path.Path,
) error {
	if sfs, ok := x.fsys.(SymlinkFS); ok {
		return sfs.Symlink(ctx, target, link)
	}
	return ErrUnsupported
}
