// Package path implements typed, validated filesystem paths for POSIX and
// Windows platforms.
//
// Unlike string paths, a [Path] can only be produced from text that is
// well formed for its platform, so invalid names are reported when the
// value is built rather than when a file operation fails:
//
//	p, err := path.Parse(path.Posix, "/var/log/app")
//	q, err := path.Parse(path.Windows, `C:\Users\foo`)
//
// A Path is a [Root] plus an ordered list of [Name] segments. A [Link] is
// an unanchored relative reference, an ascent count followed by names,
// that can be resolved against any Path:
//
//	l, _ := path.ParseLink(path.Posix, "../../etc/hosts")
//	r, err := p.Resolve(l) // "/var/etc/hosts"
//
// Resolving a Link that ascends further than the base is deep is an
// [ErrRootEscape] error; there is no clamping at the root.
//
// Parsing is strict. Rendering a parsed value with String returns exactly
// the parsed text, so the two operations are inverses. Redundant
// separators, trailing separators, "." and ".." are rejected rather than
// cleaned.
//
// All operations are purely lexical. They never access the filesystem.
package path

import (
	"slices"
	"strings"
)

// A Root is the anchor of an absolute path on one platform.
//
// The zero Root is the POSIX root "/".
type Root struct {
	platform Platform
	drive    byte
}

// PosixRoot is the single root of POSIX filesystems.
var PosixRoot = Root{platform: Posix}

// DriveRoot returns the Windows root for a drive letter. The letter's case
// is kept for rendering but ignored when comparing roots.
func DriveRoot(letter byte) (Root, error) {
	if !isLetter(letter) {
		return Root{}, &SyntaxError{
			Text: string(letter) + `:\`, Err: ErrInvalidRoot,
		}
	}
	return Root{platform: Windows, drive: letter}, nil
}

// Platform returns the platform the root belongs to.
func (r Root) Platform() Platform { return r.platform }

// Separator returns the platform separator.
func (r Root) Separator() byte { return r.platform.Separator() }

// CaseSensitive reports whether paths under r compare case-sensitively.
func (r Root) CaseSensitive() bool { return r.platform.CaseSensitive() }

// Drive returns the drive letter for Windows roots and 0 otherwise.
func (r Root) Drive() byte { return r.drive }

// Prefix returns the rendered root: "/" or "C:\".
func (r Root) Prefix() string {
	if r.platform == Windows {
		return string([]byte{r.drive, ':', '\\'})
	}
	return "/"
}

// String returns r.Prefix().
func (r Root) String() string { return r.Prefix() }

// Equal reports whether r and o denote the same root.
func (r Root) Equal(o Root) bool {
	if r.platform != o.platform {
		return false
	}
	return upper(r.drive) == upper(o.drive)
}

// ParseRoot strips the platform's root prefix from s. It returns the root
// and the remaining text.
func ParseRoot(p Platform, s string) (Root, string, error) {
	switch p {
	case Posix:
		if strings.HasPrefix(s, "/") {
			return PosixRoot, s[1:], nil
		}
	case Windows:
		if len(s) >= 3 && isLetter(s[0]) && s[1] == ':' && s[2] == '\\' {
			return Root{platform: Windows, drive: s[0]}, s[3:], nil
		}
	}
	return Root{}, "", &SyntaxError{Text: s, Err: ErrInvalidRoot}
}

// A Path is an absolute path: a Root followed by zero or more names from
// outermost to innermost. Path values are immutable; every method that
// derives a new Path allocates its own name list.
//
// The zero Path is the POSIX root.
type Path struct {
	root  Root
	names []Name
}

// New returns the path root/names[0]/names[1]/...
func New(root Root, names ...Name) Path {
	return Path{root: root, names: slices.Clone(names)}
}

// Parse parses absolute path text for platform p.
//
// The text must be the root prefix followed by names joined with the
// platform separator. An empty segment (a doubled or trailing separator)
// fails with [ErrEmptySegment]; other invalid segments fail as in
// [NewName]. A missing or malformed prefix fails with [ErrInvalidRoot].
func Parse(p Platform, s string) (Path, error) {
	root, rest, err := ParseRoot(p, s)
	if err != nil {
		return Path{}, err
	}
	if rest == "" {
		return Path{root: root}, nil
	}
	names, err := parseNames(p, s, rest)
	if err != nil {
		return Path{}, err
	}
	return Path{root: root, names: names}, nil
}

// MustParse is like [Parse] but panics if s cannot be parsed.
func MustParse(p Platform, s string) Path {
	path, err := Parse(p, s)
	if err != nil {
		panic(err)
	}
	return path
}

func parseNames(p Platform, text, rest string) ([]Name, error) {
	tokens := strings.Split(rest, string(p.Separator()))
	names := make([]Name, 0, len(tokens))
	for _, tok := range tokens {
		if err := p.validate(tok); err != nil {
			return nil, &SyntaxError{Text: text, Segment: tok, Err: err}
		}
		names = append(names, Name{s: tok})
	}
	return names, nil
}

// Root returns the path's root.
func (p Path) Root() Root { return p.root }

// Platform returns the platform of the path's root.
func (p Path) Platform() Platform { return p.root.platform }

// Names returns a copy of the path's names, outermost first.
func (p Path) Names() []Name { return slices.Clone(p.names) }

// Depth returns the number of names below the root.
func (p Path) Depth() int { return len(p.names) }

// IsRoot reports whether p has no names.
func (p Path) IsRoot() bool { return len(p.names) == 0 }

// Base returns the last name. It returns false for a root.
func (p Path) Base() (Name, bool) {
	if len(p.names) == 0 {
		return Name{}, false
	}
	return p.names[len(p.names)-1], true
}

// Parent returns p without its last name. It returns false for a root.
func (p Path) Parent() (Path, bool) {
	if len(p.names) == 0 {
		return p, false
	}
	return New(p.root, p.names[:len(p.names)-1]...), true
}

// Child returns p with name appended.
func (p Path) Child(name Name) Path {
	return p.Join(name)
}

// Join returns p with names appended.
func (p Path) Join(names ...Name) Path {
	return Path{root: p.root, names: slices.Concat(p.names, names)}
}

// ChildText validates s as a name for p's platform and appends it.
func (p Path) ChildText(s string) (Path, error) {
	n, err := NewName(p.Platform(), s)
	if err != nil {
		return Path{}, err
	}
	return p.Child(n), nil
}

// Resolve applies l to p: it drops l.Ascent() names from the end of p and
// appends l's names. It fails with [ErrRootEscape] when l ascends past the
// root and with [ErrPlatformMismatch] when l was parsed for another
// platform. The root never changes.
func (p Path) Resolve(l Link) (Path, error) {
	if l.platform != p.root.platform {
		return Path{}, &ResolveError{
			Base: p, Link: l, Err: ErrPlatformMismatch,
		}
	}
	if l.ascent > len(p.names) {
		return Path{}, &ResolveError{Base: p, Link: l, Err: ErrRootEscape}
	}
	kept := p.names[:len(p.names)-l.ascent]
	return Path{root: p.root, names: slices.Concat(kept, l.names)}, nil
}

// Rel returns the Link that leads from p to target, so that
// p.Resolve(p.Rel(target)) equals target. Both paths must share a root.
func (p Path) Rel(target Path) (Link, error) {
	if !p.root.Equal(target.root) {
		return Link{}, &ResolveError{
			Base: p,
			Link: Link{platform: target.Platform()},
			Err:  ErrPlatformMismatch,
		}
	}
	i := p.commonDepth(target)
	return Link{
		platform: p.root.platform,
		ascent:   len(p.names) - i,
		names:    slices.Clone(target.names[i:]),
	}, nil
}

// HasPrefix reports whether prefix is p or one of p's ancestors.
func (p Path) HasPrefix(prefix Path) bool {
	if !p.root.Equal(prefix.root) || len(prefix.names) > len(p.names) {
		return false
	}
	return p.commonDepth(prefix) == len(prefix.names)
}

func (p Path) commonDepth(q Path) int {
	n := min(len(p.names), len(q.names))
	for i := range n {
		if !equalName(p.root.platform, p.names[i], q.names[i]) {
			return i
		}
	}
	return n
}

// Equal reports whether p and q denote the same path. Names are compared
// with the case sensitivity of the platform.
func (p Path) Equal(q Path) bool {
	return len(p.names) == len(q.names) && p.HasPrefix(q)
}

// String renders the path: the root prefix followed by the names joined
// with the platform separator.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString(p.root.Prefix())
	sep := p.root.Separator()
	for i, n := range p.names {
		if i > 0 {
			b.WriteByte(sep)
		}
		b.WriteString(n.s)
	}
	return b.String()
}

// Key returns a string that is equal for equal paths. It folds case on
// case-insensitive platforms and is suitable as a map key.
func (p Path) Key() string {
	if p.root.CaseSensitive() {
		return p.String()
	}
	return strings.ToUpper(p.String())
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
