package path

import (
	"slices"
	"strings"
)

// A Link is a relative reference: a number of parent steps followed by
// names. It has no root of its own and is applied to a base with
// [Path.Resolve].
//
// Links render as "../../foo/bar" (or "..\..\foo\bar" on Windows). The
// empty link renders as ".".
type Link struct {
	platform Platform
	ascent   int
	names    []Name
}

// NewLink returns the link with the given ascent and names.
// It panics if ascent is negative.
func NewLink(p Platform, ascent int, names ...Name) Link {
	if ascent < 0 {
		panic("path: negative link ascent")
	}
	return Link{platform: p, ascent: ascent, names: slices.Clone(names)}
}

// ParseLink parses relative link text for platform p.
//
// The grammar is zero or more ".." segments followed by zero or more
// names, joined with the platform separator. The text "." denotes the
// empty link. A ".." after a name, a "." segment, an empty segment and
// rooted text are all rejected.
func ParseLink(p Platform, s string) (Link, error) {
	if s == "." {
		return Link{platform: p}, nil
	}
	if s == "" {
		return Link{}, &SyntaxError{Text: s, Err: ErrEmptySegment}
	}
	if _, _, err := ParseRoot(p, s); err == nil {
		return Link{}, &SyntaxError{Text: s, Err: ErrInvalidRoot}
	}
	l := Link{platform: p}
	tokens := strings.Split(s, string(p.Separator()))
	for _, tok := range tokens {
		if tok == ".." && len(l.names) == 0 {
			l.ascent++
			continue
		}
		if err := p.validate(tok); err != nil {
			return Link{}, &SyntaxError{Text: s, Segment: tok, Err: err}
		}
		l.names = append(l.names, Name{s: tok})
	}
	return l, nil
}

// MustParseLink is like [ParseLink] but panics if s cannot be parsed.
func MustParseLink(p Platform, s string) Link {
	l, err := ParseLink(p, s)
	if err != nil {
		panic(err)
	}
	return l
}

// Platform returns the platform the link was built for.
func (l Link) Platform() Platform { return l.platform }

// Ascent returns the number of parent steps.
func (l Link) Ascent() int { return l.ascent }

// Names returns a copy of the descent names.
func (l Link) Names() []Name { return slices.Clone(l.names) }

// IsEmpty reports whether the link neither ascends nor descends.
func (l Link) IsEmpty() bool { return l.ascent == 0 && len(l.names) == 0 }

// Equal reports whether l and o are the same link.
func (l Link) Equal(o Link) bool {
	if l.platform != o.platform || l.ascent != o.ascent ||
		len(l.names) != len(o.names) {
		return false
	}
	for i := range l.names {
		if !equalName(l.platform, l.names[i], o.names[i]) {
			return false
		}
	}
	return true
}

// String renders the link with the platform separator.
func (l Link) String() string {
	if l.IsEmpty() {
		return "."
	}
	parts := make([]string, 0, l.ascent+len(l.names))
	for range l.ascent {
		parts = append(parts, "..")
	}
	for _, n := range l.names {
		parts = append(parts, n.s)
	}
	return strings.Join(parts, string(l.platform.Separator()))
}
