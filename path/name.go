package path

import (
	"runtime"
	"strings"
)

// Platform selects the naming rules, root grammar and separator applied to
// a path.
type Platform int

const (
	// Posix paths have a single root "/" and use '/' as the separator.
	// Names are compared case-sensitively.
	Posix Platform = iota

	// Windows paths are rooted at a drive ("C:\") and use '\' as the
	// separator. Names are compared case-insensitively.
	Windows
)

// Host returns the platform of the running operating system.
func Host() Platform {
	if runtime.GOOS == "windows" {
		return Windows
	}
	return Posix
}

// String returns "posix" or "windows".
func (p Platform) String() string {
	switch p {
	case Posix:
		return "posix"
	case Windows:
		return "windows"
	}
	return "unknown"
}

// Separator returns the byte that separates names on the platform.
func (p Platform) Separator() byte {
	if p == Windows {
		return '\\'
	}
	return '/'
}

// CaseSensitive reports whether names on the platform compare
// case-sensitively.
func (p Platform) CaseSensitive() bool {
	return p != Windows
}

// A Name is a single validated path segment. It is never empty, never
// "." or "..", and never contains a character the platform forbids.
//
// The zero Name is not valid; Names are obtained from [NewName] or by
// parsing a [Path] or [Link].
type Name struct {
	s string
}

// NewName validates s against the platform's rules.
//
// The returned error is a *[SyntaxError] wrapping [ErrEmptySegment],
// [ErrReservedName] or [ErrForbiddenCharacter].
func NewName(p Platform, s string) (Name, error) {
	if err := p.validate(s); err != nil {
		return Name{}, &SyntaxError{Text: s, Segment: s, Err: err}
	}
	return Name{s: s}, nil
}

// MustName is like [NewName] but panics if s is not a valid name.
func MustName(p Platform, s string) Name {
	n, err := NewName(p, s)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the name as it was written.
func (n Name) String() string { return n.s }

// IsZero reports whether n is the zero Name.
func (n Name) IsZero() bool { return n.s == "" }

func (p Platform) validate(s string) error {
	switch s {
	case "":
		return ErrEmptySegment
	case ".", "..":
		return ErrReservedName
	}
	if p == Windows {
		return validateWindows(s)
	}
	return validatePosix(s)
}

func validatePosix(s string) error {
	for i := range len(s) {
		if c := s[i]; c == '/' || isControl(c) {
			return ErrForbiddenCharacter
		}
	}
	return nil
}

// windowsReserved holds the device names Windows refuses as file names,
// with or without an extension.
var windowsReserved = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

const windowsForbidden = `:<>/\|?"*`

func validateWindows(s string) error {
	for i := range len(s) {
		c := s[i]
		if isControl(c) || strings.IndexByte(windowsForbidden, c) >= 0 {
			return ErrForbiddenCharacter
		}
	}
	base := s
	if i := strings.IndexByte(s, '.'); i >= 0 {
		base = s[:i]
	}
	if windowsReserved[strings.ToUpper(base)] {
		return ErrReservedName
	}
	return nil
}

func isControl(c byte) bool { return c < 0x20 || c == 0x7f }

func equalName(p Platform, a, b Name) bool {
	if p.CaseSensitive() {
		return a.s == b.s
	}
	return strings.EqualFold(a.s, b.s)
}
