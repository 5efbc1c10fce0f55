package path

import (
	"errors"
	"fmt"
)

// Construction errors. They are reported before any filesystem access.
var (
	ErrEmptySegment       = errors.New("empty segment")
	ErrForbiddenCharacter = errors.New("forbidden character")
	ErrReservedName       = errors.New("reserved name")
	ErrInvalidRoot        = errors.New("invalid root")
)

// Resolution errors.
var (
	ErrRootEscape       = errors.New("link ascends past the root")
	ErrPlatformMismatch = errors.New("platform mismatch")
)

// SyntaxError records text that could not be parsed as a name, path or
// link.
type SyntaxError struct {
	Text    string // full input
	Segment string // offending segment, empty for root errors
	Err     error
}

func (e *SyntaxError) Error() string {
	if e.Segment != "" && e.Segment != e.Text {
		return fmt.Sprintf("path %q: segment %q: %v", e.Text, e.Segment, e.Err)
	}
	return fmt.Sprintf("path %q: %v", e.Text, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// ResolveError records a failure to apply a Link to a Path, or to relate
// two paths.
type ResolveError struct {
	Base Path
	Link Link
	Err  error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve %s against %s: %v", e.Link, e.Base, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }
