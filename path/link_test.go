package path

import (
	"errors"
	"testing"
)

func TestParseLink(t *testing.T) {
	tests := []struct {
		name     string
		platform Platform
		text     string
		ascent   int
		depth    int
	}{
		{"Empty", Posix, ".", 0, 0},
		{"Up", Posix, "..", 1, 0},
		{"UpUp", Posix, "../..", 2, 0},
		{"Down", Posix, "a/b", 0, 2},
		{"UpDown", Posix, "../../foo/bar", 2, 2},
		{"WindowsUpDown", Windows, `..\foo`, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := ParseLink(tt.platform, tt.text)
			if err != nil {
				t.Fatalf("ParseLink(%q) err: %v", tt.text, err)
			}
			if l.Ascent() != tt.ascent || len(l.Names()) != tt.depth {
				t.Errorf("ParseLink(%q) = ascent %d, depth %d; want %d, %d",
					tt.text, l.Ascent(), len(l.Names()), tt.ascent, tt.depth)
			}
			if l.String() != tt.text {
				t.Errorf("ParseLink(%q).String() = %q", tt.text, l)
			}
		})
	}
}

func TestParseLinkErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"Empty", "", ErrEmptySegment},
		{"Rooted", "/a", ErrInvalidRoot},
		{"DotInside", "a/./b", ErrReservedName},
		{"LeadingDot", "./a", ErrReservedName},
		{"UpAfterName", "a/../b", ErrReservedName},
		{"TrailingSep", "a/", ErrEmptySegment},
		{"DoubleSep", "../../a//b", ErrEmptySegment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseLink(Posix, tt.text); !errors.Is(err, tt.want) {
				t.Errorf("ParseLink(%q) err = %v, want %v", tt.text, err, tt.want)
			}
		})
	}
}

func TestNewLink(t *testing.T) {
	l := NewLink(Posix, 1, MustName(Posix, "x"))
	if l.String() != "../x" {
		t.Errorf("NewLink = %q, want ../x", l)
	}
	if !l.Equal(MustParseLink(Posix, "../x")) {
		t.Errorf("NewLink not equal to parsed link")
	}
	defer func() {
		if recover() == nil {
			t.Errorf("NewLink with negative ascent did not panic")
		}
	}()
	NewLink(Posix, -1)
}
