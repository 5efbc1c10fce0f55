package fsops_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"lesiw.io/fsops"
	"lesiw.io/fsops/memfs"
	"lesiw.io/fsops/path"
)

func TestOpErrorIs(t *testing.T) {
	tests := []struct {
		reason fsops.Reason
		want   error
	}{
		{fsops.Nonexistent, fsops.ErrNotExist},
		{fsops.AlreadyExists, fsops.ErrExist},
		{fsops.DirectoryNotEmpty, fsops.ErrDirNotEmpty},
		{fsops.PermissionDenied, fsops.ErrPermission},
		{fsops.IsNotDirectory, fsops.ErrNotDir},
		{fsops.Cycle, fsops.ErrCycle},
		{fsops.Unsupported, fsops.ErrUnsupported},
	}
	for _, tt := range tests {
		err := &fsops.OpError{
			Op:     fsops.OpWrite,
			Path:   path.MustParse(path.Posix, "/x"),
			Reason: tt.reason,
		}
		if !errors.Is(err, tt.want) {
			t.Errorf("errors.Is(%v, %v) = false, want true", err, tt.want)
		}
		for _, other := range tests {
			if other.reason != tt.reason && errors.Is(err, other.want) {
				t.Errorf("errors.Is(%v, %v) = true, want false",
					err, other.want)
			}
		}
	}
}

func TestOpErrorUnwrap(t *testing.T) {
	cause := &fsops.PathError{
		Op: "remove", Path: "/x", Err: fsops.ErrDirNotEmpty,
	}
	err := error(&fsops.OpError{
		Op:     fsops.OpDelete,
		Path:   path.MustParse(path.Posix, "/x"),
		Reason: fsops.DirectoryNotEmpty,
		Err:    cause,
	})

	var pe *fsops.PathError
	if !errors.As(err, &pe) || pe != cause {
		t.Errorf("errors.As(%v, *PathError) did not find the cause", err)
	}
	want := "delete /x: directory not empty: remove /x: directory not empty"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestTranslateKeepsInnermost(t *testing.T) {
	ctx := t.Context()
	x := fsops.New(memfs.New(), fsops.DefaultPolicy)
	src := path.MustParse(path.Posix, "/src")
	if err := x.CreateDirectory(ctx, src); err != nil {
		t.Fatal(err)
	}
	if err := x.CreateFile(ctx, path.MustParse(path.Posix, "/blocker")); err != nil {
		t.Fatal(err)
	}

	// The nested mkdir fails on the file in the way; Copy reports that
	// path rather than its own destination.
	deep := path.MustParse(path.Posix, "/blocker/dst")
	err := x.Copy(ctx, src, deep, fsops.CreateParents)
	var oe *fsops.OpError
	if !errors.As(err, &oe) {
		t.Fatalf("Copy err = %v, want *OpError", err)
	}
	if oe.Reason != fsops.IsNotDirectory {
		t.Errorf("Reason = %v, want %v", oe.Reason, fsops.IsNotDirectory)
	}
	if !oe.Path.Equal(path.MustParse(path.Posix, "/blocker")) {
		t.Errorf("Path = %s, want /blocker", oe.Path)
	}
}

// failing is an FS whose Open always fails with err.
type failing struct{ err error }

func (f failing) Open(
	_ context.Context, name path.Path,
) (io.ReadCloser, error) {
	return nil, &fsops.PathError{Op: "open", Path: name.String(), Err: f.err}
}

func TestUnknownErrorIsUnsupported(t *testing.T) {
	ctx := t.Context()
	boom := errors.New("boom")
	x := fsops.New(failing{boom}, fsops.DefaultPolicy)
	p := path.MustParse(path.Posix, "/f")

	_, err := x.ReadFile(ctx, p)
	var oe *fsops.OpError
	if !errors.As(err, &oe) {
		t.Fatalf("ReadFile err = %v, want *OpError", err)
	}
	if oe.Reason != fsops.Unsupported {
		t.Errorf("Reason = %v, want %v", oe.Reason, fsops.Unsupported)
	}
	if oe.Op != fsops.OpOpen {
		t.Errorf("Op = %v, want %v", oe.Op, fsops.OpOpen)
	}
	if !errors.Is(err, boom) {
		t.Errorf("errors.Is(%v, boom) = false, want true", err)
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		got  fmt.Stringer
		want string
	}{
		{fsops.OpMetadata, "metadata"},
		{fsops.Op(42), "Op(42)"},
		{fsops.AlreadyExists, "already exists"},
		{fsops.Reason(42), "Reason(42)"},
		{fsops.KindCharDevice, "char device"},
		{fsops.Kind(42), "Kind(42)"},
		{fsops.Volume{Name: "8:1", Type: "ext4"}, "8:1 (ext4)"},
		{fsops.Volume{Name: "C:"}, "C:"},
		{fsops.Entry{
			Path: path.MustParse(path.Posix, "/a"),
			Kind: fsops.KindDirectory,
		}, "directory /a"},
	}
	for _, tt := range tests {
		if got := tt.got.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
