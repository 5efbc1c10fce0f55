package billyfs_test

import (
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"

	"lesiw.io/fsops"
	"lesiw.io/fsops/billyfs"
	"lesiw.io/fsops/fstest"
	"lesiw.io/fsops/path"
)

var root = path.MustParse(path.Posix, "/")

func TestMemory(t *testing.T) {
	fstest.TestFS(t.Context(), t, billyfs.NewMemory(), root)
}

func TestLocal(t *testing.T) {
	fstest.TestFS(t.Context(), t, billyfs.NewLocal(t.TempDir()), root)
}

func TestSharedFilesystem(t *testing.T) {
	bfs := memfs.New()
	if err := util.WriteFile(bfs, "/repo/README", []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}
	x := fsops.New(billyfs.New(bfs), fsops.DefaultPolicy)
	ctx := t.Context()

	src := path.MustParse(path.Posix, "/repo/README")
	dst := path.MustParse(path.Posix, "/repo/README.md")
	if err := x.Move(ctx, src, dst); err != nil {
		t.Fatalf("Move(%s, %s): %v", src, dst, err)
	}
	got, err := util.ReadFile(bfs, "/repo/README.md")
	if err != nil {
		t.Fatalf("billy ReadFile: %v", err)
	}
	if string(got) != "hi" {
		t.Errorf("billy ReadFile = %q, want %q", got, "hi")
	}
}

func TestMkdirNeedsParent(t *testing.T) {
	x := fsops.New(billyfs.NewMemory(), fsops.DefaultPolicy)
	p := path.MustParse(path.Posix, "/a/b")

	err := x.CreateDirectory(t.Context(), p)
	if !errors.Is(err, fsops.ErrNotExist) {
		t.Errorf("CreateDirectory(%s) err = %v, want ErrNotExist", p, err)
	}
}

func TestUnsupported(t *testing.T) {
	ctx := t.Context()
	x := fsops.New(billyfs.NewMemory(), fsops.DefaultPolicy)
	a := path.MustParse(path.Posix, "/a")
	b := path.MustParse(path.Posix, "/b")
	if err := x.WriteFile(ctx, a, nil); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		err  error
	}{
		{"CreateHardLink", x.CreateHardLink(ctx, a, b)},
		{"CreateFifo", x.CreateFifo(ctx, b)},
		{"CreateSocket", x.CreateSocket(ctx, b)},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, fsops.ErrUnsupported) {
			t.Errorf("%s err = %v, want ErrUnsupported", tt.name, tt.err)
		}
	}
}

func TestWindowsPath(t *testing.T) {
	x := fsops.New(billyfs.NewMemory(), fsops.DefaultPolicy)
	p := path.MustParse(path.Windows, `C:\file`)

	_, err := x.ReadFile(t.Context(), p)
	if !errors.Is(err, fsops.ErrInvalid) {
		t.Errorf("ReadFile(%s) err = %v, want ErrInvalid", p, err)
	}
}
