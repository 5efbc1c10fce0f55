package memfs_test

import (
	"errors"
	"slices"
	"testing"

	"lesiw.io/fsops"
	"lesiw.io/fsops/fstest"
	"lesiw.io/fsops/memfs"
	"lesiw.io/fsops/path"
)

func TestFS(t *testing.T) {
	fstest.TestFS(t.Context(), t, memfs.New(), path.MustParse(path.Posix, "/"))
}

func TestFSWindows(t *testing.T) {
	c, err := path.DriveRoot('C')
	if err != nil {
		t.Fatal(err)
	}
	base := path.MustParse(path.Windows, `C:\`)
	fstest.TestFS(t.Context(), t, memfs.New(c), base)
}

func TestCaseInsensitive(t *testing.T) {
	c, err := path.DriveRoot('C')
	if err != nil {
		t.Fatal(err)
	}
	ctx := t.Context()
	x := fsops.New(memfs.New(c), fsops.DefaultPolicy)

	upper := path.MustParse(path.Windows, `C:\Data.TXT`)
	lower := path.MustParse(path.Windows, `c:\data.txt`)
	if err := x.WriteFile(ctx, upper, []byte("x")); err != nil {
		t.Fatalf("WriteFile(%s): %v", upper, err)
	}
	got, err := x.ReadFile(ctx, lower)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", lower, err)
	}
	if string(got) != "x" {
		t.Errorf("ReadFile(%s) = %q, want %q", lower, got, "x")
	}
	err = x.WriteFile(ctx, lower, []byte("y"))
	if !errors.Is(err, fsops.ErrExist) {
		t.Errorf("WriteFile(%s) err = %v, want ErrExist", lower, err)
	}
}

func TestMissingRoot(t *testing.T) {
	x := fsops.New(memfs.New(), fsops.DefaultPolicy)
	p := path.MustParse(path.Windows, `D:\file`)

	_, err := x.ReadFile(t.Context(), p)
	if !errors.Is(err, fsops.ErrNotExist) {
		t.Errorf("ReadFile(%s) err = %v, want ErrNotExist", p, err)
	}
}

func TestMount(t *testing.T) {
	ctx := t.Context()
	fsys := memfs.New()
	x := fsops.New(fsys, fsops.DefaultPolicy)
	mnt := path.MustParse(path.Posix, "/mnt")
	if err := x.CreateDirectory(ctx, mnt); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Mount(mnt, "disk1", "ext4"); err != nil {
		t.Fatalf("Mount(%s): %v", mnt, err)
	}

	inside := path.MustParse(path.Posix, "/mnt/file")
	if err := x.WriteFile(ctx, inside, nil); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		path path.Path
		want fsops.Volume
	}{
		{path.MustParse(path.Posix, "/"), fsops.Volume{
			Name: "mem:/", Type: "memfs",
		}},
		{mnt, fsops.Volume{Name: "disk1", Type: "ext4"}},
		{inside, fsops.Volume{Name: "disk1", Type: "ext4"}},
	}
	for _, tt := range tests {
		got, err := x.Volume(ctx, tt.path)
		if err != nil {
			t.Errorf("Volume(%s): %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Volume(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}

	err := fsys.Mount(mnt, "again", "ext4")
	if !errors.Is(err, fsops.ErrDirNotEmpty) {
		t.Errorf("Mount(%s) on non-empty dir err = %v, want ErrDirNotEmpty",
			mnt, err)
	}
}

func TestObserve(t *testing.T) {
	ctx := t.Context()
	fsys := memfs.New()
	x := fsops.New(fsys, fsops.DefaultPolicy)

	var ops []string
	fsys.Observe(func(op string, p path.Path) {
		ops = append(ops, op+" "+p.String())
	})

	dir := path.MustParse(path.Posix, "/d")
	file := path.MustParse(path.Posix, "/d/f")
	if err := x.CreateDirectory(ctx, dir); err != nil {
		t.Fatal(err)
	}
	if err := x.WriteFile(ctx, file, []byte("data")); err != nil {
		t.Fatal(err)
	}
	want := []string{"mkdir /d", "create /d/f"}
	if !slices.Equal(ops, want) {
		t.Errorf("observed %v, want %v", ops, want)
	}
}

func TestHardLink(t *testing.T) {
	ctx := t.Context()
	x := fsops.New(memfs.New(), fsops.DefaultPolicy)
	orig := path.MustParse(path.Posix, "/orig")
	link := path.MustParse(path.Posix, "/link")

	if err := x.WriteFile(ctx, orig, []byte("shared")); err != nil {
		t.Fatal(err)
	}
	if err := x.CreateHardLink(ctx, orig, link); err != nil {
		t.Fatalf("CreateHardLink(%s, %s): %v", orig, link, err)
	}
	n, err := x.HardLinkCount(ctx, orig)
	if err != nil {
		t.Fatalf("HardLinkCount(%s): %v", orig, err)
	}
	if n != 2 {
		t.Errorf("HardLinkCount(%s) = %d, want 2", orig, n)
	}
	if err := x.Delete(ctx, orig); err != nil {
		t.Fatal(err)
	}
	got, err := x.ReadFile(ctx, link)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", link, err)
	}
	if string(got) != "shared" {
		t.Errorf("ReadFile(%s) = %q, want %q", link, got, "shared")
	}
	if n, _ = x.HardLinkCount(ctx, link); n != 1 {
		t.Errorf("HardLinkCount(%s) = %d after Delete, want 1", link, n)
	}
}

func TestRenameOverHardLink(t *testing.T) {
	ctx := t.Context()
	m := memfs.New()
	x := fsops.New(m, fsops.DefaultPolicy)
	orig := path.MustParse(path.Posix, "/orig")
	link := path.MustParse(path.Posix, "/link")
	other := path.MustParse(path.Posix, "/other")

	for _, p := range []path.Path{orig, other} {
		if err := x.WriteFile(ctx, p, []byte(p.String())); err != nil {
			t.Fatal(err)
		}
	}
	if err := x.CreateHardLink(ctx, orig, link); err != nil {
		t.Fatalf("CreateHardLink(%s, %s): %v", orig, link, err)
	}
	if err := m.Rename(ctx, link, orig); err != nil {
		t.Fatalf("Rename(%s, %s): %v", link, orig, err)
	}
	if n, _ := x.HardLinkCount(ctx, orig); n != 2 {
		t.Errorf("HardLinkCount(%s) = %d after self rename, want 2",
			orig, n)
	}
	if err := m.Rename(ctx, other, link); err != nil {
		t.Fatalf("Rename(%s, %s): %v", other, link, err)
	}
	if n, _ := x.HardLinkCount(ctx, orig); n != 1 {
		t.Errorf("HardLinkCount(%s) = %d after replace, want 1", orig, n)
	}
	got, err := x.ReadFile(ctx, link)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", link, err)
	}
	if string(got) != "/other" {
		t.Errorf("ReadFile(%s) = %q, want %q", link, got, "/other")
	}
}

func TestWriterCloseTwice(t *testing.T) {
	ctx := t.Context()
	m := memfs.New()
	p := path.MustParse(path.Posix, "/f")

	w, err := m.Create(ctx, p, false)
	if err != nil {
		t.Fatalf("Create(%s): %v", p, err)
	}
	if _, err := w.Write([]byte("once")); err != nil {
		t.Fatal(err)
	}
	for range 2 {
		if err := w.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}
	got, err := fsops.New(m, fsops.DefaultPolicy).ReadFile(ctx, p)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", p, err)
	}
	if string(got) != "once" {
		t.Errorf("ReadFile(%s) = %q, want %q", p, got, "once")
	}
}

func TestSocket(t *testing.T) {
	ctx := t.Context()
	x := fsops.New(memfs.New(), fsops.DefaultPolicy)
	p := path.MustParse(path.Posix, "/sock")

	if err := x.CreateSocket(ctx, p); err != nil {
		t.Fatalf("CreateSocket(%s): %v", p, err)
	}
	k, err := x.Kind(ctx, p)
	if err != nil {
		t.Fatalf("Kind(%s): %v", p, err)
	}
	if k != fsops.KindSocket {
		t.Errorf("Kind(%s) = %v, want %v", p, k, fsops.KindSocket)
	}
}
