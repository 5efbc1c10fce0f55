package fstest

import (
	"context"
	"testing"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

func (e env) symlink(
	ctx context.Context, t *testing.T, target string, link path.Path,
) {
	t.Helper()
	l, err := path.ParseLink(link.Platform(), target)
	if err != nil {
		t.Fatalf("ParseLink(%q): %v", target, err)
	}
	err = e.x.CreateRelativeSymlink(ctx, l, link)
	skipUnsupported(t, err, "CreateRelativeSymlink")
	if err != nil {
		t.Fatalf("CreateRelativeSymlink(%s, %s): %v", l, link, err)
	}
}

func testSymlink(ctx context.Context, t *testing.T, e env) {
	target := at(t, e.dir, "target.txt")
	link := at(t, e.dir, "link")
	e.write(ctx, t, target, "through")
	e.symlink(ctx, t, "target.txt", link)

	got, err := e.x.ReadLink(ctx, link)
	if err != nil {
		t.Fatalf("ReadLink(%s): %v", link, err)
	}
	if rel, ok := got.Link(); !ok || rel.String() != "target.txt" {
		t.Errorf("ReadLink(%s) = %v, want target.txt", link, got)
	}
	resolved, err := got.Resolve(link)
	if err != nil {
		t.Fatalf("Target.Resolve(%s): %v", link, err)
	}
	if !resolved.Equal(target) {
		t.Errorf("Target.Resolve(%s) = %s, want %s", link, resolved, target)
	}

	if k := e.kind(ctx, t, link); k != fsops.KindSymlink {
		t.Errorf("Kind(%s) = %v, want %v", link, k, fsops.KindSymlink)
	}
	k := e.kind(ctx, t, link, fsops.FollowSymlinks)
	if k != fsops.KindFile {
		t.Errorf("Kind(%s, FollowSymlinks) = %v, want %v",
			link, k, fsops.KindFile)
	}
	if data := e.read(ctx, t, link); data != "through" {
		t.Errorf("ReadFile(%s) = %q, want %q", link, data, "through")
	}

	err = e.x.CreateSymlink(ctx, target, link)
	wantErr(t, "CreateSymlink on existing link", err, fsops.ErrExist)

	if err := e.x.Delete(ctx, link); err != nil {
		t.Fatalf("Delete(%s): %v", link, err)
	}
	if e.exists(ctx, t, link) {
		t.Errorf("Exists(%s) = true after Delete", link)
	}
	if !e.exists(ctx, t, target) {
		t.Errorf("Delete(%s) removed the link target", link)
	}
}

func testCopySymlink(ctx context.Context, t *testing.T, e env) {
	target := at(t, e.dir, "target.txt")
	link := at(t, e.dir, "link")
	e.write(ctx, t, target, "content")
	e.symlink(ctx, t, "target.txt", link)

	plain := at(t, e.dir, "plain")
	if err := e.x.Copy(ctx, link, plain); err != nil {
		t.Fatalf("Copy(%s, %s): %v", link, plain, err)
	}
	if k := e.kind(ctx, t, plain); k != fsops.KindSymlink {
		t.Errorf("Kind(%s) = %v, want %v", plain, k, fsops.KindSymlink)
	}
	got, err := e.x.ReadLink(ctx, plain)
	if err != nil {
		t.Fatalf("ReadLink(%s): %v", plain, err)
	}
	if got.String() != "target.txt" {
		t.Errorf("ReadLink(%s) = %v, want target.txt", plain, got)
	}

	deref := at(t, e.dir, "deref")
	err = e.x.Copy(ctx, link, deref, fsops.FollowSymlinks)
	if err != nil {
		t.Fatalf("Copy(%s, %s, FollowSymlinks): %v", link, deref, err)
	}
	if k := e.kind(ctx, t, deref); k != fsops.KindFile {
		t.Errorf("Kind(%s) = %v, want %v", deref, k, fsops.KindFile)
	}
	if data := e.read(ctx, t, deref); data != "content" {
		t.Errorf("ReadFile(%s) = %q, want %q", deref, data, "content")
	}
}

func testRealPath(ctx context.Context, t *testing.T, e env) {
	dir := at(t, e.dir, "real")
	e.mkdir(ctx, t, dir)
	e.write(ctx, t, at(t, dir, "file.txt"), "")
	e.symlink(ctx, t, "real", at(t, e.dir, "alias"))

	base, err := e.x.RealPath(ctx, e.dir)
	skipUnsupported(t, err, "RealPath")
	if err != nil {
		t.Fatalf("RealPath(%s): %v", e.dir, err)
	}
	p := at(t, e.dir, "alias", "file.txt")
	got, err := e.x.RealPath(ctx, p)
	if err != nil {
		t.Fatalf("RealPath(%s): %v", p, err)
	}
	if want := at(t, base, "real", "file.txt"); !got.Equal(want) {
		t.Errorf("RealPath(%s) = %s, want %s", p, got, want)
	}
}

func testRealPathCycle(ctx context.Context, t *testing.T, e env) {
	e.symlink(ctx, t, "b", at(t, e.dir, "a"))
	e.symlink(ctx, t, "a", at(t, e.dir, "b"))

	_, err := e.x.RealPath(ctx, at(t, e.dir, "a"))
	skipUnsupported(t, err, "RealPath")
	wantErr(t, "RealPath on symlink loop", err, fsops.ErrCycle)
}
