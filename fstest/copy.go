package fstest

import (
	"context"
	"testing"

	"lesiw.io/fsops"
)

func testCopyParents(ctx context.Context, t *testing.T, e env) {
	src := at(t, e.dir, "src.txt")
	e.write(ctx, t, src, "payload")
	missing := at(t, e.dir, "x")
	dst := at(t, missing, "y", "dst.txt")

	err := e.x.Copy(ctx, src, dst)
	wantErr(t, "Copy without parents", err, fsops.ErrNotExist)
	if e.exists(ctx, t, missing) {
		t.Fatalf("Copy without parents created %s", missing)
	}

	if err := e.x.Copy(ctx, src, dst, fsops.CreateParents); err != nil {
		t.Fatalf("Copy(%s, %s, CreateParents): %v", src, dst, err)
	}
	if got := e.read(ctx, t, dst); got != "payload" {
		t.Errorf("ReadFile(%s) = %q, want %q", dst, got, "payload")
	}
	if got := e.read(ctx, t, src); got != "payload" {
		t.Errorf("ReadFile(%s) = %q after Copy, want %q",
			src, got, "payload")
	}
}

func testCopyNoOverwrite(ctx context.Context, t *testing.T, e env) {
	src := at(t, e.dir, "src.txt")
	dst := at(t, e.dir, "dst.txt")
	e.write(ctx, t, src, "new")
	e.write(ctx, t, dst, "old")

	err := e.x.Copy(ctx, src, dst)
	wantErr(t, "Copy onto existing file", err, fsops.ErrExist)
	if got := e.read(ctx, t, dst); got != "old" {
		t.Errorf("ReadFile(%s) = %q after failed Copy, want %q",
			dst, got, "old")
	}
	if k := e.kind(ctx, t, dst); k != fsops.KindFile {
		t.Errorf("Kind(%s) = %v after failed Copy, want %v",
			dst, k, fsops.KindFile)
	}
}

func testCopyOverwrite(ctx context.Context, t *testing.T, e env) {
	src := at(t, e.dir, "src.txt")
	dst := at(t, e.dir, "dst")
	e.write(ctx, t, src, "new")
	e.mkdir(ctx, t, dst)
	e.write(ctx, t, at(t, dst, "inner.txt"), "")

	err := e.x.Copy(ctx, src, dst, fsops.Overwrite)
	wantErr(t, "Copy over non-empty directory", err, fsops.ErrDirNotEmpty)

	err = e.x.Copy(ctx, src, dst, fsops.Overwrite, fsops.Recursive)
	if err != nil {
		t.Fatalf("Copy(%s, %s, Overwrite, Recursive): %v", src, dst, err)
	}
	if got := e.read(ctx, t, dst); got != "new" {
		t.Errorf("ReadFile(%s) = %q, want %q", dst, got, "new")
	}
}

func testCopyTree(ctx context.Context, t *testing.T, e env) {
	src := at(t, e.dir, "src")
	e.mkdir(ctx, t, at(t, src, "a", "b"))
	e.write(ctx, t, at(t, src, "top.txt"), "top")
	e.write(ctx, t, at(t, src, "a", "b", "deep.txt"), "deep")

	dst := at(t, e.dir, "dst")
	if err := e.x.Copy(ctx, src, dst); err != nil {
		t.Fatalf("Copy(%s, %s): %v", src, dst, err)
	}
	if got := e.read(ctx, t, at(t, dst, "top.txt")); got != "top" {
		t.Errorf("dst/top.txt = %q, want %q", got, "top")
	}
	deep := at(t, dst, "a", "b", "deep.txt")
	if got := e.read(ctx, t, deep); got != "deep" {
		t.Errorf("dst/a/b/deep.txt = %q, want %q", got, "deep")
	}

	into := at(t, e.dir, "into")
	e.mkdir(ctx, t, into)
	if err := e.x.CopyInto(ctx, src, into); err != nil {
		t.Fatalf("CopyInto(%s, %s): %v", src, into, err)
	}
	if !e.exists(ctx, t, at(t, into, "src", "top.txt")) {
		t.Errorf("CopyInto(%s, %s) did not create into/src/top.txt",
			src, into)
	}
}

func testCopyCycle(ctx context.Context, t *testing.T, e env) {
	src := at(t, e.dir, "src")
	e.mkdir(ctx, t, src)

	err := e.x.Copy(ctx, src, at(t, src, "sub"))
	wantErr(t, "Copy into own subtree", err, fsops.ErrCycle)
	err = e.x.Copy(ctx, src, src)
	wantErr(t, "Copy onto itself", err, fsops.ErrCycle)
	if e.exists(ctx, t, at(t, src, "sub")) {
		t.Errorf("Copy into own subtree created %s/sub", src)
	}

	inner := at(t, src, "inner")
	e.mkdir(ctx, t, inner)
	err = e.x.Copy(ctx, inner, src, fsops.Overwrite, fsops.Recursive)
	wantErr(t, "Copy onto own parent", err, fsops.ErrCycle)
	if !e.exists(ctx, t, inner) {
		t.Errorf("failed Copy removed %s", inner)
	}
}
