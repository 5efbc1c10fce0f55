package fstest

import (
	"context"
	"testing"

	"lesiw.io/fsops"
)

func testMove(ctx context.Context, t *testing.T, e env) {
	src := at(t, e.dir, "src")
	e.mkdir(ctx, t, src)
	e.write(ctx, t, at(t, src, "file.txt"), "moved")
	dst := at(t, e.dir, "dst")

	err := e.x.Move(ctx, src, dst)
	skipUnsupported(t, err, "Move")
	if err != nil {
		t.Fatalf("Move(%s, %s): %v", src, dst, err)
	}
	if e.exists(ctx, t, src) {
		t.Errorf("Exists(%s) = true after Move", src)
	}
	if got := e.read(ctx, t, at(t, dst, "file.txt")); got != "moved" {
		t.Errorf("dst/file.txt = %q, want %q", got, "moved")
	}

	if err := e.x.Move(ctx, dst, dst); err != nil {
		t.Errorf("Move onto itself: %v", err)
	}

	into := at(t, e.dir, "into")
	e.mkdir(ctx, t, into)
	if err := e.x.MoveInto(ctx, dst, into); err != nil {
		t.Fatalf("MoveInto(%s, %s): %v", dst, into, err)
	}
	if !e.exists(ctx, t, at(t, into, "dst", "file.txt")) {
		t.Errorf("MoveInto did not create into/dst/file.txt")
	}
}

func testMoveNoOverwrite(ctx context.Context, t *testing.T, e env) {
	src := at(t, e.dir, "src.txt")
	dst := at(t, e.dir, "dst.txt")
	e.write(ctx, t, src, "new")
	e.write(ctx, t, dst, "old")

	err := e.x.Move(ctx, src, dst)
	wantErr(t, "Move onto existing file", err, fsops.ErrExist)
	if got := e.read(ctx, t, dst); got != "old" {
		t.Errorf("ReadFile(%s) = %q after failed Move, want %q",
			dst, got, "old")
	}
	if !e.exists(ctx, t, src) {
		t.Errorf("failed Move removed %s", src)
	}

	if err := e.x.Move(ctx, src, dst, fsops.Overwrite); err != nil {
		t.Fatalf("Move(%s, %s, Overwrite): %v", src, dst, err)
	}
	if got := e.read(ctx, t, dst); got != "new" {
		t.Errorf("ReadFile(%s) = %q, want %q", dst, got, "new")
	}
}

func testMoveCycle(ctx context.Context, t *testing.T, e env) {
	src := at(t, e.dir, "src")
	e.mkdir(ctx, t, src)

	err := e.x.Move(ctx, src, at(t, src, "sub", "deeper"))
	wantErr(t, "Move into own subtree", err, fsops.ErrCycle)
	if !e.exists(ctx, t, src) {
		t.Errorf("failed Move removed %s", src)
	}

	inner := at(t, src, "inner")
	e.mkdir(ctx, t, inner)
	err = e.x.Move(ctx, inner, src, fsops.Overwrite, fsops.Recursive)
	wantErr(t, "Move onto own parent", err, fsops.ErrCycle)
	if !e.exists(ctx, t, inner) {
		t.Errorf("failed Move removed %s", inner)
	}
}
