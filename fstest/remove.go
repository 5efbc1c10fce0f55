package fstest

import (
	"context"
	"testing"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

func tree(ctx context.Context, t *testing.T, e env) []path.Path {
	root := at(t, e.dir, "tree")
	paths := []path.Path{
		root,
		at(t, root, "a"),
		at(t, root, "a", "b"),
		at(t, root, "a", "b", "file.txt"),
		at(t, root, "a", "sibling.txt"),
		at(t, root, "top.txt"),
	}
	e.mkdir(ctx, t, paths[2])
	for _, p := range []path.Path{paths[3], paths[4], paths[5]} {
		e.write(ctx, t, p, p.String())
	}
	return paths
}

func testDeleteNonEmpty(ctx context.Context, t *testing.T, e env) {
	paths := tree(ctx, t, e)

	err := e.x.Delete(ctx, paths[0])
	wantErr(t, "Delete non-empty directory", err, fsops.ErrDirNotEmpty)
	for _, p := range paths {
		if !e.exists(ctx, t, p) {
			t.Errorf("Exists(%s) = false after failed Delete", p)
		}
	}
}

func testDeleteRecursive(ctx context.Context, t *testing.T, e env) {
	paths := tree(ctx, t, e)

	if err := e.x.Delete(ctx, paths[0], fsops.Recursive); err != nil {
		t.Fatalf("Delete(%s, Recursive): %v", paths[0], err)
	}
	for _, p := range paths {
		if e.exists(ctx, t, p) {
			t.Errorf("Exists(%s) = true after recursive Delete", p)
		}
	}

	err := e.x.Delete(ctx, paths[0])
	wantErr(t, "Delete missing path", err, fsops.ErrNotExist)
}

func testWipe(ctx context.Context, t *testing.T, e env) {
	paths := tree(ctx, t, e)

	if err := e.x.Wipe(ctx, paths[0]); err != nil {
		t.Fatalf("Wipe(%s): %v", paths[0], err)
	}
	if e.exists(ctx, t, paths[0]) {
		t.Errorf("Exists(%s) = true after Wipe", paths[0])
	}
	if err := e.x.Wipe(ctx, paths[0]); err != nil {
		t.Errorf("Wipe(%s) on missing path: %v", paths[0], err)
	}
}
