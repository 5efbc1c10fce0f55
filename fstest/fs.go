// Package fstest runs a compliance suite against fsops backends.
package fstest

import (
	"context"
	"errors"
	"testing"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

// TestFS runs the compliance suite against fsys.
//
// base must name an existing, empty, writable directory on fsys. Every
// subtest works in its own directory below base and removes it when it
// finishes. Subtests that need a capability fsys lacks are skipped.
//
// Typical usage:
//
//	func TestMyFS(t *testing.T) {
//	    fsys := createBlankFS(t)
//	    base := path.MustParse(path.Posix, "/")
//	    fstest.TestFS(t.Context(), t, fsys, base)
//	}
func TestFS(
	ctx context.Context, t *testing.T, fsys fsops.FS, base path.Path,
) {
	t.Helper()
	x := fsops.New(fsys, fsops.DefaultPolicy)

	run := func(name string, fn func(context.Context, *testing.T, env)) {
		t.Run(name, func(t *testing.T) {
			fn(ctx, t, env{x: x, dir: scratch(ctx, t, x, base, name)})
		})
	}

	// Files and directories
	run("CreateFile", testCreateFile)
	run("WriteFile", testWriteFile)
	run("CreateDirectory", testCreateDirectory)
	run("Kind", testKind)

	// Policies
	run("CopyParents", testCopyParents)
	run("CopyNoOverwrite", testCopyNoOverwrite)
	run("CopyOverwrite", testCopyOverwrite)
	run("CopyTree", testCopyTree)
	run("CopyCycle", testCopyCycle)
	run("Move", testMove)
	run("MoveNoOverwrite", testMoveNoOverwrite)
	run("MoveCycle", testMoveCycle)
	run("DeleteNonEmpty", testDeleteNonEmpty)
	run("DeleteRecursive", testDeleteRecursive)
	run("Wipe", testWipe)

	// Symlinks
	run("Symlink", testSymlink)
	run("CopySymlink", testCopySymlink)
	run("RealPath", testRealPath)
	run("RealPathCycle", testRealPathCycle)

	// Listing
	run("Children", testChildren)
	run("Descendants", testDescendants)
	run("DescendantsBreak", testDescendantsBreak)

	// Special files
	run("Fifo", testFifo)
}

type env struct {
	x   *fsops.Executor
	dir path.Path
}

// scratch creates base/name and removes it when t finishes.
func scratch(
	ctx context.Context, t *testing.T, x *fsops.Executor,
	base path.Path, name string,
) path.Path {
	t.Helper()
	dir := at(t, base, name)
	err := x.CreateDirectory(ctx, dir)
	skipUnsupported(t, err, "CreateDirectory")
	if err != nil {
		t.Fatalf("CreateDirectory(%s): %v", dir, err)
	}
	t.Cleanup(func() {
		if werr := x.Wipe(ctx, dir); werr != nil {
			t.Errorf("cleanup: Wipe(%s): %v", dir, werr)
		}
	})
	return dir
}

// at joins names onto p.
func at(t *testing.T, p path.Path, names ...string) path.Path {
	t.Helper()
	for _, n := range names {
		var err error
		if p, err = p.ChildText(n); err != nil {
			t.Fatalf("ChildText(%q): %v", n, err)
		}
	}
	return p
}

func skipUnsupported(t *testing.T, err error, what string) {
	t.Helper()
	if errors.Is(err, fsops.ErrUnsupported) {
		t.Skipf("%s not supported: %v", what, err)
	}
}

func (e env) write(
	ctx context.Context, t *testing.T, p path.Path, data string,
) {
	t.Helper()
	err := e.x.WriteFile(ctx, p, []byte(data))
	skipUnsupported(t, err, "WriteFile")
	if err != nil {
		t.Fatalf("WriteFile(%s): %v", p, err)
	}
}

func (e env) read(ctx context.Context, t *testing.T, p path.Path) string {
	t.Helper()
	data, err := e.x.ReadFile(ctx, p)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", p, err)
	}
	return string(data)
}

func (e env) mkdir(ctx context.Context, t *testing.T, p path.Path) {
	t.Helper()
	err := e.x.CreateDirectory(ctx, p, fsops.CreateParents)
	if err != nil {
		t.Fatalf("CreateDirectory(%s): %v", p, err)
	}
}

func (e env) exists(ctx context.Context, t *testing.T, p path.Path) bool {
	t.Helper()
	ok, err := e.x.Exists(ctx, p)
	skipUnsupported(t, err, "Exists")
	if err != nil {
		t.Fatalf("Exists(%s): %v", p, err)
	}
	return ok
}

func (e env) kind(
	ctx context.Context, t *testing.T, p path.Path,
	caps ...fsops.Capability,
) fsops.Kind {
	t.Helper()
	k, err := e.x.Kind(ctx, p, caps...)
	skipUnsupported(t, err, "Kind")
	if err != nil {
		t.Fatalf("Kind(%s): %v", p, err)
	}
	return k
}

func wantErr(t *testing.T, call string, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("%s: err = %v, want %v", call, err, target)
	}
}
