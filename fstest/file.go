package fstest

import (
	"context"
	"io"
	"testing"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

func testCreateFile(ctx context.Context, t *testing.T, e env) {
	p := at(t, e.dir, "empty.txt")

	err := e.x.CreateFile(ctx, p)
	skipUnsupported(t, err, "CreateFile")
	if err != nil {
		t.Fatalf("CreateFile(%s): %v", p, err)
	}
	if got := e.read(ctx, t, p); got != "" {
		t.Errorf("ReadFile(%s) = %q, want empty", p, got)
	}

	err = e.x.CreateFile(ctx, p)
	wantErr(t, "CreateFile on existing file", err, fsops.ErrExist)

	missing := at(t, e.dir, "missing", "file.txt")
	err = e.x.CreateFile(ctx, missing)
	wantErr(t, "CreateFile without parent", err, fsops.ErrNotExist)
	if e.exists(ctx, t, at(t, e.dir, "missing")) {
		t.Errorf("CreateFile without parent created the parent")
	}

	err = e.x.CreateFile(ctx, missing, fsops.CreateParents)
	if err != nil {
		t.Fatalf("CreateFile(%s, CreateParents): %v", missing, err)
	}
	if !e.exists(ctx, t, missing) {
		t.Errorf("Exists(%s) = false after CreateFile", missing)
	}
}

func testWriteFile(ctx context.Context, t *testing.T, e env) {
	p := at(t, e.dir, "data.txt")
	e.write(ctx, t, p, "hello")
	if got := e.read(ctx, t, p); got != "hello" {
		t.Errorf("ReadFile(%s) = %q, want %q", p, got, "hello")
	}

	err := e.x.WriteFile(ctx, p, []byte("bye"))
	wantErr(t, "WriteFile on existing file", err, fsops.ErrExist)
	if got := e.read(ctx, t, p); got != "hello" {
		t.Errorf("ReadFile(%s) = %q after failed write, want %q",
			p, got, "hello")
	}

	err = e.x.WriteFile(ctx, p, []byte("bye"), fsops.Overwrite)
	if err != nil {
		t.Fatalf("WriteFile(%s, Overwrite): %v", p, err)
	}
	if got := e.read(ctx, t, p); got != "bye" {
		t.Errorf("ReadFile(%s) = %q, want %q", p, got, "bye")
	}

	var got []byte
	err = e.x.WithReader(ctx, p, func(r io.Reader) error {
		var rerr error
		got, rerr = io.ReadAll(r)
		return rerr
	})
	if err != nil {
		t.Fatalf("WithReader(%s): %v", p, err)
	}
	if string(got) != "bye" {
		t.Errorf("WithReader(%s) read %q, want %q", p, got, "bye")
	}
}

func testCreateDirectory(ctx context.Context, t *testing.T, e env) {
	p := at(t, e.dir, "sub")
	err := e.x.CreateDirectory(ctx, p)
	if err != nil {
		t.Fatalf("CreateDirectory(%s): %v", p, err)
	}
	if k := e.kind(ctx, t, p); k != fsops.KindDirectory {
		t.Errorf("Kind(%s) = %v, want %v", p, k, fsops.KindDirectory)
	}

	err = e.x.CreateDirectory(ctx, p)
	wantErr(t, "CreateDirectory on existing directory", err, fsops.ErrExist)

	deep := at(t, e.dir, "a", "b", "c")
	err = e.x.CreateDirectory(ctx, deep)
	wantErr(t, "CreateDirectory without parent", err, fsops.ErrNotExist)

	e.mkdir(ctx, t, deep)
	if k := e.kind(ctx, t, deep); k != fsops.KindDirectory {
		t.Errorf("Kind(%s) = %v, want %v", deep, k, fsops.KindDirectory)
	}
}

func testKind(ctx context.Context, t *testing.T, e env) {
	file := at(t, e.dir, "file")
	e.write(ctx, t, file, "x")

	tests := []struct {
		path path.Path
		want fsops.Kind
	}{
		{file, fsops.KindFile},
		{e.dir, fsops.KindDirectory},
	}
	for _, tt := range tests {
		if got := e.kind(ctx, t, tt.path); got != tt.want {
			t.Errorf("Kind(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}

	_, err := e.x.Kind(ctx, at(t, e.dir, "nope"))
	wantErr(t, "Kind on missing path", err, fsops.ErrNotExist)

	entry, err := e.x.Entry(ctx, file)
	if err != nil {
		t.Fatalf("Entry(%s): %v", file, err)
	}
	if !entry.Path.Equal(file) || entry.Kind != fsops.KindFile {
		t.Errorf("Entry(%s) = %v, want file entry", file, entry)
	}
}
