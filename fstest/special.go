package fstest

import (
	"context"
	"testing"

	"lesiw.io/fsops"
)

func testFifo(ctx context.Context, t *testing.T, e env) {
	p := at(t, e.dir, "pipe")
	err := e.x.CreateFifo(ctx, p)
	skipUnsupported(t, err, "CreateFifo")
	if err != nil {
		t.Fatalf("CreateFifo(%s): %v", p, err)
	}
	if k := e.kind(ctx, t, p); k != fsops.KindFifo {
		t.Errorf("Kind(%s) = %v, want %v", p, k, fsops.KindFifo)
	}

	err = e.x.CreateFifo(ctx, p)
	wantErr(t, "CreateFifo on existing path", err, fsops.ErrExist)

	if err := e.x.Delete(ctx, p); err != nil {
		t.Fatalf("Delete(%s): %v", p, err)
	}
}
