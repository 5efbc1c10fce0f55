package fstest

import (
	"context"
	"slices"
	"testing"

	"lesiw.io/fsops"
)

func testChildren(ctx context.Context, t *testing.T, e env) {
	for _, name := range []string{"c", "a", "b"} {
		e.write(ctx, t, at(t, e.dir, name), name)
	}
	e.mkdir(ctx, t, at(t, e.dir, "d", "nested"))

	var names []string
	for entry, err := range e.x.Children(ctx, e.dir) {
		skipUnsupported(t, err, "Children")
		if err != nil {
			t.Fatalf("Children(%s): %v", e.dir, err)
		}
		base, _ := entry.Path.Base()
		names = append(names, base.String())
		want := fsops.KindFile
		if base.String() == "d" {
			want = fsops.KindDirectory
		}
		if entry.Kind != want {
			t.Errorf("Children: %s kind = %v, want %v",
				entry.Path, entry.Kind, want)
		}
	}
	slices.Sort(names)
	if want := []string{"a", "b", "c", "d"}; !slices.Equal(names, want) {
		t.Errorf("Children(%s) = %v, want %v", e.dir, names, want)
	}
}

func testDescendants(ctx context.Context, t *testing.T, e env) {
	paths := tree(ctx, t, e)
	e.symlink(ctx, t, "a", at(t, paths[0], "loop"))

	seen := make(map[string]int)
	i := 0
	for entry, err := range e.x.Descendants(ctx, paths[0]) {
		skipUnsupported(t, err, "Descendants")
		if err != nil {
			t.Fatalf("Descendants(%s): %v", paths[0], err)
		}
		seen[entry.Path.Key()] = i
		i++
		if parent, ok := entry.Path.Parent(); ok && !parent.Equal(paths[0]) {
			pi, found := seen[parent.Key()]
			if !found || pi >= seen[entry.Path.Key()] {
				t.Errorf("Descendants: %s yielded before its parent",
					entry.Path)
			}
		}
	}
	for _, p := range paths[1:] {
		if _, ok := seen[p.Key()]; !ok {
			t.Errorf("Descendants(%s) missed %s", paths[0], p)
		}
	}
	// tree plus the symlink, which is not traversed
	if want := len(paths); len(seen) != want {
		t.Errorf("Descendants(%s) yielded %d entries, want %d",
			paths[0], len(seen), want)
	}
}

func testDescendantsBreak(ctx context.Context, t *testing.T, e env) {
	paths := tree(ctx, t, e)

	n := 0
	for _, err := range e.x.Descendants(ctx, paths[0]) {
		skipUnsupported(t, err, "Descendants")
		if err != nil {
			t.Fatalf("Descendants(%s): %v", paths[0], err)
		}
		n++
		break
	}
	if n != 1 {
		t.Errorf("Descendants(%s) yielded %d entries before break, want 1",
			paths[0], n)
	}
}
