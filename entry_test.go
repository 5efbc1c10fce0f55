package fsops_test

import (
	"testing"

	"lesiw.io/fsops"
)

func TestKindOfMode(t *testing.T) {
	tests := []struct {
		mode fsops.Mode
		want fsops.Kind
		ok   bool
	}{
		{0644, fsops.KindFile, true},
		{fsops.ModeDir | 0755, fsops.KindDirectory, true},
		{fsops.ModeSymlink | 0777, fsops.KindSymlink, true},
		{fsops.ModeNamedPipe, fsops.KindFifo, true},
		{fsops.ModeSocket, fsops.KindSocket, true},
		{fsops.ModeDevice, fsops.KindBlockDevice, true},
		{fsops.ModeDevice | fsops.ModeCharDevice, fsops.KindCharDevice, true},
		{fsops.ModeIrregular, 0, false},
	}
	for _, tt := range tests {
		got, ok := fsops.KindOfMode(tt.mode)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("KindOfMode(%v) = %v, %v, want %v, %v",
				tt.mode, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKindFollow(t *testing.T) {
	ctx := t.Context()
	x, _, _ := setup(t)
	write(t, x, "/dir/file", "")
	link := p("/link")
	if err := x.CreateSymlink(ctx, p("/dir"), link); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		caps []fsops.Capability
		want fsops.Kind
	}{
		{nil, fsops.KindSymlink},
		{[]fsops.Capability{fsops.NoFollowSymlinks}, fsops.KindSymlink},
		{[]fsops.Capability{fsops.FollowSymlinks}, fsops.KindDirectory},
	}
	for _, tt := range tests {
		e, err := x.Entry(ctx, link, tt.caps...)
		if err != nil {
			t.Fatalf("Entry(%s, %v): %v", link, tt.caps, err)
		}
		if e.Kind != tt.want {
			t.Errorf("Entry(%s, %v).Kind = %v, want %v",
				link, tt.caps, e.Kind, tt.want)
		}
	}

	dangling := p("/dangling")
	err := x.CreateSymlink(ctx, p("/nowhere"), dangling)
	if err != nil {
		t.Fatal(err)
	}
	if ok, _ := x.Exists(ctx, dangling); !ok {
		t.Errorf("Exists(%s) = false, want true", dangling)
	}
	if ok, _ := x.Exists(ctx, dangling, fsops.FollowSymlinks); ok {
		t.Errorf("Exists(%s, FollowSymlinks) = true, want false", dangling)
	}
}
