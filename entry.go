package fsops

import (
	"context"
	"fmt"

	"lesiw.io/fsops/path"
)

// A Kind classifies a filesystem node.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
	KindSymlink
	KindFifo
	KindSocket
	KindBlockDevice
	KindCharDevice
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	case KindFifo:
		return "fifo"
	case KindSocket:
		return "socket"
	case KindBlockDevice:
		return "block device"
	case KindCharDevice:
		return "char device"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// An Entry is a path together with the kind of node found there.
//
// An Entry is a snapshot: the node may be replaced, removed or changed
// into another kind the moment after it was classified. Query again
// before relying on Kind for anything destructive.
type Entry struct {
	Path path.Path
	Kind Kind
}

func (e Entry) String() string {
	return e.Kind.String() + " " + e.Path.String()
}

// A KindFS is a file system that classifies nodes from native metadata.
//
// Filesystems that do not implement KindFS are classified from the type
// bits of [FileInfo.Mode].
type KindFS interface {
	FS

	// Kind classifies the node at name. When follow is true and name is
	// a symlink, the symlink's target is classified instead.
	Kind(ctx context.Context, name path.Path, follow bool) (Kind, error)
}

// KindOfMode classifies the type bits of m. It returns false for
// [ModeIrregular] and other bit patterns it cannot name.
func KindOfMode(m Mode) (Kind, bool) {
	switch t := m.Type(); {
	case t == 0:
		return KindFile, true
	case t&ModeDir != 0:
		return KindDirectory, true
	case t&ModeSymlink != 0:
		return KindSymlink, true
	case t&ModeNamedPipe != 0:
		return KindFifo, true
	case t&ModeSocket != 0:
		return KindSocket, true
	case t&ModeCharDevice != 0:
		return KindCharDevice, true
	case t&ModeDevice != 0:
		return KindBlockDevice, true
	}
	return 0, false
}

// Kind classifies the node at p. A symlink is reported as [KindSymlink]
// unless the call's policy has [FollowSymlinks].
//
// Requires: [KindFS] || [ReadLinkFS] || [StatFS]
func (x *Executor) Kind(
	ctx context.Context, p path.Path, caps ...Capability,
) (Kind, error) {
	pol := x.policyFor(caps)
	k, err := x.kind(ctx, p, bool(pol.Dereference))
	return k, translate(OpMetadata, p, err)
}

// Entry returns the entry at p, classified as by [Executor.Kind].
func (x *Executor) Entry(
	ctx context.Context, p path.Path, caps ...Capability,
) (Entry, error) {
	k, err := x.Kind(ctx, p, caps...)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Path: p, Kind: k}, nil
}

func (x *Executor) kind(
	ctx context.Context, p path.Path, follow bool,
) (Kind, error) {
	if kfs, ok := x.fsys.(KindFS); ok {
		return kfs.Kind(ctx, p, follow)
	}
	info, err := x.statFollow(ctx, p, follow)
	if err != nil {
		return 0, err
	}
	k, ok := KindOfMode(info.Mode())
	if !ok {
		return 0, fmt.Errorf("%w: mode %v", ErrUnsupported, info.Mode())
	}
	return k, nil
}
