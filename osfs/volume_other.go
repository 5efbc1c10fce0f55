//go:build !linux

package osfs

import (
	"context"
	"os"
	"path/filepath"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

// Volume implements fsops.VolumeFS. Without statfs magic numbers only
// the volume name is known: the drive on Windows and "/" elsewhere.
func (f *FS) Volume(
	_ context.Context, name path.Path,
) (fsops.Volume, error) {
	path, err := native("volume", name)
	if err != nil {
		return fsops.Volume{}, err
	}
	if _, err := os.Stat(path); err != nil {
		return fsops.Volume{}, err
	}
	vol := filepath.VolumeName(path)
	if vol == "" {
		vol = "/"
	}
	return fsops.Volume{Name: vol}, nil
}
