package osfs

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

var magics = map[uint32]string{
	unix.BTRFS_SUPER_MAGIC:     "btrfs",
	unix.EXT4_SUPER_MAGIC:      "ext4",
	unix.MSDOS_SUPER_MAGIC:     "vfat",
	unix.NFS_SUPER_MAGIC:       "nfs",
	unix.OVERLAYFS_SUPER_MAGIC: "overlay",
	unix.PROC_SUPER_MAGIC:      "proc",
	unix.RAMFS_MAGIC:           "ramfs",
	unix.SQUASHFS_MAGIC:        "squashfs",
	unix.SYSFS_MAGIC:           "sysfs",
	unix.TMPFS_MAGIC:           "tmpfs",
	unix.XFS_SUPER_MAGIC:       "xfs",
}

// Volume implements fsops.VolumeFS. The name is the major:minor device
// number and the type comes from the statfs magic number.
func (f *FS) Volume(
	_ context.Context, name path.Path,
) (fsops.Volume, error) {
	path, err := native("volume", name)
	if err != nil {
		return fsops.Volume{}, err
	}
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return fsops.Volume{}, &fsops.PathError{
			Op: "volume", Path: path, Err: err,
		}
	}
	var sfs unix.Statfs_t
	if err := unix.Statfs(path, &sfs); err != nil {
		return fsops.Volume{}, &fsops.PathError{
			Op: "volume", Path: path, Err: err,
		}
	}
	typ, ok := magics[uint32(sfs.Type)]
	if !ok {
		typ = fmt.Sprintf("%#x", sfs.Type)
	}
	dev := uint64(st.Dev)
	return fsops.Volume{
		Name: fmt.Sprintf("%d:%d", unix.Major(dev), unix.Minor(dev)),
		Type: typ,
	}, nil
}
