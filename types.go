// Package fsops performs mutating filesystem operations under explicit,
// composable policies.
//
// Package fsops is built the way [io/fs] is: a minimal core interface,
// [FS], with every other native call discovered through optional
// interfaces. The operations themselves live on an [Executor], which
// combines typed paths from [lesiw.io/fsops/path] with a [Policy] and
// the filesystem's native calls.
//
//	x := fsops.New(osfs.New(), fsops.DefaultPolicy)
//	src := path.MustParse(path.Posix, "/srv/app/config.yaml")
//	dst := path.MustParse(path.Posix, "/backup/app/config.yaml")
//	err := x.Copy(ctx, src, dst, fsops.CreateParents)
//
// # Capabilities
//
// Every behavior that could otherwise be implicit is a [Capability]: a
// small, stateless value that answers one question.
//
//   - [CreateNonexistentParents] - create missing ancestors of the
//     destination first
//   - [OverwritePreexisting] - remove an existing destination, or fail
//     with [AlreadyExists] without touching anything
//   - [DeleteRecursively] - delete directory contents depth-first, or
//     fail with [DirectoryNotEmpty]
//   - [MoveAtomically] - require a single rename, or allow copy and
//     delete across volumes
//   - [DereferenceSymlinks] - act on a symlink's target instead of the
//     link
//   - [WriteSynchronously] - ask the host for durable writes
//
// An Executor carries a default Policy that is chosen explicitly when it
// is built. Each call may layer capabilities on top of it:
//
//	x.Delete(ctx, dir)                   // uses x's policy
//	x.Delete(ctx, dir, fsops.Recursive)  // this call only
//
// For operations that create or replace a destination, the guards always
// nest in the same order: parents are created first, then an existing
// destination is checked and cleared, then the native call runs with
// the remaining capabilities as flags. A precondition that fails (for
// example, an existing destination without [Overwrite]) fails before
// any native call that mutates the filesystem. Nothing is retried.
//
// # Errors
//
// Path text is validated when a [path.Path] is built, so malformed names
// never reach the filesystem. Operation failures are always *[OpError]
// values carrying the operation kind, the path and one [Reason] from a
// closed set. Native errors the executor does not recognize are reported
// as [Unsupported]; the native error stays available through Unwrap.
//
//	err := x.Delete(ctx, dir)
//	if errors.Is(err, fsops.ErrDirNotEmpty) {
//	    // dir still exists and is unchanged
//	}
//
// # Iteration
//
// [Executor.Children] and [Executor.Descendants] return range-over-func
// iterators. Entries are produced on demand, so breaking out of the loop
// stops the traversal. Nothing is cached: every call probes the
// filesystem again, and concurrent changes may or may not be observed.
//
// # Optional Interfaces
//
//   - [StatFS] - Query metadata, following symlinks
//   - [ReadLinkFS] - Read symlink targets and stat without following
//   - [KindFS] - Classify nodes from native mode bits
//   - [CreateFS] - Create or truncate files for writing
//   - [MkdirFS] - Create directories
//   - [RemoveFS] - Delete files and empty directories
//   - [RenameFS] - Move or rename nodes
//   - [SymlinkFS] - Create symbolic links
//   - [LinkFS] - Create hard links
//   - [LinkCountFS] - Count hard links
//   - [ReadDirFS] - List directory contents
//   - [FifoFS] - Create named pipes
//   - [SocketFS] - Create Unix domain sockets
//   - [VolumeFS] - Identify the volume backing a path
//
// Operations whose native calls are missing fail with [Unsupported].
//
// # Implementations
//
//   - [lesiw.io/fsops/osfs] - the host filesystem
//   - [lesiw.io/fsops/memfs] - an in-memory tree with simulated volumes
//   - [lesiw.io/fsops/billyfs] - any go-billy filesystem
//
// The [lesiw.io/fsops/fstest] package checks an implementation against
// the executor's contract.
package fsops

import (
	"context"
	"io"
	"io/fs"

	"lesiw.io/fsops/path"
)

// An FS is a filesystem. Open is its only required method.
type FS interface {
	// Open opens the named file for reading, following symlinks.
	Open(ctx context.Context, name path.Path) (io.ReadCloser, error)
}

// A FileInfo describes a file and is returned by [Executor.Stat].
type FileInfo = fs.FileInfo

// A DirEntry is an entry read from a directory.
type DirEntry = fs.DirEntry

// A Mode represents a file's mode and permission bits.
type Mode = fs.FileMode

// Valid values for [Mode].
//
//ignore:linelen
const (
	ModeDir        = fs.ModeDir        // d: is a directory
	ModeSymlink    = fs.ModeSymlink    // L: symbolic link
	ModeDevice     = fs.ModeDevice     // D: device file
	ModeNamedPipe  = fs.ModeNamedPipe  // p: named pipe (FIFO)
	ModeSocket     = fs.ModeSocket     // S: Unix domain socket
	ModeCharDevice = fs.ModeCharDevice // c: Unix character device, when ModeDevice is set
	ModeIrregular  = fs.ModeIrregular  // ?: non-regular file; nothing else is known about this file

	// Mask for the type bits. For regular files, none will be set.
	ModeType = fs.ModeType

	ModePerm = fs.ModePerm // Unix permission bits
)
