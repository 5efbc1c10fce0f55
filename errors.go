package fsops

import (
	"errors"
	"fmt"
	"io/fs"

	"lesiw.io/fsops/path"
)

// Generic file system errors.
// Errors returned by file systems can be tested against these errors
// using [errors.Is].
var (
	ErrInvalid     = fs.ErrInvalid
	ErrPermission  = fs.ErrPermission
	ErrExist       = fs.ErrExist
	ErrNotExist    = fs.ErrNotExist
	ErrClosed      = fs.ErrClosed
	ErrUnsupported = errors.ErrUnsupported

	ErrDirNotEmpty = errors.New("directory not empty")
	ErrNotDir      = errors.New("not a directory")
	ErrCycle       = errors.New("cycle detected")
	ErrCrossDevice = errors.New("cross-device link")
)

// PathError records an error and the native operation and file path that
// caused it. Filesystems return PathErrors; the executor wraps them in an
// [OpError].
type PathError = fs.PathError

// An Op is the kind of operation that failed.
type Op int

const (
	OpOpen Op = iota
	OpRead
	OpWrite
	OpDelete
	OpMetadata
	OpCreate
)

func (o Op) String() string {
	switch o {
	case OpOpen:
		return "open"
	case OpRead:
		return "read"
	case OpWrite:
		return "write"
	case OpDelete:
		return "delete"
	case OpMetadata:
		return "metadata"
	case OpCreate:
		return "create"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// A Reason classifies why an operation failed. The set is closed:
// every [OpError] carries exactly one of these values.
type Reason int

const (
	Unsupported Reason = iota
	Nonexistent
	AlreadyExists
	DirectoryNotEmpty
	PermissionDenied
	IsNotDirectory
	Cycle
)

func (r Reason) String() string {
	switch r {
	case Unsupported:
		return "unsupported"
	case Nonexistent:
		return "nonexistent"
	case AlreadyExists:
		return "already exists"
	case DirectoryNotEmpty:
		return "directory not empty"
	case PermissionDenied:
		return "permission denied"
	case IsNotDirectory:
		return "is not a directory"
	case Cycle:
		return "cycle"
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// sentinel returns the error that errors.Is matches for r.
func (r Reason) sentinel() error {
	switch r {
	case Nonexistent:
		return ErrNotExist
	case AlreadyExists:
		return ErrExist
	case DirectoryNotEmpty:
		return ErrDirNotEmpty
	case PermissionDenied:
		return ErrPermission
	case IsNotDirectory:
		return ErrNotDir
	case Cycle:
		return ErrCycle
	}
	return ErrUnsupported
}

// An OpError records a failed operation, the path it failed on and the
// classified reason.
//
// errors.Is(err, target) reports true when target is the sentinel for
// Reason (for example [ErrNotExist] for [Nonexistent]) or matches the
// underlying native error.
type OpError struct {
	Op     Op
	Path   path.Path
	Reason Reason
	Err    error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return e.Op.String() + " " + e.Path.String() + ": " +
			e.Reason.String()
	}
	return e.Op.String() + " " + e.Path.String() + ": " +
		e.Reason.String() + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error { return e.Err }

func (e *OpError) Is(target error) bool {
	return target == e.Reason.sentinel()
}

// translate is the single point where native errors become OpErrors.
// A nil err stays nil. An err that already is an *OpError is returned
// unchanged, so nested operations report the innermost failure.
func translate(op Op, p path.Path, err error) error {
	if err == nil {
		return nil
	}
	var oe *OpError
	if errors.As(err, &oe) {
		return err
	}
	if native := nativeSentinel(err); native != nil {
		err = fmt.Errorf("%w: %w", native, err)
	}
	return &OpError{Op: op, Path: p, Reason: reasonOf(err), Err: err}
}

// reasonOf classifies err. The more specific sentinels are checked first:
// several platforms report a non-empty directory as an "exists" error.
func reasonOf(err error) Reason {
	switch {
	case errors.Is(err, ErrCycle):
		return Cycle
	case errors.Is(err, ErrDirNotEmpty):
		return DirectoryNotEmpty
	case errors.Is(err, ErrNotDir):
		return IsNotDirectory
	case errors.Is(err, ErrCrossDevice):
		return Unsupported
	case errors.Is(err, ErrNotExist):
		return Nonexistent
	case errors.Is(err, ErrExist):
		return AlreadyExists
	case errors.Is(err, ErrPermission):
		return PermissionDenied
	}
	return Unsupported
}

func unsupported(op Op, p path.Path) error {
	return &OpError{Op: op, Path: p, Reason: Unsupported, Err: ErrUnsupported}
}
