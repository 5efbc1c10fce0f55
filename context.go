package fsops

import "context"

// modeKey indexes the creation modes carried by a context.
type modeKey int

const (
	dirModeKey modeKey = iota
	fileModeKey
)

var defaultModes = [...]Mode{
	dirModeKey:  0755,
	fileModeKey: 0644,
}

// WithDirMode returns a context that carries a directory mode. Directories
// created by CreateDirectory, or as missing parents under CreateParents,
// use this mode. Without one, directories are created 0755.
func WithDirMode(ctx context.Context, mode Mode) context.Context {
	return context.WithValue(ctx, dirModeKey, mode)
}

// WithFileMode returns a context that carries a file mode. Files, named
// pipes and sockets created by an Executor use this mode; copied files
// keep the mode of their source. Without one, files are created 0644.
func WithFileMode(ctx context.Context, mode Mode) context.Context {
	return context.WithValue(ctx, fileModeKey, mode)
}

// DirMode returns the directory mode carried by ctx.
func DirMode(ctx context.Context) Mode { return modeOf(ctx, dirModeKey) }

// FileMode returns the file mode carried by ctx.
func FileMode(ctx context.Context) Mode { return modeOf(ctx, fileModeKey) }

func modeOf(ctx context.Context, k modeKey) Mode {
	if mode, ok := ctx.Value(k).(Mode); ok {
		return mode
	}
	return defaultModes[k]
}
