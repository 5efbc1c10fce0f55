// Package cli implements the fsops command.
package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lesiw.io/fsops"
	"lesiw.io/fsops/internal/config"
	"lesiw.io/fsops/internal/logging"
	"lesiw.io/fsops/osfs"
	"lesiw.io/fsops/path"
)

// Deps are the command's external dependencies.
type Deps struct {
	// FS is the filesystem to operate on. If nil, the host filesystem
	// is used and external commands it runs are logged.
	FS fsops.FS
	// Platform is the path platform of FS. It is ignored when FS is nil.
	Platform path.Platform
	// Getwd returns the directory relative paths are resolved against.
	Getwd func() (string, error)

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// HostDeps returns the dependencies of a command run from a shell.
func HostDeps() Deps {
	return Deps{
		Getwd:  os.Getwd,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

type app struct {
	deps Deps

	configFile string
	logLevel   string
	logFormat  string

	parents     bool
	force       bool
	recursive   bool
	atomic      bool
	dereference bool
	sync        bool

	logger *slog.Logger
	x      *fsops.Executor
	cwd    path.Path
	owned  fsops.FS
}

// Execute runs the command line args.
func Execute(ctx context.Context, deps Deps, args []string) error {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	a := &app{deps: deps}
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(deps.Stdin)
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)
	err := cmd.ExecuteContext(ctx)
	if a.owned != nil {
		err = errors.Join(err, fsops.Close(a.owned))
	}
	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fsops",
		Short: "Policy-driven filesystem operations",
		Long: `fsops copies, moves, deletes and creates filesystem nodes.

Every flag selects one capability of the operation. Defaults come from
the configuration file; flags given on the command line override it.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		// the caller prints errors
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	f := root.PersistentFlags()
	f.StringVar(&a.configFile, "config", "", "configuration file")
	f.StringVar(&a.logLevel, "log-level", "", "log level")
	f.StringVar(&a.logFormat, "log-format", "", "log format (text, json)")
	f.BoolVarP(&a.parents, "parents", "p", false,
		"create missing parent directories")
	f.BoolVarP(&a.force, "force", "f", false,
		"overwrite existing destinations")
	f.BoolVarP(&a.recursive, "recursive", "r", false,
		"operate on directories recursively")
	f.BoolVar(&a.atomic, "atomic", false,
		"fail instead of copying when a move cannot be a rename")
	f.BoolVarP(&a.dereference, "dereference", "L", false,
		"follow symlinks")
	f.BoolVar(&a.sync, "sync", false, "write files synchronously")

	root.AddCommand(
		a.copyCmd(),
		a.moveCmd(),
		a.removeCmd(),
		a.wipeCmd(),
		a.mkdirCmd(),
		a.mkfileCmd(),
		a.linkCmd(),
		a.mkfifoCmd(),
		a.mksockCmd(),
		a.statCmd(),
		a.listCmd(),
		a.readlinkCmd(),
		a.realpathCmd(),
		a.catCmd(),
		a.writeCmd(),
	)
	return root
}

// setup loads the configuration, applies flag overrides and builds the
// executor.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	a.logger, err = cfg.Logger(logging.Options{Output: a.deps.Stderr})
	if err != nil {
		return err
	}

	pol := cfg.ExecutorPolicy()
	if flags.Changed("parents") {
		pol.CreateParents = fsops.CreateNonexistentParents(a.parents)
	}
	if flags.Changed("force") {
		pol.Overwrite = fsops.OverwritePreexisting(a.force)
	}
	if flags.Changed("recursive") {
		pol.Recurse = fsops.DeleteRecursively(a.recursive)
	}
	if flags.Changed("atomic") {
		pol.Atomic = fsops.MoveAtomically(a.atomic)
	}
	if flags.Changed("dereference") {
		pol.Dereference = fsops.DereferenceSymlinks(a.dereference)
	}
	if flags.Changed("sync") {
		pol.Sync = fsops.WriteSynchronously(a.sync)
	}

	fsys, platform := a.deps.FS, a.deps.Platform
	if fsys == nil {
		sink := fsops.LogSink{Logger: a.logger}
		fsys, platform = osfs.New(osfs.WithEventSink(sink)), path.Host()
		a.owned = fsys
	}
	a.x = fsops.New(fsys, pol)

	getwd := a.deps.Getwd
	if getwd == nil {
		getwd = os.Getwd
	}
	wd, err := getwd()
	if err != nil {
		return err
	}
	if a.cwd, err = path.Parse(platform, wd); err != nil {
		return err
	}
	a.logger.Debug("ready", "cwd", a.cwd.String(), "policy", pol)
	return nil
}

// path parses a command-line path. Relative text is resolved against
// the working directory; trailing separators and leading "./" are
// ignored.
func (a *app) path(s string) (path.Path, error) {
	platform := a.cwd.Platform()
	sep := string(platform.Separator())
	if _, rest, err := path.ParseRoot(platform, s); err == nil {
		prefix := s[:len(s)-len(rest)]
		return path.Parse(platform, prefix+strings.TrimRight(rest, sep))
	}
	for strings.HasPrefix(s, "."+sep) {
		s = strings.TrimLeft(s[1:], sep)
	}
	if s == "" {
		return a.cwd, nil
	}
	l, err := path.ParseLink(platform, strings.TrimRight(s, sep))
	if err != nil {
		return path.Path{}, err
	}
	return a.cwd.Resolve(l)
}

func (a *app) paths(args []string) ([]path.Path, error) {
	ps := make([]path.Path, 0, len(args))
	for _, arg := range args {
		p, err := a.path(arg)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}
