package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lesiw.io/fsops"
	"lesiw.io/fsops/path"
)

func (a *app) copyCmd() *cobra.Command {
	var noTarget bool
	cmd := &cobra.Command{
		Use:   "cp SOURCE... DEST",
		Short: "Copy files and directories",
		Long: `Copy SOURCE to DEST, or each SOURCE into the directory DEST.

Directories are copied recursively. Symlinks are copied as symlinks
unless --dereference is given.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transfer(cmd, args, noTarget, a.x.Copy, a.x.CopyInto)
		},
	}
	cmd.Flags().BoolVarP(&noTarget, "no-target-directory", "T", false,
		"treat DEST as a normal file")
	return cmd
}

func (a *app) moveCmd() *cobra.Command {
	var noTarget bool
	cmd := &cobra.Command{
		Use:     "mv SOURCE... DEST",
		Aliases: []string{"move"},
		Short:   "Move files and directories",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transfer(cmd, args, noTarget, a.x.Move, a.x.MoveInto)
		},
	}
	cmd.Flags().BoolVarP(&noTarget, "no-target-directory", "T", false,
		"treat DEST as a normal file")
	return cmd
}

type transferFunc func(
	ctx context.Context, src, dst path.Path, caps ...fsops.Capability,
) error

// transfer runs to for a single source and a destination that is not a
// directory, and into otherwise.
func (a *app) transfer(
	cmd *cobra.Command, args []string, noTarget bool, to, into transferFunc,
) error {
	ctx := cmd.Context()
	ps, err := a.paths(args)
	if err != nil {
		return err
	}
	srcs, dst := ps[:len(ps)-1], ps[len(ps)-1]
	if noTarget {
		if len(srcs) > 1 {
			return fmt.Errorf("extra operand %s", args[1])
		}
		a.trace(ctx, cmd.Name(), srcs[0], dst)
		return to(ctx, srcs[0], dst)
	}
	k, err := a.x.Kind(ctx, dst, fsops.FollowSymlinks)
	isDir := err == nil && k == fsops.KindDirectory
	if err != nil && !errors.Is(err, fsops.ErrNotExist) {
		return err
	}
	if len(srcs) > 1 && !isDir {
		return fmt.Errorf("target %s is not a directory", dst)
	}
	for _, src := range srcs {
		a.trace(ctx, cmd.Name(), src, dst)
		if isDir {
			err = into(ctx, src, dst)
		} else {
			err = to(ctx, src, dst)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *app) trace(ctx context.Context, op string, src, dst path.Path) {
	a.logger.DebugContext(ctx, op,
		"src", src.String(),
		"dst", dst.String(),
	)
}

// each runs fn on every argument, stopping at the first error.
func (a *app) each(
	fn func(ctx context.Context, p path.Path) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ps, err := a.paths(args)
		if err != nil {
			return err
		}
		for _, p := range ps {
			a.logger.DebugContext(cmd.Context(), cmd.Name(),
				"path", p.String())
			if err := fn(cmd.Context(), p); err != nil {
				return err
			}
		}
		return nil
	}
}

func (a *app) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm PATH...",
		Short: "Delete files and directories",
		Long: `Delete each PATH. A symlink is deleted, never its target.

A non-empty directory is deleted only with --recursive.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.each(func(ctx context.Context, p path.Path) error {
			return a.x.Delete(ctx, p)
		}),
	}
}

func (a *app) wipeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wipe PATH...",
		Short: "Delete trees, ignoring paths that are already gone",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.each(func(ctx context.Context, p path.Path) error {
			return a.x.Wipe(ctx, p)
		}),
	}
}

func (a *app) mkdirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir DIR...",
		Short: "Create directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.each(func(ctx context.Context, p path.Path) error {
			return a.x.CreateDirectory(ctx, p)
		}),
	}
}

func (a *app) mkfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mkfile FILE...",
		Short: "Create empty files",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.each(func(ctx context.Context, p path.Path) error {
			return a.x.CreateFile(ctx, p)
		}),
	}
}

func (a *app) mkfifoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mkfifo PATH...",
		Short: "Create named pipes",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.each(func(ctx context.Context, p path.Path) error {
			return a.x.CreateFifo(ctx, p)
		}),
	}
}

func (a *app) mksockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mksock PATH...",
		Short: "Create socket nodes",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.each(func(ctx context.Context, p path.Path) error {
			return a.x.CreateSocket(ctx, p)
		}),
	}
}

func (a *app) linkCmd() *cobra.Command {
	var symbolic bool
	cmd := &cobra.Command{
		Use:   "ln TARGET LINK",
		Short: "Create links",
		Long: `Create a hard link LINK to TARGET, or a symlink with --symbolic.

A relative symlink target is stored as given, relative to the
directory that holds LINK.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			link, err := a.path(args[1])
			if err != nil {
				return err
			}
			if !symbolic {
				target, terr := a.path(args[0])
				if terr != nil {
					return terr
				}
				return a.x.CreateHardLink(ctx, target, link)
			}
			t, err := fsops.ParseTarget(link.Platform(), args[0])
			if err != nil {
				return err
			}
			if p, ok := t.Path(); ok {
				return a.x.CreateSymlink(ctx, p, link)
			}
			l, _ := t.Link()
			return a.x.CreateRelativeSymlink(ctx, l, link)
		},
	}
	cmd.Flags().BoolVarP(&symbolic, "symbolic", "s", false,
		"make a symlink instead of a hard link")
	return cmd
}

func (a *app) statCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stat PATH...",
		Short: "Print the kind of each path",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.each(func(ctx context.Context, p path.Path) error {
			e, err := a.x.Entry(ctx, p)
			if err != nil {
				return err
			}
			out := a.deps.Stdout
			if e.Kind != fsops.KindSymlink {
				_, err = fmt.Fprintf(out, "%s\t%s\n", e.Kind, e.Path)
				return err
			}
			t, err := a.x.ReadLink(ctx, p)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "%s\t%s -> %s\n", e.Kind, e.Path, t)
			return err
		}),
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [DIR]",
		Short: "List a directory",
		Long: `List the entries of DIR, or of the working directory.

With --recursive every entry below DIR is listed, depth first.
Symlinked directories are listed but not entered.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dir := a.cwd
			if len(args) == 1 {
				var err error
				if dir, err = a.path(args[0]); err != nil {
					return err
				}
			}
			out := a.deps.Stdout
			list := a.x.Children
			if a.x.Policy().Recurse {
				list = a.x.Descendants
			}
			for e, err := range list(ctx, dir) {
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "%s\t%s\n", e.Kind, e.Path)
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) readlinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "readlink LINK...",
		Short: "Print symlink targets",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.each(func(ctx context.Context, p path.Path) error {
			t, err := a.x.ReadLink(ctx, p)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.deps.Stdout, t)
			return err
		}),
	}
}

func (a *app) realpathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "realpath PATH...",
		Short: "Print paths with every symlink resolved",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.each(func(ctx context.Context, p path.Path) error {
			resolved, err := a.x.RealPath(ctx, p)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.deps.Stdout, resolved)
			return err
		}),
	}
}

func (a *app) catCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat FILE...",
		Short: "Print file contents",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.each(func(ctx context.Context, p path.Path) error {
			return a.x.WithReader(ctx, p, func(r io.Reader) error {
				_, err := io.Copy(a.deps.Stdout, r)
				return err
			})
		}),
	}
}

func (a *app) writeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write FILE",
		Short: "Write standard input to FILE",
		Args:  cobra.ExactArgs(1),
		RunE: a.each(func(ctx context.Context, p path.Path) error {
			return a.x.WithWriter(ctx, p, func(w io.Writer) error {
				_, err := io.Copy(w, a.deps.Stdin)
				return err
			})
		}),
	}
}
