//go:build unix

package osfs_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/jmgilman/go/exec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lesiw.io/fsops"
	"lesiw.io/fsops/osfs"
	"lesiw.io/fsops/path"
)

// fakeExecutor records Run calls instead of running anything.
type fakeExecutor struct {
	runs [][]string
	ctx  context.Context
	err  error
}

func (f *fakeExecutor) WithEnv(map[string]string) exec.Executor { return f }
func (f *fakeExecutor) WithDir(string) exec.Executor            { return f }
func (f *fakeExecutor) WithDisableColors() exec.Executor         { return f }
func (f *fakeExecutor) WithTimeout(string) exec.Executor         { return f }
func (f *fakeExecutor) WithInheritEnv() exec.Executor            { return f }
func (f *fakeExecutor) WithStdout(io.Writer) exec.Executor       { return f }
func (f *fakeExecutor) WithStderr(io.Writer) exec.Executor       { return f }
func (f *fakeExecutor) WithPassthrough() exec.Executor           { return f }
func (f *fakeExecutor) Clone() exec.Executor                     { return f }

func (f *fakeExecutor) WithContext(ctx context.Context) exec.Executor {
	f.ctx = ctx
	return f
}

func (f *fakeExecutor) Run(args ...string) (*exec.Result, error) {
	f.runs = append(f.runs, args)
	if f.err != nil {
		return nil, f.err
	}
	return &exec.Result{}, nil
}

type recordingSink struct {
	events []fsops.Event
}

func (s *recordingSink) Attempted(_ context.Context, e fsops.Event) {
	s.events = append(s.events, e)
}

func TestMkfifoCommand(t *testing.T) {
	fake := &fakeExecutor{}
	sink := &recordingSink{}
	fsys := osfs.New(osfs.WithExecutor(fake), osfs.WithEventSink(sink))
	x := fsops.New(fsys, fsops.DefaultPolicy)

	ctx := fsops.WithFileMode(t.Context(), 0600)
	p := tempDir(t).Child(path.MustName(path.Posix, "pipe"))
	require.NoError(t, x.CreateFifo(ctx, p))

	want := []string{"mkfifo", "-m", "600", p.String()}
	require.Len(t, fake.runs, 1)
	assert.Equal(t, want, fake.runs[0])
	assert.Equal(t, ctx, fake.ctx)

	require.Len(t, sink.events, 1)
	assert.Equal(t, fsops.OpCreate, sink.events[0].Op)
	assert.True(t, sink.events[0].Path.Equal(p))
	assert.Equal(t, want, sink.events[0].Command)
}

func TestMkfifoFailure(t *testing.T) {
	fake := &fakeExecutor{err: &exec.ExecError{
		Command:  []string{"mkfifo"},
		ExitCode: 1,
		Err:      errors.New("exit status 1"),
	}}
	fsys := osfs.New(osfs.WithExecutor(fake))
	x := fsops.New(fsys, fsops.DefaultPolicy)
	p := tempDir(t).Child(path.MustName(path.Posix, "pipe"))

	err := x.CreateFifo(t.Context(), p)
	require.Error(t, err)

	var opErr *fsops.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, fsops.OpCreate, opErr.Op)
	assert.Equal(t, fsops.Unsupported, opErr.Reason)

	var execErr *exec.ExecError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, 1, execErr.ExitCode)
}

func TestMkfifoExisting(t *testing.T) {
	fake := &fakeExecutor{}
	x := fsops.New(osfs.New(osfs.WithExecutor(fake)), fsops.DefaultPolicy)
	p := tempDir(t).Child(path.MustName(path.Posix, "pipe"))
	require.NoError(t, x.CreateFile(t.Context(), p))

	err := x.CreateFifo(t.Context(), p)
	assert.ErrorIs(t, err, fsops.ErrExist)
	assert.Empty(t, fake.runs)
}

func TestKindDevice(t *testing.T) {
	x := fsops.New(osfs.New(), fsops.DefaultPolicy)
	p := path.MustParse(path.Posix, "/dev/null")

	k, err := x.Kind(t.Context(), p)
	require.NoError(t, err)
	assert.Equal(t, fsops.KindCharDevice, k)
}

func TestHardLinkCount(t *testing.T) {
	ctx := t.Context()
	x := fsops.New(osfs.New(), fsops.DefaultPolicy)
	dir := tempDir(t)
	orig := dir.Child(path.MustName(path.Posix, "orig"))
	link := dir.Child(path.MustName(path.Posix, "link"))

	require.NoError(t, x.WriteFile(ctx, orig, []byte("x")))
	require.NoError(t, x.CreateHardLink(ctx, orig, link))

	n, err := x.HardLinkCount(ctx, orig)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)
}

func TestMkfifoBadParent(t *testing.T) {
	ctx := t.Context()
	fake := &fakeExecutor{}
	x := fsops.New(osfs.New(osfs.WithExecutor(fake)), fsops.DefaultPolicy)
	dir := tempDir(t)
	file := dir.Child(path.MustName(path.Posix, "file"))
	require.NoError(t, x.CreateFile(ctx, file))

	tests := []struct {
		name   string
		parent path.Path
		reason fsops.Reason
	}{
		{"missing", dir.Child(path.MustName(path.Posix, "nope")),
			fsops.Nonexistent},
		{"file", file, fsops.IsNotDirectory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.parent.Child(path.MustName(path.Posix, "pipe"))

			err := x.CreateFifo(ctx, p)
			var opErr *fsops.OpError
			require.ErrorAs(t, err, &opErr)
			assert.Equal(t, tt.reason, opErr.Reason)
			assert.Empty(t, fake.runs)
		})
	}
}

func TestMkfifoCreatesParents(t *testing.T) {
	fake := &fakeExecutor{}
	x := fsops.New(osfs.New(osfs.WithExecutor(fake)), fsops.DefaultPolicy)
	p := tempDir(t).Join(
		path.MustName(path.Posix, "a"),
		path.MustName(path.Posix, "pipe"),
	)

	require.NoError(t, x.CreateFifo(t.Context(), p, fsops.CreateParents))
	require.Len(t, fake.runs, 1)
}
