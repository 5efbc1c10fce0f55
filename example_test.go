package fsops_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"lesiw.io/fsops"
	"lesiw.io/fsops/memfs"
	"lesiw.io/fsops/path"
)

func ExampleExecutor_Copy() {
	ctx := context.Background()
	x := fsops.New(memfs.New(), fsops.DefaultPolicy)
	src := path.MustParse(path.Posix, "/src.txt")
	dst := path.MustParse(path.Posix, "/backup/2024/src.txt")

	if err := x.WriteFile(ctx, src, []byte("data")); err != nil {
		log.Fatal(err)
	}
	err := x.Copy(ctx, src, dst)
	fmt.Println(errors.Is(err, fsops.ErrNotExist))

	if err := x.Copy(ctx, src, dst, fsops.CreateParents); err != nil {
		log.Fatal(err)
	}
	data, err := x.ReadFile(ctx, dst)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))
	// Output:
	// true
	// data
}

func ExampleExecutor_Move() {
	ctx := context.Background()
	x := fsops.New(memfs.New(), fsops.DefaultPolicy)
	old := path.MustParse(path.Posix, "/old.txt")
	dir := path.MustParse(path.Posix, "/archive")

	if err := x.WriteFile(ctx, old, []byte("moved")); err != nil {
		log.Fatal(err)
	}
	if err := x.CreateDirectory(ctx, dir); err != nil {
		log.Fatal(err)
	}
	if err := x.MoveInto(ctx, old, dir, fsops.Atomic); err != nil {
		log.Fatal(err)
	}
	ok, err := x.Exists(ctx, old)
	if err != nil {
		log.Fatal(err)
	}
	data, err := x.ReadFile(ctx, path.MustParse(path.Posix, "/archive/old.txt"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(ok, string(data))
	// Output:
	// false moved
}

func ExampleExecutor_Delete() {
	ctx := context.Background()
	x := fsops.New(memfs.New(), fsops.DefaultPolicy)
	dir := path.MustParse(path.Posix, "/tmp/build")
	file := path.MustParse(path.Posix, "/tmp/build/out.o")

	err := x.WriteFile(ctx, file, nil, fsops.CreateParents)
	if err != nil {
		log.Fatal(err)
	}
	err = x.Delete(ctx, dir)
	fmt.Println(errors.Is(err, fsops.ErrDirNotEmpty))

	if err := x.Delete(ctx, dir, fsops.Recursive); err != nil {
		log.Fatal(err)
	}
	ok, err := x.Exists(ctx, file)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(ok)
	// Output:
	// true
	// false
}

func ExampleExecutor_WriteFile() {
	ctx := context.Background()
	x := fsops.New(memfs.New(), fsops.Policy{Overwrite: true})
	p := path.MustParse(path.Posix, "/config.txt")

	for _, v := range []string{"v1", "v2"} {
		if err := x.WriteFile(ctx, p, []byte(v)); err != nil {
			log.Fatal(err)
		}
	}
	data, err := x.ReadFile(ctx, p)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))
	// Output:
	// v2
}

func ExampleExecutor_WithWriter() {
	ctx := context.Background()
	x := fsops.New(memfs.New(), fsops.DefaultPolicy)
	p := path.MustParse(path.Posix, "/log.txt")

	err := x.WithWriter(ctx, p, func(w io.Writer) error {
		_, err := io.WriteString(w, "line 1\nline 2\n")
		return err
	})
	if err != nil {
		log.Fatal(err)
	}
	err = x.WithReader(ctx, p, func(r io.Reader) error {
		data, rerr := io.ReadAll(r)
		if rerr != nil {
			return rerr
		}
		fmt.Println(strings.Count(string(data), "\n"))
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}
	// Output:
	// 2
}

func ExampleExecutor_CreateDirectory() {
	ctx := context.Background()
	x := fsops.New(memfs.New(), fsops.DefaultPolicy)
	p := path.MustParse(path.Posix, "/a/b/c")

	if err := x.CreateDirectory(ctx, p, fsops.CreateParents); err != nil {
		log.Fatal(err)
	}
	k, err := x.Kind(ctx, p)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(k)
	// Output:
	// directory
}

func ExampleOpError() {
	ctx := context.Background()
	x := fsops.New(memfs.New(), fsops.DefaultPolicy)

	_, err := x.ReadFile(ctx, path.MustParse(path.Posix, "/missing"))
	var oe *fsops.OpError
	if errors.As(err, &oe) {
		fmt.Println(oe.Op, oe.Path, oe.Reason)
	}
	// Output:
	// open /missing nonexistent
}
