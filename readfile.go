package fsops

import (
	"bytes"
	"context"
	"io"

	"lesiw.io/fsops/path"
)

// ReadFile reads the file at p and returns its contents.
// Analogous to: [os.ReadFile], cat.
//
// Requires: [FS]
func (x *Executor) ReadFile(
	ctx context.Context, p path.Path,
) ([]byte, error) {
	var buf bytes.Buffer
	err := x.WithReader(ctx, p, func(r io.Reader) error {
		_, err := buf.ReadFrom(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
