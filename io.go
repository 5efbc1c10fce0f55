package fsops

import (
	"io"

	"lesiw.io/fsops/path"
)

// opReader reports read failures as OpErrors. io.EOF passes through.
type opReader struct {
	r io.Reader
	p path.Path
}

func (r opReader) Read(b []byte) (int, error) {
	n, err := r.r.Read(b)
	if err == nil || err == io.EOF {
		return n, err
	}
	return n, translate(OpRead, r.p, err)
}

// opWriter reports write failures as OpErrors.
type opWriter struct {
	w io.Writer
	p path.Path
}

func (w opWriter) Write(b []byte) (int, error) {
	n, err := w.w.Write(b)
	return n, translate(OpWrite, w.p, err)
}
