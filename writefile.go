package fsops

import (
	"bytes"
	"context"

	"lesiw.io/fsops/path"
)

// WriteFile writes data to a new file at p.
// Analogous to: [os.WriteFile], echo >.
//
// Unlike [os.WriteFile], an existing file is not truncated in place. It
// is [AlreadyExists] unless the call's policy has [Overwrite], in which
// case it is deleted first.
//
// Requires: [CreateFS]
func (x *Executor) WriteFile(
	ctx context.Context, p path.Path, data []byte, caps ...Capability,
) error {
	pol := x.policyFor(caps)
	return x.mutate(ctx, pol, OpCreate, p, func() error {
		return x.createFrom(ctx, p, bool(pol.Sync), bytes.NewReader(data))
	})
}
