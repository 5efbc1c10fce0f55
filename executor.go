package fsops

import "io"

// An Executor runs operations against a filesystem under a default
// [Policy]. An Executor holds no other state and is safe for concurrent
// use when its filesystem is.
type Executor struct {
	fsys   FS
	policy Policy
}

// New returns an Executor for fsys. The defaults policy applies to every
// call that does not override it; pass [DefaultPolicy] for the documented
// defaults.
func New(fsys FS, defaults Policy) *Executor {
	return &Executor{fsys: fsys, policy: defaults}
}

// FS returns the executor's filesystem.
func (x *Executor) FS() FS { return x.fsys }

// Policy returns the executor's default policy.
func (x *Executor) Policy() Policy { return x.policy }

// With returns an Executor on the same filesystem whose default policy
// has caps applied.
func (x *Executor) With(caps ...Capability) *Executor {
	return &Executor{fsys: x.fsys, policy: x.policy.With(caps...)}
}

func (x *Executor) policyFor(caps []Capability) Policy {
	return x.policy.With(caps...)
}

// Close closes the executor's filesystem. See [Close].
func (x *Executor) Close() error { return Close(x.fsys) }

// Close closes fsys if it holds resources, that is if it implements
// [io.Closer]. Other filesystems are left alone and Close returns nil.
func Close(fsys FS) error {
	c, ok := fsys.(io.Closer)
	if !ok {
		return nil
	}
	return c.Close()
}
