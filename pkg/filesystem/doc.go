// Package filesystem provides filesystem implementations for scirnap.
//
// This package contains implementations of the types.FS interface:
// the standard OS filesystem and an afero-backed one for tests.
package filesystem
