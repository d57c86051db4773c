// Package filesystem provides filesystem implementations for pbxpatch.
//
// This package contains the afero-backed implementation of the types.FS
// interface, used with the OS filesystem in production and with an
// in-memory filesystem in tests.
package filesystem
