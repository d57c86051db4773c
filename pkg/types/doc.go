// Package types defines the core types and interfaces used throughout pbxpatch.
// This includes the FileDescriptor input record, the PatchRequest handed to the
// patcher, the PatchResult it returns, and the FS interface the patcher reads
// and writes manifests through.
package types
