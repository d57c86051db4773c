package types

import (
	"io/fs"
)

// FS is the filesystem interface required for manifest operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)

	// WriteFileAtomic replaces name so that readers observe either the old
	// content or the new content, never a partial write.
	WriteFileAtomic(name string, data []byte, perm fs.FileMode) error

	// Glob returns the names matching pattern, like filepath.Glob
	Glob(pattern string) ([]string, error)
}
