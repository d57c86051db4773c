package types

import (
	"path"
	"strings"

	"github.com/arthur-debert/pbxpatch/pkg/errors"
)

// FileDescriptor describes one file to register in a manifest.
type FileDescriptor struct {
	// Path is the file path relative to the project directory
	Path string `json:"path" yaml:"path"`

	// Name is the display name used in the manifest. Defaults to the base
	// name of Path.
	Name string `json:"name" yaml:"name"`

	// Group is the display name of the logical group the file joins
	Group string `json:"group" yaml:"group"`

	// FileType is the lastKnownFileType written on the file reference.
	// Empty means inferred from the extension.
	FileType string `json:"fileType,omitempty" yaml:"fileType,omitempty"`
}

// NewFileDescriptor builds a descriptor whose name is the base name of p
func NewFileDescriptor(p, group string) FileDescriptor {
	return FileDescriptor{
		Path:  p,
		Name:  path.Base(toSlash(p)),
		Group: group,
	}
}

// DisplayName returns Name, or the base name of Path when Name is empty
func (d FileDescriptor) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	if d.Path == "" {
		return ""
	}
	return path.Base(toSlash(d.Path))
}

// Validate checks that the descriptor can be applied
func (d FileDescriptor) Validate() error {
	if strings.TrimSpace(d.Path) == "" {
		return errors.New(errors.ErrInvalidDescriptor, "file descriptor has an empty path")
	}
	if strings.TrimSpace(d.Group) == "" {
		return errors.Newf(errors.ErrInvalidDescriptor, "file %q has no group", d.Path).
			WithDetail("path", d.Path)
	}
	name := d.DisplayName()
	// The name lands inside /* */ annotations
	if name == "." || name == "/" || strings.ContainsAny(name, "\n\r") || strings.Contains(name, "*/") {
		return errors.Newf(errors.ErrInvalidDescriptor, "file %q has an invalid name %q", d.Path, name).
			WithDetail("path", d.Path)
	}
	return nil
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
