package commands

import (
	"github.com/arthur-debert/pbxpatch/pkg/types"
)

// CheckOptions holds options for the check command
type CheckOptions struct {
	Project *Project

	// Paths are checked instead of the configured files when set
	Paths []string
	Group string
}

// Check reports which files are present and which insertion points are
// missing, without writing the manifest
func Check(opts CheckOptions) (*types.InspectResult, error) {
	p := opts.Project

	descs := p.Config.Descriptors()
	if len(opts.Paths) > 0 {
		descs = make([]types.FileDescriptor, 0, len(opts.Paths))
		for _, path := range opts.Paths {
			descs = append(descs, types.NewFileDescriptor(path, opts.Group))
		}
	}

	return p.patcher().Inspect(p.request(descs, true))
}
