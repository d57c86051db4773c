package commands

import (
	"github.com/arthur-debert/pbxpatch/pkg/errors"
	"github.com/arthur-debert/pbxpatch/pkg/logging"
	"github.com/arthur-debert/pbxpatch/pkg/types"
)

// AddOptions holds options for the add command
type AddOptions struct {
	Project *Project
	Paths   []string
	Group   string

	// Name overrides the display name. Only valid with a single path.
	Name string

	// FileType overrides the inferred lastKnownFileType for every path
	FileType string

	DryRun bool
}

// Add registers the given paths, ignoring the configured file list
func Add(opts AddOptions) (*types.PatchResult, error) {
	logger := logging.GetLogger("commands.add")

	if len(opts.Paths) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no paths given")
	}
	if opts.Name != "" && len(opts.Paths) > 1 {
		return nil, errors.New(errors.ErrInvalidInput, "--name can only be used with a single path").
			WithDetail("paths", opts.Paths)
	}

	descs := make([]types.FileDescriptor, 0, len(opts.Paths))
	for _, path := range opts.Paths {
		d := types.NewFileDescriptor(path, opts.Group)
		if opts.Name != "" {
			d.Name = opts.Name
		}
		d.FileType = opts.FileType
		descs = append(descs, d)
	}

	logger.Info().
		Str("manifest", opts.Project.ManifestPath).
		Strs("paths", opts.Paths).
		Str("group", opts.Group).
		Msg("Adding files")

	return opts.Project.patcher().Apply(opts.Project.request(descs, opts.DryRun))
}
