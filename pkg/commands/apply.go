package commands

import (
	"github.com/arthur-debert/pbxpatch/pkg/errors"
	"github.com/arthur-debert/pbxpatch/pkg/logging"
	"github.com/arthur-debert/pbxpatch/pkg/types"
)

// ApplyOptions holds options for the apply command
type ApplyOptions struct {
	Project *Project
	DryRun  bool
}

// Apply registers the files listed in the project configuration
func Apply(opts ApplyOptions) (*types.PatchResult, error) {
	logger := logging.GetLogger("commands.apply")
	p := opts.Project

	descs := p.Config.Descriptors()
	if len(descs) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no files configured, add [[files]] entries to the project config or use the add command").
			WithDetail("config", p.Config.Source)
	}

	logger.Info().
		Str("manifest", p.ManifestPath).
		Int("files", len(descs)).
		Bool("dry_run", opts.DryRun).
		Msg("Applying configured files")

	return p.patcher().Apply(p.request(descs, opts.DryRun))
}
