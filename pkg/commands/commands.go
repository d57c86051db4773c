// Package commands implements the pbxpatch commands on top of the patcher.
//
// Each command takes an options struct and returns a result from pkg/types,
// leaving flag parsing and rendering to cmd/pbxpatch.
package commands

import (
	"github.com/arthur-debert/pbxpatch/pkg/config"
	"github.com/arthur-debert/pbxpatch/pkg/filesystem"
	"github.com/arthur-debert/pbxpatch/pkg/logging"
	"github.com/arthur-debert/pbxpatch/pkg/patcher"
	"github.com/arthur-debert/pbxpatch/pkg/token"
	"github.com/arthur-debert/pbxpatch/pkg/types"
)

// Project is a loaded configuration with its resolved manifest
type Project struct {
	Dir          string
	Config       *config.Config
	ManifestPath string

	fs     types.FS
	tokens token.Generator
}

// OpenOptions controls how a project is opened
type OpenOptions struct {
	// Dir is the project directory, "." when empty
	Dir string

	// ConfigFile is an explicit config file
	ConfigFile string

	// Overrides are config keys set from the command line
	Overrides map[string]interface{}

	// FS holds the project config and the manifest. Defaults to the OS
	// filesystem.
	FS types.FS

	// Tokens defaults to random UUID based tokens
	Tokens token.Generator
}

// Open loads the configuration and resolves the manifest path
func Open(opts OpenOptions) (*Project, error) {
	logger := logging.GetLogger("commands")

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	cfg, err := config.Load(config.LoadOptions{
		Dir:        dir,
		ConfigFile: opts.ConfigFile,
		Overrides:  opts.Overrides,
		FS:         opts.FS,
	})
	if err != nil {
		return nil, err
	}

	manifest, err := cfg.ResolveManifest(fsys, dir)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("dir", dir).
		Str("config", cfg.Source).
		Str("manifest", manifest).
		Msg("Project opened")

	return &Project{
		Dir:          dir,
		Config:       cfg,
		ManifestPath: manifest,
		fs:           fsys,
		tokens:       opts.Tokens,
	}, nil
}

// request builds a patch request for descs from the project settings
func (p *Project) request(descs []types.FileDescriptor, dryRun bool) types.PatchRequest {
	return types.PatchRequest{
		ManifestPath: p.ManifestPath,
		Descriptors:  descs,
		Target:       p.Config.Target,
		Strict:       p.Config.Strict,
		DryRun:       dryRun,
		Backup:       p.Config.Backup,
		FileTypes:    p.Config.FileTypes,
	}
}

func (p *Project) patcher() *patcher.Patcher {
	return patcher.New(p.fs, p.tokens)
}
