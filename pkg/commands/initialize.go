package commands

import (
	"path/filepath"

	"github.com/arthur-debert/pbxpatch/pkg/config"
	"github.com/arthur-debert/pbxpatch/pkg/errors"
	"github.com/arthur-debert/pbxpatch/pkg/filesystem"
	"github.com/arthur-debert/pbxpatch/pkg/logging"
	"github.com/arthur-debert/pbxpatch/pkg/types"
)

// InitFileName is the config file written by Init
const InitFileName = ".pbxpatch.toml"

// InitOptions holds options for the init command
type InitOptions struct {
	Dir   string
	Force bool

	// Files are written as the initial [[files]] entries
	Files []config.FileEntry

	FS types.FS
}

// Init writes a starter project config. The project field is filled in when
// the directory holds exactly one .xcodeproj.
func Init(opts InitOptions) (*types.InitResult, error) {
	logger := logging.GetLogger("commands.init")

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	path := filepath.Join(dir, InitFileName)
	exists := filesystem.Exists(fsys, path)
	if exists && !opts.Force {
		return nil, errors.Newf(errors.ErrAlreadyExists, "%s already exists, use --force to overwrite", path).
			WithDetail("path", path)
	}

	result := &types.InitResult{Path: path, Replaced: exists}

	cfg := &config.Config{Files: opts.Files}
	matches, err := fsys.Glob(filepath.Join(dir, "*.xcodeproj"))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to search for an Xcode project")
	}
	if len(matches) == 1 {
		cfg.Project = filepath.Base(matches[0])
		result.Project = cfg.Project
	}

	data, err := config.Generate(cfg)
	if err != nil {
		return nil, err
	}
	if err := fsys.WriteFileAtomic(path, data, 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).
			WithDetail("path", path)
	}

	logger.Info().
		Str("path", path).
		Str("project", cfg.Project).
		Bool("replaced", exists).
		Msg("Wrote project config")
	return result, nil
}
