package config

import (
	"bytes"
	"strings"

	"github.com/arthur-debert/pbxpatch/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

const generatedHeader = `# pbxpatch project configuration
#
# Each [[files]] entry registers one file:
#   path  - file path relative to the project directory (required)
#   group - display name of the group the file joins (required)
#   name  - display name in the project (default: base name of path)
#   type  - lastKnownFileType (default: inferred from the extension)

`

// projectFile is the on-disk shape written by Generate
type projectFile struct {
	Project  string      `toml:"project,omitempty"`
	Manifest string      `toml:"manifest,omitempty"`
	Target   string      `toml:"target,omitempty"`
	Strict   bool        `toml:"strict"`
	Backup   bool        `toml:"backup"`
	Files    []FileEntry `toml:"files"`
}

// Generate renders cfg as a project config file
func Generate(cfg *Config) ([]byte, error) {
	files := cfg.Files
	if files == nil {
		files = []FileEntry{}
	}
	pf := projectFile{
		Project:  cfg.Project,
		Manifest: cfg.Manifest,
		Target:   cfg.Target,
		Strict:   cfg.Strict,
		Backup:   cfg.Backup,
		Files:    files,
	}

	var buf bytes.Buffer
	buf.WriteString(generatedHeader)
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(pf); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode config")
	}
	return buf.Bytes(), nil
}

// ParseFileFlag parses a "path:group" command line value
func ParseFileFlag(value string) (FileEntry, error) {
	i := strings.LastIndexByte(value, ':')
	if i <= 0 || i == len(value)-1 {
		return FileEntry{}, errors.Newf(errors.ErrInvalidInput, "expected path:group, got %q", value)
	}
	return FileEntry{Path: value[:i], Group: value[i+1:]}, nil
}
