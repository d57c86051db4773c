package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pbxpatch/pkg/errors"
	"github.com/arthur-debert/pbxpatch/pkg/logging"
	"github.com/arthur-debert/pbxpatch/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as configuration
const EnvPrefix = "PBXPATCH_"

// ConfigFileNames are tried in order when no config file is given
var ConfigFileNames = []string{".pbxpatch.toml", "pbxpatch.toml", ".pbxpatch.yaml", ".pbxpatch.yml"}

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// FileEntry is one [[files]] entry of the project config
type FileEntry struct {
	Path  string `koanf:"path" toml:"path" yaml:"path"`
	Name  string `koanf:"name" toml:"name,omitempty" yaml:"name,omitempty"`
	Group string `koanf:"group" toml:"group" yaml:"group"`
	Type  string `koanf:"type" toml:"type,omitempty" yaml:"type,omitempty"`
}

// Config is the merged configuration
type Config struct {
	Project   string            `koanf:"project"`
	Manifest  string            `koanf:"manifest"`
	Target    string            `koanf:"target"`
	Strict    bool              `koanf:"strict"`
	Backup    bool              `koanf:"backup"`
	Output    string            `koanf:"output"`
	FileTypes map[string]string `koanf:"file_types"`
	Files     []FileEntry       `koanf:"files"`

	// Source is the project config file that was loaded, empty if none
	Source string `koanf:"-"`
}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// Dir is the project directory searched for a config file
	Dir string

	// ConfigFile is an explicit config file. It must exist.
	ConfigFile string

	// Overrides are applied last, keyed like the config file ("strict", "target")
	Overrides map[string]interface{}

	// FS is searched and read for the project config file. Nil means the
	// OS filesystem through koanf's file provider.
	FS types.FS
}

// Load merges embedded defaults, the project config file, the environment and
// overrides, in that order
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Project config file
	source, err := findConfigFile(opts)
	if err != nil {
		return nil, err
	}
	if source != "" {
		provider, err := configProvider(opts.FS, source)
		if err != nil {
			return nil, err
		}
		if err := k.Load(provider, parserFor(source)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", source).
				WithDetail("path", source)
		}
		logger.Debug().Str("path", source).Msg("Loaded project config")
	}

	// 3. Environment
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Command line overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	cfg.Source = source

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// configProvider reads source through fsys, or from disk when fsys is nil
func configProvider(fsys types.FS, source string) (koanf.Provider, error) {
	if fsys == nil {
		return file.Provider(source), nil
	}
	data, err := fsys.ReadFile(source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config %s", source).
			WithDetail("path", source)
	}
	return &rawBytesProvider{bytes: data}, nil
}

func statFunc(fsys types.FS) func(string) error {
	if fsys == nil {
		return func(p string) error {
			_, err := os.Stat(p)
			return err
		}
	}
	return func(p string) error {
		_, err := fsys.Stat(p)
		return err
	}
}

func findConfigFile(opts LoadOptions) (string, error) {
	stat := statFunc(opts.FS)

	if opts.ConfigFile != "" {
		p := opts.ConfigFile
		if !filepath.IsAbs(p) && opts.Dir != "" {
			p = filepath.Join(opts.Dir, p)
		}
		if err := stat(p); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", p).
				WithDetail("path", p)
		}
		return p, nil
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	for _, name := range ConfigFileNames {
		p := filepath.Join(dir, name)
		if err := stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

func parserFor(p string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// Validate checks values that cannot be enforced by decoding
func (c *Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return errors.Newf(errors.ErrConfigValid, "unknown output format %q", c.Output).
			WithDetail("output", c.Output)
	}

	for i, f := range c.Files {
		if strings.TrimSpace(f.Path) == "" {
			return errors.Newf(errors.ErrConfigValid, "files[%d] has no path", i).
				WithDetail("index", i)
		}
		if strings.TrimSpace(f.Group) == "" {
			return errors.Newf(errors.ErrConfigValid, "files[%d] (%s) has no group", i, f.Path).
				WithDetail("index", i)
		}
	}
	return nil
}

// Descriptors converts the configured files to file descriptors
func (c *Config) Descriptors() []types.FileDescriptor {
	descs := make([]types.FileDescriptor, 0, len(c.Files))
	for _, f := range c.Files {
		descs = append(descs, f.Descriptor())
	}
	return descs
}

// Descriptor converts the entry to a file descriptor
func (f FileEntry) Descriptor() types.FileDescriptor {
	d := types.NewFileDescriptor(f.Path, f.Group)
	if f.Name != "" {
		d.Name = f.Name
	}
	d.FileType = f.Type
	return d
}

// ResolveManifest finds the manifest path: the manifest setting, then
// <project>.xcodeproj/project.pbxproj, then the only *.xcodeproj in dir
func (c *Config) ResolveManifest(fsys types.FS, dir string) (string, error) {
	if c.Manifest != "" {
		if filepath.IsAbs(c.Manifest) {
			return c.Manifest, nil
		}
		return filepath.Join(dir, c.Manifest), nil
	}

	if c.Project != "" {
		project := strings.TrimSuffix(path.Base(filepath.ToSlash(c.Project)), ".xcodeproj")
		return filepath.Join(dir, filepath.Dir(c.Project), project+".xcodeproj", ManifestName), nil
	}

	matches, err := fsys.Glob(filepath.Join(dir, "*.xcodeproj"))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrManifestNotFound, "failed to search for an Xcode project")
	}
	switch len(matches) {
	case 0:
		return "", errors.Newf(errors.ErrManifestNotFound, "no .xcodeproj found in %s", dir).
			WithDetail("dir", dir)
	case 1:
		return filepath.Join(matches[0], ManifestName), nil
	default:
		return "", errors.Newf(errors.ErrManifestAmbiguous, "found %d Xcode projects in %s, set project or manifest", len(matches), dir).
			WithDetail("projects", matches)
	}
}

// ManifestName is the manifest file inside an .xcodeproj bundle
const ManifestName = "project.pbxproj"

// String renders a short summary for logging
func (c *Config) String() string {
	return fmt.Sprintf("Config{project=%q manifest=%q target=%q strict=%t backup=%t files=%d}",
		c.Project, c.Manifest, c.Target, c.Strict, c.Backup, len(c.Files))
}
