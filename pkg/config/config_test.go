package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pbxpatch/pkg/config"
	"github.com/arthur-debert/pbxpatch/pkg/errors"
	"github.com/arthur-debert/pbxpatch/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(config.LoadOptions{Dir: t.TempDir()})
	require.NoError(t, err)

	assert.False(t, cfg.Strict)
	assert.False(t, cfg.Backup)
	assert.Equal(t, config.OutputText, cfg.Output)
	assert.Empty(t, cfg.Files)
	assert.Empty(t, cfg.Source)
}

func TestLoad_ProjectTOML(t *testing.T) {
	dir := t.TempDir()
	source := writeFile(t, dir, ".pbxpatch.toml", `
project = "OKTimer"
strict = true

[file_types]
glsl = "sourcecode.glsl"

[[files]]
path = "OKTimer/Services/ProgressOverlayManager.swift"
group = "Services"

[[files]]
path = "OKTimer/Views/EnhancedRadialProgressIndicator.swift"
name = "EnhancedRadialProgressIndicator.swift"
group = "Views"
`)

	cfg, err := config.Load(config.LoadOptions{Dir: dir})
	require.NoError(t, err)

	assert.Equal(t, source, cfg.Source)
	assert.Equal(t, "OKTimer", cfg.Project)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "sourcecode.glsl", cfg.FileTypes["glsl"])
	require.Len(t, cfg.Files, 2)

	descs := cfg.Descriptors()
	assert.Equal(t, "ProgressOverlayManager.swift", descs[0].Name)
	assert.Equal(t, "Services", descs[0].Group)
	assert.Equal(t, "EnhancedRadialProgressIndicator.swift", descs[1].Name)
	assert.Equal(t, "Views", descs[1].Group)
}

func TestLoad_ProjectYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".pbxpatch.yaml", `
manifest: App.xcodeproj/project.pbxproj
target: Widget
files:
  - path: Widget/Row.swift
    group: Widget
    type: sourcecode.swift
`)

	cfg, err := config.Load(config.LoadOptions{Dir: dir})
	require.NoError(t, err)

	assert.Equal(t, "Widget", cfg.Target)
	require.Len(t, cfg.Files, 1)
	assert.Equal(t, "sourcecode.swift", cfg.Descriptors()[0].FileType)
}

func TestLoad_EnvAndOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pbxpatch.toml", "target = \"App\"\nbackup = false\n")
	t.Setenv("PBXPATCH_BACKUP", "true")
	t.Setenv("PBXPATCH_TARGET", "FromEnv")

	cfg, err := config.Load(config.LoadOptions{
		Dir:       dir,
		Overrides: map[string]interface{}{"target": "FromFlag", "output": "json"},
	})
	require.NoError(t, err)

	assert.True(t, cfg.Backup)
	assert.Equal(t, "FromFlag", cfg.Target)
	assert.Equal(t, config.OutputJSON, cfg.Output)
}

func TestLoad_FromFS(t *testing.T) {
	fsys, _ := testutil.NewMemoryFS(t, map[string]string{
		"/proj/.pbxpatch.yaml": "target: Widget\nfiles:\n  - path: Sources/Row.swift\n    group: Views\n",
		"/proj/custom.toml":    "strict = true\n",
	})

	cfg, err := config.Load(config.LoadOptions{Dir: "/proj", FS: fsys})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/proj", ".pbxpatch.yaml"), cfg.Source)
	assert.Equal(t, "Widget", cfg.Target)
	require.Len(t, cfg.Files, 1)
	assert.Equal(t, "Views", cfg.Files[0].Group)

	cfg, err = config.Load(config.LoadOptions{Dir: "/proj", ConfigFile: "custom.toml", FS: fsys})
	require.NoError(t, err)
	assert.True(t, cfg.Strict)

	_, err = config.Load(config.LoadOptions{Dir: "/proj", ConfigFile: "missing.toml", FS: fsys})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad), "got %v", err)
}

func TestLoad_ExplicitConfigFileMissing(t *testing.T) {
	_, err := config.Load(config.LoadOptions{Dir: t.TempDir(), ConfigFile: "nope.toml"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad), "got %v", err)
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".pbxpatch.toml", "project = [unterminated\n")

	_, err := config.Load(config.LoadOptions{Dir: dir})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse), "got %v", err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown output", "output = \"xml\"\n"},
		{"file without group", "[[files]]\npath = \"a.swift\"\n"},
		{"file without path", "[[files]]\ngroup = \"Views\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, ".pbxpatch.toml", tt.content)

			_, err := config.Load(config.LoadOptions{Dir: dir})
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
		})
	}
}

func TestResolveManifest(t *testing.T) {
	fsys, _ := testutil.NewMemoryFS(t, map[string]string{
		"/one/OKTimer.xcodeproj/project.pbxproj": "{}",
		"/two/A.xcodeproj/project.pbxproj":       "{}",
		"/two/B.xcodeproj/project.pbxproj":       "{}",
		"/none/README":                           "",
	})

	tests := []struct {
		name    string
		cfg     config.Config
		dir     string
		want    string
		wantErr errors.ErrorCode
	}{
		{"explicit relative manifest", config.Config{Manifest: "X.xcodeproj/project.pbxproj"}, "/p", "/p/X.xcodeproj/project.pbxproj", ""},
		{"explicit absolute manifest", config.Config{Manifest: "/abs/project.pbxproj"}, "/p", "/abs/project.pbxproj", ""},
		{"project name", config.Config{Project: "OKTimer"}, "/p", "/p/OKTimer.xcodeproj/project.pbxproj", ""},
		{"project bundle", config.Config{Project: "sub/OKTimer.xcodeproj"}, "/p", "/p/sub/OKTimer.xcodeproj/project.pbxproj", ""},
		{"discovered", config.Config{}, "/one", "/one/OKTimer.xcodeproj/project.pbxproj", ""},
		{"ambiguous", config.Config{}, "/two", "", errors.ErrManifestAmbiguous},
		{"none", config.Config{}, "/none", "", errors.ErrManifestNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.ResolveManifest(fsys, tt.dir)
			if tt.wantErr != "" {
				assert.True(t, errors.IsErrorCode(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}
