package config_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pbxpatch/pkg/config"
	"github.com/arthur-debert/pbxpatch/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_RoundTripsThroughLoad(t *testing.T) {
	cfg := &config.Config{
		Project: "OKTimer",
		Strict:  true,
		Files: []config.FileEntry{
			{Path: "OKTimer/Services/ProgressOverlayManager.swift", Group: "Services"},
			{Path: "OKTimer/Views/Row.swift", Name: "Row.swift", Group: "Views"},
		},
	}

	data, err := config.Generate(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# pbxpatch project configuration")
	assert.Contains(t, string(data), "[[files]]")

	dir := t.TempDir()
	writeFile(t, dir, filepath.Base(".pbxpatch.toml"), string(data))

	loaded, err := config.Load(config.LoadOptions{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, "OKTimer", loaded.Project)
	assert.True(t, loaded.Strict)
	assert.Equal(t, cfg.Files, loaded.Files)
}

func TestGenerate_NoFiles(t *testing.T) {
	data, err := config.Generate(&config.Config{})
	require.NoError(t, err)
	assert.Contains(t, string(data), "files = []")
}

func TestParseFileFlag(t *testing.T) {
	entry, err := config.ParseFileFlag("OKTimer/Views/Row.swift:Views")
	require.NoError(t, err)
	assert.Equal(t, config.FileEntry{Path: "OKTimer/Views/Row.swift", Group: "Views"}, entry)

	for _, bad := range []string{"Row.swift", ":Views", "Row.swift:"} {
		_, err := config.ParseFileFlag(bad)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "value %q", bad)
	}
}
