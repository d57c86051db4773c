package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pbxpatch/pkg/filesystem"
	"github.com/arthur-debert/pbxpatch/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// NewMemoryFS returns an in-memory filesystem holding files, keyed by path
func NewMemoryFS(t *testing.T, files map[string]string) (types.FS, afero.Fs) {
	t.Helper()

	mem := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, mem.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(mem, path, []byte(content), 0644))
	}
	return filesystem.New(mem), mem
}

// ReadFile reads path from fs, failing the test on error
func ReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}
