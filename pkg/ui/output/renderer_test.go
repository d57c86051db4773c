package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/pbxpatch/pkg/types"
	"github.com/arthur-debert/pbxpatch/pkg/ui/lipbalm"
	"github.com/arthur-debert/pbxpatch/pkg/ui/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func outcome(name string, status types.FileStatus, missing ...types.Step) types.FileOutcome {
	return types.FileOutcome{
		Descriptor: types.FileDescriptor{Path: "Sources/" + name, Name: name, Group: "Views"},
		Status:     status,
		Missing:    missing,
	}
}

func render(t *testing.T, format output.Format, fn func(r *output.Renderer) error) string {
	t.Helper()
	var buf bytes.Buffer
	r, err := output.NewRenderer(&buf, format, false)
	require.NoError(t, err)
	require.NoError(t, fn(r))
	return buf.String()
}

func TestRenderPatch_Text(t *testing.T) {
	tests := []struct {
		name        string
		result      *types.PatchResult
		wantStrings []string
		skipStrings []string
	}{
		{
			name: "added and skipped",
			result: &types.PatchResult{
				Files: []types.FileOutcome{
					outcome("Timer.swift", types.StatusAdded),
					outcome("Clock.swift", types.StatusSkipped),
				},
				Changed: true,
				Written: true,
			},
			wantStrings: []string{
				"Adding Timer.swift to project...\n",
				"File Clock.swift already exists in project\n",
				"Project file updated successfully!\n",
			},
			skipStrings: []string{"DRY RUN", "\x1b["},
		},
		{
			name: "missing locations",
			result: &types.PatchResult{
				Files:   []types.FileOutcome{outcome("Timer.swift", types.StatusAdded, types.StepGroup)},
				Changed: true,
				Written: true,
			},
			wantStrings: []string{"  warning: no location for group, entry not added\n"},
		},
		{
			name: "dry run",
			result: &types.PatchResult{
				Files:   []types.FileOutcome{outcome("Timer.swift", types.StatusAdded)},
				Changed: true,
				DryRun:  true,
			},
			wantStrings: []string{"DRY RUN - manifest not written"},
			skipStrings: []string{"updated successfully", "No changes"},
		},
		{
			name: "nothing to do",
			result: &types.PatchResult{
				Files: []types.FileOutcome{outcome("Timer.swift", types.StatusSkipped)},
			},
			wantStrings: []string{"No changes needed."},
			skipStrings: []string{"updated successfully"},
		},
		{
			name: "backup and escaping",
			result: &types.PatchResult{
				Files:      []types.FileOutcome{outcome("A&B.swift", types.StatusAdded)},
				Changed:    true,
				Written:    true,
				BackupPath: "/p/project.pbxproj.bak",
			},
			wantStrings: []string{"Adding A&B.swift to project...", "Previous manifest saved to /p/project.pbxproj.bak"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(t, output.FormatText, func(r *output.Renderer) error {
				return r.RenderPatch(tt.result)
			})
			for _, s := range tt.wantStrings {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.skipStrings {
				assert.NotContains(t, got, s)
			}
			assert.NotEqual(t, '\n', rune(got[0]))
		})
	}
}

func TestRenderPatch_JSON(t *testing.T) {
	result := &types.PatchResult{
		ManifestPath: "/p/project.pbxproj",
		Files:        []types.FileOutcome{outcome("Timer.swift", types.StatusAdded, types.StepBuildPhase)},
		Changed:      true,
	}
	got := render(t, output.FormatJSON, func(r *output.Renderer) error {
		return r.RenderPatch(result)
	})

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, "/p/project.pbxproj", decoded["manifestPath"])
	files := decoded["files"].([]interface{})
	require.Len(t, files, 1)
	file := files[0].(map[string]interface{})
	assert.Equal(t, "added", file["status"])
	assert.Equal(t, []interface{}{"build-phase"}, file["missing"])
}

func TestRenderInspect(t *testing.T) {
	result := &types.InspectResult{
		ManifestPath: "/p/project.pbxproj",
		Files: []types.FileInspection{
			{Descriptor: types.FileDescriptor{Name: "Clock.swift", Group: "Views"}, Present: true},
			{Descriptor: types.FileDescriptor{Name: "Timer.swift", Group: "Models"}, Missing: []types.Step{types.StepGroup}},
		},
	}

	t.Run("text", func(t *testing.T) {
		got := render(t, output.FormatText, func(r *output.Renderer) error {
			return r.RenderInspect(result)
		})
		assert.Contains(t, got, "Manifest /p/project.pbxproj\n")
		assert.Contains(t, got, "  present  Clock.swift\n")
		assert.Contains(t, got, "  pending  Timer.swift (Models)\n")
		assert.Contains(t, got, "    missing group\n")
		assert.Contains(t, got, "1 of 2 file(s) pending")
	})

	t.Run("yaml", func(t *testing.T) {
		got := render(t, output.FormatYAML, func(r *output.Renderer) error {
			return r.RenderInspect(result)
		})
		var decoded types.InspectResult
		require.NoError(t, yaml.Unmarshal([]byte(got), &decoded))
		assert.Equal(t, *result, decoded)
	})

	t.Run("empty", func(t *testing.T) {
		got := render(t, output.FormatText, func(r *output.Renderer) error {
			return r.RenderInspect(&types.InspectResult{ManifestPath: "/p"})
		})
		assert.Contains(t, got, "No files configured.")
	})
}

func TestRenderMessage(t *testing.T) {
	got := render(t, output.FormatText, func(r *output.Renderer) error {
		return r.RenderMessage("Success", "Wrote .pbxpatch.toml")
	})
	assert.Equal(t, "Wrote .pbxpatch.toml\n", got)

	got = render(t, output.FormatJSON, func(r *output.Renderer) error {
		return r.RenderMessage("", "done")
	})
	assert.JSONEq(t, `{"message": "done"}`, got)

	msg := "Wrote <FilePath>" + lipbalm.Escape("/a&b/.pbxpatch.toml") + "</FilePath>"
	got = render(t, output.FormatText, func(r *output.Renderer) error {
		return r.RenderMessage("Success", msg)
	})
	assert.Equal(t, "Wrote /a&b/.pbxpatch.toml\n", got)

	got = render(t, output.FormatYAML, func(r *output.Renderer) error {
		return r.RenderMessage("Success", msg)
	})
	assert.Equal(t, "message: Wrote /a&b/.pbxpatch.toml\n", got)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    output.Format
		wantErr bool
	}{
		{"", output.FormatText, false},
		{"text", output.FormatText, false},
		{"JSON", output.FormatJSON, false},
		{"yml", output.FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := output.ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := output.NewRenderer(&bytes.Buffer{}, "xml", false)
	assert.Error(t, err)
}
