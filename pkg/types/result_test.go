package types_test

import (
	"testing"

	"github.com/arthur-debert/pbxpatch/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestPatchResult_Counts(t *testing.T) {
	result := &types.PatchResult{
		Files: []types.FileOutcome{
			{Status: types.StatusAdded},
			{Status: types.StatusSkipped},
			{Status: types.StatusAdded, Missing: []types.Step{types.StepGroup}},
		},
	}

	assert.Equal(t, 2, result.Added())
	assert.Equal(t, 1, result.Skipped())
	assert.Len(t, result.Incomplete(), 1)
	assert.True(t, result.Files[0].Complete())
	assert.False(t, result.Files[1].Complete())
	assert.False(t, result.Files[2].Complete())
}

func TestInspectResult_Pending(t *testing.T) {
	result := &types.InspectResult{
		Files: []types.FileInspection{
			{Descriptor: types.FileDescriptor{Name: "A.swift"}, Present: true},
			{Descriptor: types.FileDescriptor{Name: "B.swift"}},
		},
	}

	pending := result.Pending()
	if assert.Len(t, pending, 1) {
		assert.Equal(t, "B.swift", pending[0].Descriptor.Name)
	}
}
