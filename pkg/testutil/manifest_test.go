package testutil_test

import (
	"testing"

	"github.com/arthur-debert/pbxpatch/pkg/pbxproj"
	"github.com/arthur-debert/pbxpatch/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestBuilder_ParsesAsManifest(t *testing.T) {
	text := testutil.NewManifest().
		WithFile("ContentView.swift", "Views").
		WithFile("Clock.swift", "Services").
		Build()

	doc, err := pbxproj.Parse([]byte(text))
	require.NoError(t, err)

	refs, err := doc.Objects(pbxproj.SectionFileReference)
	require.NoError(t, err)
	assert.Len(t, refs, 2)

	views, ok, err := doc.FindObject(pbxproj.SectionGroup, "Views")
	require.NoError(t, err)
	require.True(t, ok)
	children, _ := views.Field("children")
	assert.Len(t, children.Items, 1)
}

func TestManifestBuilder_WithoutSection(t *testing.T) {
	text := testutil.NewManifest().WithoutSection("PBXBuildFile").Build()
	assert.NotContains(t, text, "Begin PBXBuildFile section")
	assert.Contains(t, text, "Begin PBXFileReference section")
}

func TestAssertSubsequence(t *testing.T) {
	testutil.AssertSubsequence(t, "abc", "aXbYc")
	testutil.AssertSubsequence(t, "", "anything")
	testutil.AssertCount(t, "a,b,c", ",", 2)
}
