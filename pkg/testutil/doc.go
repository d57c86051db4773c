// Package testutil provides utilities for testing pbxpatch components.
//
// Key components:
//   - ManifestBuilder: declarative builder for synthetic project.pbxproj documents
//   - NewMemoryFS: in-memory filesystem preloaded with files
//   - Assertions for properties of patched documents
//
// Usage guidelines:
//   - Tests should build manifests inline with ManifestBuilder, not load fixtures from disk
//   - Use the memory filesystem unless the test is about real file semantics
//   - Each test should be completely isolated with no shared state
package testutil
