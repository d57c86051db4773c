package types

// PatchRequest is everything the patcher needs for one run
type PatchRequest struct {
	// ManifestPath is the path to project.pbxproj
	ManifestPath string

	// Descriptors are applied in order
	Descriptors []FileDescriptor

	// Target selects the Sources phase of the named native target.
	// Empty means the first Sources phase in the manifest.
	Target string

	// Strict turns a missing section, group or phase into an error
	Strict bool

	// DryRun computes the result without writing the manifest
	DryRun bool

	// Backup copies the previous manifest to ManifestPath + ".bak" before writing
	Backup bool

	// FileTypes maps a lower-case extension (without dot) to a lastKnownFileType
	FileTypes map[string]string
}
