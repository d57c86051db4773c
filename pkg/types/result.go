package types

// Step names one of the four insertions applied per descriptor
type Step string

const (
	StepFileReference Step = "file-reference"
	StepBuildFile     Step = "build-file"
	StepGroup         Step = "group"
	StepBuildPhase    Step = "build-phase"
)

// FileStatus is the outcome of applying a single descriptor
type FileStatus string

const (
	StatusAdded   FileStatus = "added"
	StatusSkipped FileStatus = "skipped"
)

// FileOutcome records what happened to one descriptor
type FileOutcome struct {
	Descriptor  FileDescriptor `json:"descriptor" yaml:"descriptor"`
	Status      FileStatus     `json:"status" yaml:"status"`
	FileRefID   string         `json:"fileRefId,omitempty" yaml:"fileRefId,omitempty"`
	BuildFileID string         `json:"buildFileId,omitempty" yaml:"buildFileId,omitempty"`

	// Missing lists the steps whose location was not found in the manifest
	Missing []Step `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// Complete reports whether all four insertions were applied
func (o FileOutcome) Complete() bool {
	return o.Status == StatusAdded && len(o.Missing) == 0
}

// PatchResult is returned by a patch run
type PatchResult struct {
	ManifestPath string        `json:"manifestPath" yaml:"manifestPath"`
	Files        []FileOutcome `json:"files" yaml:"files"`

	// Changed is true when the document differs from what was read
	Changed bool `json:"changed" yaml:"changed"`

	// Written is true when the manifest was replaced on disk
	Written    bool   `json:"written" yaml:"written"`
	DryRun     bool   `json:"dryRun" yaml:"dryRun"`
	BackupPath string `json:"backupPath,omitempty" yaml:"backupPath,omitempty"`
}

// Added returns the number of descriptors that were added
func (r *PatchResult) Added() int {
	return r.count(StatusAdded)
}

// Skipped returns the number of descriptors that were already present
func (r *PatchResult) Skipped() int {
	return r.count(StatusSkipped)
}

// Incomplete returns the outcomes that were added with missing steps
func (r *PatchResult) Incomplete() []FileOutcome {
	var out []FileOutcome
	for _, f := range r.Files {
		if f.Status == StatusAdded && len(f.Missing) > 0 {
			out = append(out, f)
		}
	}
	return out
}

func (r *PatchResult) count(status FileStatus) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == status {
			n++
		}
	}
	return n
}

// FileInspection reports the state of one descriptor without applying it
type FileInspection struct {
	Descriptor FileDescriptor `json:"descriptor" yaml:"descriptor"`
	Present    bool           `json:"present" yaml:"present"`

	// Missing lists the steps whose location would not be found
	Missing []Step `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// InspectResult is returned by a check run
type InspectResult struct {
	ManifestPath string           `json:"manifestPath" yaml:"manifestPath"`
	Files        []FileInspection `json:"files" yaml:"files"`
}

// Pending returns the inspections whose descriptor is not yet present
func (r *InspectResult) Pending() []FileInspection {
	var out []FileInspection
	for _, f := range r.Files {
		if !f.Present {
			out = append(out, f)
		}
	}
	return out
}
