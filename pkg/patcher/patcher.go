// Package patcher registers files in an Xcode project manifest.
//
// For every descriptor that is not yet present the patcher appends a file
// reference, a build file, a group membership and a Sources phase membership,
// cross-referenced by two freshly minted identifier tokens. Existing text is
// never removed or reordered.
package patcher

import (
	"io/fs"

	"github.com/arthur-debert/pbxpatch/pkg/errors"
	"github.com/arthur-debert/pbxpatch/pkg/filesystem"
	"github.com/arthur-debert/pbxpatch/pkg/logging"
	"github.com/arthur-debert/pbxpatch/pkg/pbxproj"
	"github.com/arthur-debert/pbxpatch/pkg/token"
	"github.com/arthur-debert/pbxpatch/pkg/types"
	"github.com/rs/zerolog"
)

// maxTokenAttempts bounds re-rolls of a token that already occurs in the document
const maxTokenAttempts = 16

// BackupSuffix is appended to the manifest path for the backup copy
const BackupSuffix = ".bak"

// Patcher applies patch requests through a filesystem
type Patcher struct {
	fs     types.FS
	tokens token.Generator
	logger zerolog.Logger
}

// New creates a patcher. A nil generator means random UUID based tokens.
func New(fsys types.FS, tokens token.Generator) *Patcher {
	if tokens == nil {
		tokens = token.NewUUID()
	}
	return &Patcher{
		fs:     fsys,
		tokens: tokens,
		logger: logging.GetLogger("patcher"),
	}
}

// Apply registers every descriptor of req in the manifest and writes it back
func (p *Patcher) Apply(req types.PatchRequest) (result *types.PatchResult, err error) {
	run := logging.StartRun(p.logger, "apply", req.ManifestPath, len(req.Descriptors))
	defer func() { run.Finish(err) }()
	logger := run.Logger()

	descs, err := normalize(req)
	if err != nil {
		return nil, err
	}

	doc, perm, err := p.load(req.ManifestPath)
	if err != nil {
		return nil, err
	}
	original := doc.String()

	result = &types.PatchResult{
		ManifestPath: req.ManifestPath,
		DryRun:       req.DryRun,
	}

	for _, d := range descs {
		outcome, err := p.applyOne(doc, d, req, logger)
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, outcome)
	}

	result.Changed = doc.String() != original
	if !result.Changed {
		logger.Info().Msg("Nothing to add, manifest left untouched")
		return result, nil
	}
	if req.DryRun {
		logger.Info().Msg("Dry run, manifest not written")
		return result, nil
	}

	if req.Backup {
		backup := req.ManifestPath + BackupSuffix
		if err := p.fs.WriteFileAtomic(backup, []byte(original), perm); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write backup %s", backup).
				WithDetail("path", backup)
		}
		result.BackupPath = backup
	}

	if err := p.fs.WriteFileAtomic(req.ManifestPath, doc.Bytes(), perm); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestWrite, "failed to write %s", req.ManifestPath).
			WithDetail("path", req.ManifestPath)
	}
	result.Written = true

	logger.Info().
		Int("added", result.Added()).
		Int("skipped", result.Skipped()).
		Msg("Manifest updated")
	return result, nil
}

// applyOne runs the four insertions for a single descriptor
func (p *Patcher) applyOne(doc *pbxproj.Document, d types.FileDescriptor, req types.PatchRequest, runLogger zerolog.Logger) (types.FileOutcome, error) {
	logger := runLogger.With().Str("file", d.Name).Str("group", d.Group).Logger()
	outcome := types.FileOutcome{Descriptor: d}

	if doc.Contains(d.Name) {
		logger.Info().Msg("File already exists in project")
		outcome.Status = types.StatusSkipped
		return outcome, nil
	}

	fileRefID, buildFileID, err := p.mintPair(doc)
	if err != nil {
		return outcome, err
	}
	outcome.Status = types.StatusAdded
	outcome.FileRefID = fileRefID
	outcome.BuildFileID = buildFileID

	steps := []struct {
		step types.Step
		run  func() (bool, error)
	}{
		{types.StepFileReference, func() (bool, error) {
			return doc.AppendToSection(pbxproj.SectionFileReference, pbxproj.FileReferenceLine(fileRefID, d.Name, d.FileType))
		}},
		{types.StepBuildFile, func() (bool, error) {
			return doc.AppendToSection(pbxproj.SectionBuildFile, pbxproj.BuildFileLine(buildFileID, fileRefID, d.Name))
		}},
		{types.StepGroup, func() (bool, error) {
			group, ok, err := doc.FindObject(pbxproj.SectionGroup, d.Group)
			if err != nil || !ok {
				return false, err
			}
			return doc.AppendToList(group, "children", pbxproj.Reference(fileRefID, d.Name))
		}},
		{types.StepBuildPhase, func() (bool, error) {
			phase, ok, err := doc.SourcesPhase(req.Target)
			if err != nil || !ok {
				return false, err
			}
			return doc.AppendToList(phase, "files", pbxproj.Reference(buildFileID, pbxproj.BuildFileComment(d.Name)))
		}},
	}

	for _, s := range steps {
		ok, err := s.run()
		if err != nil {
			return outcome, err
		}
		if ok {
			logger.Debug().Str("step", string(s.step)).Msg("Inserted entry")
			continue
		}
		if req.Strict {
			return outcome, p.missingError(doc, s.step, d, req)
		}
		logger.Warn().Str("step", string(s.step)).Msg("Location not found in manifest, step skipped")
		outcome.Missing = append(outcome.Missing, s.step)
	}

	if !outcome.Complete() {
		logger.Warn().Int("missing", len(outcome.Missing)).Msg("Added file to project with missing entries")
		return outcome, nil
	}
	logger.Info().Str("fileRef", fileRefID).Str("buildFile", buildFileID).Msg("Added file to project")
	return outcome, nil
}

// mintPair returns two distinct tokens that do not occur in the document
func (p *Patcher) mintPair(doc *pbxproj.Document) (string, string, error) {
	first, err := p.mint(doc, "")
	if err != nil {
		return "", "", err
	}
	second, err := p.mint(doc, first)
	if err != nil {
		return "", "", err
	}
	return first, second, nil
}

func (p *Patcher) mint(doc *pbxproj.Document, avoid string) (string, error) {
	for i := 0; i < maxTokenAttempts; i++ {
		tok := p.tokens.Next()
		if tok == avoid || doc.Contains(tok) {
			p.logger.Debug().Str("token", tok).Msg("Token already in use, drawing another")
			continue
		}
		return tok, nil
	}
	return "", errors.Newf(errors.ErrTokenCollision, "could not mint an unused identifier after %d attempts", maxTokenAttempts)
}

// missingError builds the strict mode error for a step whose location was not found
func (p *Patcher) missingError(doc *pbxproj.Document, step types.Step, d types.FileDescriptor, req types.PatchRequest) error {
	var err *errors.PatchError
	switch step {
	case types.StepFileReference:
		err = errors.Newf(errors.ErrSectionNotFound, "section %s not found", pbxproj.SectionFileReference).
			WithDetail("section", pbxproj.SectionFileReference)
	case types.StepBuildFile:
		err = errors.Newf(errors.ErrSectionNotFound, "section %s not found", pbxproj.SectionBuildFile).
			WithDetail("section", pbxproj.SectionBuildFile)
	case types.StepGroup:
		err = errors.Newf(errors.ErrGroupNotFound, "group %q not found", d.Group).
			WithDetail("group", d.Group)
	case types.StepBuildPhase:
		err = errors.New(errors.ErrPhaseNotFound, "Sources build phase not found")
		if req.Target != "" {
			if _, ok, _ := doc.FindObject(pbxproj.SectionNativeTarget, req.Target); !ok {
				err = errors.Newf(errors.ErrTargetNotFound, "target %q not found", req.Target)
			} else {
				err = errors.Newf(errors.ErrPhaseNotFound, "target %q has no Sources build phase", req.Target)
			}
			err = err.WithDetail("target", req.Target)
		}
	}
	return err.
		WithDetail("file", d.Name).
		WithDetail("step", string(step)).
		WithDetail("manifest", req.ManifestPath)
}

// load reads and parses the manifest, returning its permission bits
func (p *Patcher) load(path string) (*pbxproj.Document, fs.FileMode, error) {
	info, err := p.fs.Stat(path)
	if err != nil {
		if filesystem.IsNotExist(err) {
			return nil, 0, errors.Wrapf(err, errors.ErrManifestNotFound, "manifest %s not found", path).
				WithDetail("path", path)
		}
		return nil, 0, errors.Wrapf(err, errors.ErrManifestRead, "failed to stat %s", path).
			WithDetail("path", path)
	}

	data, err := p.fs.ReadFile(path)
	if err != nil {
		return nil, 0, errors.Wrapf(err, errors.ErrManifestRead, "failed to read %s", path).
			WithDetail("path", path)
	}

	doc, err := pbxproj.Parse(data)
	if err != nil {
		if pe, ok := err.(*errors.PatchError); ok {
			pe.WithDetail("path", path)
		}
		return nil, 0, err
	}

	p.logger.Debug().Str("manifest", path).Int("bytes", len(data)).Msg("Manifest loaded")
	return doc, info.Mode().Perm(), nil
}

// normalize validates the descriptors and fills in defaulted fields
func normalize(req types.PatchRequest) ([]types.FileDescriptor, error) {
	if req.ManifestPath == "" {
		return nil, errors.New(errors.ErrInvalidInput, "no manifest path given")
	}

	descs := make([]types.FileDescriptor, 0, len(req.Descriptors))
	for i, d := range req.Descriptors {
		if err := d.Validate(); err != nil {
			if pe, ok := err.(*errors.PatchError); ok {
				pe.WithDetail("index", i)
			}
			return nil, err
		}
		d.Name = d.DisplayName()
		if d.FileType == "" {
			d.FileType = pbxproj.FileTypeFor(d.Name, req.FileTypes)
		}
		descs = append(descs, d)
	}
	return descs, nil
}
