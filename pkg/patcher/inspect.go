package patcher

import (
	"github.com/arthur-debert/pbxpatch/pkg/logging"
	"github.com/arthur-debert/pbxpatch/pkg/pbxproj"
	"github.com/arthur-debert/pbxpatch/pkg/types"
)

// Inspect reports, for every descriptor of req, whether it is already present
// and which insertion points Apply would fail to find. The manifest is never
// written.
func (p *Patcher) Inspect(req types.PatchRequest) (result *types.InspectResult, err error) {
	run := logging.StartRun(p.logger, "inspect", req.ManifestPath, len(req.Descriptors))
	defer func() { run.Finish(err) }()

	descs, err := normalize(req)
	if err != nil {
		return nil, err
	}

	doc, _, err := p.load(req.ManifestPath)
	if err != nil {
		return nil, err
	}

	result = &types.InspectResult{ManifestPath: req.ManifestPath}
	for _, d := range descs {
		insp := types.FileInspection{Descriptor: d, Present: doc.Contains(d.Name)}
		if !insp.Present {
			insp.Missing, err = missingSteps(doc, d.Group, req.Target)
			if err != nil {
				return nil, err
			}
		}
		logger := run.Logger()
		logger.Debug().
			Str("file", d.Name).
			Bool("present", insp.Present).
			Int("missing", len(insp.Missing)).
			Msg("Inspected file")
		result.Files = append(result.Files, insp)
	}
	return result, nil
}

// missingSteps lists the steps whose insertion point does not exist in doc
func missingSteps(doc *pbxproj.Document, group, target string) ([]types.Step, error) {
	var missing []types.Step

	for _, s := range []struct {
		step    types.Step
		section string
	}{
		{types.StepFileReference, pbxproj.SectionFileReference},
		{types.StepBuildFile, pbxproj.SectionBuildFile},
	} {
		_, ok, err := doc.Section(s.section)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, s.step)
		}
	}

	obj, ok, err := doc.FindObject(pbxproj.SectionGroup, group)
	if err != nil {
		return nil, err
	}
	if !ok || !hasList(obj, "children") {
		missing = append(missing, types.StepGroup)
	}

	obj, ok, err = doc.SourcesPhase(target)
	if err != nil {
		return nil, err
	}
	if !ok || !hasList(obj, "files") {
		missing = append(missing, types.StepBuildPhase)
	}
	return missing, nil
}

func hasList(obj pbxproj.Object, key string) bool {
	v, ok := obj.Field(key)
	return ok && v.Kind == pbxproj.ValueList
}
