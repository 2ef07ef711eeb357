package app

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	plan, err := s.Outputs.ReadPlan(filepath.Join(outputDir, "build.plan"))
	if err != nil {
		return InspectResult{}, err
	}
	features, err := s.Outputs.ReadFeaturesLock(filepath.Join(outputDir, "features.lock"))
	if err != nil {
		return InspectResult{}, err
	}
	records, err := s.Outputs.ReadReport(filepath.Join(outputDir, "resolution.report"))
	if err != nil {
		return InspectResult{}, err
	}

	components := make([]InspectComponent, 0, len(plan.ResolvedVersions))
	for name, resolved := range plan.ResolvedVersions {
		components = append(components, InspectComponent{
			Name:    name,
			Version: resolved.Version,
			Source:  resolved.Source,
		})
	}
	sort.Slice(components, func(i, j int) bool {
		return components[i].Name < components[j].Name
	})
	sort.Slice(features, func(i, j int) bool {
		return features[i].ID < features[j].ID
	})

	return InspectResult{
		BuildMode:  plan.BuildMode,
		TargetOS:   plan.Platform.OS,
		Components: components,
		Features:   features,
		Shims:      plan.RequiredShims,
		Records:    records,
	}, nil
}
