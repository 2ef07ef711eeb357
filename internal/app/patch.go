package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"buildgate/internal/shims"
)

// Patch applies the plan's required shims to the given artifacts.
// Failures are isolated per artifact: a file the shims cannot patch is
// reported in its outcome while the pass continues with the rest.
func (s Service) Patch(ctx context.Context, req PatchRequest) (PatchResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return PatchResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	planPath := strings.TrimSpace(req.PlanPath)
	if planPath == "" {
		return PatchResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("plan path is required")
	}
	if len(req.Artifacts) == 0 {
		return PatchResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one artifact is required")
	}

	manifest, err := s.Manifests.LoadManifest(manifestPath)
	if err != nil {
		return PatchResult{}, err
	}
	plan, err := s.Outputs.ReadPlan(planPath)
	if err != nil {
		return PatchResult{}, err
	}
	registry, err := shims.NewRegistry(manifest.Shims)
	if err != nil {
		return PatchResult{}, err
	}
	applicable, err := registry.Applicable(plan, req.RuntimeVersion)
	if err != nil {
		return PatchResult{}, err
	}

	result := PatchResult{}
	for _, entry := range applicable {
		result.Shims = append(result.Shims, entry.Spec.ID)
	}

	for _, path := range req.Artifacts {
		outcome := s.patchArtifact(req, registry, applicable, path)
		if outcome.Err != nil {
			result.Failed++
			log.Ctx(ctx).Warn().
				Str("artifact", path).
				Err(outcome.Err).
				Msg("shim application failed")
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}
	return result, nil
}

func (s Service) patchArtifact(req PatchRequest, registry *shims.Registry, applicable []shims.Entry, path string) PatchOutcome {
	outcome := PatchOutcome{Path: path}
	artifact, err := s.Artifacts.ReadArtifact(path)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	original := artifact.Content
	for _, entry := range applicable {
		patched, err := registry.Apply(entry.Spec.ID, artifact)
		if err != nil {
			outcome.Err = err
			return outcome
		}
		if patched.Content != artifact.Content {
			outcome.Applied = append(outcome.Applied, entry.Spec.ID)
		}
		artifact = patched
	}
	outcome.Changed = artifact.Content != original
	if outcome.Changed && !req.DryRun {
		if err := s.Artifacts.WriteArtifact(artifact); err != nil {
			outcome.Err = err
		}
	}
	return outcome
}
