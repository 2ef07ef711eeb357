package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"buildgate/internal/core"
	"buildgate/internal/types"
)

func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}

	manifest, err := s.Manifests.LoadManifest(manifestPath)
	if err != nil {
		return ResolveResult{}, err
	}
	compiler := core.NewManifestCompiler()
	if err := compiler.ValidateManifest(ctx, manifest); err != nil {
		return ResolveResult{}, err
	}

	probe, err := s.loadProbe(ctx, req, manifest)
	if err != nil {
		return ResolveResult{}, err
	}
	targetOS := strings.TrimSpace(req.TargetOS)
	if targetOS == "" {
		targetOS = probe.OS
	}

	resolver := core.NewPlanResolver()
	output, err := resolver.Resolve(ctx, manifest, probe, targetOS)
	if err != nil {
		return ResolveResult{}, err
	}

	if err := s.Plans.WritePlan(outputDir, output.Plan); err != nil {
		return ResolveResult{}, err
	}
	if err := s.Plans.WriteFeaturesLock(outputDir, manifest.Features, output.Plan); err != nil {
		return ResolveResult{}, err
	}
	if err := s.Plans.WriteReport(outputDir, output.Records); err != nil {
		return ResolveResult{}, err
	}

	log.Ctx(ctx).Info().
		Str("manifest", manifest.Metadata.Name).
		Str("build_mode", string(output.Plan.BuildMode)).
		Str("output", outputDir).
		Msg("resolution complete")
	return ResolveResult{
		Name:      manifest.Metadata.Name,
		BuildMode: output.Plan.BuildMode,
		OutputDir: outputDir,
		Plan:      output.Plan,
	}, nil
}

func (s Service) loadProbe(ctx context.Context, req ResolveRequest, manifest types.Manifest) (types.ProbeResult, error) {
	if req.Live {
		return s.LiveProbe.Capture(ctx, manifest.Components)
	}
	probePath := strings.TrimSpace(req.ProbePath)
	if probePath == "" {
		return types.ProbeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("probe file is required unless --live is set")
	}
	return s.Probes.LoadProbe(probePath)
}
