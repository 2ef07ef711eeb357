package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
)

// Probe captures the host's installed component versions and writes
// them to a file a later resolution pass can consume.
func (s Service) Probe(ctx context.Context, req ProbeRequest) (ProbeResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return ProbeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	outputPath := strings.TrimSpace(req.OutputPath)
	if outputPath == "" {
		return ProbeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is required")
	}
	manifest, err := s.Manifests.LoadManifest(manifestPath)
	if err != nil {
		return ProbeResult{}, err
	}
	probe, err := s.LiveProbe.Capture(ctx, manifest.Components)
	if err != nil {
		return ProbeResult{}, err
	}
	if err := s.Probes.SaveProbe(outputPath, probe); err != nil {
		return ProbeResult{}, err
	}
	log.Ctx(ctx).Info().
		Int("detected", len(probe.Components)).
		Str("output", outputPath).
		Msg("probe captured")
	return ProbeResult{OutputPath: outputPath, Detected: len(probe.Components)}, nil
}
