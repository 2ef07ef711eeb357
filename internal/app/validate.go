package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"buildgate/internal/core"
)

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	manifest, err := s.Manifests.LoadManifest(manifestPath)
	if err != nil {
		return ValidateResult{}, err
	}
	compiler := core.NewManifestCompiler()
	if err := compiler.ValidateManifest(ctx, manifest); err != nil {
		return ValidateResult{}, err
	}
	return ValidateResult{
		Name:       manifest.Metadata.Name,
		Components: len(manifest.Components),
		Rules:      len(manifest.Rules),
	}, nil
}
