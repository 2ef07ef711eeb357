package ports

import (
	"context"

	"buildgate/internal/types"
)

// ProbeSourcePort reads and writes captured probe results. Capture
// itself is external to the resolver core; these ports only move the
// captured state in and out.
type ProbeSourcePort interface {
	LoadProbe(path string) (types.ProbeResult, error)
	SaveProbe(path string, probe types.ProbeResult) error
}

// ProbeCapturePort detects installed component versions on the host.
type ProbeCapturePort interface {
	Capture(ctx context.Context, components []types.ComponentDescriptor) (types.ProbeResult, error)
}
